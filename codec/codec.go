// Package codec converts property values between their wire and in-memory
// representations.
package codec

import "context"

// Codec performs bidirectional transformation between the wire
// representation A and the domain representation B.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error) // wire -> domain.
	Encode(ctx context.Context, b B) (A, error) // domain -> wire.
}
