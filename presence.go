package jsonapi

// Presence is the bit flag collected by FromObjectWithMeta.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Property appeared in the wire object.
	PresenceWasNull                             // Property value was null.
	PresenceDefaultApplied                      // Default value was applied.
)

// PresenceMap maps client property names to Presence flags.
type PresenceMap map[string]Presence

// Decoded carries mapped property values along with presence metadata.
type Decoded struct {
	Values   map[string]any
	Presence PresenceMap
}

// Seen reports whether name appeared in the wire object.
func (d Decoded) Seen(name string) bool { return d.Presence[name]&PresenceSeen != 0 }

// WasNull reports whether name was explicitly null in the wire object.
func (d Decoded) WasNull(name string) bool { return d.Presence[name]&PresenceWasNull != 0 }

// DefaultApplied reports whether the value of name was materialized from a default.
func (d Decoded) DefaultApplied(name string) bool {
	return d.Presence[name]&PresenceDefaultApplied != 0
}
