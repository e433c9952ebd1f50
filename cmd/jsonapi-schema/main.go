package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/stantanasi/jsonapi"
	"github.com/stantanasi/jsonapi/schemafile"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "jsonapi-schema\n\nUsage:\n  jsonapi-schema transform -from snake_case -to camelCase name...\n  jsonapi-schema inspect [-v] schema.yaml")
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "transform":
		return transformCmd(args[1:], stdout, stderr)
	case "inspect":
		return inspectCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func transformCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("transform", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var from, to string
	fs.StringVar(&from, "from", "literal", "source naming convention")
	fs.StringVar(&to, "to", "literal", "target naming convention")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	logger := newLogger(stderr, false)

	src, err := jsonapi.ParseNameTransformer(from)
	if err != nil {
		logger.Error("invalid -from", "error", err)
		return 2
	}
	dst, err := jsonapi.ParseNameTransformer(to)
	if err != nil {
		logger.Error("invalid -to", "error", err)
		return 2
	}

	s := jsonapi.New(jsonapi.Definition[map[string]any]{}, jsonapi.WithLogger(logger))
	for _, name := range fs.Args() {
		fmt.Fprintln(stdout, s.TransformPropertyName(name, src, dst))
	}
	return 0
}

func inspectCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var verbose bool
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		usage(stderr)
		return 2
	}
	logger := newLogger(stderr, verbose)
	path := fs.Arg(0)

	f, err := schemafile.ReadFile(path)
	if err != nil {
		logIssues(logger, "cannot load schema file", path, err)
		return 1
	}
	logger.Debug("loaded schema file", "path", path, "attributes", len(f.Attributes), "relationships", len(f.Relationships))

	s, err := schemafile.Build[map[string]any](f, jsonapi.WithLogger(logger))
	if err != nil {
		logIssues(logger, "invalid schema file", path, err)
		return 1
	}
	if err := s.Freeze(); err != nil {
		logIssues(logger, "invalid schema", path, err)
		return 1
	}

	out, err := schemafile.Export(s).JSON()
	if err != nil {
		logger.Error("cannot render schema", "path", path, "error", err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

func logIssues(logger *slog.Logger, msg, path string, err error) {
	iss, ok := jsonapi.AsIssues(err)
	if !ok {
		logger.Error(msg, "path", path, "error", err)
		return
	}
	for _, it := range iss {
		attrs := []slog.Attr{
			slog.String("path", path),
			slog.String("pointer", it.Path),
			slog.String("code", it.Code),
		}
		if it.Cause != nil {
			attrs = append(attrs, slog.String("cause", it.Cause.Error()))
		}
		logger.LogAttrs(context.Background(), slog.LevelError, msg+": "+it.Message, attrs...)
	}
}
