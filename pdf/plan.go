package pdf

import (
	"path/filepath"
	"strings"
)

const (
	// FallbackStem names the output when the source path has no usable file name
	FallbackStem = "pdfpress"

	// PressedSuffix is appended to the source stem for the default destination
	PressedSuffix = "_pressed.pdf"
)

// Plan is a fully resolved compression request
type Plan struct {
	Source      string
	Destination string
	Mode        Mode
}

// NewPlan resolves caller input into a Plan. An empty destination is derived
// from the source and a zero mode becomes DefaultMode.
func NewPlan(source, destination string, mode Mode) (Plan, error) {
	if source == "" {
		return Plan{}, UsageError("source path is required", nil)
	}

	if mode == 0 {
		mode = DefaultMode
	}
	if !mode.Valid() {
		return Plan{}, UsageError("invalid mode "+mode.String(), nil)
	}

	if destination == "" {
		destination = DefaultDestination(source)
	}

	return Plan{
		Source:      source,
		Destination: destination,
		Mode:        mode,
	}, nil
}

// DefaultDestination returns <stem>_pressed.pdf next to source
func DefaultDestination(source string) string {
	dir, file := filepath.Split(source)

	// ".." names a directory, so the output goes inside it
	if file == ".." {
		dir, file = dir+file+string(filepath.Separator), ""
	}

	stem := fileStem(file)
	if stem == "" {
		stem = FallbackStem
	}

	// dir keeps its trailing separator, so plain concatenation stays in the same
	// directory without cleaning the caller's path
	return dir + stem + PressedSuffix
}

// fileStem strips the last extension from a file name. Dot files without a
// further extension keep their whole name.
func fileStem(file string) string {
	if file == "" || file == "." || file == ".." {
		return ""
	}

	ext := filepath.Ext(file)
	if ext == file {
		return file
	}
	return strings.TrimSuffix(file, ext)
}
