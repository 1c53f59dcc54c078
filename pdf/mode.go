package pdf

import (
	"fmt"
	"strings"
)

// Mode is a Ghostscript PDFSETTINGS preset. Each one trades resolution for size.
type Mode int

const (
	ModeScreen Mode = iota + 1
	ModeEbook
	ModePrepress
	ModePrint
)

// DefaultMode is used when the caller does not pick a preset
const DefaultMode = ModeEbook

// Modes lists every preset from smallest to largest output
func Modes() []Mode {
	return []Mode{ModeScreen, ModeEbook, ModePrepress, ModePrint}
}

// String returns the lower-case token passed to the engine
func (m Mode) String() string {
	switch m {
	case ModeScreen:
		return "screen"
	case ModeEbook:
		return "ebook"
	case ModePrepress:
		return "prepress"
	case ModePrint:
		return "print"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Description returns a short human summary of the preset
func (m Mode) Description() string {
	switch m {
	case ModeScreen:
		return "75ppi, lowest file size"
	case ModeEbook:
		return "150ppi, medium file size"
	case ModePrepress:
		return "300ppi, large file size"
	case ModePrint:
		return "600ppi, largest file size"
	}
	return ""
}

// Valid reports whether m is one of the four presets
func (m Mode) Valid() bool {
	return m >= ModeScreen && m <= ModePrint
}

// ParseMode maps a token to its preset. Matching is case-sensitive.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, UsageError(fmt.Sprintf("invalid mode %q, must be one of %s", s, ModeTokens()), nil)
}

// ModeTokens returns the valid tokens joined with "|"
func ModeTokens() string {
	tokens := make([]string, 0, len(Modes()))
	for _, m := range Modes() {
		tokens = append(tokens, m.String())
	}
	return strings.Join(tokens, "|")
}

// Set implements pflag.Value
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value
func (m *Mode) Type() string {
	return "mode"
}
