package kconfig

import (
	"fmt"
)

// Default syntax tokens of Linux kernel style sources.
const (
	DefaultOptionMarker  = "CONFIG_"
	DefaultKeyMarker     = "config"
	DefaultCommentMarker = "#"
)

// Syntax holds the tokens that anchor the heuristics of every component.
// It is passed to each component at construction; nothing reads it from
// package state.
type Syntax struct {
	// OptionMarker prefixes option identifiers in the flat description
	// source and in resolved configuration files.
	OptionMarker string
	// KeyMarker starts the line that names the option of a declaration.
	KeyMarker string
	// CommentMarker starts declaration lines that are ignored.
	CommentMarker string
	// Types are the value type keywords recognized at the start of a line.
	Types []string
	// BoolTypes is the subset of Types whose defaults are y/m/n expressions.
	BoolTypes []string
}

// DefaultSyntax returns the [Syntax] of Kconfig declarations and .config
// files.
func DefaultSyntax() Syntax {
	return Syntax{
		OptionMarker:  DefaultOptionMarker,
		KeyMarker:     DefaultKeyMarker,
		CommentMarker: DefaultCommentMarker,
		Types:         []string{"bool", "tristate", "int", "hex", "string", "def_bool", "def_tristate"},
		BoolTypes:     []string{"bool", "tristate", "def_bool", "def_tristate"},
	}
}

// Validate reports whether s can drive the parsers.
func (s Syntax) Validate() error {
	switch {
	case s.OptionMarker == "":
		return fmt.Errorf("%w: empty option marker", ErrInvalidOption)
	case s.KeyMarker == "":
		return fmt.Errorf("%w: empty key marker", ErrInvalidOption)
	case s.CommentMarker == "":
		return fmt.Errorf("%w: empty comment marker", ErrInvalidOption)
	case len(s.Types) == 0:
		return fmt.Errorf("%w: no value types", ErrInvalidOption)
	}

	return nil
}
