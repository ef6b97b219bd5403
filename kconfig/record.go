package kconfig

import (
	"errors"
	"strings"
)

// Sentinel errors returned by the loaders and the annotator.
var (
	ErrInvalidOption = errors.New("invalid option")
	ErrReadInput     = errors.New("read input")
	ErrWriteOutput   = errors.New("write output")
)

// KeySource tells how the key of a declaration [Record] was found.
type KeySource string

const (
	// KeySourceMarker means the key came from a "config <KEY>" line.
	KeySourceMarker KeySource = "marker"
	// KeySourceToken means no key line existed and the second whitespace
	// delimited token of the content was used. This is a low confidence
	// guess and may name an unrelated word.
	KeySourceToken KeySource = "token"
	// KeySourceName means the content had fewer than two tokens and the
	// file name was used.
	KeySourceName KeySource = "name"
)

// Record is the structured metadata of one configuration option.
//
// Records are values; components build new ones rather than mutating
// records they were given.
type Record struct {
	Key          string    `json:"key"                    yaml:"key"`
	Type         string    `json:"type,omitempty"         yaml:"type,omitempty"`
	Label        string    `json:"label,omitempty"        yaml:"label,omitempty"`
	Description  string    `json:"description,omitempty"  yaml:"description,omitempty"`
	KeySource    KeySource `json:"keySource,omitempty"    yaml:"keySource,omitempty"`
	Defaults     []string  `json:"defaults,omitempty"     yaml:"defaults,omitempty"`
	Dependencies []string  `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Default returns the default expressions joined by commas, in the order
// they appeared.
func (r Record) Default() string {
	return strings.Join(r.Defaults, ",")
}

// Dependency returns the dependency expressions joined by commas, in the
// order they appeared.
func (r Record) Dependency() string {
	return strings.Join(r.Dependencies, ",")
}

// LowConfidence reports whether the key of r was guessed.
func (r Record) LowConfidence() bool {
	return r.KeySource == KeySourceToken || r.KeySource == KeySourceName
}
