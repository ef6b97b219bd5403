package kconfig

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Loader reads the three inputs from a filesystem. Each file is opened, read
// in full and closed before the next one is touched.
//
// Create instances with [NewLoader].
type Loader struct {
	fs      afero.Fs
	parser  *Parser
	syntax  Syntax
	include []string
	exclude []string
}

// LoaderOption configures a [Loader].
type LoaderOption func(*Loader)

// WithInclude limits declaration files to names matching at least one of the
// doublestar patterns. With no include patterns every file is read.
func WithInclude(patterns ...string) LoaderOption {
	return func(l *Loader) {
		l.include = patterns
	}
}

// WithExclude skips declaration files whose names match any of the
// doublestar patterns.
func WithExclude(patterns ...string) LoaderOption {
	return func(l *Loader) {
		l.exclude = patterns
	}
}

// NewLoader creates a [Loader] reading from fs.
func NewLoader(fs afero.Fs, syntax Syntax, opts ...LoaderOption) (*Loader, error) {
	err := syntax.Validate()
	if err != nil {
		return nil, err
	}

	l := &Loader{
		fs:     fs,
		syntax: syntax,
		parser: NewParser(syntax),
	}

	for _, opt := range opts {
		opt(l)
	}

	for _, p := range append(append([]string{}, l.include...), l.exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: bad pattern %q", ErrInvalidOption, p)
		}
	}

	return l, nil
}

// LoadDescriptions reads the flat description source at name. An empty name
// yields an empty table.
func (l *Loader) LoadDescriptions(name string) (*DescriptionTable, error) {
	if name == "" {
		return NewDescriptionTable(nil), nil
	}

	f, err := l.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	defer f.Close()

	t, err := LoadDescriptions(f, l.syntax)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return t, nil
}

// LoadDeclaration parses the single declaration file at name.
func (l *Loader) LoadDeclaration(name string) (Record, error) {
	data, err := afero.ReadFile(l.fs, name)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return l.parser.Parse(filepath.Base(name), data), nil
}

// LoadDeclarations parses every selected file directly inside dir. The
// result is keyed by the normalized file name. Subdirectories are skipped.
// An empty dir yields no records.
func (l *Loader) LoadDeclarations(dir string) (map[string]Record, error) {
	records := make(map[string]Record)
	if dir == "" {
		return records, nil
	}

	infos, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	for _, info := range infos {
		if info.IsDir() || !l.selected(info.Name()) {
			continue
		}

		rec, loadErr := l.LoadDeclaration(filepath.Join(dir, info.Name()))
		if loadErr != nil {
			return nil, loadErr
		}

		if rec.LowConfidence() {
			slog.Warn("guessed declaration key",
				slog.String("file", info.Name()),
				slog.String("key", rec.Key),
			)
		}

		records[normalizeName(info.Name())] = rec
	}

	return records, nil
}

func (l *Loader) selected(name string) bool {
	for _, p := range l.exclude {
		if doublestar.MatchUnvalidated(p, name) {
			return false
		}
	}

	if len(l.include) == 0 {
		return true
	}

	for _, p := range l.include {
		if doublestar.MatchUnvalidated(p, name) {
			return true
		}
	}

	return false
}

// LoadTable loads both sources and merges them.
func (l *Loader) LoadTable(descriptions, declarations string) (*Table, error) {
	descs, err := l.LoadDescriptions(descriptions)
	if err != nil {
		return nil, err
	}

	decls, err := l.LoadDeclarations(declarations)
	if err != nil {
		return nil, err
	}

	return Merge(descs, decls), nil
}

// AnnotateFile annotates the resolved configuration file at name into w.
func (l *Loader) AnnotateFile(table *Table, name string, w io.Writer) error {
	f, err := l.fs.Open(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	defer f.Close()

	err = NewAnnotator(l.syntax, table).Annotate(f, w)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}
