package kconfig

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// DescriptionTable maps option keys to the descriptions found in the flat
// description source. It is read-only once loaded.
type DescriptionTable struct {
	entries map[string]string

	// WithDescription and WithoutDescription count the option lines that did
	// and did not carry a usable description. They are diagnostic only.
	WithDescription    int
	WithoutDescription int
}

// NewDescriptionTable returns a table holding a copy of entries. Keys are
// normalized.
func NewDescriptionTable(entries map[string]string) *DescriptionTable {
	t := &DescriptionTable{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		t.add(normalizeName(k), v)
	}

	return t
}

// LoadDescriptions reads the flat description source from r. Every line that
// starts with the option marker contributes one entry; later lines for the
// same key replace earlier ones. Other lines are ignored.
func LoadDescriptions(r io.Reader, syntax Syntax) (*DescriptionTable, error) {
	t := &DescriptionTable{entries: make(map[string]string)}

	sc := newLineScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, syntax.OptionMarker) {
			continue
		}

		key := NormalizeKey(line, syntax.OptionMarker)
		if key == "" {
			continue
		}

		t.add(key, ExtractFlatDescription(line))
	}

	err := sc.Err()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	slog.Debug("loaded descriptions",
		slog.Int("with_description", t.WithDescription),
		slog.Int("without_description", t.WithoutDescription),
	)

	return t, nil
}

func (t *DescriptionTable) add(key, description string) {
	t.entries[key] = description

	if strings.TrimSpace(description) == "" {
		t.WithoutDescription++
	} else {
		t.WithDescription++
	}
}

// Lookup returns the description stored for key.
func (t *DescriptionTable) Lookup(key string) (string, bool) {
	if t == nil {
		return "", false
	}

	desc, ok := t.entries[key]

	return desc, ok
}

// Keys returns all keys in sorted order.
func (t *DescriptionTable) Keys() []string {
	if t == nil {
		return nil
	}

	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Len returns the number of keys.
func (t *DescriptionTable) Len() int {
	if t == nil {
		return 0
	}

	return len(t.entries)
}

const maxLineSize = 1 << 20

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return sc
}
