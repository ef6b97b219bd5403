package kconfig

import (
	"log/slog"
	"maps"
	"slices"
)

// Table is the merged, key-unique set of option records.
//
// Create instances with [Merge].
type Table struct {
	records map[string]Record
	keys    []string
}

// Merge joins the flat descriptions and the declaration records, which are
// keyed by the identifier of the file they were parsed from.
//
// Every key of either input appears exactly once in the result:
//
//   - A declaration with a description is used as is.
//   - A declaration without a description takes the flat description of its
//     own key, or failing that of the identifier it is stored under.
//   - A key with no declaration gets a record holding only the flat
//     description.
//
// Declaration identifiers are normalized; when two normalize to the same key
// the one that sorts last wins.
func Merge(descriptions *DescriptionTable, declarations map[string]Record) *Table {
	decls := make(map[string]Record, len(declarations))
	for _, name := range slices.Sorted(maps.Keys(declarations)) {
		decls[normalizeName(name)] = declarations[name]
	}

	t := &Table{records: make(map[string]Record, len(decls)+descriptions.Len())}

	for key, decl := range decls {
		t.records[key] = backfill(decl, key, descriptions)
	}

	for _, key := range descriptions.Keys() {
		if _, ok := t.records[key]; ok {
			continue
		}

		desc, _ := descriptions.Lookup(key)
		t.records[key] = Record{Key: key, Description: desc}
	}

	t.keys = slices.Sorted(maps.Keys(t.records))

	slog.Debug("merged option tables",
		slog.Int("declarations", len(decls)),
		slog.Int("descriptions", descriptions.Len()),
		slog.Int("records", len(t.keys)),
	)

	return t
}

func backfill(decl Record, key string, descriptions *DescriptionTable) Record {
	if decl.Description != "" {
		return decl
	}

	for _, k := range []string{decl.Key, key} {
		if desc, ok := descriptions.Lookup(k); ok && desc != "" {
			decl.Description = desc

			return decl
		}
	}

	return decl
}

// Lookup returns the record for key.
func (t *Table) Lookup(key string) (Record, bool) {
	if t == nil {
		return Record{}, false
	}

	r, ok := t.records[key]

	return r, ok
}

// Keys returns all keys in sorted order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}

	return slices.Clone(t.keys)
}

// Records returns all records in key order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}

	out := make([]Record, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, t.records[k])
	}

	return out
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.keys)
}
