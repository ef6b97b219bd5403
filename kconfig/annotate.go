package kconfig

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// disabledValue is reported for "# CONFIG_FOO is not set" lines.
const disabledValue = "n"

// Annotator writes a resolved configuration file as tab separated rows,
// joining each option line with its merged [Record].
//
// Create instances with [NewAnnotator].
type Annotator struct {
	table  *Table
	syntax Syntax
}

// NewAnnotator creates an [Annotator] that looks options up in table.
func NewAnnotator(syntax Syntax, table *Table) *Annotator {
	return &Annotator{syntax: syntax, table: table}
}

// Annotate copies r to w line by line. Option lines become rows of seven
// tab separated fields: key, value, type, label, default, dependency and
// description. Every other line is copied unchanged, so w receives exactly
// one line per input line, in input order.
func (a *Annotator) Annotate(r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)

	sc := newLineScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if row, ok := a.AnnotateLine(line); ok {
			line = row
		}

		_, err := bw.WriteString(line + "\n")
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	err := sc.Err()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	err = bw.Flush()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// AnnotateLine returns the row for a single option line. It reports false
// for lines that are neither assignments nor disabled options.
func (a *Annotator) AnnotateLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)

	var value string

	switch {
	case strings.HasPrefix(trimmed, a.syntax.OptionMarker):
		value = ExtractValue(trimmed)
	case strings.HasPrefix(trimmed, a.syntax.CommentMarker+" "+a.syntax.OptionMarker):
		value = disabledValue
	default:
		return "", false
	}

	key := NormalizeKey(trimmed, a.syntax.OptionMarker)
	rec, _ := a.table.Lookup(key)

	fields := []string{
		key, value, rec.Type, rec.Label, rec.Default(), rec.Dependency(), rec.Description,
	}
	for i, f := range fields {
		fields[i] = strings.ReplaceAll(strings.TrimSpace(f), "\t", " ")
	}

	return strings.Join(fields, "\t"), true
}
