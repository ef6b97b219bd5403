package kconfig

import (
	"log/slog"
	"strings"
)

// Parser turns declaration file content into a [Record].
//
// Create instances with [NewParser].
type Parser struct {
	syntax Syntax
}

// NewParser creates a [Parser] for the given [Syntax].
func NewParser(syntax Syntax) *Parser {
	return &Parser{syntax: syntax}
}

// lineScan is the result of the first pass over the declaration lines.
type lineScan struct {
	key          string
	valueType    string
	typeLabel    string
	promptLabel  string
	defaults     []string
	dependencies []string
}

// Parse parses the content of one declaration file. The name is the bare
// identifier the file is stored under; it is only used as the key when the
// content offers nothing better.
//
// Comment lines are dropped first. The remaining lines are scanned for the
// key, type, label and dependencies, then scanned again for "default"
// clauses, which are filtered against the type found by the first pass.
// Help text is read from the whole content when at least two lines remain.
func (p *Parser) Parse(name string, content []byte) Record {
	lines := p.uncommentedLines(string(content))
	joined := strings.Join(lines, "")

	scan := p.scanLines(lines)

	rec := Record{
		Key:          scan.key,
		KeySource:    KeySourceMarker,
		Type:         scan.valueType,
		Label:        scan.typeLabel,
		Defaults:     append(scan.defaults, p.scanDefaults(lines, scan.valueType)...),
		Dependencies: scan.dependencies,
	}

	if rec.Label == "" {
		rec.Label = scan.promptLabel
	}

	if rec.Key == "" {
		rec.Key, rec.KeySource = fallbackKey(name, joined)

		slog.Debug("declaration has no key line",
			slog.String("file", name),
			slog.String("key", rec.Key),
			slog.String("source", string(rec.KeySource)),
		)
	}

	if len(lines) >= 2 {
		rec.Description = ExtractHelp(joined)
	}

	return rec
}

// uncommentedLines splits content into lines, keeping line terminators, and
// drops every line whose trimmed text starts with the comment marker.
func (p *Parser) uncommentedLines(content string) []string {
	var lines []string

	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(line), p.syntax.CommentMarker) {
			continue
		}

		lines = append(lines, line)
	}

	return lines
}

// scanLines is the first pass. Later key and type lines overwrite earlier
// ones.
func (p *Parser) scanLines(lines []string) lineScan {
	var scan lineScan

	for i, line := range lines {
		if key, ok := p.syntax.ExtractKey(line); ok {
			scan.key = key
		}

		if tc, ok := p.syntax.ExtractType(line); ok {
			scan.valueType = tc.Type

			switch {
			case tc.Default != "":
				scan.defaults = append(scan.defaults, tc.Default)
			case tc.Label == "" && i+1 < len(lines):
				// The label may sit alone on the line below the type.
				scan.typeLabel, _ = p.syntax.ExtractLabelLine(lines[i+1])
			default:
				scan.typeLabel = tc.Label
			}
		}

		if label, ok := ExtractPrompt(line); ok {
			scan.promptLabel = label
		}

		if dep, ok := ExtractDependency(line); ok {
			scan.dependencies = append(scan.dependencies, dep)
		}
	}

	return scan
}

// scanDefaults is the second pass.
func (p *Parser) scanDefaults(lines []string, valueType string) []string {
	var defaults []string

	for _, line := range lines {
		if def, ok := p.syntax.ExtractDefault(line, valueType); ok {
			defaults = append(defaults, def)
		}
	}

	return defaults
}

func fallbackKey(name, content string) (string, KeySource) {
	tokens := strings.Fields(content)
	if len(tokens) >= 2 {
		if key := normalizeName(tokens[1]); key != "" {
			return key, KeySourceToken
		}
	}

	return normalizeName(name), KeySourceName
}
