package kconfig

import (
	"slices"
	"strings"
	"unicode"
)

// Field extractors.
//
// Every extractor in this file is total: it accepts any input and reports
// absence with an empty string or a false ok value, never with an error.
// Precedence between competing interpretations of the same text is fixed
// per extractor and documented on it.

const (
	keywordDefault   = "default"
	keywordDepends   = "depends on"
	keywordHelp      = "help"
	keywordHelpOld   = "---help---"
	keywordPrompt    = "prompt"
	tristateLetters  = "ynm"
	boolDefaultChars = "ymnif"
	intDefaultChars  = "if"
)

// clauseKeywords start lines that never carry a free-standing label.
var clauseKeywords = []string{
	"config", "menuconfig", "choice", "endchoice", "comment", "menu",
	"endmenu", "if", "endif", "source", "mainmenu", keywordDefault,
	"depends", "select", "imply", "range", keywordHelp, keywordHelpOld,
	keywordPrompt, "visible", "option", "modules", "transitional",
}

// TypeClause is the result of [Syntax.ExtractType].
type TypeClause struct {
	Type string
	// Label is the human readable name that followed the type keyword.
	Label string
	// Default is set instead of Label when the remainder of the line looked
	// like a tristate value, e.g. "def_bool y if FOO".
	Default string
}

// ExtractValue returns the value of an assignment line: the text after the
// first "=" and before the first tab, trimmed. Lines without "=" yield "".
//
//	ExtractValue(`CONFIG_FOO="bar"`) // `"bar"`
func ExtractValue(line string) string {
	_, rhs, ok := strings.Cut(line, "=")
	if !ok {
		return ""
	}

	rhs, _, _ = strings.Cut(rhs, "\t")

	return strings.TrimSpace(rhs)
}

// ExtractKey returns the identifier of a "config <KEY>" line, which is the
// first word after the marker. Lines that do not start with the key marker,
// or that name no identifier, yield false. Indented lines are never key
// lines.
func (s Syntax) ExtractKey(line string) (string, bool) {
	if !strings.HasPrefix(line, s.KeyMarker) {
		return "", false
	}

	rest := line[len(s.KeyMarker):]
	if rest == "" || !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}

	words := strings.Fields(rest)
	if len(words) == 0 {
		return "", false
	}

	return normalizeName(words[0]), true
}

// ExtractType recognizes a line whose first word is a value type keyword.
//
// The rest of the line is a label, unless its first character is one of the
// tristate letters (y, m, n) and is followed by whitespace or nothing, in
// which case it is a default value placed on the type line.
func (s Syntax) ExtractType(line string) (TypeClause, bool) {
	words := strings.Fields(line)
	if len(words) == 0 || !slices.Contains(s.Types, words[0]) {
		return TypeClause{}, false
	}

	tc := TypeClause{Type: words[0]}

	rest := strings.Join(words[1:], " ")
	if looksLikeTristate(rest) {
		tc.Default = rest
	} else {
		tc.Label = unquote(rest)
	}

	return tc, true
}

func looksLikeTristate(s string) bool {
	if s == "" || !strings.ContainsRune(tristateLetters, rune(s[0])) {
		return false
	}

	return len(s) == 1 || s[1] == ' '
}

// ExtractPrompt returns the label of a `prompt "<text>"` line.
func ExtractPrompt(line string) (string, bool) {
	rest, ok := cutKeyword(line, keywordPrompt)
	if !ok {
		return "", false
	}

	label := unquote(rest)

	return label, label != ""
}

// ExtractLabelLine returns line as a label when it is a plain text line, that
// is, when it is not blank and does not begin with a clause or type keyword.
func (s Syntax) ExtractLabelLine(line string) (string, bool) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return "", false
	}

	if slices.Contains(clauseKeywords, words[0]) || slices.Contains(s.Types, words[0]) {
		return "", false
	}

	return unquote(strings.Join(words, " ")), true
}

// ExtractDefault returns the expression of a "default <expr>" line, if the
// expression is plausible for valueType.
//
// The same syntax is used for prose in some files, so candidates whose
// characters do not fit the declared type are rejected:
//
//   - boolean-like types: any lower case letter other than y, m, n, i, f.
//   - "int": any lower case letter other than i, f. Digits are accepted.
//   - "hex": any lower case letter other than x, or any upper case letter
//     outside A-F.
//
// Other types, including an unknown (empty) type, accept every candidate.
func (s Syntax) ExtractDefault(line, valueType string) (string, bool) {
	candidate, ok := cutKeyword(line, keywordDefault)
	if !ok || candidate == "" {
		return "", false
	}

	var reject func(rune) bool

	switch {
	case slices.Contains(s.BoolTypes, valueType):
		reject = func(r rune) bool {
			return unicode.IsLower(r) && !strings.ContainsRune(boolDefaultChars, r)
		}
	case valueType == "int":
		reject = func(r rune) bool {
			return unicode.IsLower(r) && !strings.ContainsRune(intDefaultChars, r)
		}
	case valueType == "hex":
		reject = func(r rune) bool {
			return unicode.IsLower(r) && r != 'x' ||
				unicode.IsUpper(r) && (r < 'A' || r > 'F')
		}
	default:
		return candidate, true
	}

	if strings.IndexFunc(candidate, reject) >= 0 {
		return "", false
	}

	return candidate, true
}

// ExtractDependency returns the expression of a single "depends on <expr>"
// line. Continuation lines of a multi-line expression are not joined.
func ExtractDependency(line string) (string, bool) {
	dep, ok := cutKeyword(line, keywordDepends)
	if !ok || dep == "" {
		return "", false
	}

	return dep, true
}

// ExtractHelp returns the help text of a declaration: every line after the
// first "help" (or "---help---") keyword line, with all whitespace runs
// collapsed to single spaces. Content without a help keyword yields "".
func ExtractHelp(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if isHelpLine(line) {
			return collapseWhitespace(strings.Join(lines[i+1:], "\n"))
		}
	}

	return ""
}

func isHelpLine(line string) bool {
	if _, ok := cutKeyword(line, keywordHelpOld); ok {
		return true
	}

	_, ok := cutKeyword(line, keywordHelp)

	return ok
}

// ExtractFlatDescription returns the description part of a line from the
// flat description source. The line layout is detected in priority order:
//
//  1. exactly one tab: the text after it.
//  2. a single "=y" or "=m" assignment: the text after it.
//  3. a quoted value (`="..."`): the text after the closing quote.
//  4. any other value: the text after the first whitespace that follows
//     the "=".
//
// If none applies the result is "".
func ExtractFlatDescription(line string) string {
	line = strings.TrimSpace(line)

	for _, sep := range []string{"\t", "=y", "=m"} {
		parts := strings.Split(line, sep)
		if len(parts) == 2 {
			return strings.TrimSpace(parts[1])
		}
	}

	if idx := strings.Index(line, `="`); idx >= 0 {
		rest := line[idx+2:]

		return strings.TrimSpace(rest[strings.Index(rest, `"`)+1:])
	}

	_, rest, ok := strings.Cut(line, "=")
	if !ok {
		rest = line
	}

	ws := strings.IndexFunc(rest, unicode.IsSpace)
	if ws < 0 {
		return ""
	}

	return strings.TrimSpace(rest[ws:])
}

// cutKeyword reports whether the trimmed line starts with keyword as a whole
// word, and returns the trimmed remainder.
func cutKeyword(line, keyword string) (string, bool) {
	line = strings.TrimSpace(line)

	rest, ok := strings.CutPrefix(line, keyword)
	if !ok {
		return "", false
	}

	if rest != "" && !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}

	return strings.TrimSpace(rest), true
}

// unquote removes one pair of surrounding double quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.TrimSpace(s[1 : len(s)-1])
	}

	return s
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
