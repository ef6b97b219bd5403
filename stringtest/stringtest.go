// Package stringtest builds expected text for tests of line and column
// oriented output.
package stringtest

import "strings"

// Input strips one leading and one trailing newline from s and removes the
// indentation shared by all non-blank lines. Whitespace-only lines become
// empty. Use it to write multi-line fixtures inline with the test code.
//
// Example:
//
//	in := stringtest.Input(`
//		CONFIG_FOO=y
//		# CONFIG_BAR is not set
//	`) // -> "CONFIG_FOO=y\n# CONFIG_BAR is not set"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")
	indent, found := "", false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			indent, found = lead, true

			continue
		}

		for !strings.HasPrefix(lead, indent) {
			indent = indent[:len(indent)-1]
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
		} else {
			lines[i] = strings.TrimPrefix(line, indent)
		}
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//	) // -> "line1\nline2"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// Lines joins ss with LF and terminates the last line, the way a text file
// written line by line ends.
func Lines(ss ...string) string {
	if len(ss) == 0 {
		return ""
	}

	return JoinLF(ss...) + "\n"
}

// JoinTab joins fields with tabs to build one row of tab separated output.
//
// Example:
//
//	row := stringtest.JoinTab("FOO", "n", "", "", "", "", "") // -> "FOO\tn\t\t\t\t\t"
func JoinTab(fields ...string) string {
	return strings.Join(fields, "\t")
}
