package kconfig_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/kconfigdoc/kconfig"
	"go.jacobcolvin.com/kconfigdoc/stringtest"
)

func newTestTable() *kconfig.Table {
	return kconfig.Merge(
		kconfig.NewDescriptionTable(map[string]string{"BAR": "Enable bar feature"}),
		map[string]kconfig.Record{
			"FOO": {
				Key:          "FOO",
				Type:         "bool",
				Label:        "Foo support",
				Defaults:     []string{"y", "n if X"},
				Dependencies: []string{"A", "B || C"},
				Description:  "Enables foo.",
			},
		},
	)
}

func TestAnnotatorAnnotate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"option and pass-through lines": {
			input: stringtest.Lines(
				"#",
				"# Automatically generated file; DO NOT EDIT.",
				"#",
				"CONFIG_FOO=y",
				"# CONFIG_BAR is not set",
				"",
				`CONFIG_CMDLINE="quiet splash"`,
				"  indented text  ",
			),
			want: stringtest.Lines(
				"#",
				"# Automatically generated file; DO NOT EDIT.",
				"#",
				stringtest.JoinTab("FOO", "y", "bool", "Foo support", "y,n if X", "A,B || C", "Enables foo."),
				stringtest.JoinTab("BAR", "n", "", "", "", "", "Enable bar feature"),
				"",
				stringtest.JoinTab("CMDLINE", `"quiet splash"`, "", "", "", "", ""),
				"  indented text  ",
			),
		},
		"missing final newline": {
			input: "CONFIG_FOO=m",
			want: stringtest.Lines(
				stringtest.JoinTab("FOO", "m", "bool", "Foo support", "y,n if X", "A,B || C", "Enables foo."),
			),
		},
		"empty input": {
			input: "",
			want:  "",
		},
	}

	a := kconfig.NewAnnotator(kconfig.DefaultSyntax(), newTestTable())

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			err := a.Annotate(strings.NewReader(tc.input), &buf)
			require.NoError(t, err)
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestAnnotatorLineCount(t *testing.T) {
	t.Parallel()

	input := stringtest.Lines(
		"# comment",
		"",
		"CONFIG_A=y",
		"# CONFIG_B is not set",
		"plain",
		"",
		"",
		"CONFIG_C=\"x\ty\"",
	)

	var buf bytes.Buffer

	err := kconfig.NewAnnotator(kconfig.DefaultSyntax(), newTestTable()).Annotate(strings.NewReader(input), &buf)
	require.NoError(t, err)

	assert.Equal(t, strings.Count(input, "\n"), strings.Count(buf.String(), "\n"))

	for _, row := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		if strings.HasPrefix(row, "A\t") || strings.HasPrefix(row, "B\t") || strings.HasPrefix(row, "C\t") {
			assert.Len(t, strings.Split(row, "\t"), 7, row)
		}
	}
}

func TestAnnotatorAnnotateLine(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		line   string
		want   string
		wantOK bool
	}{
		"unknown disabled option": {
			line:   "# CONFIG_FOO is not set",
			want:   "FOO\tn\t\t\t\t\t",
			wantOK: true,
		},
		"unknown assignment": {
			line:   "CONFIG_NR_CPUS=64",
			want:   "NR_CPUS\t64\t\t\t\t\t",
			wantOK: true,
		},
		"comment": {
			line: "# Kernel hacking",
		},
		"blank": {
			line: "",
		},
		"comment without space": {
			line: "#CONFIG_FOO is not set",
		},
	}

	a := kconfig.NewAnnotator(kconfig.DefaultSyntax(), kconfig.Merge(nil, nil))

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := a.AnnotateLine(tc.line)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

func TestAnnotatorWriteError(t *testing.T) {
	t.Parallel()

	a := kconfig.NewAnnotator(kconfig.DefaultSyntax(), newTestTable())

	err := a.Annotate(strings.NewReader("CONFIG_FOO=y\n"), failingWriter{})
	require.ErrorIs(t, err, kconfig.ErrWriteOutput)
}
