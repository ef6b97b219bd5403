// Package main provides the CLI entry point for kconfigdoc, a tool that
// extracts option metadata from Kconfig style sources and annotates resolved
// configuration files with it.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/kconfigdoc/kconfig"
	"go.jacobcolvin.com/kconfigdoc/kconfig/schema"
	"go.jacobcolvin.com/kconfigdoc/log"
	"go.jacobcolvin.com/kconfigdoc/profile"
	"go.jacobcolvin.com/kconfigdoc/version"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

func main() {
	rootCmd := newRootCmd(afero.NewOsFs(), os.Stdout)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(fs afero.Fs, stdout io.Writer) *cobra.Command {
	cfg := kconfig.NewConfig()
	logCfg := log.NewConfig()
	profCfg := profile.NewConfig()
	profiler := profCfg.NewProfiler(fs)

	rootCmd := &cobra.Command{
		Use:   "kconfigdoc",
		Short: "Annotate resolved kernel configurations with option metadata",
		Long: `kconfigdoc merges option metadata recovered from a flat description file and
a directory of per-option Kconfig declarations, and annotates resolved
configuration files with it as tab separated rows.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := logCfg.Install(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return profiler.Start()
		},
		// Snapshot profiles are only written for successful runs.
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return profiler.Stop()
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())
	cfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newAnnotateCmd(fs, stdout, cfg),
		newParseCmd(fs, stdout, cfg),
		newExportCmd(fs, stdout, cfg),
		newSchemaCmd(fs, stdout, cfg),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				_, err := fmt.Fprintln(stdout, version.String())

				return err
			},
		},
	)

	for _, register := range []func(*cobra.Command) error{
		logCfg.RegisterCompletions,
		profCfg.RegisterCompletions,
		cfg.RegisterCompletions,
	} {
		completionErr := register(rootCmd)
		if completionErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
		}
	}

	return rootCmd
}

func newAnnotateCmd(fs afero.Fs, stdout io.Writer, cfg *kconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "annotate [flags] <config-file>",
		Short: "Write a resolved configuration file as annotated tab separated rows",
		Long: `annotate writes one row per option line of the configuration file with the
columns key, value, type, label, default, dependency and description. Lines
that are not option lines are copied unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, err := cfg.NewLoader(fs)
			if err != nil {
				return err
			}

			table, err := l.LoadTable(cfg.Descriptions, cfg.Declarations)
			if err != nil {
				return err
			}

			return writeOutput(fs, stdout, cfg.Output, func(w io.Writer) error {
				return l.AnnotateFile(table, args[0], w)
			})
		},
	}
}

func newParseCmd(fs afero.Fs, stdout io.Writer, cfg *kconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [flags] <declaration-file> [declaration-file ...]",
		Short: "Print the records parsed from declaration files as YAML",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, err := cfg.NewLoader(fs)
			if err != nil {
				return err
			}

			records := make([]kconfig.Record, 0, len(args))

			for _, arg := range args {
				rec, loadErr := l.LoadDeclaration(arg)
				if loadErr != nil {
					return loadErr
				}

				records = append(records, rec)
			}

			out, err := yaml.Marshal(records)
			if err != nil {
				return fmt.Errorf("%w: %w", kconfig.ErrWriteOutput, err)
			}

			return writeOutput(fs, stdout, cfg.Output, writeBytes(out))
		},
	}
}

func newExportCmd(fs afero.Fs, stdout io.Writer, cfg *kconfig.Config) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the merged option table",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			table, err := cfg.LoadTable(fs)
			if err != nil {
				return err
			}

			out, err := marshalRecords(table.Records(), format)
			if err != nil {
				return err
			}

			return writeOutput(fs, stdout, cfg.Output, writeBytes(out))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format, one of: yaml, json")

	err := cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions([]string{formatYAML, formatJSON}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func newSchemaCmd(fs afero.Fs, stdout io.Writer, cfg *kconfig.Config) *cobra.Command {
	var (
		title  string
		id     string
		strict bool
		indent int
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Generate JSON Schema (Draft 7) for the merged option table",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			table, err := cfg.LoadTable(fs)
			if err != nil {
				return err
			}

			var opts []schema.Option
			if title != "" {
				opts = append(opts, schema.WithTitle(title))
			}

			if id != "" {
				opts = append(opts, schema.WithID(id))
			}

			if strict {
				opts = append(opts, schema.WithStrict(true))
			}

			out, err := json.MarshalIndent(schema.NewGenerator(opts...).Generate(table), "", strings.Repeat(" ", indent))
			if err != nil {
				return fmt.Errorf("%w: %w", kconfig.ErrWriteOutput, err)
			}

			return writeOutput(fs, stdout, cfg.Output, writeBytes(append(out, '\n')))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "schema title field")
	cmd.Flags().StringVar(&id, "id", "", "schema $id field")
	cmd.Flags().BoolVar(&strict, "strict", false, "set additionalProperties: false on the root object")
	cmd.Flags().IntVar(&indent, "indent", 2, "JSON indentation spaces")

	return cmd
}

func marshalRecords(records []kconfig.Record, format string) ([]byte, error) {
	var (
		out []byte
		err error
	)

	switch strings.ToLower(format) {
	case formatYAML:
		out, err = yaml.Marshal(records)
	case formatJSON:
		out, err = json.MarshalIndent(records, "", "  ")
		out = append(out, '\n')
	default:
		return nil, fmt.Errorf("%w: unknown format %q", kconfig.ErrInvalidOption, format)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", kconfig.ErrWriteOutput, err)
	}

	return out, nil
}

func writeBytes(b []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(b)
		if err != nil {
			return fmt.Errorf("%w: %w", kconfig.ErrWriteOutput, err)
		}

		return nil
	}
}

// writeOutput runs write against stdout when path is empty or "-", and
// against a file created on fs otherwise.
func writeOutput(fs afero.Fs, stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}

	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", kconfig.ErrWriteOutput, err)
	}

	err = write(f)
	if err != nil {
		_ = f.Close()

		return err
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: %w", kconfig.ErrWriteOutput, err)
	}

	return nil
}
