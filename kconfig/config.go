package kconfig

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for loader configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	OptionMarker  string
	KeyMarker     string
	CommentMarker string
	Types         string
	BoolTypes     string
	Descriptions  string
	Declarations  string
	Include       string
	Exclude       string
	Output        string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds CLI flag values for loading and annotating options.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewLoader] to create a [Loader].
type Config struct {
	Flags         Flags
	OptionMarker  string
	KeyMarker     string
	CommentMarker string
	Types         string
	BoolTypes     string
	Descriptions  string
	Declarations  string
	Output        string
	Include       []string
	Exclude       []string
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		OptionMarker:  "option-marker",
		KeyMarker:     "key-marker",
		CommentMarker: "comment-marker",
		Types:         "types",
		BoolTypes:     "bool-types",
		Descriptions:  "descriptions",
		Declarations:  "declarations",
		Include:       "include",
		Exclude:       "exclude",
		Output:        "output",
	}

	return f.NewConfig()
}

// RegisterFlags adds loader flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	def := DefaultSyntax()

	flags.StringVar(&c.OptionMarker, c.Flags.OptionMarker, def.OptionMarker,
		"prefix of option identifiers in descriptions and config files")
	flags.StringVar(&c.KeyMarker, c.Flags.KeyMarker, def.KeyMarker,
		"keyword naming the option of a declaration file")
	flags.StringVar(&c.CommentMarker, c.Flags.CommentMarker, def.CommentMarker,
		"prefix of comment lines")
	flags.StringVar(&c.Types, c.Flags.Types, strings.Join(def.Types, ","),
		"comma-separated value type keywords")
	flags.StringVar(&c.BoolTypes, c.Flags.BoolTypes, strings.Join(def.BoolTypes, ","),
		"comma-separated value types with y/m/n defaults")
	flags.StringVarP(&c.Descriptions, c.Flags.Descriptions, "d", "",
		"flat description source file")
	flags.StringVarP(&c.Declarations, c.Flags.Declarations, "D", "",
		"directory of per-option declaration files")
	flags.StringSliceVar(&c.Include, c.Flags.Include, nil,
		"doublestar patterns of declaration file names to read (default all)")
	flags.StringSliceVar(&c.Exclude, c.Flags.Exclude, nil,
		"doublestar patterns of declaration file names to skip")
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
}

// RegisterCompletions registers shell completions for loader flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	def := DefaultSyntax()

	typeFlags := map[string][]string{
		c.Flags.Types:     def.Types,
		c.Flags.BoolTypes: def.BoolTypes,
	}
	for flag, values := range typeFlags {
		err := cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp|cobra.ShellCompDirectiveNoSpace))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.OptionMarker, c.Flags.KeyMarker, c.Flags.CommentMarker} {
		err := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Declarations,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Declarations, err)
	}

	return nil
}

// Syntax returns the [Syntax] described by c.
func (c *Config) Syntax() (Syntax, error) {
	s := Syntax{
		OptionMarker:  c.OptionMarker,
		KeyMarker:     c.KeyMarker,
		CommentMarker: c.CommentMarker,
		Types:         splitList(c.Types),
		BoolTypes:     splitList(c.BoolTypes),
	}

	err := s.Validate()
	if err != nil {
		return Syntax{}, err
	}

	return s, nil
}

// NewLoader creates a [Loader] reading from fs using this [Config].
func (c *Config) NewLoader(fs afero.Fs) (*Loader, error) {
	s, err := c.Syntax()
	if err != nil {
		return nil, err
	}

	return NewLoader(fs, s, WithInclude(c.Include...), WithExclude(c.Exclude...))
}

// LoadTable loads and merges the configured description and declaration
// sources.
func (c *Config) LoadTable(fs afero.Fs) (*Table, error) {
	l, err := c.NewLoader(fs)
	if err != nil {
		return nil, err
	}

	return l.LoadTable(c.Descriptions, c.Declarations)
}

func splitList(s string) []string {
	var out []string

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}

	return out
}
