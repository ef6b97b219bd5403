// Package kconfig extracts option metadata from Kconfig style sources and
// uses it to annotate resolved configuration files.
//
// Two loosely structured sources describe options:
//
//   - a flat description file, one "CONFIG_<KEY>..." line per option, with
//     the value and description separated by a tab, an "=y"/"=m" assignment,
//     a quoted value or plain whitespace.
//   - a directory of declaration files, one per option, each holding a
//     type keyword, an optional label, and "default", "depends on" and
//     "help" clauses.
//
// Neither format has a grammar. The [Parser] recovers fields with the
// extractors in extract.go, which scan for keywords and character classes
// and resolve ambiguity with fixed precedence rules. Extractors never fail;
// a field that cannot be recovered is empty.
//
// [Merge] joins the [DescriptionTable] and the declaration records into a
// [Table] holding exactly one [Record] per key known to either source,
// back-filling empty declaration descriptions from the flat source. The
// [Annotator] then streams a resolved configuration file, turning each
// option line into a tab separated row and copying every other line
// unchanged:
//
//	cfg := kconfig.NewConfig()
//	cfg.RegisterFlags(cmd.Flags())
//
//	table, err := cfg.LoadTable(afero.NewOsFs())
//	annotator := kconfig.NewAnnotator(kconfig.DefaultSyntax(), table)
//	err = annotator.Annotate(configFile, os.Stdout)
//
// Declarations without a "config <KEY>" line get a guessed key; such
// records report [Record.LowConfidence].
package kconfig
