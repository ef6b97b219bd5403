// Package profile records runtime profiles of a kconfigdoc run.
//
// Loading a full kernel tree reads thousands of declaration files, so the
// CLI exposes CPU, heap and allocs profiles behind flags. Profiles are
// written through an [afero.Fs], the same filesystem the loaders read from.
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	p := cfg.NewProfiler(fs)
//	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error { return p.Start() }
//	rootCmd.PersistentPostRunE = func(*cobra.Command, []string) error { return p.Stop() }
//
// Profiles are then enabled with flags like --cpu-profile=cpu.prof.
package profile
