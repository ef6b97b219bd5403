package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/afero"
)

// ErrNotStarted is returned by [Profiler.Stop] when [Profiler.Start] did not
// succeed first.
var ErrNotStarted = errors.New("profiler not started")

// Profiler controls one profiling session.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	fs      afero.Fs
	cfg     *Config
	cpuFile afero.File
	started bool
}

// Start applies the memory profile rate and starts CPU profiling if enabled.
// It does nothing when no profile is requested.
func (p *Profiler) Start() error {
	if !p.cfg.Enabled() {
		return nil
	}

	if p.cfg.HeapProfile != "" || p.cfg.AllocsProfile != "" {
		runtime.MemProfileRate = p.cfg.MemProfileRate
	}

	if p.cfg.CPUProfile != "" {
		f, err := p.fs.Create(p.cfg.CPUProfile)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			_ = f.Close()

			return fmt.Errorf("start cpu profile: %w", err)
		}

		p.cpuFile = f
	}

	p.started = true

	return nil
}

// Stop ends CPU profiling and writes the snapshot profiles. Calling Stop
// when nothing was requested is a no-op.
func (p *Profiler) Stop() error {
	if !p.cfg.Enabled() {
		return nil
	}

	if !p.started {
		return ErrNotStarted
	}

	p.started = false

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		p.cpuFile = nil

		if err != nil {
			return fmt.Errorf("close cpu profile: %w", err)
		}
	}

	snapshots := []struct {
		name string
		path string
	}{
		{"heap", p.cfg.HeapProfile},
		{"allocs", p.cfg.AllocsProfile},
	}

	for _, s := range snapshots {
		if s.path == "" {
			continue
		}

		err := p.writeProfile(s.name, s.path)
		if err != nil {
			return err
		}

		slog.Debug("wrote profile", slog.String("profile", s.name), slog.String("path", s.path))
	}

	return nil
}

func (p *Profiler) writeProfile(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile: %s", name)
	}

	if name == "heap" {
		runtime.GC()
	}

	f, err := p.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("write %s profile: %w", name, err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s profile: %w", name, err)
	}

	return nil
}
