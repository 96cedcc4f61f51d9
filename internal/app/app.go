// Package app implements the application layer for sizemap.
package app

import (
	"cmp"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/sizemap/internal/adapters/config"
	"go.trai.ch/sizemap/internal/adapters/fs"
	"go.trai.ch/sizemap/internal/adapters/linear"
	"go.trai.ch/sizemap/internal/adapters/telemetry"
	"go.trai.ch/sizemap/internal/adapters/watcher"
	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/sizemap/internal/core/ports"
	"go.trai.ch/sizemap/internal/engine/sizemap"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader   ports.ManifestLoader
	fs       fs.FileSystem
	logger   ports.Logger
	store    ports.BaselineStore
	detector ports.ChangeDetector
	watcher  ports.Watcher

	telemetry *telemetry.Provider
	printer   *linear.Printer
	lookupEnv func(string) (string, bool)
	debounce  time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// Components holds what main needs besides the App itself.
type Components struct {
	App    *App
	Logger ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	fsys fs.FileSystem,
	log ports.Logger,
	store ports.BaselineStore,
	detector ports.ChangeDetector,
	w ports.Watcher,
) *App {
	return &App{
		loader:    loader,
		fs:        fsys,
		logger:    log,
		store:     store,
		detector:  detector,
		watcher:   w,
		printer:   linear.NewPrinter(os.Stdout),
		lookupEnv: os.LookupEnv,
		debounce:  watcher.DefaultDebounceWindow,
		sessions:  make(map[string]*Session),
	}
}

// WithOutput redirects printed trees and sizes to w.
func (a *App) WithOutput(w io.Writer) *App {
	a.printer = linear.NewPrinter(w)
	return a
}

// WithLookupEnv replaces the environment lookup, os.LookupEnv by default.
func (a *App) WithLookupEnv(lookup func(string) (string, bool)) *App {
	a.lookupEnv = lookup
	return a
}

// WithTelemetry routes engine spans through p. Without it the engine uses the
// global otel tracer.
func (a *App) WithTelemetry(p *telemetry.Provider) *App {
	a.telemetry = p
	return a
}

// WithDebounceWindow sets how long Watch waits for a burst of file events to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// Options are the per-invocation settings shared by every command.
type Options struct {
	// Dir is the working directory. Empty means the process working directory.
	Dir string
	// Manifest overrides manifest discovery.
	Manifest string
	// Kind overrides the size kind named by the environment or the manifest.
	Kind string
	// Filter restricts the tree to a chunk or to the packages a primary asset manages.
	Filter string
	// JSONLog switches the logger to JSON records.
	JSONLog bool
	// Trace logs the timing of every engine span.
	Trace bool
}

// Size prints the cached size of every root with its change since the first computation.
func (a *App) Size(ctx context.Context, args []string, opts Options) error {
	roots, err := parseRoots(args)
	if err != nil {
		return err
	}
	s, err := a.Open(opts)
	if err != nil {
		return err
	}
	kind, err := s.kind(opts.Kind)
	if err != nil {
		return err
	}

	for _, root := range roots {
		text, err := s.GetAssetSize(ctx, root, kind)
		if err != nil {
			return err
		}
		a.printer.PrintSize(root, text)
	}
	return nil
}

// Tree computes the size tree of all roots together and prints it with a summary.
func (a *App) Tree(ctx context.Context, args []string, opts Options) error {
	roots, err := parseRoots(args)
	if err != nil {
		return err
	}
	s, err := a.Open(opts)
	if err != nil {
		return err
	}
	kind, err := s.kind(opts.Kind)
	if err != nil {
		return err
	}

	var buildOpts []sizemap.BuildOption
	if opts.Filter != "" {
		filter, err := domain.ParseEntityID(opts.Filter)
		if err != nil {
			return zerr.With(err, "flag", "filter")
		}
		buildOpts = append(buildOpts, sizemap.WithFilter(filter))
	}

	report := s.Engine.Compute(ctx, roots, kind, buildOpts...)
	a.printer.PrintTree(report.Tree)
	a.printer.PrintSummary(report.Totals, report.Failed)
	return nil
}

// GetAssetSize returns the formatted size of root in the project found from
// the working directory.
func (a *App) GetAssetSize(ctx context.Context, root domain.EntityID, kind domain.SizeKind) (string, error) {
	s, err := a.Open(Options{})
	if err != nil {
		return "", err
	}
	return s.GetAssetSize(ctx, root, kind)
}

// Open loads the manifest selected by opts and returns its session.
// Sessions are kept per manifest, so their size caches outlive a single call.
func (a *App) Open(opts Options) (*Session, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		dir = wd
	}

	env, err := config.LoadEnv(a.fs, dir, a.lookupEnv)
	if err != nil {
		return nil, err
	}
	if opts.JSONLog || env.LogJSON {
		a.setJSON()
	}
	if opts.Trace && a.telemetry != nil {
		a.telemetry.Enable(true)
	}

	manifest, err := a.loadManifest(dir, cmp.Or(opts.Manifest, env.Manifest))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if s, ok := a.sessions[manifest.Path]; ok {
		return s, nil
	}
	s, err := newSession(manifest, a.fs, a.logger, a.store)
	if err != nil {
		return nil, err
	}
	if a.telemetry != nil {
		s.Engine.WithTracer(a.telemetry.Tracer())
	}
	if env.SizeKind != "" {
		s.DefaultKind = env.SizeKind
	}
	a.sessions[manifest.Path] = s
	return s, nil
}

func (a *App) loadManifest(dir, path string) (*domain.Manifest, error) {
	if path == "" {
		return a.loader.Load(dir)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return a.loader.LoadFile(filepath.Clean(path))
}

func (a *App) setJSON() {
	if l, ok := a.logger.(interface{ SetJSON(enable bool) }); ok {
		l.SetJSON(true)
	}
}

func parseRoots(args []string) ([]domain.EntityID, error) {
	if len(args) == 0 {
		return nil, domain.ErrNoRootsSpecified
	}
	roots := make([]domain.EntityID, 0, len(args))
	for _, arg := range args {
		id, err := domain.ParseEntityID(arg)
		if err != nil {
			return nil, err
		}
		roots = append(roots, id)
	}
	return roots, nil
}
