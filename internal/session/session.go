// Package session owns a loaded model source: loading, reloading on change
// and cleanup of rendered temporary files.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/philipparndt/stlmeasure/pkg/openscad"
	"github.com/philipparndt/stlmeasure/pkg/stl"
	"github.com/philipparndt/stlmeasure/pkg/watcher"
)

// ErrUnsupportedFormat is returned for sources that are neither .stl nor .scad
var ErrUnsupportedFormat = errors.New("unsupported file type")

// DefaultDebounce is the quiet period after a source change before reloading
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Session
type Options struct {
	Debounce time.Duration
	Log      *zap.Logger
}

// LoadResult is the outcome of one load
type LoadResult struct {
	Model   *stl.Model
	Err     error
	Elapsed time.Duration
}

// Session is the state of one viewed source file
type Session struct {
	ID uuid.UUID

	path     string
	debounce time.Duration
	log      *zap.Logger
	scad     *openscad.Renderer

	mu      sync.Mutex
	tempDir string
	lastSTL string
	watcher *watcher.FileWatcher
	closed  bool

	loading atomic.Bool
	pending atomic.Bool
}

// New creates a session for an .stl or .scad file
func New(path string, opts Options) (*Session, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(abs))
	if ext != ".stl" && ext != ".scad" {
		return nil, fmt.Errorf("%w: %s (expected .stl or .scad)", ErrUnsupportedFormat, ext)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	id := uuid.New()
	s := &Session{
		ID:       id,
		path:     abs,
		debounce: opts.Debounce,
		log:      opts.Log.With(zap.String("session", id.String()), zap.String("source", filepath.Base(abs))),
	}
	if openscad.IsSource(abs) {
		s.scad = openscad.NewRenderer(filepath.Dir(abs))
	}
	return s, nil
}

// Path returns the absolute source path
func (s *Session) Path() string {
	return s.path
}

// Load loads the model once
func (s *Session) Load(ctx context.Context) (*stl.Model, error) {
	start := time.Now()

	var (
		model *stl.Model
		err   error
	)
	if s.scad != nil {
		model, err = s.loadOpenSCAD(ctx)
	} else {
		model, err = stl.Parse(s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.path, err)
	}

	s.log.Info("model loaded",
		zap.Int("triangles", model.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return model, nil
}

// loadOpenSCAD renders into the session temp dir and replaces the previous render
func (s *Session) loadOpenSCAD(ctx context.Context) (*stl.Model, error) {
	dir, err := s.ensureTempDir()
	if err != nil {
		return nil, err
	}

	out, err := os.CreateTemp(dir, "render-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	outPath := out.Name()
	out.Close()

	s.log.Info("rendering OpenSCAD source")
	if err := s.scad.RenderToSTL(ctx, s.path, outPath); err != nil {
		os.Remove(outPath)
		return nil, err
	}

	model, err := stl.Parse(outPath)
	if err != nil {
		os.Remove(outPath)
		return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}

	s.mu.Lock()
	prev := s.lastSTL
	s.lastSTL = outPath
	s.mu.Unlock()
	if prev != "" {
		os.Remove(prev)
	}
	return model, nil
}

func (s *Session) ensureTempDir() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", errors.New("session closed")
	}
	if s.tempDir == "" {
		dir, err := os.MkdirTemp("", "stlmeasure-"+s.ID.String()[:8]+"-")
		if err != nil {
			return "", fmt.Errorf("failed to create temp dir: %w", err)
		}
		s.tempDir = dir
	}
	return s.tempDir, nil
}

// LoadAsync loads on a goroutine. The channel receives exactly one result and
// is then closed.
func (s *Session) LoadAsync(ctx context.Context) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		defer close(ch)
		start := time.Now()
		model, err := s.Load(ctx)
		ch <- LoadResult{Model: model, Err: err, Elapsed: time.Since(start)}
	}()
	return ch
}

// Watch reloads the model whenever the source or one of its OpenSCAD
// dependencies changes. onChange runs on a watcher goroutine with every
// reload result, failures included.
func (s *Session) Watch(onChange func(LoadResult)) error {
	files := []string{s.path}
	if s.scad != nil {
		deps, err := s.scad.ResolveDependencies(s.path)
		if err != nil {
			return fmt.Errorf("failed to resolve dependencies: %w", err)
		}
		files = deps
	}

	fw, err := watcher.NewFileWatcher(s.debounce, s.log.Named("watcher"))
	if err != nil {
		return err
	}

	if err := fw.Watch(files, s.reloader(onChange)); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fw.Close()
		return errors.New("session closed")
	}
	if s.watcher != nil {
		s.watcher.Close()
	}
	s.watcher = fw
	s.mu.Unlock()

	fw.Start()
	s.log.Info("watching for changes", zap.Int("files", len(files)))
	return nil
}

// reloader returns the watcher callback. Reloads never overlap; changes that
// arrive while one runs are folded into a single follow-up reload.
func (s *Session) reloader(onChange func(LoadResult)) func(string) {
	return func(changed string) {
		s.pending.Store(true)
		for s.pending.Load() && s.loading.CompareAndSwap(false, true) {
			s.pending.Store(false)

			s.log.Info("source changed, reloading", zap.String("file", changed))
			start := time.Now()
			model, err := s.Load(context.Background())
			if err != nil {
				s.log.Warn("reload failed, keeping previous model", zap.Error(err))
			}
			onChange(LoadResult{Model: model, Err: err, Elapsed: time.Since(start)})

			s.loading.Store(false)
		}
	}
}

// Close stops watching and removes temporary files. It is safe to call twice.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.watcher != nil {
		errs = append(errs, s.watcher.Close())
		s.watcher = nil
	}
	if s.tempDir != "" {
		errs = append(errs, os.RemoveAll(s.tempDir))
		s.tempDir = ""
	}
	return errors.Join(errs...)
}
