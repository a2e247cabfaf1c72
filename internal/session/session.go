// Package session owns the currently loaded document and its display tree
// and implements the load contract: a load either replaces both together or
// changes nothing.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/oakwood-commons/jsonexplorer/internal/document"
	"github.com/oakwood-commons/jsonexplorer/internal/tree"
	"github.com/oakwood-commons/jsonexplorer/pkg/logger"
)

// DefaultMaxBytes caps input files at 64 MiB.
const DefaultMaxBytes int64 = 64 << 20

// Snapshot is one successfully loaded document. Snapshots are immutable
// once built.
type Snapshot struct {
	Path       string
	Raw        []byte
	Document   *document.Document
	Root       *tree.Node
	LoadedAt   time.Time
	Generation uint64
}

// Session holds the current snapshot.
type Session struct {
	mu         sync.RWMutex
	current    *Snapshot
	generation uint64

	maxBytes int64
	readFile func(path string) ([]byte, error)
	now      func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithMaxBytes sets the input size limit. Zero or less disables it.
func WithMaxBytes(n int64) Option {
	return func(s *Session) { s.maxBytes = n }
}

// WithReadFile replaces the file reader, mostly for tests.
func WithReadFile(fn func(path string) ([]byte, error)) Option {
	return func(s *Session) { s.readFile = fn }
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option {
	return func(s *Session) { s.now = fn }
}

// New returns an empty session.
func New(opts ...Option) *Session {
	s := &Session{maxBytes: DefaultMaxBytes, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxBytes returns the configured size limit.
func (s *Session) MaxBytes() int64 { return s.maxBytes }

// Current returns the loaded snapshot, if any.
func (s *Session) Current() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// Resolve maps a display node's Ref to its value in the current document.
// Refs from an earlier load fail with document.ErrStaleRef.
func (s *Session) Resolve(ref document.Ref) (document.Value, error) {
	snap, ok := s.Current()
	if !ok {
		return document.Value{}, document.ErrStaleRef
	}
	return snap.Document.Resolve(ref)
}

// Load reads, parses and projects path, then makes it current.
func (s *Session) Load(ctx context.Context, path string) (*Snapshot, error) {
	snap, err := s.Prepare(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.Commit(snap), nil
}

// LoadBytes is Load for data that did not come from a file. name is used
// in messages only.
func (s *Session) LoadBytes(ctx context.Context, name string, data []byte) (*Snapshot, error) {
	snap, err := s.build(ctx, name, data)
	if err != nil {
		return nil, err
	}
	return s.Commit(snap), nil
}

// Prepare does all the work of a load without touching the session, so it
// may run off the UI loop. Pass the result to Commit.
func (s *Session) Prepare(ctx context.Context, path string) (*Snapshot, error) {
	lgr := logger.FromContext(ctx)
	data, err := s.read(path)
	if err != nil {
		lgr.Error(err, "reading input failed", logger.PathKey, path)
		return nil, err
	}
	return s.build(ctx, path, data)
}

// Commit makes snap current and stamps its generation.
func (s *Session) Commit(snap *Snapshot) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	snap.Generation = s.generation
	s.current = snap
	return snap
}

func (s *Session) read(path string) ([]byte, error) {
	if s.readFile != nil {
		data, err := s.readFile(path)
		if err != nil {
			return nil, &LoadError{Kind: KindFileOpen, Path: path, Err: err}
		}
		if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
			return nil, s.tooLarge(path)
		}
		return data, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Kind: KindFileOpen, Path: path, Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if s.maxBytes > 0 {
		r = io.LimitReader(f, s.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Kind: KindFileOpen, Path: path, Err: err}
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, s.tooLarge(path)
	}
	return data, nil
}

func (s *Session) tooLarge(path string) error {
	limit := strconv.FormatInt(s.maxBytes, 10)
	return &LoadError{
		Kind:   KindTooLarge,
		Path:   path,
		Detail: limit,
		Err:    fmt.Errorf("input exceeds %s bytes", limit),
	}
}

func (s *Session) build(ctx context.Context, path string, data []byte) (*Snapshot, error) {
	lgr := logger.FromContext(ctx)
	start := s.now()

	doc, err := document.Parse(data)
	if err != nil {
		le := &LoadError{Kind: KindParse, Path: path, Detail: err.Error(), Err: err}
		lgr.Error(err, "parse failed", logger.PathKey, path, logger.ErrorKind, string(le.Kind))
		return nil, le
	}

	root, err := tree.Project(doc)
	if err != nil {
		if !errors.Is(err, tree.ErrUnsupportedRoot) {
			return nil, fmt.Errorf("projecting %s: %w", path, err)
		}
		le := &LoadError{
			Kind:   KindUnsupportedRoot,
			Path:   path,
			Detail: tree.TypeName(doc.Root().Kind()),
			Err:    err,
		}
		lgr.Info("rejected document root", logger.PathKey, path, logger.ErrorKind, string(le.Kind))
		return nil, le
	}

	loadedAt := s.now()
	lgr.V(1).Info("document loaded",
		logger.PathKey, path,
		logger.BytesKey, len(data),
		logger.NodesKey, root.Count(),
		logger.DurationKey, loadedAt.Sub(start).Milliseconds(),
	)
	return &Snapshot{
		Path:     path,
		Raw:      data,
		Document: doc,
		Root:     root,
		LoadedAt: loadedAt,
	}, nil
}
