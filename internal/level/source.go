package level

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Source yields the current catalog.
type Source interface {
	Catalog(ctx context.Context) (*Catalog, error)
}

type staticSource struct{ c *Catalog }

// Static serves a fixed catalog.
func Static(c *Catalog) Source { return staticSource{c: c} }

func (s staticSource) Catalog(context.Context) (*Catalog, error) { return s.c, nil }

// FileSource reads a YAML catalog and reloads it when the file's
// modification time changes. Concurrent reloads collapse into one read.
type FileSource struct {
	path string
	log  *zap.Logger

	group singleflight.Group

	mu      sync.RWMutex
	cached  *Catalog
	modTime time.Time
}

func NewFileSource(path string, log *zap.Logger) *FileSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileSource{path: path, log: log}
}

func (s *FileSource) Path() string { return s.path }

func (s *FileSource) Catalog(ctx context.Context) (*Catalog, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat catalog: %w", err)
	}
	s.mu.RLock()
	c, mt := s.cached, s.modTime
	s.mu.RUnlock()
	if c != nil && mt.Equal(fi.ModTime()) {
		return c, nil
	}

	ch := s.group.DoChan(s.path, func() (any, error) {
		c, err := LoadCatalog(s.path)
		if err != nil {
			s.log.Error("catalog reload failed", zap.String("path", s.path), zap.Error(err))
			return nil, err
		}
		s.mu.Lock()
		s.cached, s.modTime = c, fi.ModTime()
		s.mu.Unlock()
		s.log.Info("catalog loaded",
			zap.String("path", s.path),
			zap.Int("levels", len(c.Levels)),
			zap.Int("tutorials", len(c.Tutorials)))
		return c, nil
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Catalog), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
