package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chesstactics/internal/engine"
	"chesstactics/internal/level"
)

var ErrNotFound = errors.New("game not found")

// Manager keeps sessions in memory, keyed by UUID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	levels level.Source
	ai     *engine.Engine
	log    *zap.Logger
}

func NewManager(levels level.Source, ai *engine.Engine, log *zap.Logger) *Manager {
	if levels == nil {
		levels = level.Static(level.DefaultCatalog())
	}
	if ai == nil {
		ai = engine.NewEngine()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		levels:   levels,
		ai:       ai,
		log:      log,
	}
}

func (m *Manager) Catalog(ctx context.Context) (*level.Catalog, error) {
	return m.levels.Catalog(ctx)
}

// NewLevel starts campaign level n (1-based).
func (m *Manager) NewLevel(ctx context.Context, n int) (*Session, error) {
	c, err := m.levels.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	setup, err := c.BuildLevel(n)
	if err != nil {
		return nil, err
	}
	return m.start(setup), nil
}

// NewTutorial starts tutorial page (0-based).
func (m *Manager) NewTutorial(ctx context.Context, page int) (*Session, error) {
	c, err := m.levels.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	setup, err := c.BuildTutorial(page)
	if err != nil {
		return nil, err
	}
	return m.start(setup), nil
}

func (m *Manager) start(setup *level.Setup) *Session {
	id := uuid.NewString()
	g := setup.NewGame()
	g.SetPlanner(m.ai)
	g.SetLogger(m.log.With(zap.String("game_id", id)))

	now := time.Now()
	s := &Session{
		ID:        id,
		Setup:     setup,
		CreatedAt: now,
		game:      g,
		updatedAt: now,
	}
	m.mu.Lock()
	m.sessions[id] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.log.Info("game started",
		zap.String("game_id", id),
		zap.String("level", setup.Name),
		zap.Bool("tutorial", setup.Tutorial),
		zap.Int("sessions", n))
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than ttl and returns how many went.
func (m *Manager) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.UpdatedAt().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		m.log.Info("sessions swept", zap.Int("removed", n), zap.Int("left", len(m.sessions)))
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx ends.
func (m *Manager) RunSweeper(ctx context.Context, interval, ttl time.Duration) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep(ttl)
		}
	}
}
