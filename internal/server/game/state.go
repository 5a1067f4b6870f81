package game

import (
	"sync"
	"time"

	"chesstactics/internal/level"
	"chesstactics/internal/tactics"
)

// Session is one game in progress. All access to Game goes through With so
// that concurrent requests for the same session serialize.
type Session struct {
	ID        string
	Setup     *level.Setup
	CreatedAt time.Time

	mu        sync.Mutex
	game      *tactics.Game
	updatedAt time.Time
}

// With runs fn while holding the session lock.
func (s *Session) With(fn func(g *tactics.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
	s.updatedAt = time.Now()
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Result evaluates a session's game against its level definition.
func (s *Session) Result() level.Result {
	var r level.Result
	s.With(func(g *tactics.Game) { r = level.Evaluate(s.Setup.Def, g) })
	return r
}
