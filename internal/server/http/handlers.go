package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"chesstactics/internal/level"
	"chesstactics/internal/server/game"
	"chesstactics/internal/tactics"
)

// Handler implements http.Handler for the /api/* routes.
type Handler struct {
	games  *game.Manager
	log    *zap.Logger
	pacing Pacing
}

type Option func(*Handler)

func WithLogger(l *zap.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

func WithPacing(p Pacing) Option {
	return func(h *Handler) { h.pacing = p }
}

func NewHandler(games *game.Manager, opts ...Option) *Handler {
	h := &Handler{
		games:  games,
		log:    zap.NewNop(),
		pacing: DefaultPacing(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/levels" {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleLevels(w, r)
		return
	}
	if r.URL.Path == "/api/ws" {
		h.handleWS(w, r)
		return
	}

	var fn func(http.ResponseWriter, *http.Request)
	switch r.URL.Path {
	case "/api/new_game":
		fn = h.handleNewGame
	case "/api/state":
		fn = h.handleState
	case "/api/select":
		fn = h.handleSelect
	case "/api/move":
		fn = h.handleMove
	case "/api/attack":
		fn = h.handleAttack
	case "/api/end_turn":
		fn = h.handleEndTurn
	case "/api/enemy_step":
		fn = h.handleEnemyStep
	case "/api/preview_attack":
		fn = h.handlePreviewAttack
	case "/api/score":
		fn = h.handleScore
	default:
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fn(w, r)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("writeJSON failed", zap.Error(err))
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

// session looks up a game, answering 404 itself when it is missing.
func (h *Handler) session(w http.ResponseWriter, id string) (*game.Session, bool) {
	s, err := h.games.Get(id)
	if err != nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

// command runs fn under the session lock and answers with the applied flag,
// the events it produced and the fresh snapshot.
func (h *Handler) command(w http.ResponseWriter, s *game.Session, fn func(g *tactics.Game) bool) {
	var resp CommandResponse
	s.With(func(g *tactics.Game) {
		g.DrainEvents()
		resp.Applied = fn(g)
		resp.Events = nonNilEvents(g.DrainEvents())
		resp.State = g.Snapshot()
	})
	writeJSON(w, resp)
}

func (h *Handler) levelInfo(ctx context.Context, s *game.Session) LevelInfo {
	info := LevelInfo{
		Name:               s.Setup.Name,
		Number:             s.Setup.Number,
		Tutorial:           s.Setup.Tutorial,
		Page:               s.Setup.Page,
		Objectives:         s.Setup.Objectives,
		OptionalObjectives: s.Setup.OptionalObjectives,
	}
	if !s.Setup.Tutorial {
		if c, err := h.games.Catalog(ctx); err == nil {
			info.HasNext = c.HasNext(s.Setup.Number)
		}
	}
	return info
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if !decode(w, r, &req) {
		return
	}
	var (
		s   *game.Session
		err error
	)
	if req.Tutorial != nil {
		s, err = h.games.NewTutorial(r.Context(), *req.Tutorial)
	} else {
		n := req.Level
		if n == 0 {
			n = 1
		}
		s, err = h.games.NewLevel(r.Context(), n)
	}
	if err != nil {
		if errors.Is(err, level.ErrUnknownLevel) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.log.Error("new game failed", zap.Error(err))
		http.Error(w, "cannot build level", http.StatusInternalServerError)
		return
	}
	resp := NewGameResponse{GameID: s.ID, Level: h.levelInfo(r.Context(), s)}
	s.With(func(g *tactics.Game) { resp.State = g.Snapshot() })
	writeJSON(w, resp)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	var snap tactics.Snapshot
	s.With(func(g *tactics.Game) { snap = g.Snapshot() })
	writeJSON(w, snap)
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	h.command(w, s, func(g *tactics.Game) bool {
		if req.UnitID == "" {
			return g.Deselect()
		}
		return g.SelectUnit(req.UnitID)
	})
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	h.command(w, s, func(g *tactics.Game) bool {
		if req.UnitID != "" && !g.SelectUnit(req.UnitID) {
			return false
		}
		return g.MoveSelectedTo(req.X, req.Y)
	})
}

func (h *Handler) handleAttack(w http.ResponseWriter, r *http.Request) {
	var req AttackRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	h.command(w, s, func(g *tactics.Game) bool {
		return g.AttackWith(req.AttackerID, req.TargetID)
	})
}

func (h *Handler) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	var req EndTurnRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	var resp CommandResponse
	s.With(func(g *tactics.Game) {
		g.DrainEvents()
		resp.Applied = g.EndPlayerTurn()
		if resp.Applied && req.RunEnemy {
			resp.Enemy = g.RunEnemyPhase()
		}
		resp.Events = nonNilEvents(g.DrainEvents())
		resp.State = g.Snapshot()
	})
	writeJSON(w, resp)
}

func (h *Handler) handleEnemyStep(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	var resp EnemyStepResponse
	s.With(func(g *tactics.Game) {
		g.DrainEvents()
		a, ok := g.StepEnemy()
		resp.Applied = ok
		if ok {
			resp.Action = &a
		}
		resp.Events = nonNilEvents(g.DrainEvents())
		resp.State = g.Snapshot()
	})
	writeJSON(w, resp)
}

func (h *Handler) handlePreviewAttack(w http.ResponseWriter, r *http.Request) {
	var req AttackRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	var resp PreviewResponse
	s.With(func(g *tactics.Game) {
		resp.Outcome, resp.Valid = g.PreviewAttack(req.AttackerID, req.TargetID)
	})
	writeJSON(w, resp)
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	resp := ScoreResponse{Result: s.Result()}
	s.With(func(g *tactics.Game) { resp.Phase = g.Phase })
	resp.HasNext = h.levelInfo(r.Context(), s).HasNext
	writeJSON(w, resp)
}

func (h *Handler) handleLevels(w http.ResponseWriter, r *http.Request) {
	c, err := h.games.Catalog(r.Context())
	if err != nil {
		h.log.Error("catalog unavailable", zap.Error(err))
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, LevelsResponse{
		Levels:    summarize(c.Levels, false),
		Tutorials: summarize(c.Tutorials, true),
	})
}
