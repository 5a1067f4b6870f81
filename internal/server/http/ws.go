package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chesstactics/internal/server/game"
	"chesstactics/internal/tactics"
)

// Pacing spaces out a streamed enemy phase so clients can animate it.
// Zero durations are valid and stream as fast as the socket allows.
type Pacing struct {
	TurnStart   time.Duration
	Preview     time.Duration
	AfterAction time.Duration
}

func DefaultPacing() Pacing {
	return Pacing{
		TurnStart:   400 * time.Millisecond,
		Preview:     780 * time.Millisecond,
		AfterAction: 520 * time.Millisecond,
	}
}

const (
	wsOpRunEnemyPhase = "run_enemy_phase"
	wsOpState         = "state"

	wsPreview  = "preview"
	wsCommit   = "commit"
	wsPhaseEnd = "phase_end"
	wsState    = "state"
	wsError    = "error"

	wsWriteWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type wsIn struct {
	Op string `json:"op"`
}

type wsMsg struct {
	Type   string               `json:"type"`
	Action *tactics.EnemyAction `json:"action,omitempty"`
	Events []tactics.Event      `json:"events,omitempty"`
	State  *tactics.Snapshot    `json:"state,omitempty"`
	Error  string               `json:"error,omitempty"`
}

type wsConn struct {
	c   *websocket.Conn
	log *zap.Logger
}

func (w *wsConn) send(m wsMsg) bool {
	_ = w.c.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := w.c.WriteJSON(m); err != nil {
		w.log.Warn("ws write failed", zap.String("type", m.Type), zap.Error(err))
		return false
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// handleWS serves GET /api/ws?game_id=... The client asks for a paced
// enemy phase with {"op":"run_enemy_phase"} and gets preview/commit pairs
// followed by phase_end.
func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s, ok := h.session(w, r.URL.Query().Get("game_id"))
	if !ok {
		return
	}
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	log := h.log.With(zap.String("game_id", s.ID), zap.String("remote", r.RemoteAddr))
	conn := &wsConn{c: c, log: log}
	log.Info("ws connected")
	defer func() {
		_ = c.Close()
		log.Info("ws closed")
	}()

	ctx := r.Context()
	for {
		var in wsIn
		if err := c.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("ws read failed", zap.Error(err))
			}
			return
		}
		switch in.Op {
		case wsOpRunEnemyPhase:
			if !h.streamEnemyPhase(ctx, conn, s) {
				return
			}
		case wsOpState:
			var snap tactics.Snapshot
			s.With(func(g *tactics.Game) { snap = g.Snapshot() })
			if !conn.send(wsMsg{Type: wsState, State: &snap}) {
				return
			}
		default:
			if !conn.send(wsMsg{Type: wsError, Error: "unknown op " + in.Op}) {
				return
			}
		}
	}
}

// streamEnemyPhase plays the enemy phase one action at a time. The session
// lock is held only while planning and committing, never across a delay.
// It returns false when the connection should close.
func (h *Handler) streamEnemyPhase(ctx context.Context, conn *wsConn, s *game.Session) bool {
	var phase tactics.Phase
	s.With(func(g *tactics.Game) { phase = g.Phase })
	if phase != tactics.EnemyTurn {
		return conn.send(wsMsg{Type: wsError, Error: "not the enemy turn"})
	}
	if !sleepCtx(ctx, h.pacing.TurnStart) {
		return false
	}

	rejected := 0
	for {
		var (
			a    tactics.EnemyAction
			more bool
			evs  []tactics.Event
			snap tactics.Snapshot
		)
		s.With(func(g *tactics.Game) {
			a, more = g.PlanEnemyAction()
			if !more {
				evs = g.DrainEvents()
				snap = g.Snapshot()
			}
		})
		if !more {
			return conn.send(wsMsg{Type: wsPhaseEnd, Events: evs, State: &snap})
		}
		if !conn.send(wsMsg{Type: wsPreview, Action: &a}) {
			return false
		}
		if !sleepCtx(ctx, h.pacing.Preview) {
			return false
		}

		var applied bool
		s.With(func(g *tactics.Game) {
			applied = g.CommitEnemyAction(a)
			evs = g.DrainEvents()
			snap = g.Snapshot()
		})
		if !applied {
			// The state moved under the preview; plan again from it.
			rejected++
			conn.log.Warn("enemy action went stale", zap.String("kind", string(a.Kind)), zap.String("unit", a.Actor))
			if rejected > 1 {
				return conn.send(finishEnemyPhase(s))
			}
			continue
		}
		rejected = 0
		if !conn.send(wsMsg{Type: wsCommit, Action: &a, Events: evs, State: &snap}) {
			return false
		}
		if !sleepCtx(ctx, h.pacing.AfterAction) {
			return false
		}
	}
}

// finishEnemyPhase runs what is left of the enemy phase without pacing and
// reports it as phase_end.
func finishEnemyPhase(s *game.Session) wsMsg {
	var (
		evs  []tactics.Event
		snap tactics.Snapshot
	)
	s.With(func(g *tactics.Game) {
		g.RunEnemyPhase()
		evs = g.DrainEvents()
		snap = g.Snapshot()
	})
	return wsMsg{Type: wsPhaseEnd, Events: evs, State: &snap}
}
