package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"chesstactics/internal/server/game"
	"chesstactics/internal/tactics"
)

func newTestServer() *Server {
	h := NewHandler(game.NewManager(nil, nil, nil), WithPacing(Pacing{}))
	return NewServer(h, "")
}

func post(t *testing.T, h http.Handler, path string, body any, out any) int {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK && out != nil {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatalf("%s: decode: %v", path, err)
		}
	}
	return rec.Code
}

func newGame(t *testing.T, h http.Handler, req NewGameRequest) NewGameResponse {
	t.Helper()
	var resp NewGameResponse
	if code := post(t, h, "/api/new_game", req, &resp); code != http.StatusOK {
		t.Fatalf("new_game status %d", code)
	}
	return resp
}

func tutorial(page int) NewGameRequest { return NewGameRequest{Tutorial: &page} }

func findUnit(s tactics.Snapshot, id string) *tactics.UnitState {
	for i := range s.Units {
		if s.Units[i].ID == id {
			return &s.Units[i]
		}
	}
	return nil
}

func TestNewGameAndAttack(t *testing.T) {
	srv := newTestServer()
	ng := newGame(t, srv, tutorial(0))
	if ng.GameID == "" || !ng.Level.Tutorial || ng.Level.Name != "Close Range Combat" {
		t.Fatalf("new game = %+v", ng)
	}
	if ng.State.Phase != tactics.PlayerTurn || len(ng.State.Units) != 2 {
		t.Fatalf("state = %+v", ng.State)
	}

	var sel CommandResponse
	post(t, srv, "/api/select", SelectRequest{GameID: ng.GameID, UnitID: "player_0"}, &sel)
	if !sel.Applied || sel.State.Selected != "player_0" || len(sel.State.AttackRange) != 1 {
		t.Fatalf("select = %+v", sel)
	}

	var prev PreviewResponse
	post(t, srv, "/api/preview_attack", AttackRequest{GameID: ng.GameID, AttackerID: "player_0", TargetID: "enemy_0"}, &prev)
	if !prev.Valid || prev.Outcome.Damage != 1 || prev.Outcome.Kills {
		t.Fatalf("preview = %+v", prev)
	}

	var atk CommandResponse
	post(t, srv, "/api/attack", AttackRequest{GameID: ng.GameID, AttackerID: "player_0", TargetID: "enemy_0"}, &atk)
	if !atk.Applied || len(atk.Events) != 1 || atk.Events[0].Kind != tactics.EventAttack {
		t.Fatalf("attack = %+v", atk)
	}
	if e := findUnit(atk.State, "enemy_0"); e == nil || e.Health != 2 {
		t.Fatalf("enemy after attack = %+v", e)
	}
}

func TestRejectedCommandIsNotAnError(t *testing.T) {
	srv := newTestServer()
	ng := newGame(t, srv, tutorial(0))

	var resp CommandResponse
	code := post(t, srv, "/api/attack", AttackRequest{GameID: ng.GameID, AttackerID: "enemy_0", TargetID: "player_0"}, &resp)
	if code != http.StatusOK || resp.Applied {
		t.Fatalf("enemy-initiated attack: code=%d applied=%v", code, resp.Applied)
	}
	if p := findUnit(resp.State, "player_0"); p == nil || p.Health != p.MaxHealth {
		t.Fatalf("player unit changed by rejected command: %+v", p)
	}

	post(t, srv, "/api/move", MoveRequest{GameID: ng.GameID, UnitID: "player_0", X: 3, Y: 4}, &resp)
	if resp.Applied {
		t.Fatalf("move onto an occupied tile applied")
	}
}

func TestErrorStatuses(t *testing.T) {
	srv := newTestServer()

	if code := post(t, srv, "/api/state", GameRequest{GameID: "missing"}, nil); code != http.StatusNotFound {
		t.Fatalf("unknown game status %d", code)
	}
	if code := post(t, srv, "/api/new_game", NewGameRequest{Level: 42}, nil); code != http.StatusNotFound {
		t.Fatalf("unknown level status %d", code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/state", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json status %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET state status %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/nope", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route status %d", rec.Code)
	}
}

func TestEndTurnRunsEnemyPhase(t *testing.T) {
	srv := newTestServer()
	ng := newGame(t, srv, NewGameRequest{Level: 2})
	if !ng.Level.HasNext || ng.Level.Number != 2 {
		t.Fatalf("level info = %+v", ng.Level)
	}

	var resp CommandResponse
	post(t, srv, "/api/end_turn", EndTurnRequest{GameID: ng.GameID, RunEnemy: true}, &resp)
	if !resp.Applied || resp.State.Phase == tactics.EnemyTurn {
		t.Fatalf("end turn = applied %v phase %v", resp.Applied, resp.State.Phase)
	}
	if resp.State.Phase == tactics.PlayerTurn && resp.State.Turn != 2 {
		t.Fatalf("turn after enemy phase = %d", resp.State.Turn)
	}
	if resp.State.PlayerAP != resp.State.PlayerAPMax {
		t.Fatalf("player pool not refilled: %d/%d", resp.State.PlayerAP, resp.State.PlayerAPMax)
	}
}

func TestEnemyStep(t *testing.T) {
	srv := newTestServer()
	ng := newGame(t, srv, NewGameRequest{Level: 2})

	var resp CommandResponse
	post(t, srv, "/api/end_turn", EndTurnRequest{GameID: ng.GameID}, &resp)
	if resp.State.Phase != tactics.EnemyTurn {
		t.Fatalf("phase after end turn = %v", resp.State.Phase)
	}

	var step EnemyStepResponse
	for i := 0; i < 100; i++ {
		step = EnemyStepResponse{}
		post(t, srv, "/api/enemy_step", GameRequest{GameID: ng.GameID}, &step)
		if !step.Applied {
			break
		}
		if step.Action == nil || step.Action.Actor == "" {
			t.Fatalf("applied step without an action: %+v", step)
		}
	}
	if step.Applied || step.State.Phase == tactics.EnemyTurn {
		t.Fatalf("enemy phase never finished: %+v", step.State.Phase)
	}

	var cmd CommandResponse
	post(t, srv, "/api/enemy_step", GameRequest{GameID: ng.GameID}, &cmd)
	if cmd.Applied {
		t.Fatalf("enemy step applied outside the enemy turn")
	}
}

func TestLevelsAndScore(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/levels", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	var lv LevelsResponse
	if err := json.NewDecoder(rec.Body).Decode(&lv); err != nil {
		t.Fatal(err)
	}
	if len(lv.Levels) != 11 || len(lv.Tutorials) != 3 || lv.Levels[0].Boss == "" || lv.Levels[0].Number != 1 {
		t.Fatalf("levels = %+v", lv)
	}

	ng := newGame(t, srv, NewGameRequest{Level: 2})
	var sc ScoreResponse
	if code := post(t, srv, "/api/score", GameRequest{GameID: ng.GameID}, &sc); code != http.StatusOK {
		t.Fatalf("score status %d", code)
	}
	if sc.Turns != 1 || sc.TurnLimit != 8 || sc.LevelScore != 1000 || sc.Phase != tactics.PlayerTurn || !sc.HasNext {
		t.Fatalf("score = %+v", sc)
	}
}

func TestStaticRoutes(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/web/" {
		t.Fatalf("root = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
}

func TestWebsocketEnemyPhase(t *testing.T) {
	srv := newTestServer()
	ts := httptest.NewServer(srv)
	defer ts.Close()

	ng := newGame(t, srv, NewGameRequest{Level: 2})
	var resp CommandResponse
	post(t, srv, "/api/end_turn", EndTurnRequest{GameID: ng.GameID}, &resp)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws?game_id=" + ng.GameID
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.WriteJSON(wsIn{Op: wsOpRunEnemyPhase}); err != nil {
		t.Fatal(err)
	}
	var pending *tactics.EnemyAction
	commits := 0
	for i := 0; i < 500; i++ {
		var m wsMsg
		if err := c.ReadJSON(&m); err != nil {
			t.Fatal(err)
		}
		switch m.Type {
		case wsPreview:
			if pending != nil {
				t.Fatalf("two previews without a commit")
			}
			pending = m.Action
		case wsCommit:
			if pending == nil || m.Action == nil || m.Action.Actor != pending.Actor || m.Action.Kind != pending.Kind {
				t.Fatalf("commit %+v does not match preview %+v", m.Action, pending)
			}
			pending = nil
			commits++
		case wsPhaseEnd:
			if m.State == nil || m.State.Phase == tactics.EnemyTurn {
				t.Fatalf("phase_end state = %+v", m.State)
			}
			if commits == 0 {
				t.Fatalf("enemy phase streamed no actions")
			}
			return
		default:
			t.Fatalf("unexpected message %+v", m)
		}
	}
	t.Fatalf("no phase_end")
}

func TestWebsocketOutsideEnemyTurn(t *testing.T) {
	srv := newTestServer()
	ts := httptest.NewServer(srv)
	defer ts.Close()

	ng := newGame(t, srv, tutorial(0))
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws?game_id=" + ng.GameID
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.WriteJSON(wsIn{Op: wsOpRunEnemyPhase}); err != nil {
		t.Fatal(err)
	}
	var m wsMsg
	if err := c.ReadJSON(&m); err != nil {
		t.Fatal(err)
	}
	if m.Type != wsError {
		t.Fatalf("got %+v, want an error", m)
	}

	if err := c.WriteJSON(wsIn{Op: wsOpState}); err != nil {
		t.Fatal(err)
	}
	if err := c.ReadJSON(&m); err != nil {
		t.Fatal(err)
	}
	if m.Type != wsState || m.State == nil || len(m.State.Units) != 2 {
		t.Fatalf("state message = %+v", m)
	}
}

func TestFinishEnemyPhaseCarriesEvents(t *testing.T) {
	games := game.NewManager(nil, nil, nil)
	s, err := games.NewLevel(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	s.With(func(g *tactics.Game) {
		if !g.EndPlayerTurn() {
			t.Fatalf("end turn rejected")
		}
		g.DrainEvents()
	})

	m := finishEnemyPhase(s)
	if m.Type != wsPhaseEnd || m.State == nil || m.State.Phase == tactics.EnemyTurn {
		t.Fatalf("message = %+v", m)
	}
	if len(m.Events) == 0 {
		t.Fatalf("phase_end dropped the enemy phase events")
	}
}
