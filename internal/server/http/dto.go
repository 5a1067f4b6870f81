package httpserver

import (
	"chesstactics/internal/level"
	"chesstactics/internal/tactics"
)

// NewGameRequest starts a campaign level, or a tutorial page when Tutorial
// is set. Level 0 means level 1.
type NewGameRequest struct {
	Level    int  `json:"level"`
	Tutorial *int `json:"tutorial,omitempty"`
}

type LevelInfo struct {
	Name               string                    `json:"name"`
	Number             int                       `json:"number,omitempty"`
	Tutorial           bool                      `json:"tutorial"`
	Page               int                       `json:"page,omitempty"`
	Objectives         []string                  `json:"objectives"`
	OptionalObjectives []level.OptionalObjective `json:"optional_objectives,omitempty"`
	HasNext            bool                      `json:"has_next"`
}

type NewGameResponse struct {
	GameID string           `json:"game_id"`
	Level  LevelInfo        `json:"level"`
	State  tactics.Snapshot `json:"state"`
}

type GameRequest struct {
	GameID string `json:"game_id"`
}

type SelectRequest struct {
	GameID string `json:"game_id"`
	UnitID string `json:"unit_id"`
}

// MoveRequest moves the selected unit, selecting UnitID first when given.
type MoveRequest struct {
	GameID string `json:"game_id"`
	UnitID string `json:"unit_id,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

type AttackRequest struct {
	GameID     string `json:"game_id"`
	AttackerID string `json:"attacker_id"`
	TargetID   string `json:"target_id"`
}

// EndTurnRequest ends the player turn. RunEnemy plays the whole enemy
// phase before answering, for clients that do not animate it.
type EndTurnRequest struct {
	GameID   string `json:"game_id"`
	RunEnemy bool   `json:"run_enemy,omitempty"`
}

// CommandResponse answers every state-changing request. Applied is false
// when the engine rejected the command; State is current either way.
type CommandResponse struct {
	Applied bool                  `json:"applied"`
	Events  []tactics.Event       `json:"events"`
	Enemy   []tactics.EnemyAction `json:"enemy_actions,omitempty"`
	State   tactics.Snapshot      `json:"state"`
}

type EnemyStepResponse struct {
	Applied bool                 `json:"applied"`
	Action  *tactics.EnemyAction `json:"action,omitempty"`
	Events  []tactics.Event      `json:"events"`
	State   tactics.Snapshot     `json:"state"`
}

type PreviewResponse struct {
	Valid   bool            `json:"valid"`
	Outcome tactics.Outcome `json:"outcome"`
}

type ScoreResponse struct {
	level.Result
	Phase   tactics.Phase `json:"phase"`
	HasNext bool          `json:"has_next"`
}

type LevelSummary struct {
	Number     int    `json:"number,omitempty"`
	Page       int    `json:"page,omitempty"`
	Name       string `json:"name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Difficulty int    `json:"difficulty"`
	Boss       string `json:"boss,omitempty"`
}

type LevelsResponse struct {
	Levels    []LevelSummary `json:"levels"`
	Tutorials []LevelSummary `json:"tutorials"`
}

func summarize(defs []level.Definition, tutorial bool) []LevelSummary {
	out := make([]LevelSummary, 0, len(defs))
	for i, d := range defs {
		s := LevelSummary{
			Name:       d.Name,
			Width:      d.Width,
			Height:     d.Height,
			Difficulty: d.Difficulty,
			Boss:       d.BossName,
		}
		if tutorial {
			s.Page = i
		} else {
			s.Number = i + 1
		}
		out = append(out, s)
	}
	return out
}

func nonNilEvents(evs []tactics.Event) []tactics.Event {
	if evs == nil {
		return []tactics.Event{}
	}
	return evs
}
