package level

import "chesstactics/internal/tactics"

const levelScoreBase = 1000

type ObjectiveResult struct {
	OptionalObjective
	Met bool `json:"met"`
}

// Result is the victory-screen summary of a finished level.
type Result struct {
	tactics.ScoreResult
	TurnLimit   int               `json:"turn_limit"`
	TurnPenalty int               `json:"turn_penalty"`
	LevelScore  int               `json:"level_score"`
	Optional    []ObjectiveResult `json:"optional"`
	Perfect     bool              `json:"perfect"`
}

// Evaluate scores a game against its level. LevelScore only charges turns
// beyond the level's turn limit (1 when the level sets none), unlike the
// flat per-turn charge of ScoreResult.Score.
func Evaluate(def Definition, g *tactics.Game) Result {
	r := Result{ScoreResult: g.Score()}
	r.TurnLimit = max(1, def.TurnLimit())
	if r.Turns > r.TurnLimit {
		r.TurnPenalty = (r.Turns - r.TurnLimit) * 10
	}
	r.LevelScore = max(0, levelScoreBase-r.TurnPenalty-2*r.TotalAPSpent-r.UnitsLostValue)

	enemiesLeft := len(g.LiveUnits(tactics.Enemy))
	r.Perfect = true
	for _, o := range def.OptionalObjectives {
		var met bool
		switch o.Kind {
		case ObjectiveDefeatBoss:
			met = def.IsBoss()
		case ObjectiveEliminateAll:
			met = enemiesLeft == 0
		case ObjectiveNoUnitsLost:
			met = len(r.UnitsLost) == 0
		case ObjectiveMaxTurns:
			limit := o.Value
			if limit == 0 {
				limit = 999
			}
			met = r.Turns <= limit
		}
		r.Optional = append(r.Optional, ObjectiveResult{OptionalObjective: o, Met: met})
		r.Perfect = r.Perfect && met
	}
	return r
}
