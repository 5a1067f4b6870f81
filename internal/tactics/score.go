package tactics

var unitValues = map[Archetype]int{
	Pawn:   1,
	Knight: 2,
	Bishop: 2,
	Rook:   3,
	Queen:  5,
	King:   10,
}

// UnitValue is the score penalty for losing a unit of the archetype.
func UnitValue(a Archetype) int {
	if v, ok := unitValues[a]; ok {
		return v
	}
	return 1
}

// ComputeScore = max(0, 1000 - 10*turns - 2*apSpent - sum of lost values).
func ComputeScore(turns, apSpent int, lost []Archetype) int {
	s := 1000 - 10*turns - 2*apSpent
	for _, a := range lost {
		s -= UnitValue(a)
	}
	return max(0, s)
}

type ScoreResult struct {
	Turns          int         `json:"turns"`
	TotalAPSpent   int         `json:"total_ap_spent"`
	UnitsLost      []Archetype `json:"units_lost"`
	UnitsLostValue int         `json:"units_lost_value"`
	Score          int         `json:"score"`
}

// Score has no side effects and is valid in any phase.
func (g *Game) Score() ScoreResult {
	lostValue := 0
	for _, a := range g.UnitsLost {
		lostValue += UnitValue(a)
	}
	return ScoreResult{
		Turns:          g.Turn,
		TotalAPSpent:   g.TotalAPSpent,
		UnitsLost:      append([]Archetype{}, g.UnitsLost...),
		UnitsLostValue: lostValue,
		Score:          ComputeScore(g.Turn, g.TotalAPSpent, g.UnitsLost),
	}
}
