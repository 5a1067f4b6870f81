package engine

// Params are the weights of the enemy decision procedure. DefaultParams
// reproduces the campaign's behaviour; tests and the selfplay harness may
// vary them.
type Params struct {
	// Target assignment: distance + TargetSpread * enemies already on it.
	TargetSpread int

	// Attack scoring.
	KillBase      int // wouldKill ? KillBase - hp
	HitBase       int // otherwise HitBase - hp
	AssignedBonus int

	// Advance scoring.
	BossEscape   int // boss leaves a threatened tile for a safe one
	BossSafe     int // boss moves between safe tiles
	BossExposed  int // boss steps into a threatened tile (subtracted)
	ThreatBonus  int // non-boss destination threatens a player unit
	CrowdPenalty int // per unmoved ally near the destination
	CrowdRadius  int // Chebyshev radius of "near"

	// Boss free retreat.
	RetreatSafe   int
	RetreatEscape int
}

func DefaultParams() Params {
	return Params{
		TargetSpread:  60,
		KillBase:      1000,
		HitBase:       100,
		AssignedBonus: 250,
		BossEscape:    400,
		BossSafe:      150,
		BossExposed:   300,
		ThreatBonus:   550,
		CrowdPenalty:  40,
		CrowdRadius:   2,
		RetreatSafe:   500,
		RetreatEscape: 300,
	}
}
