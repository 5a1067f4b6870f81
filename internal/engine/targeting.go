package engine

import "chesstactics/internal/tactics"

// assignTargets gives every live enemy the nearest player, penalising
// players that already have attackers so the enemy side spreads out.
// Ties keep roster order.
func (e *Engine) assignTargets(g *tactics.Game) {
	players := g.LiveUnits(tactics.Player)
	load := make(map[string]int, len(players))
	for _, en := range g.LiveUnits(tactics.Enemy) {
		en.AssignedTarget = ""
		best, bestCost := (*tactics.Unit)(nil), 0
		for _, p := range players {
			cost := tactics.Manhattan(en.Pos, p.Pos) + e.params.TargetSpread*load[p.ID]
			if best == nil || cost < bestCost {
				best, bestCost = p, cost
			}
		}
		if best != nil {
			en.AssignedTarget = best.ID
			load[best.ID]++
		}
	}
	e.count(len(players) * len(g.LiveUnits(tactics.Enemy)))
}

// target resolves the enemy's assigned target against the live roster.
func target(g *tactics.Game, en *tactics.Unit) *tactics.Unit {
	return g.Unit(en.AssignedTarget)
}

// targetOrFirst falls back to the first live player when the assigned
// target is gone.
func targetOrFirst(g *tactics.Game, en *tactics.Unit, players []*tactics.Unit) *tactics.Unit {
	if t := target(g, en); t != nil && t.Side == tactics.Player {
		return t
	}
	if len(players) > 0 {
		return players[0]
	}
	return nil
}

func isShadowBishop(u *tactics.Unit) bool {
	return u.ShadowBishop && u.Archetype == tactics.Bishop
}

// commitParity fixes each shadow bishop's attack diagonal for the phase:
// the target's colour, or a turn/health fallback with no target at all.
func (e *Engine) commitParity(g *tactics.Game) {
	players := g.LiveUnits(tactics.Player)
	for _, en := range g.LiveUnits(tactics.Enemy) {
		if !isShadowBishop(en) {
			continue
		}
		if t := targetOrFirst(g, en, players); t != nil {
			en.BishopParity = t.Pos.Parity()
			continue
		}
		wounded := 0
		if float64(en.Health)/float64(en.MaxHealth) < 0.5 {
			wounded = 1
		}
		en.BishopParity = (g.Turn%2 + wounded) % 2
	}
}
