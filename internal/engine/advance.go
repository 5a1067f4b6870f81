package engine

import "chesstactics/internal/tactics"

// legalDestinations are the move tiles an enemy can actually take: open,
// and for everything but knights not jumping over another unit.
func legalDestinations(g *tactics.Game, en *tactics.Unit) []tactics.Coord {
	var out []tactics.Coord
	for _, m := range en.MoveTiles(g.Board) {
		if !g.OpenTile(m) {
			continue
		}
		if en.Archetype != tactics.Knight && g.HasUnitInBetween(en.Pos, m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// threatensFrom reports whether the archetype standing at c would have
// one of foes in its raw attack range.
func threatensFrom(g *tactics.Game, a tactics.Archetype, c tactics.Coord, foes []*tactics.Unit) bool {
	rng := tactics.AttackRange(a, c.X, c.Y, g.Board.Width, g.Board.Height, g.Board)
	for _, r := range rng {
		for _, p := range foes {
			if p.Pos == r {
				return true
			}
		}
	}
	return false
}

// crowding counts live allies that have not moved yet within the crowd
// radius of c.
func (e *Engine) crowding(g *tactics.Game, self *tactics.Unit, c tactics.Coord) int {
	n := 0
	for _, o := range g.LiveUnits(tactics.Enemy) {
		if o == self || o.HasMoved {
			continue
		}
		if tactics.Chebyshev(o.Pos, c) <= e.params.CrowdRadius {
			n++
		}
	}
	return n
}

// scoreAdvance rates moving en to m while chasing tgt. threatened is nil
// outside boss levels.
func (e *Engine) scoreAdvance(g *tactics.Game, en, tgt *tactics.Unit, m tactics.Coord,
	threatened map[tactics.Coord]bool, players []*tactics.Unit) int {
	newDist := tactics.Manhattan(m, tgt.Pos)
	if en.IsBoss {
		score := tactics.Manhattan(en.Pos, tgt.Pos) - newDist
		if threatened == nil {
			return score
		}
		safe := !threatened[m]
		switch {
		case safe && threatened[en.Pos]:
			score += e.params.BossEscape
		case safe:
			score += e.params.BossSafe
		default:
			score -= e.params.BossExposed
		}
		return score
	}
	score := -newDist
	if threatensFrom(g, en.Archetype, m, players) {
		score += e.params.ThreatBonus
	}
	score -= e.params.CrowdPenalty * e.crowding(g, en, m)
	return score
}

// bestAdvance picks the single best (enemy, destination) pair across all
// enemies that still have a live target and enough AP to move.
func (e *Engine) bestAdvance(g *tactics.Game, players []*tactics.Unit) (tactics.EnemyAction, bool) {
	var threatened map[tactics.Coord]bool
	if g.IsBossLevel() {
		threatened = g.ThreatenedTiles()
	}
	var (
		best      tactics.EnemyAction
		bestScore int
		found     bool
		scored    int
	)
	for _, en := range g.LiveUnits(tactics.Enemy) {
		tgt := target(g, en)
		if tgt == nil || tgt.Side != tactics.Player || en.HasMoved {
			continue
		}
		cost := en.MoveCost()
		if g.EnemyAP < cost {
			continue
		}
		for _, m := range legalDestinations(g, en) {
			s := e.scoreAdvance(g, en, tgt, m, threatened, players)
			scored++
			if !found || s > bestScore {
				found, bestScore = true, s
				best = tactics.EnemyAction{
					Kind:   tactics.ActionMove,
					Actor:  en.ID,
					Target: tgt.ID,
					Dest:   m,
					Cost:   cost,
					Score:  s,
				}
			}
		}
	}
	e.count(scored)
	return best, found
}
