package engine

import (
	"go.uber.org/zap"

	"chesstactics/internal/tactics"
)

// PlayPlayerTurn drives the player side greedily through the public
// command API, then ends the turn. It is the opponent used by selfplay and
// by integration tests; the enemy side never uses it. It returns the number
// of commands applied, end of turn excluded.
func (e *Engine) PlayPlayerTurn(g *tactics.Game) int {
	applied := 0
	for g.Phase == tactics.PlayerTurn {
		if e.playerAttack(g) || e.playerAdvance(g) {
			applied++
			continue
		}
		break
	}
	if g.Phase == tactics.PlayerTurn {
		g.EndPlayerTurn()
	}
	return applied
}

// playerAttackScore ranks victims: kings end the level, then unit value.
func playerAttackScore(a, t *tactics.Unit) int {
	dmg := tactics.Damage(a.Attack, t.Defense)
	if t.Health > dmg {
		return 100 - t.Health + dmg
	}
	score := 1000 + 10*tactics.UnitValue(t.Archetype)
	if t.Archetype == tactics.King || t.IsBoss {
		score += 5000
	}
	return score
}

func (e *Engine) playerAttack(g *tactics.Game) bool {
	var (
		bestA, bestT string
		bestScore    int
		found        bool
	)
	for _, p := range g.LiveUnits(tactics.Player) {
		if !p.CanAttack || g.PlayerAP < p.AttackCost() || !g.SelectUnit(p.ID) {
			continue
		}
		for _, c := range g.AttackRange() {
			t := g.UnitAt(c.X, c.Y)
			if t == nil {
				continue
			}
			s := playerAttackScore(p, t)
			if !found || s > bestScore {
				bestA, bestT, bestScore, found = p.ID, t.ID, s, true
			}
		}
	}
	g.Deselect()
	if !found {
		return false
	}
	e.count(1)
	if !g.SelectUnit(bestA) || !g.AttackWith(bestA, bestT) {
		e.log.Warn("autopilot attack rejected", zap.String("unit", bestA), zap.String("target", bestT))
		return false
	}
	return true
}

// playerAdvance moves one unit that has not moved yet closer to the
// nearest enemy, preferring tiles from which it could attack next.
func (e *Engine) playerAdvance(g *tactics.Game) bool {
	enemies := g.LiveUnits(tactics.Enemy)
	if len(enemies) == 0 {
		return false
	}
	nearest := func(c tactics.Coord) int {
		d := -1
		for _, en := range enemies {
			if m := tactics.Manhattan(c, en.Pos); d < 0 || m < d {
				d = m
			}
		}
		return d
	}
	var (
		bestU     string
		bestDest  tactics.Coord
		bestScore int
		found     bool
	)
	for _, p := range g.LiveUnits(tactics.Player) {
		if p.HasMoved || g.PlayerAP < p.MoveCost() || !g.SelectUnit(p.ID) {
			continue
		}
		here := -nearest(p.Pos)
		for _, m := range g.ValidMoves() {
			s := -nearest(m)
			if p.CanAttack && threatensFrom(g, p.Archetype, m, enemies) {
				s += 50
			}
			if s <= here {
				continue
			}
			if !found || s > bestScore {
				bestU, bestDest, bestScore, found = p.ID, m, s, true
			}
		}
	}
	g.Deselect()
	if !found {
		return false
	}
	e.count(1)
	if !g.SelectUnit(bestU) || !g.MoveSelectedTo(bestDest.X, bestDest.Y) {
		e.log.Warn("autopilot move rejected", zap.String("unit", bestU), zap.Stringer("to", bestDest))
		return false
	}
	return true
}
