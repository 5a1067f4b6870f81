package engine

import "chesstactics/internal/tactics"

// colorSwitch gives a shadow bishop on the wrong diagonal colour its free
// one-tile step onto the target's colour, as close to the target as
// possible.
func (e *Engine) colorSwitch(g *tactics.Game, players []*tactics.Unit) (tactics.EnemyAction, bool) {
	for _, en := range g.LiveUnits(tactics.Enemy) {
		if !isShadowBishop(en) || en.HasDoneFreeColorSwitch {
			continue
		}
		tgt := targetOrFirst(g, en, players)
		if tgt == nil {
			continue
		}
		mine, want := en.Pos.Parity(), tgt.Pos.Parity()
		if mine == want {
			continue
		}
		var (
			dest  tactics.Coord
			found bool
		)
		for _, c := range tactics.Adjacent8(en.Pos) {
			if !g.OpenTile(c) || c.Parity() == mine {
				continue
			}
			if !found || tactics.Manhattan(c, tgt.Pos) < tactics.Manhattan(dest, tgt.Pos) {
				dest, found = c, true
			}
		}
		if !found {
			continue
		}
		return tactics.EnemyAction{
			Kind:   tactics.ActionColorSwitch,
			Actor:  en.ID,
			Target: tgt.ID,
			Dest:   dest,
			Parity: want,
		}, true
	}
	return tactics.EnemyAction{}, false
}

// areaBlast: a boss rook or queen with players on any of its eight
// neighbours kills them all at once.
func (e *Engine) areaBlast(g *tactics.Game, players []*tactics.Unit) (tactics.EnemyAction, bool) {
	for _, en := range g.LiveUnits(tactics.Enemy) {
		if !en.IsBoss || en.HasActed {
			continue
		}
		if en.Archetype != tactics.Rook && en.Archetype != tactics.Queen {
			continue
		}
		cost := en.AttackCost()
		if g.EnemyAP < cost {
			continue
		}
		var victims []string
		for _, p := range players {
			if tactics.Chebyshev(en.Pos, p.Pos) == 1 {
				victims = append(victims, p.ID)
			}
		}
		if len(victims) == 0 {
			continue
		}
		return tactics.EnemyAction{
			Kind:    tactics.ActionAreaBlast,
			Actor:   en.ID,
			Target:  victims[0],
			Victims: victims,
			Dest:    en.Pos,
			Cost:    cost,
		}, true
	}
	return tactics.EnemyAction{}, false
}

// lineAttack: a boss king strikes down one cardinal ray, up to the first
// obstacle, killing every unit on it. It picks the most crowded ray that
// holds at least one player.
func (e *Engine) lineAttack(g *tactics.Game) (tactics.EnemyAction, bool) {
	dirs := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	limit := max(g.Board.Width, g.Board.Height)
	for _, en := range g.LiveUnits(tactics.Enemy) {
		if !en.IsBoss || en.HasActed || en.Archetype != tactics.King {
			continue
		}
		cost := en.AttackCost()
		if g.EnemyAP < cost {
			continue
		}
		var best []*tactics.Unit
		for _, d := range dirs {
			var line []*tactics.Unit
			hasPlayer := false
			for i := 1; i < limit; i++ {
				x, y := en.Pos.X+d[0]*i, en.Pos.Y+d[1]*i
				if !g.Board.InBounds(x, y) || g.Board.HasObstacle(x, y) {
					break
				}
				if u := g.UnitAt(x, y); u != nil {
					line = append(line, u)
					hasPlayer = hasPlayer || u.Side == tactics.Player
				}
			}
			if hasPlayer && len(line) > len(best) {
				best = line
			}
		}
		if len(best) == 0 {
			continue
		}
		a := tactics.EnemyAction{
			Kind:  tactics.ActionLineAttack,
			Actor: en.ID,
			Dest:  best[len(best)-1].Pos,
			Cost:  cost,
		}
		for _, u := range best {
			a.Victims = append(a.Victims, u.ID)
			if a.Target == "" && u.Side == tactics.Player {
				a.Target = u.ID
			}
		}
		return a, true
	}
	return tactics.EnemyAction{}, false
}

// Retreat picks the boss's free escape tile after an attack: as far as
// possible from its target, strongly preferring tiles no player threatens.
func (e *Engine) Retreat(g *tactics.Game, boss *tactics.Unit) (tactics.Coord, bool) {
	if boss == nil || boss.HasDoneFreeRetreat {
		return tactics.Coord{}, false
	}
	players := g.LiveUnits(tactics.Player)
	ref := targetOrFirst(g, boss, players)
	threatened := g.ThreatenedTiles()
	var (
		best      tactics.Coord
		bestScore int
		found     bool
	)
	dests := legalDestinations(g, boss)
	for _, m := range dests {
		score := 0
		if ref != nil {
			score = tactics.Manhattan(m, ref.Pos)
		}
		if !threatened[m] {
			score += e.params.RetreatSafe
			if threatened[boss.Pos] {
				score += e.params.RetreatEscape
			}
		}
		if !found || score > bestScore {
			best, bestScore, found = m, score, true
		}
	}
	e.count(len(dests))
	return best, found
}
