package tactics

import "go.uber.org/zap"

func (g *Game) acceptingPlayerCommands() bool {
	return g.Phase == PlayerTurn
}

// SelectUnit makes a live player unit the acting unit and recomputes its
// valid moves and attack range. Enemy, dead and unknown ids are rejected.
func (g *Game) SelectUnit(id string) bool {
	if !g.acceptingPlayerCommands() {
		return false
	}
	u := g.Unit(id)
	if u == nil || u.Side != Player {
		return false
	}
	g.selected = u.ID
	g.validMoves = g.playerMoves(u)
	g.attackRange = g.playerTargets(u)
	return true
}

// Deselect drops the current selection.
func (g *Game) Deselect() bool {
	if !g.acceptingPlayerCommands() || g.selected == "" {
		return false
	}
	g.clearSelection()
	return true
}

func (g *Game) Selected() *Unit { return g.Unit(g.selected) }

// ValidMoves and AttackRange belong to the current selection.
func (g *Game) ValidMoves() []Coord  { return append([]Coord(nil), g.validMoves...) }
func (g *Game) AttackRange() []Coord { return append([]Coord(nil), g.attackRange...) }

// playerMoves: destinations minus obstacles and any occupied tile.
func (g *Game) playerMoves(u *Unit) []Coord {
	var out []Coord
	for _, m := range u.MoveTiles(g.Board) {
		if g.OpenTile(m) {
			out = append(out, m)
		}
	}
	return out
}

// playerTargets: tiles in range that hold a live enemy, in sight for ranged units.
func (g *Game) playerTargets(u *Unit) []Coord {
	if !u.CanAttack {
		return nil
	}
	var out []Coord
	for _, c := range u.AttackTiles(g.Board) {
		t := g.UnitAt(c.X, c.Y)
		if t == nil || t.Side != u.Side.Opponent() {
			continue
		}
		if u.IsRanged() && !g.HasLineOfSight(u.Pos, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// IsValidMove answers the renderer's "is this a move target" query for
// the current selection.
func (g *Game) IsValidMove(x, y int) bool {
	return g.selected != "" && containsCoord(g.validMoves, Coord{X: x, Y: y})
}

func (g *Game) IsValidAttack(x, y int) bool {
	return g.selected != "" && containsCoord(g.attackRange, Coord{X: x, Y: y})
}

// MoveSelectedTo moves the selected unit onto one of its valid moves.
func (g *Game) MoveSelectedTo(x, y int) bool {
	u := g.Selected()
	if u == nil || !g.IsValidMove(x, y) {
		return false
	}
	return g.MoveUnit(u, x, y)
}

// MoveUnit relocates a player unit, paying its move cost from the shared
// pool. It does not check the movement rules; MoveSelectedTo does.
func (g *Game) MoveUnit(u *Unit, x, y int) bool {
	if !g.acceptingPlayerCommands() || !u.IsAlive() || u.Side != Player {
		return false
	}
	cost := u.MoveCost()
	if g.PlayerAP < cost {
		return false
	}
	dest := Coord{X: x, Y: y}
	if !g.OpenTile(dest) {
		return false
	}
	from := u.Pos
	g.PlayerAP -= cost
	g.TotalAPSpent += cost
	u.Pos = dest
	u.HasMoved = true
	g.clearSelection()
	g.emit(Event{Kind: EventMove, Actor: u.ID, From: from, To: dest})
	g.log.Debug("player move",
		zap.String("unit", u.ID), zap.Stringer("to", dest),
		zap.Int("cost", cost), zap.Int("ap_left", g.PlayerAP))
	return true
}

// AttackWith attacks targetID with the selected unit when the target's
// tile is in the current attack range.
func (g *Game) AttackWith(attackerID, targetID string) bool {
	u := g.Selected()
	if u == nil || u.ID != attackerID {
		return false
	}
	t := g.Unit(targetID)
	if t == nil || !g.IsValidAttack(t.Pos.X, t.Pos.Y) {
		return false
	}
	return g.AttackUnit(u, t)
}

// AttackUnit resolves a player attack. Killing an enemy king wins
// outright; other dead targets leave the roster.
func (g *Game) AttackUnit(attacker, target *Unit) bool {
	if !g.acceptingPlayerCommands() || !attacker.IsAlive() || attacker.Side != Player {
		return false
	}
	if !target.IsAlive() || target.Side == Player {
		return false
	}
	cost := attacker.AttackCost()
	if g.PlayerAP < cost {
		return false
	}
	g.PlayerAP -= cost
	g.TotalAPSpent += cost
	attacker.HasActed = true
	dmg := target.TakeDamage(attacker.Attack)
	g.emit(Event{
		Kind:   EventAttack,
		Actor:  attacker.ID,
		Target: target.ID,
		From:   attacker.Pos,
		To:     target.Pos,
		Damage: dmg,
		Ranged: rangedEffect(attacker, target.Pos),
	})
	g.log.Debug("player attack",
		zap.String("unit", attacker.ID), zap.String("target", target.ID),
		zap.Int("damage", dmg), zap.Int("cost", cost), zap.Int("ap_left", g.PlayerAP))
	g.clearSelection()
	if !target.IsAlive() {
		g.kill(target)
		if target.Archetype == King {
			g.setPhase(Victory)
			return true
		}
	}
	g.checkGameState()
	return true
}

// EndPlayerTurn hands control to the enemy phase.
func (g *Game) EndPlayerTurn() bool {
	if !g.acceptingPlayerCommands() {
		return false
	}
	g.clearSelection()
	g.setPhase(EnemyTurn)
	g.beginEnemyPhase()
	return true
}

// Outcome is the "what would happen" answer for a prospective attack.
type Outcome struct {
	Cost       int  `json:"cost"`
	Damage     int  `json:"damage"`
	Kills      bool `json:"kills"`
	Ranged     bool `json:"ranged"`
	InRange    bool `json:"in_range"`
	Affordable bool `json:"affordable"`
}

// PreviewAttack reports the result AttackUnit would produce without
// applying it. InRange uses the attacker's range from its current tile,
// whether or not it is selected.
func (g *Game) PreviewAttack(attackerID, targetID string) (Outcome, bool) {
	a, t := g.Unit(attackerID), g.Unit(targetID)
	if a == nil || t == nil || t.Side != a.Side.Opponent() {
		return Outcome{}, false
	}
	dmg := Damage(a.Attack, t.Defense)
	if a.IsBoss && a.Side == Enemy {
		dmg = t.Health
	}
	cost := a.AttackCost()
	pool := g.PlayerAP
	if a.Side == Enemy {
		pool = g.EnemyAP
	}
	return Outcome{
		Cost:       cost,
		Damage:     dmg,
		Kills:      t.Health <= dmg,
		Ranged:     rangedEffect(a, t.Pos),
		InRange:    a.CanAttack && g.CanStrike(a, t.Pos),
		Affordable: pool >= cost,
	}, true
}
