package tactics

import "go.uber.org/zap"

// Planner decides enemy actions. The game owns state and validation; a
// planner only reads the game and proposes.
type Planner interface {
	// BeginPhase runs once at the start of every enemy phase, after the
	// enemy pool and unit flags are reset.
	BeginPhase(g *Game)
	// Retreat picks the free escape tile for a boss that just attacked.
	Retreat(g *Game, boss *Unit) (Coord, bool)
	// Next returns the next action, or an action with Kind ActionNone when
	// no enemy can act.
	Next(g *Game) EnemyAction
}

type ActionKind string

const (
	ActionNone        ActionKind = ""
	ActionColorSwitch ActionKind = "color_switch"
	ActionAreaBlast   ActionKind = "area_blast"
	ActionLineAttack  ActionKind = "line_attack"
	ActionAttack      ActionKind = "attack"
	ActionMove        ActionKind = "move"
	ActionRetreat     ActionKind = "retreat"
)

// EnemyAction is one previewable enemy step.
type EnemyAction struct {
	Kind    ActionKind `json:"kind"`
	Actor   string     `json:"actor,omitempty"`
	Target  string     `json:"target,omitempty"`
	Victims []string   `json:"victims,omitempty"`
	Dest    Coord      `json:"dest"`
	Cost    int        `json:"cost"`
	Damage  int        `json:"damage,omitempty"`
	Parity  int        `json:"parity,omitempty"`
	Score   int        `json:"score,omitempty"`
}

func (a EnemyAction) IsNone() bool { return a.Kind == ActionNone }

// PendingRetreat is the id of the boss owed a free retreat, if any.
func (g *Game) PendingRetreat() string { return g.pendingRetreat }

func (g *Game) beginEnemyPhase() {
	if g.opts.SkipEnemyPhase || g.planner == nil {
		g.finishEnemyPhase()
		return
	}
	if len(g.LiveUnits(Player)) == 0 {
		g.finishEnemyPhase()
		return
	}
	g.EnemyAP = g.EnemyAPMax
	g.pendingRetreat = ""
	for _, e := range g.LiveUnits(Enemy) {
		e.ResetTurn()
	}
	g.planner.BeginPhase(g)
}

// PlanEnemyAction is the preview half of an enemy step. It returns the
// action the enemy side is about to take, or false when the phase is
// over; in that case the phase has already been closed.
func (g *Game) PlanEnemyAction() (EnemyAction, bool) {
	if g.Phase != EnemyTurn {
		return EnemyAction{}, false
	}
	if id := g.pendingRetreat; id != "" {
		if boss := g.Unit(id); boss != nil && !boss.HasDoneFreeRetreat && g.planner != nil {
			if dest, ok := g.planner.Retreat(g, boss); ok {
				return EnemyAction{Kind: ActionRetreat, Actor: id, Dest: dest}, true
			}
		}
		g.pendingRetreat = ""
	}
	if len(g.LiveUnits(Player)) == 0 || g.EnemyAP <= 0 || g.planner == nil {
		g.finishEnemyPhase()
		return EnemyAction{}, false
	}
	a := g.planner.Next(g)
	if a.IsNone() {
		g.finishEnemyPhase()
		return EnemyAction{}, false
	}
	return a, true
}

// CommitEnemyAction applies a planned action after re-validating it
// against the current state.
func (g *Game) CommitEnemyAction(a EnemyAction) bool {
	if g.Phase != EnemyTurn {
		return false
	}
	actor := g.Unit(a.Actor)
	if actor == nil || actor.Side != Enemy {
		return false
	}
	var ok bool
	switch a.Kind {
	case ActionColorSwitch:
		ok = g.commitColorSwitch(actor, a)
	case ActionAreaBlast:
		ok = g.commitAreaBlast(actor, a)
	case ActionLineAttack:
		ok = g.commitLineAttack(actor, a)
	case ActionAttack:
		ok = g.commitAttack(actor, a)
	case ActionMove:
		ok = g.commitMove(actor, a)
	case ActionRetreat:
		ok = g.commitRetreat(actor, a)
	}
	if !ok {
		return false
	}
	g.log.Debug("enemy action",
		zap.String("kind", string(a.Kind)), zap.String("unit", a.Actor),
		zap.String("target", a.Target), zap.Int("cost", a.Cost),
		zap.Int("ap_left", g.EnemyAP))
	g.pendingRetreat = ""
	switch a.Kind {
	case ActionAreaBlast, ActionLineAttack, ActionAttack:
		if actor.IsBoss && !actor.HasDoneFreeRetreat {
			g.pendingRetreat = actor.ID
		}
	}
	g.checkGameState()
	return true
}

func (g *Game) spendEnemy(cost int) bool {
	if cost < 0 || g.EnemyAP < cost {
		return false
	}
	g.EnemyAP -= cost
	return true
}

func (g *Game) commitColorSwitch(u *Unit, a EnemyAction) bool {
	if !u.ShadowBishop || u.HasDoneFreeColorSwitch || Chebyshev(u.Pos, a.Dest) != 1 {
		return false
	}
	if !g.OpenTile(a.Dest) || a.Dest.Parity() == u.Pos.Parity() {
		return false
	}
	from := u.Pos
	u.Pos = a.Dest
	u.HasDoneFreeColorSwitch = true
	u.BishopParity = a.Parity
	g.emit(Event{Kind: EventColorSwitch, Actor: u.ID, From: from, To: a.Dest})
	return true
}

func (g *Game) commitAreaBlast(u *Unit, a EnemyAction) bool {
	if !u.IsBoss || u.HasActed || (u.Archetype != Rook && u.Archetype != Queen) {
		return false
	}
	var victims []*Unit
	for _, c := range Adjacent8(u.Pos) {
		if p := g.UnitAt(c.X, c.Y); p != nil && p.Side == Player {
			victims = append(victims, p)
		}
	}
	if len(victims) == 0 || !g.spendEnemy(u.AttackCost()) {
		return false
	}
	u.HasActed = true
	ids := make([]string, 0, len(victims))
	for _, p := range victims {
		ids = append(ids, p.ID)
		g.kill(p)
	}
	g.emit(Event{Kind: EventAreaBlast, Actor: u.ID, Victims: ids, From: u.Pos, To: u.Pos})
	return true
}

func (g *Game) commitLineAttack(u *Unit, a EnemyAction) bool {
	if !u.IsBoss || u.HasActed || u.Archetype != King || len(a.Victims) == 0 {
		return false
	}
	victims := make([]*Unit, 0, len(a.Victims))
	hasPlayer := false
	for _, id := range a.Victims {
		v := g.Unit(id)
		if v == nil || v == u {
			return false
		}
		hasPlayer = hasPlayer || v.Side == Player
		victims = append(victims, v)
	}
	if !hasPlayer || !g.spendEnemy(u.AttackCost()) {
		return false
	}
	u.HasActed = true
	last := victims[len(victims)-1].Pos
	for _, v := range victims {
		g.kill(v)
	}
	g.emit(Event{
		Kind:    EventLineAttack,
		Actor:   u.ID,
		Victims: append([]string(nil), a.Victims...),
		From:    u.Pos,
		To:      last,
		Ranged:  rangedEffect(u, last),
	})
	return true
}

func (g *Game) commitAttack(u *Unit, a EnemyAction) bool {
	t := g.Unit(a.Target)
	if u.HasActed || t == nil || t.Side != Player || !g.CanStrike(u, t.Pos) {
		return false
	}
	if !g.spendEnemy(u.AttackCost()) {
		return false
	}
	u.HasActed = true
	dmg := Damage(u.Attack, t.Defense)
	if u.IsBoss {
		dmg = t.Health
	}
	t.Health = max(0, t.Health-dmg)
	g.emit(Event{
		Kind:   EventAttack,
		Actor:  u.ID,
		Target: t.ID,
		From:   u.Pos,
		To:     t.Pos,
		Damage: dmg,
		Ranged: rangedEffect(u, t.Pos),
	})
	if !t.IsAlive() {
		g.kill(t)
	}
	return true
}

func (g *Game) commitMove(u *Unit, a EnemyAction) bool {
	if u.HasMoved || !g.OpenTile(a.Dest) || !containsCoord(u.MoveTiles(g.Board), a.Dest) {
		return false
	}
	if u.Archetype != Knight && g.HasUnitInBetween(u.Pos, a.Dest) {
		return false
	}
	if !g.spendEnemy(u.MoveCost()) {
		return false
	}
	from := u.Pos
	u.Pos = a.Dest
	u.HasMoved = true
	g.emit(Event{Kind: EventMove, Actor: u.ID, From: from, To: a.Dest})
	return true
}

func (g *Game) commitRetreat(u *Unit, a EnemyAction) bool {
	if g.pendingRetreat != u.ID || u.HasDoneFreeRetreat || !g.OpenTile(a.Dest) {
		return false
	}
	from := u.Pos
	u.Pos = a.Dest
	u.HasDoneFreeRetreat = true
	g.emit(Event{Kind: EventRetreat, Actor: u.ID, From: from, To: a.Dest})
	return true
}

// StepEnemy plans and commits one enemy action. It returns false once the
// enemy phase is over.
func (g *Game) StepEnemy() (EnemyAction, bool) {
	a, ok := g.PlanEnemyAction()
	if !ok {
		return EnemyAction{}, false
	}
	if !g.CommitEnemyAction(a) {
		// A planner proposing an illegal action would stall the phase.
		g.log.Warn("enemy action rejected", zap.String("kind", string(a.Kind)), zap.String("unit", a.Actor))
		g.pendingRetreat = ""
		g.finishEnemyPhase()
		return a, false
	}
	return a, true
}

// RunEnemyPhase plays the whole enemy phase without pacing and returns the
// committed actions in order.
func (g *Game) RunEnemyPhase() []EnemyAction {
	var done []EnemyAction
	for g.Phase == EnemyTurn {
		a, ok := g.StepEnemy()
		if !ok {
			break
		}
		done = append(done, a)
	}
	return done
}

// finishEnemyPhase closes the enemy phase: next turn, player pool refilled,
// player flags reset. Surviving past the survival threshold wins.
func (g *Game) finishEnemyPhase() {
	if g.Phase != EnemyTurn {
		return
	}
	g.pendingRetreat = ""
	g.Turn++
	g.PlayerAP = g.PlayerAPMax
	for _, p := range g.LiveUnits(Player) {
		p.ResetTurn()
	}
	if g.opts.SurviveTurns > 0 && g.Turn > g.opts.SurviveTurns && len(g.LiveUnits(Player)) > 0 {
		g.setPhase(Victory)
		return
	}
	g.setPhase(PlayerTurn)
	g.checkGameState()
}
