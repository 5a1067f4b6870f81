package engine

import (
	"testing"

	"chesstactics/internal/tactics"
)

func boss(id string, a tactics.Archetype, pos tactics.Coord) *tactics.Unit {
	u := tactics.NewUnit(id, a, tactics.Enemy, pos)
	u.MakeBoss("Boss")
	return u
}

func TestBossRookAreaBlast(t *testing.T) {
	b := boss("b", tactics.Rook, tactics.Coord{X: 3, Y: 3})
	near := tactics.NewUnit("p1", tactics.Pawn, tactics.Player, tactics.Coord{X: 4, Y: 4})
	far := tactics.NewUnit("p2", tactics.Knight, tactics.Player, tactics.Coord{X: 7, Y: 7})
	g := tactics.NewGame(tactics.NewBoard(8, 8), []*tactics.Unit{near, far, b}, tactics.Options{Boss: true})
	g.SetPlanner(NewEngine())
	g.EndPlayerTurn()
	if g.EnemyAP != 18 {
		t.Fatalf("boss level enemy AP = %d, want 18", g.EnemyAP)
	}

	a, ok := g.PlanEnemyAction()
	if !ok || a.Kind != tactics.ActionAreaBlast || a.Cost != 3 {
		t.Fatalf("plan = %+v ok=%v", a, ok)
	}
	if len(a.Victims) != 1 || a.Victims[0] != "p1" {
		t.Fatalf("victims = %v", a.Victims)
	}
	if !g.CommitEnemyAction(a) {
		t.Fatalf("blast rejected")
	}
	if near.Health != 0 || g.Unit("p1") != nil {
		t.Fatalf("adjacent player survived the blast: %+v", near)
	}
	if far.Health != far.MaxHealth {
		t.Fatalf("distant player was hit")
	}
	if g.EnemyAP != 15 {
		t.Fatalf("enemy AP = %d, want 15", g.EnemyAP)
	}
	if g.PendingRetreat() != "b" {
		t.Fatalf("boss should be owed a retreat")
	}
}

func TestAssignTargetsSpreads(t *testing.T) {
	pa := tactics.NewUnit("a", tactics.Pawn, tactics.Player, tactics.Coord{X: 0, Y: 9})
	pb := tactics.NewUnit("b", tactics.Pawn, tactics.Player, tactics.Coord{X: 9, Y: 9})
	e1 := tactics.NewUnit("e1", tactics.Knight, tactics.Enemy, tactics.Coord{X: 0, Y: 0})
	e2 := tactics.NewUnit("e2", tactics.Knight, tactics.Enemy, tactics.Coord{X: 1, Y: 0})
	g := tactics.NewGame(tactics.NewBoard(10, 10), []*tactics.Unit{pa, pb, e1, e2}, tactics.Options{})

	NewEngine().BeginPhase(g)
	if e1.AssignedTarget != "a" || e2.AssignedTarget != "b" {
		t.Fatalf("targets = %q, %q", e1.AssignedTarget, e2.AssignedTarget)
	}

	// without the spread penalty both pile onto the nearest player
	p := DefaultParams()
	p.TargetSpread = 0
	NewEngine(WithParams(p)).BeginPhase(g)
	if e1.AssignedTarget != "a" || e2.AssignedTarget != "a" {
		t.Fatalf("targets = %q, %q", e1.AssignedTarget, e2.AssignedTarget)
	}
}

func TestAttackPrefersKill(t *testing.T) {
	e := tactics.NewUnit("e", tactics.Knight, tactics.Enemy, tactics.Coord{X: 2, Y: 2})
	weak := tactics.NewUnit("pawn", tactics.Pawn, tactics.Player, tactics.Coord{X: 3, Y: 4})
	tough := tactics.NewUnit("rook", tactics.Rook, tactics.Player, tactics.Coord{X: 4, Y: 3})
	g := tactics.NewGame(tactics.NewBoard(8, 8), []*tactics.Unit{weak, tough, e}, tactics.Options{})
	g.EnemyAP = 12
	e.AssignedTarget = "rook"

	eng := NewEngine()
	a, ok := eng.bestAttack(g, g.LiveUnits(tactics.Player))
	if !ok || a.Target != "pawn" {
		t.Fatalf("attack = %+v", a)
	}
	if a.Score != 1000-3 {
		t.Fatalf("score = %d", a.Score)
	}

	weak.Health = 5
	weak.Defense = 3
	a, _ = eng.bestAttack(g, g.LiveUnits(tactics.Player))
	if a.Target != "rook" || a.Score != 100-5+250 {
		t.Fatalf("assigned target should win among non-kills: %+v", a)
	}

	g.EnemyAP = 2
	if _, ok := eng.bestAttack(g, g.LiveUnits(tactics.Player)); ok {
		t.Fatalf("attack offered without enough AP")
	}
}

func TestBossAttackIsLethal(t *testing.T) {
	b := boss("b", tactics.Knight, tactics.Coord{X: 2, Y: 2})
	p := tactics.NewUnit("p", tactics.Queen, tactics.Player, tactics.Coord{X: 3, Y: 4})
	g := tactics.NewGame(tactics.NewBoard(8, 8), []*tactics.Unit{p, b}, tactics.Options{Boss: true})
	g.EnemyAP = 18
	a, ok := NewEngine().bestAttack(g, g.LiveUnits(tactics.Player))
	if !ok || a.Damage != p.Health || a.Score != 1000-p.Health {
		t.Fatalf("boss attack = %+v", a)
	}
}

func TestKingLineAttack(t *testing.T) {
	king := boss("k", tactics.King, tactics.Coord{X: 3, Y: 3})
	units := []*tactics.Unit{
		tactics.NewUnit("p1", tactics.Pawn, tactics.Player, tactics.Coord{X: 3, Y: 5}),
		tactics.NewUnit("ally", tactics.Pawn, tactics.Enemy, tactics.Coord{X: 3, Y: 6}),
		tactics.NewUnit("p2", tactics.Knight, tactics.Player, tactics.Coord{X: 3, Y: 7}),
		tactics.NewUnit("p3", tactics.Rook, tactics.Player, tactics.Coord{X: 3, Y: 0}),
		king,
	}
	g := tactics.NewGame(tactics.NewBoard(8, 8), units, tactics.Options{Boss: true})
	g.SetPlanner(NewEngine())
	g.EndPlayerTurn()

	a, ok := g.PlanEnemyAction()
	if !ok || a.Kind != tactics.ActionLineAttack {
		t.Fatalf("plan = %+v ok=%v", a, ok)
	}
	if len(a.Victims) != 3 || a.Target != "p1" {
		t.Fatalf("victims=%v target=%q", a.Victims, a.Target)
	}
	if !g.CommitEnemyAction(a) {
		t.Fatalf("line attack rejected")
	}
	for _, id := range []string{"p1", "ally", "p2"} {
		if g.Unit(id) != nil {
			t.Fatalf("%s survived the line attack", id)
		}
	}
	if g.Unit("p3") == nil {
		t.Fatalf("unit on the other ray was hit")
	}
	if g.EnemyAP != 18-king.AttackCost() {
		t.Fatalf("enemy AP = %d", g.EnemyAP)
	}
}

func TestLineAttackStopsAtObstacle(t *testing.T) {
	king := boss("k", tactics.King, tactics.Coord{X: 3, Y: 3})
	b := tactics.NewBoard(8, 8)
	b.AddObstacle(3, 5)
	g := tactics.NewGame(b, []*tactics.Unit{
		tactics.NewUnit("p1", tactics.Pawn, tactics.Player, tactics.Coord{X: 3, Y: 6}),
		king,
	}, tactics.Options{Boss: true})
	g.EnemyAP = 18
	if a, ok := NewEngine().lineAttack(g); ok {
		t.Fatalf("line attack through an obstacle: %+v", a)
	}
}

func TestShadowBishop(t *testing.T) {
	sb := boss("sb", tactics.Bishop, tactics.Coord{X: 2, Y: 2})
	sb.ShadowBishop = true
	p := tactics.NewUnit("p", tactics.Rook, tactics.Player, tactics.Coord{X: 5, Y: 2})
	g := tactics.NewGame(tactics.NewBoard(8, 8), []*tactics.Unit{p, sb}, tactics.Options{Boss: true})
	g.SetPlanner(NewEngine())
	g.EndPlayerTurn()

	if sb.BishopParity != 1 {
		t.Fatalf("committed parity = %d, want the target's (1)", sb.BishopParity)
	}
	a, ok := g.PlanEnemyAction()
	if !ok || a.Kind != tactics.ActionColorSwitch || a.Dest != (tactics.Coord{X: 3, Y: 2}) || a.Cost != 0 {
		t.Fatalf("plan = %+v ok=%v", a, ok)
	}
	if !g.CommitEnemyAction(a) {
		t.Fatalf("colour switch rejected")
	}
	if !sb.HasDoneFreeColorSwitch || g.EnemyAP != 18 {
		t.Fatalf("switch flag=%v ap=%d", sb.HasDoneFreeColorSwitch, g.EnemyAP)
	}
	if next, _ := g.PlanEnemyAction(); next.Kind == tactics.ActionColorSwitch {
		t.Fatalf("second colour switch in one phase")
	}
}

func TestShadowBishopParityFallback(t *testing.T) {
	sb := boss("sb", tactics.Bishop, tactics.Coord{X: 2, Y: 2})
	sb.ShadowBishop = true
	g := tactics.NewGame(tactics.NewBoard(8, 8), []*tactics.Unit{sb}, tactics.Options{Boss: true})
	e := NewEngine()

	e.commitParity(g)
	if sb.BishopParity != 1 { // turn 1, healthy
		t.Fatalf("parity = %d, want 1", sb.BishopParity)
	}
	sb.Health = sb.MaxHealth/2 - 1
	e.commitParity(g)
	if sb.BishopParity != 0 { // turn 1, wounded
		t.Fatalf("parity = %d, want 0", sb.BishopParity)
	}
}

func TestAdvanceTowardsThreat(t *testing.T) {
	b := tactics.NewBoard(8, 8)
	b.AddObstacle(0, 3)
	rook := tactics.NewUnit("e", tactics.Rook, tactics.Enemy, tactics.Coord{X: 0, Y: 0})
	p := tactics.NewUnit("p", tactics.Pawn, tactics.Player, tactics.Coord{X: 5, Y: 5})
	g := tactics.NewGame(b, []*tactics.Unit{p, rook}, tactics.Options{})
	e := NewEngine()
	e.BeginPhase(g)
	g.EnemyAP = 12

	a, ok := e.bestAdvance(g, g.LiveUnits(tactics.Player))
	if !ok || a.Dest != (tactics.Coord{X: 5, Y: 0}) {
		t.Fatalf("advance = %+v", a)
	}
	if a.Score != -5+550 {
		t.Fatalf("score = %d", a.Score)
	}

	rook.HasMoved = true
	if _, ok := e.bestAdvance(g, g.LiveUnits(tactics.Player)); ok {
		t.Fatalf("unit moved twice in one phase")
	}
}

func TestAdvanceCrowdingPenalty(t *testing.T) {
	e := NewEngine()
	g := tactics.NewGame(tactics.NewBoard(8, 8), []*tactics.Unit{
		tactics.NewUnit("p", tactics.Pawn, tactics.Player, tactics.Coord{X: 4, Y: 7}),
		tactics.NewUnit("e1", tactics.King, tactics.Enemy, tactics.Coord{X: 4, Y: 2}),
		tactics.NewUnit("e2", tactics.King, tactics.Enemy, tactics.Coord{X: 2, Y: 3}),
	}, tactics.Options{})
	self := g.Unit("e1")
	if n := e.crowding(g, self, tactics.Coord{X: 4, Y: 3}); n != 1 {
		t.Fatalf("crowding = %d, want 1", n)
	}
	g.Unit("e2").HasMoved = true
	if n := e.crowding(g, self, tactics.Coord{X: 4, Y: 3}); n != 0 {
		t.Fatalf("moved allies should not count, got %d", n)
	}
}

func TestAdvanceSkipsPathThroughUnits(t *testing.T) {
	rook := tactics.NewUnit("e", tactics.Rook, tactics.Enemy, tactics.Coord{X: 0, Y: 0})
	g := tactics.NewGame(tactics.NewBoard(6, 6), []*tactics.Unit{
		tactics.NewUnit("p", tactics.Pawn, tactics.Player, tactics.Coord{X: 5, Y: 5}),
		tactics.NewUnit("blocker", tactics.Pawn, tactics.Enemy, tactics.Coord{X: 0, Y: 2}),
		rook,
	}, tactics.Options{})
	for _, d := range legalDestinations(g, rook) {
		if d.X == 0 && d.Y > 2 {
			t.Fatalf("rook jumps over a unit to %v", d)
		}
	}
}

func TestRetreatPrefersSafeDistantTile(t *testing.T) {
	b := boss("b", tactics.Rook, tactics.Coord{X: 3, Y: 3})
	p := tactics.NewUnit("p", tactics.Rook, tactics.Player, tactics.Coord{X: 0, Y: 7})
	g := tactics.NewGame(tactics.NewBoard(8, 8), []*tactics.Unit{p, b}, tactics.Options{Boss: true})

	dest, ok := NewEngine().Retreat(g, b)
	if !ok || dest != (tactics.Coord{X: 7, Y: 3}) {
		t.Fatalf("retreat = %v ok=%v", dest, ok)
	}
	b.HasDoneFreeRetreat = true
	if _, ok := NewEngine().Retreat(g, b); ok {
		t.Fatalf("second retreat offered")
	}
}

func TestRunEnemyPhaseTerminates(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		board := tactics.GenerateLevel(10, 10, int(seed), seed, tactics.ShapeNormal)
		units := []*tactics.Unit{
			tactics.NewUnit("p-rook", tactics.Rook, tactics.Player, tactics.Coord{X: 2, Y: 9}),
			tactics.NewUnit("p-knight", tactics.Knight, tactics.Player, tactics.Coord{X: 4, Y: 9}),
			tactics.NewUnit("p-pawn", tactics.Pawn, tactics.Player, tactics.Coord{X: 5, Y: 8}),
			tactics.NewUnit("e-knight", tactics.Knight, tactics.Enemy, tactics.Coord{X: 3, Y: 0}),
			tactics.NewUnit("e-bishop", tactics.Bishop, tactics.Enemy, tactics.Coord{X: 6, Y: 0}),
			tactics.NewUnit("e-pawn", tactics.Pawn, tactics.Enemy, tactics.Coord{X: 4, Y: 1}),
		}
		g := tactics.NewGame(board, units, tactics.Options{})
		e := NewEngine()
		g.SetPlanner(e)
		for turn := 0; turn < 40 && !g.Phase.Terminal(); turn++ {
			e.PlayPlayerTurn(g)
			if g.Phase == tactics.EnemyTurn {
				g.RunEnemyPhase()
			}
			if g.PlayerAP < 0 || g.EnemyAP < 0 {
				t.Fatalf("seed=%d: negative pool player=%d enemy=%d", seed, g.PlayerAP, g.EnemyAP)
			}
			if !g.Phase.Terminal() && g.Phase != tactics.PlayerTurn {
				t.Fatalf("seed=%d: phase %s after a full round", seed, g.Phase)
			}
		}
		if e.Nodes() == 0 {
			t.Fatalf("seed=%d: engine scored nothing", seed)
		}
	}
}
