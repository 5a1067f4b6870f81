package engine

import (
	"sync/atomic"

	"go.uber.org/zap"

	"chesstactics/internal/tactics"
)

// Engine is the enemy side's decision procedure. It is stateless between
// calls apart from counters, so one Engine may serve many games as long
// as each game is driven from a single goroutine.
type Engine struct {
	params Params
	log    *zap.Logger

	// candidates scored since creation
	nodes int64
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		params: DefaultParams(),
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Params() Params { return e.params }

// Nodes is the number of candidate actions scored so far.
func (e *Engine) Nodes() int64 { return atomic.LoadInt64(&e.nodes) }

func (e *Engine) count(n int) { atomic.AddInt64(&e.nodes, int64(n)) }

var _ tactics.Planner = (*Engine)(nil)

// BeginPhase assigns targets and commits shadow-bishop diagonals.
func (e *Engine) BeginPhase(g *tactics.Game) {
	e.assignTargets(g)
	e.commitParity(g)
}

// Next walks the priority tiers and returns the first action found:
// colour switch, boss area abilities, attack, advance, attack again.
func (e *Engine) Next(g *tactics.Game) tactics.EnemyAction {
	players := g.LiveUnits(tactics.Player)
	if len(players) == 0 || g.EnemyAP <= 0 {
		return tactics.EnemyAction{}
	}
	if a, ok := e.colorSwitch(g, players); ok {
		return e.chose(a)
	}
	if g.IsBossLevel() {
		if a, ok := e.areaBlast(g, players); ok {
			return e.chose(a)
		}
		if a, ok := e.lineAttack(g); ok {
			return e.chose(a)
		}
	}
	if a, ok := e.bestAttack(g, players); ok {
		return e.chose(a)
	}
	if a, ok := e.bestAdvance(g, players); ok {
		return e.chose(a)
	}
	// Rescan so the phase never ends with an attack still available.
	if a, ok := e.bestAttack(g, players); ok {
		return e.chose(a)
	}
	return tactics.EnemyAction{}
}

func (e *Engine) chose(a tactics.EnemyAction) tactics.EnemyAction {
	e.log.Debug("enemy choice",
		zap.String("kind", string(a.Kind)),
		zap.String("unit", a.Actor),
		zap.String("target", a.Target),
		zap.Int("score", a.Score))
	return a
}
