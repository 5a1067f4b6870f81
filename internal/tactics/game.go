package tactics

import "go.uber.org/zap"

const (
	DefaultPlayerAP    = 12
	DefaultEnemyAP     = 12
	DefaultBossLevelAP = 18
)

// Options describe the level-wide rules a Game is created with.
type Options struct {
	Boss         bool // victory = boss dead
	PlayerAP     int  // 0 = DefaultPlayerAP
	EnemyAP      int  // 0 = 12, or 18 on boss levels
	SurviveTurns int  // 0 = no survival objective

	// SkipEnemyPhase ends every enemy phase immediately (scripted tutorials).
	SkipEnemyPhase bool
}

// Game is the authoritative state of one level: board, live roster, turn
// counter, phase and both shared action point pools. Every mutation goes
// through its methods; rejected commands return false and change nothing.
type Game struct {
	Board *Board

	units []*Unit

	Turn  int
	Phase Phase

	PlayerAP    int
	PlayerAPMax int
	EnemyAP     int
	EnemyAPMax  int

	TotalAPSpent int
	UnitsLost    []Archetype

	opts Options

	selected    string
	validMoves  []Coord
	attackRange []Coord

	planner        Planner
	pendingRetreat string

	events []Event
	log    *zap.Logger
}

func NewGame(board *Board, units []*Unit, opts Options) *Game {
	if opts.PlayerAP <= 0 {
		opts.PlayerAP = DefaultPlayerAP
	}
	if opts.EnemyAP <= 0 {
		opts.EnemyAP = DefaultEnemyAP
		if opts.Boss {
			opts.EnemyAP = DefaultBossLevelAP
		}
	}
	g := &Game{
		Board:       board,
		Turn:        1,
		Phase:       PlayerTurn,
		PlayerAP:    opts.PlayerAP,
		PlayerAPMax: opts.PlayerAP,
		EnemyAPMax:  opts.EnemyAP,
		opts:        opts,
		log:         zap.NewNop(),
	}
	for _, u := range units {
		if u.IsAlive() {
			g.units = append(g.units, u)
		}
	}
	return g
}

func (g *Game) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	g.log = l
}

// SetPlanner installs the enemy decision procedure. Without one every
// enemy phase ends immediately.
func (g *Game) SetPlanner(p Planner) { g.planner = p }

func (g *Game) Options() Options { return g.opts }

func (g *Game) IsBossLevel() bool { return g.opts.Boss }

// Units returns the live roster in creation order.
func (g *Game) Units() []*Unit {
	out := make([]*Unit, 0, len(g.units))
	for _, u := range g.units {
		if u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}

func (g *Game) LiveUnits(side Side) []*Unit {
	var out []*Unit
	for _, u := range g.units {
		if u.IsAlive() && u.Side == side {
			out = append(out, u)
		}
	}
	return out
}

// Unit resolves an id against the live roster; nil when the unit is
// unknown or dead.
func (g *Game) Unit(id string) *Unit {
	if id == "" {
		return nil
	}
	for _, u := range g.units {
		if u.ID == id && u.IsAlive() {
			return u
		}
	}
	return nil
}

// UnitAt returns the first live unit on the tile.
func (g *Game) UnitAt(x, y int) *Unit {
	for _, u := range g.units {
		if u.Pos.X == x && u.Pos.Y == y && u.IsAlive() {
			return u
		}
	}
	return nil
}

func (g *Game) Boss() *Unit {
	for _, u := range g.units {
		if u.IsAlive() && u.IsBoss && u.Side == Enemy {
			return u
		}
	}
	return nil
}

// removeUnit drops a dead unit from the roster.
func (g *Game) removeUnit(id string) {
	out := g.units[:0]
	for _, u := range g.units {
		if u.ID != id {
			out = append(out, u)
		}
	}
	for i := len(out); i < len(g.units); i++ {
		g.units[i] = nil
	}
	g.units = out
}

// kill records a player loss when relevant and removes the unit.
func (g *Game) kill(u *Unit) {
	u.Health = 0
	if u.Side == Player {
		g.UnitsLost = append(g.UnitsLost, u.Archetype)
	}
	g.removeUnit(u.ID)
}

func (g *Game) setPhase(p Phase) {
	if g.Phase == p {
		return
	}
	g.Phase = p
	g.log.Info("phase change", zap.Int("turn", g.Turn), zap.Stringer("phase", p))
	g.emit(Event{Kind: EventPhase, Phase: p})
}

// checkGameState runs after every death and phase transition.
func (g *Game) checkGameState() {
	if g.Phase.Terminal() {
		return
	}
	if len(g.LiveUnits(Player)) == 0 {
		g.setPhase(Defeat)
		return
	}
	if g.opts.Boss {
		if g.Boss() == nil {
			g.setPhase(Victory)
		}
		return
	}
	if len(g.LiveUnits(Enemy)) == 0 {
		g.setPhase(Victory)
	}
}

func (g *Game) clearSelection() {
	g.selected = ""
	g.validMoves = nil
	g.attackRange = nil
}
