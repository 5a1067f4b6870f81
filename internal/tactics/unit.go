package tactics

import (
	"math"
	"strings"
)

// Stats are fixed per archetype.
type Stats struct {
	ActionPoints int
	Health       int
	Attack       int
	Defense      int
	MoveCost     int
	AttackCost   int
}

var archetypeStats = map[Archetype]Stats{
	Pawn:   {ActionPoints: 2, Health: 3, Attack: 1, Defense: 0, MoveCost: 1, AttackCost: 1},
	Rook:   {ActionPoints: 3, Health: 5, Attack: 2, Defense: 1, MoveCost: 2, AttackCost: 3},
	Bishop: {ActionPoints: 3, Health: 4, Attack: 2, Defense: 0, MoveCost: 2, AttackCost: 3},
	Knight: {ActionPoints: 2, Health: 4, Attack: 3, Defense: 1, MoveCost: 2, AttackCost: 3},
	Queen:  {ActionPoints: 4, Health: 6, Attack: 3, Defense: 1, MoveCost: 3, AttackCost: 4},
	King:   {ActionPoints: 2, Health: 5, Attack: 2, Defense: 1, MoveCost: 4, AttackCost: 5},
}

var defaultStats = Stats{ActionPoints: 2, Health: 3, Attack: 1, Defense: 0, MoveCost: 2, AttackCost: 2}

func StatsFor(a Archetype) Stats {
	if s, ok := archetypeStats[a]; ok {
		return s
	}
	return defaultStats
}

// Damage is what an attack of the given strength deals through defense.
// At least one point always gets through.
func Damage(attack, defense int) int {
	return max(1, attack-defense)
}

type Unit struct {
	ID        string
	Pos       Coord
	Archetype Archetype
	Side      Side

	Health    int
	MaxHealth int
	Attack    int
	Defense   int

	// ActionPoints/ActionPointsMax are per-unit metadata only. Actions are
	// gated on the shared team pool held by Game.
	ActionPoints    int
	ActionPointsMax int

	HasMoved               bool
	HasActed               bool
	HasDoneFreeColorSwitch bool
	HasDoneFreeRetreat     bool

	CanAttack bool

	IsBoss   bool
	BossName string

	// AssignedTarget is the id of a player unit, set each enemy phase.
	// Resolve it through Game.Unit; the target may be dead.
	AssignedTarget string

	ShadowBishop bool
	BishopParity int
}

func NewUnit(id string, a Archetype, side Side, pos Coord) *Unit {
	st := StatsFor(a)
	return &Unit{
		ID:              id,
		Pos:             pos,
		Archetype:       a,
		Side:            side,
		Health:          st.Health,
		MaxHealth:       st.Health,
		Attack:          st.Attack,
		Defense:         st.Defense,
		ActionPoints:    st.ActionPoints,
		ActionPointsMax: st.ActionPoints,
		CanAttack:       true,
	}
}

func (u *Unit) IsAlive() bool { return u != nil && u.Health > 0 }

func (u *Unit) MoveCost() int   { return StatsFor(u.Archetype).MoveCost }
func (u *Unit) AttackCost() int { return StatsFor(u.Archetype).AttackCost }

func (u *Unit) IsRanged() bool { return u.Archetype.Ranged() }

func (u *Unit) ResetTurn() {
	u.ActionPoints = u.ActionPointsMax
	u.HasMoved = false
	u.HasActed = false
	u.HasDoneFreeColorSwitch = false
	u.HasDoneFreeRetreat = false
}

// TakeDamage applies a raw attack value against this unit's defense and
// returns the damage dealt.
func (u *Unit) TakeDamage(raw int) int {
	dmg := Damage(raw, u.Defense)
	u.Health = max(0, u.Health-dmg)
	return dmg
}

// MakeBoss applies the boss multipliers: health x3.5 rounded up with a
// floor of 12, attack +3 capped at 8, defense +2 capped at 4.
func (u *Unit) MakeBoss(name string) {
	u.IsBoss = true
	u.BossName = name
	u.MaxHealth = max(12, int(math.Ceil(float64(u.MaxHealth)*3.5)))
	u.Health = u.MaxHealth
	u.Attack = min(8, u.Attack+3)
	u.Defense = min(4, u.Defense+2)
}

// DisplayName is the boss name when set, else the capitalised archetype.
func (u *Unit) DisplayName() string {
	if u.BossName != "" {
		return u.BossName
	}
	n := u.Archetype.String()
	return strings.ToUpper(n[:1]) + n[1:]
}

func (u *Unit) isShadowBishop() bool {
	return u.ShadowBishop && u.Archetype == Bishop
}

// MoveTiles applies the shadow-bishop colour lock on top of Moves.
func (u *Unit) MoveTiles(b *Board) []Coord {
	moves := Moves(u.Archetype, u.Pos.X, u.Pos.Y, b.Width, b.Height, b)
	if !u.isShadowBishop() {
		return moves
	}
	own := u.Pos.Parity()
	out := moves[:0]
	for _, m := range moves {
		if m.Parity() == own {
			out = append(out, m)
		}
	}
	return out
}

// AttackTiles applies the shadow-bishop committed parity on top of AttackRange.
func (u *Unit) AttackTiles(b *Board) []Coord {
	rng := AttackRange(u.Archetype, u.Pos.X, u.Pos.Y, b.Width, b.Height, b)
	if !u.isShadowBishop() {
		return rng
	}
	out := rng[:0]
	for _, m := range rng {
		if m.Parity() == u.BishopParity {
			out = append(out, m)
		}
	}
	return out
}

// Clone returns an independent copy of the unit.
func (u *Unit) Clone() *Unit {
	c := *u
	return &c
}
