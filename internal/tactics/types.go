package tactics

import (
	"fmt"
	"strings"
)

type Side int8

const (
	Player Side = 0
	Enemy  Side = 1
)

func (s Side) String() string {
	if s == Enemy {
		return "enemy"
	}
	return "player"
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Side) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "player":
		*s = Player
	case "enemy":
		*s = Enemy
	default:
		return fmt.Errorf("unknown side %q", string(b))
	}
	return nil
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Player {
		return Enemy
	}
	return Player
}

type Archetype int8

const (
	ArchetypeUnknown Archetype = iota
	Pawn
	Rook
	Bishop
	Knight
	Queen
	King
)

var archetypeNames = map[Archetype]string{
	Pawn:   "pawn",
	Rook:   "rook",
	Bishop: "bishop",
	Knight: "knight",
	Queen:  "queen",
	King:   "king",
}

// ParseArchetype is case-insensitive; unrecognized names map to ArchetypeUnknown.
func ParseArchetype(name string) Archetype {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range archetypeNames {
		if n == name {
			return a
		}
	}
	return ArchetypeUnknown
}

func (a Archetype) String() string {
	if n, ok := archetypeNames[a]; ok {
		return n
	}
	return "unknown"
}

func (a Archetype) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Archetype) UnmarshalText(b []byte) error {
	*a = ParseArchetype(string(b))
	return nil
}

// Ranged archetypes need a clear line of sight to attack.
func (a Archetype) Ranged() bool {
	return a == Rook || a == Bishop || a == Queen
}

type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (c Coord) Add(dx, dy int) Coord { return Coord{X: c.X + dx, Y: c.Y + dy} }

// Parity is the diagonal colour of the tile.
func (c Coord) Parity() int { return (c.X + c.Y) % 2 }

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

func Manhattan(a, b Coord) int { return abs(a.X-b.X) + abs(a.Y-b.Y) }

func Chebyshev(a, b Coord) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type Phase int8

const (
	PlayerTurn Phase = iota
	EnemyTurn
	Victory
	Defeat
)

func (p Phase) String() string {
	switch p {
	case PlayerTurn:
		return "player_turn"
	case EnemyTurn:
		return "enemy_turn"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(b []byte) error {
	for _, c := range []Phase{PlayerTurn, EnemyTurn, Victory, Defeat} {
		if c.String() == string(b) {
			*p = c
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// Terminal phases accept no further mutation.
func (p Phase) Terminal() bool { return p == Victory || p == Defeat }

type Shape string

const (
	ShapeNormal   Shape = "normal"
	ShapeArena    Shape = "arena"
	ShapeTutorial Shape = "tutorial"
)
