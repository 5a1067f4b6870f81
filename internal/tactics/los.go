package tactics

import "math"

// lineSamples walks from a to b in Chebyshev-distance steps and returns
// the rounded intermediate tiles, endpoints excluded.
func lineSamples(a, b Coord) []Coord {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := max(abs(dx), abs(dy))
	if steps <= 1 {
		return nil
	}
	sx := float64(dx) / float64(steps)
	sy := float64(dy) / float64(steps)
	out := make([]Coord, 0, steps-1)
	for i := 1; i < steps; i++ {
		out = append(out, Coord{
			X: int(math.Floor(float64(a.X) + sx*float64(i) + 0.5)),
			Y: int(math.Floor(float64(a.Y) + sy*float64(i) + 0.5)),
		})
	}
	return out
}

// HasLineOfSight reports whether no obstacle lies strictly between a and b.
func (b *Board) HasLineOfSight(from, to Coord) bool {
	for _, c := range lineSamples(from, to) {
		if b.HasObstacle(c.X, c.Y) {
			return false
		}
	}
	return true
}

func (g *Game) HasLineOfSight(from, to Coord) bool {
	return g.Board.HasLineOfSight(from, to)
}

// HasUnitInBetween reports whether a live unit stands strictly between a and b.
func (g *Game) HasUnitInBetween(from, to Coord) bool {
	for _, c := range lineSamples(from, to) {
		if g.UnitAt(c.X, c.Y) != nil {
			return true
		}
	}
	return false
}

// CanStrike reports whether attacker could hit the given tile right now:
// the tile is in its attack range and, for ranged archetypes, in sight.
func (g *Game) CanStrike(attacker *Unit, c Coord) bool {
	if !containsCoord(attacker.AttackTiles(g.Board), c) {
		return false
	}
	return !attacker.IsRanged() || g.HasLineOfSight(attacker.Pos, c)
}

// ThreatenedTiles is the union of every live player unit's attack range,
// minus tiles a ranged unit cannot see.
func (g *Game) ThreatenedTiles() map[Coord]bool {
	out := make(map[Coord]bool)
	for _, p := range g.LiveUnits(Player) {
		for _, c := range p.AttackTiles(g.Board) {
			if p.IsRanged() && !g.HasLineOfSight(p.Pos, c) {
				continue
			}
			out[c] = true
		}
	}
	return out
}

// OpenTile reports an in-bounds tile with no obstacle and no live unit.
func (g *Game) OpenTile(c Coord) bool {
	return g.Board.InBounds(c.X, c.Y) && !g.Board.HasObstacle(c.X, c.Y) && g.UnitAt(c.X, c.Y) == nil
}

// Adjacent8 lists the eight neighbours of c, in-bounds or not.
func Adjacent8(c Coord) []Coord {
	out := make([]Coord, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx != 0 || dy != 0 {
				out = append(out, c.Add(dx, dy))
			}
		}
	}
	return out
}

func containsCoord(cs []Coord, c Coord) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}
