package level

import (
	"sort"

	"chesstactics/internal/tactics"
)

// FormationChess lines the enemy up as a chess army on the top two rows.
const FormationChess = "chess"

// Spawn is one unit placed by spawn picking.
type Spawn struct {
	Archetype tactics.Archetype
	Pos       tactics.Coord
}

// zoneCells lists the obstacle-free tiles of the given rows, rows in the
// order given, columns left to right.
func zoneCells(b *tactics.Board, rows ...int) []tactics.Coord {
	var out []tactics.Coord
	for _, y := range rows {
		if y < 0 || y >= b.Height {
			continue
		}
		for x := 0; x < b.Width; x++ {
			if !b.HasObstacle(x, y) {
				out = append(out, tactics.Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// fillZone hands out slots centre-first. Pawns take tiles with an open
// forward square when one is left; everything else, and pawns once those
// run out, take the remaining tiles. Units that fit nowhere are dropped.
func fillZone(b *tactics.Board, side tactics.Side, cells []tactics.Coord, roster []tactics.Archetype) []Spawn {
	center := float64(b.Width-1) / 2
	dist := func(c tactics.Coord) float64 {
		d := float64(c.X) - center
		return d * d
	}
	var pawnSlots, otherSlots []tactics.Coord
	for _, c := range cells {
		if tactics.PawnSpawnValid(b, c.X, c.Y, side) {
			pawnSlots = append(pawnSlots, c)
		} else {
			otherSlots = append(otherSlots, c)
		}
	}
	sort.SliceStable(pawnSlots, func(i, j int) bool { return dist(pawnSlots[i]) < dist(pawnSlots[j]) })
	sort.SliceStable(otherSlots, func(i, j int) bool { return dist(otherSlots[i]) < dist(otherSlots[j]) })

	var out []Spawn
	pi, oi := 0, 0
	for _, a := range roster {
		switch {
		case a == tactics.Pawn && pi < len(pawnSlots):
			out = append(out, Spawn{Archetype: a, Pos: pawnSlots[pi]})
			pi++
		case oi < len(otherSlots):
			out = append(out, Spawn{Archetype: a, Pos: otherSlots[oi]})
			oi++
		case pi < len(pawnSlots):
			out = append(out, Spawn{Archetype: a, Pos: pawnSlots[pi]})
			pi++
		}
	}
	return out
}

// PickSpawns places the player roster on the bottom two rows and the enemy
// roster on the top two.
func PickSpawns(b *tactics.Board, playerRoster, enemyRoster []tactics.Archetype) (players, enemies []Spawn) {
	h := b.Height
	players = fillZone(b, tactics.Player, zoneCells(b, h-1, h-2), playerRoster)
	enemies = fillZone(b, tactics.Enemy, zoneCells(b, 0, 1), enemyRoster)
	return players, enemies
}

var backRank = [8]tactics.Archetype{
	tactics.Rook, tactics.Knight, tactics.Bishop, tactics.Queen,
	tactics.King, tactics.Bishop, tactics.Knight, tactics.Rook,
}

// ChessFormation returns the standard back rank on row 0 and eight pawns
// on row 1, skipping obstacle tiles. Boards narrower than 8 get nothing.
func ChessFormation(b *tactics.Board) []Spawn {
	if b.Width < 8 || b.Height < 2 {
		return nil
	}
	var out []Spawn
	for x := 0; x < 8; x++ {
		if !b.HasObstacle(x, 0) {
			out = append(out, Spawn{Archetype: backRank[x], Pos: tactics.Coord{X: x, Y: 0}})
		}
	}
	for x := 0; x < 8; x++ {
		if !b.HasObstacle(x, 1) {
			out = append(out, Spawn{Archetype: tactics.Pawn, Pos: tactics.Coord{X: x, Y: 1}})
		}
	}
	return out
}
