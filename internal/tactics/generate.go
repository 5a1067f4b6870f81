package tactics

import "math"

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 0x7fffffff

	maxObstacleFraction = 0.18
	maxCoverFraction    = 0.06
)

// lcg is the seeded stream used for level layouts. Same seed, same board,
// so restarting a level reproduces it.
type lcg struct {
	s uint64
}

func newLCG(seed int64) *lcg { return &lcg{s: uint64(seed)} }

func (r *lcg) Float64() float64 {
	r.s = (r.s*lcgMultiplier + lcgIncrement) & lcgModulus
	return float64(r.s) / lcgModulus
}

// intn maps the next draw onto [0, n). A draw of exactly 1.0 yields n,
// which callers treat as a wasted attempt.
func (r *lcg) intn(n int) int {
	return int(math.Floor(r.Float64() * float64(n)))
}

// GenerateLevel builds a board with obstacles and cover confined to the
// middle band (rows 2..height-3). The two top and two bottom rows are
// spawn zones and stay empty.
func GenerateLevel(width, height, difficulty int, seed int64, shape Shape) *Board {
	b := NewBoard(width, height)
	if shape == ShapeTutorial {
		return b
	}
	rnd := newLCG(seed)

	playableRows := height - 4
	if playableRows < 0 {
		playableRows = 0
	}
	playableArea := playableRows * width

	if shape == ShapeArena && width > 2 {
		for y := 2; y < height-2; y++ {
			b.AddObstacle(0, y)
			b.AddObstacle(width-1, y)
		}
	}

	target := math.Min(maxObstacleFraction, 0.06+float64(difficulty)*0.02)
	obstacleCount := min(
		max(2, int(math.Floor(float64(playableArea)*target))),
		max(2, int(math.Floor(float64(playableArea)*maxObstacleFraction))),
	)

	placed := 0
	maxAttempts := obstacleCount * 4
	for a := 0; a < maxAttempts && placed < obstacleCount; a++ {
		x := rnd.intn(width)
		y := 2 + rnd.intn(playableRows)
		if x >= width || y >= height-2 {
			continue
		}
		if !b.HasObstacle(x, y) {
			b.AddObstacle(x, y)
			placed++
		}
	}

	coverFraction := math.Min(maxCoverFraction, 0.02+float64(difficulty)*0.008)
	coverCount := min(
		int(math.Floor(float64(playableArea)*coverFraction)),
		max(0, playableArea-b.ObstacleCount()-1),
	)
	for i := 0; i < coverCount; i++ {
		x := rnd.intn(width)
		y := 2 + rnd.intn(playableRows)
		if x >= width || y >= height-2 {
			continue
		}
		if !b.HasObstacle(x, y) && !b.HasCover(x, y) {
			b.AddCover(x, y)
		}
	}
	return b
}
