package tactics

import (
	"math"
	"strings"
	"testing"
)

func TestGenerateLevelDeterministic(t *testing.T) {
	for _, shape := range []Shape{ShapeNormal, ShapeArena} {
		for seed := int64(1); seed <= 11; seed++ {
			a := GenerateLevel(10, 12, int(seed), seed, shape)
			b := GenerateLevel(10, 12, int(seed), seed, shape)
			if a.Encode() != b.Encode() {
				t.Fatalf("shape=%s seed=%d: layouts differ\n%s\n%s", shape, seed, a.Encode(), b.Encode())
			}
			if a.Fingerprint() != b.Fingerprint() {
				t.Fatalf("shape=%s seed=%d: fingerprints differ", shape, seed)
			}
		}
	}
}

func TestGenerateLevelSpawnRowsClear(t *testing.T) {
	for seed := int64(0); seed < 40; seed++ {
		for _, shape := range []Shape{ShapeNormal, ShapeArena} {
			b := GenerateLevel(8+int(seed%5), 8+int(seed%7), int(seed%10), seed, shape)
			for _, y := range []int{0, 1, b.Height - 2, b.Height - 1} {
				for x := 0; x < b.Width; x++ {
					if b.HasObstacle(x, y) || b.HasCover(x, y) {
						t.Fatalf("seed=%d shape=%s: spawn row %d has terrain at x=%d", seed, shape, y, x)
					}
				}
			}
		}
	}
}

func TestGenerateLevelObstacleCap(t *testing.T) {
	for seed := int64(0); seed < 60; seed++ {
		w, h := 8+int(seed%6), 8+int(seed%9)
		b := GenerateLevel(w, h, 20, seed, ShapeNormal)
		limit := int(math.Ceil(0.18 * float64((h-4)*w)))
		if b.ObstacleCount() > limit {
			t.Fatalf("seed=%d %dx%d: %d obstacles, cap %d", seed, w, h, b.ObstacleCount(), limit)
		}
	}
}

func TestGenerateLevelCoverAvoidsObstacles(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		b := GenerateLevel(12, 12, 10, seed, ShapeNormal)
		for _, c := range b.Cover() {
			if b.HasObstacle(c.X, c.Y) {
				t.Fatalf("seed=%d: cover on obstacle at %v", seed, c)
			}
		}
	}
}

func TestGenerateLevelTutorialIsEmpty(t *testing.T) {
	b := GenerateLevel(8, 6, 5, 3, ShapeTutorial)
	if b.ObstacleCount() != 0 || b.CoverCount() != 0 {
		t.Fatalf("tutorial board has terrain: %s", b.Encode())
	}
}

func TestGenerateLevelArenaColumns(t *testing.T) {
	b := GenerateLevel(10, 10, 1, 7, ShapeArena)
	for y := 2; y < 8; y++ {
		if !b.HasObstacle(0, y) || !b.HasObstacle(9, y) {
			t.Fatalf("arena column missing at row %d", y)
		}
	}
}

func TestLCGMatchesReference(t *testing.T) {
	r := newLCG(1)
	// (1*1103515245 + 12345) & 0x7fffffff
	want := float64((1*1103515245+12345)&0x7fffffff) / 0x7fffffff
	if got := r.Float64(); got != want {
		t.Fatalf("first draw=%v want %v", got, want)
	}
}

func TestPawnSpawnValid(t *testing.T) {
	b := NewBoard(6, 6)
	b.AddObstacle(2, 4)
	if PawnSpawnValid(b, 2, 5, Player) {
		t.Fatalf("player pawn with blocked forward tile reported valid")
	}
	if !PawnSpawnValid(b, 3, 5, Player) {
		t.Fatalf("player pawn with open forward tile reported invalid")
	}
	if PawnSpawnValid(b, 0, 0, Player) {
		t.Fatalf("player pawn on top edge has no forward tile")
	}
	if !PawnSpawnValid(b, 0, 0, Enemy) {
		t.Fatalf("enemy pawn at top with open forward tile reported invalid")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	b := GenerateLevel(11, 13, 6, 9, ShapeArena)
	b.AddCover(5, 2)
	d, err := DecodeBoard(b.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Width != b.Width || d.Height != b.Height {
		t.Fatalf("size %dx%d, want %dx%d", d.Width, d.Height, b.Width, b.Height)
	}
	if d.Fingerprint() != b.Fingerprint() {
		t.Fatalf("fingerprint mismatch after round trip:\n%s\n%s", b.Encode(), d.Encode())
	}
}

func TestDecodeBoard(t *testing.T) {
	b, err := DecodeBoard("8/8/2#2#2/8/1+6/8")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Width != 8 || b.Height != 6 {
		t.Fatalf("size %dx%d", b.Width, b.Height)
	}
	if !b.HasObstacle(2, 2) || !b.HasObstacle(5, 2) || b.ObstacleCount() != 2 {
		t.Fatalf("obstacles = %v", b.Obstacles())
	}
	if !b.HasCover(1, 4) {
		t.Fatalf("cover = %v", b.Cover())
	}

	long := strings.Repeat("8/", MaxBoardSide) + "8"
	wide := strings.Repeat("#", MaxBoardSide+1)
	for _, bad := range []string{"", "8/7", "3x4", "0", "99999999999999999", "65", "64#", wide, long} {
		if _, err := DecodeBoard(bad); err != ErrInvalidLayout {
			t.Fatalf("DecodeBoard(%q) err=%v, want ErrInvalidLayout", bad, err)
		}
	}
}

func TestFingerprintDistinguishesTerrain(t *testing.T) {
	a := NewBoard(8, 8)
	b := NewBoard(8, 8)
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("empty boards differ")
	}
	a.AddObstacle(3, 3)
	b.AddCover(3, 3)
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("obstacle and cover on the same tile share a fingerprint")
	}
	if NewBoard(8, 9).Fingerprint() == NewBoard(9, 8).Fingerprint() {
		t.Fatalf("transposed sizes share a fingerprint")
	}
}
