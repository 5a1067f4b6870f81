package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"chesstactics/internal/level"
	"chesstactics/internal/tactics"
)

var glyphs = map[tactics.Archetype]byte{
	tactics.Pawn:   'p',
	tactics.Rook:   'r',
	tactics.Bishop: 'b',
	tactics.Knight: 'n',
	tactics.Queen:  'q',
	tactics.King:   'k',
}

// render draws the board top row first: player units upper case, enemies
// lower case, '#' obstacle, '+' cover.
func render(g *tactics.Game) string {
	var sb strings.Builder
	for y := 0; y < g.Board.Height; y++ {
		for x := 0; x < g.Board.Width; x++ {
			ch := byte('.')
			switch u := g.UnitAt(x, y); {
			case u != nil:
				ch = glyphs[u.Archetype]
				if u.Side == tactics.Player {
					ch -= 'a' - 'A'
				}
			case g.Board.HasObstacle(x, y):
				ch = '#'
			case g.Board.HasCover(x, y):
				ch = '+'
			}
			sb.WriteByte(ch)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func main() {
	n := flag.Int("level", 1, "campaign level (1-based)")
	page := flag.Int("tutorial", -1, "tutorial page (0-based); overrides -level")
	catalogPath := flag.String("catalog", "", "YAML level catalog (default: built-in)")
	flag.Parse()

	c := level.DefaultCatalog()
	if *catalogPath != "" {
		var err error
		if c, err = level.LoadCatalog(*catalogPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	var (
		s   *level.Setup
		err error
	)
	if *page >= 0 {
		s, err = c.BuildTutorial(*page)
	} else {
		s, err = c.BuildLevel(*n)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	g := s.NewGame()

	fmt.Printf("Name:        %s\n", s.Name)
	fmt.Printf("Size:        %dx%d  seed=%d  boss=%v  enemy_ap=%d\n",
		s.Board.Width, s.Board.Height, s.Seed, g.IsBossLevel(), g.EnemyAPMax)
	fmt.Printf("Layout:      %s\n", s.Board.Encode())
	fmt.Printf("Fingerprint: %016x\n", s.Board.Fingerprint())
	fmt.Printf("Obstacles:   %d  Cover: %d\n\n", s.Board.ObstacleCount(), s.Board.CoverCount())
	fmt.Print(render(g))
	fmt.Println()
	for _, u := range g.Units() {
		fmt.Printf("%-10s %-6s %-7s %-8v hp=%-2d atk=%d def=%d  %s\n",
			u.ID, u.Side, u.Archetype, u.Pos, u.Health, u.Attack, u.Defense, u.DisplayName())
	}
	for _, o := range s.Objectives {
		fmt.Println("Objective:", o)
	}
	for _, o := range s.OptionalObjectives {
		fmt.Println("Optional: ", o.Text)
	}
}
