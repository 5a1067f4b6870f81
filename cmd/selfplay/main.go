package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"chesstactics/internal/engine"
	"chesstactics/internal/level"
	"chesstactics/internal/logging"
	"chesstactics/internal/tactics"
)

type runResult struct {
	Number int
	Name   string
	Phase  tactics.Phase
	Result level.Result
	Nodes  int64
}

// parseLevels accepts "all", a single number, a range "3-7" or a comma list.
func parseLevels(spec string, total int) ([]int, error) {
	if spec == "" || spec == "all" {
		out := make([]int, total)
		for i := range out {
			out[i] = i + 1
		}
		return out, nil
	}
	var out []int
	for _, part := range strings.Split(spec, ",") {
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", part, err)
		}
		b := a
		if isRange {
			if b, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("level %q: %w", part, err)
			}
		}
		for n := a; n <= b; n++ {
			out = append(out, n)
		}
	}
	return out, nil
}

// playLevel runs autopilot against the enemy AI until the level ends or
// maxTurns is reached.
func playLevel(ctx context.Context, c *level.Catalog, n, maxTurns int, log *zap.Logger) (runResult, error) {
	setup, err := c.BuildLevel(n)
	if err != nil {
		return runResult{}, err
	}
	ai := engine.NewEngine(engine.WithLogger(log))
	g := setup.NewGame()
	g.SetPlanner(ai)
	g.SetLogger(log)

	for !g.Phase.Terminal() && g.Turn <= maxTurns {
		if err := ctx.Err(); err != nil {
			return runResult{}, err
		}
		ai.PlayPlayerTurn(g)
		if g.Phase == tactics.EnemyTurn {
			g.RunEnemyPhase()
		}
		g.DrainEvents()
	}
	return runResult{
		Number: n,
		Name:   setup.Name,
		Phase:  g.Phase,
		Result: level.Evaluate(setup.Def, g),
		Nodes:  ai.Nodes(),
	}, nil
}

func main() {
	levelsFlag := flag.String("levels", "all", `levels to play: "all", "3", "1-5" or "1,4,7"`)
	catalogPath := flag.String("catalog", "", "YAML level catalog (default: built-in)")
	maxTurns := flag.Int("maxturns", 60, "give up after this many turns")
	parallel := flag.Int("parallel", 4, "levels played concurrently")
	bench := flag.Int("bench", 0, "if > 0, benchmark this many enemy phases per level instead")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	log := logging.Must(*logLevel, "console")
	defer func() { _ = log.Sync() }()

	c := level.DefaultCatalog()
	if *catalogPath != "" {
		var err error
		if c, err = level.LoadCatalog(*catalogPath); err != nil {
			log.Fatal("catalog", zap.Error(err))
		}
	}
	nums, err := parseLevels(*levelsFlag, len(c.Levels))
	if err != nil {
		log.Fatal("levels", zap.Error(err))
	}

	if *bench > 0 {
		runBenchmark(c, nums, *bench, log)
		return
	}

	results := make([]runResult, len(nums))
	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(max(1, *parallel))
	for i, n := range nums {
		i, n := i, n
		eg.Go(func() error {
			r, err := playLevel(ctx, c, n, *maxTurns, log.With(zap.Int("level", n)))
			if err != nil {
				return fmt.Errorf("level %d: %w", n, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Error("selfplay", zap.Error(err))
		os.Exit(1)
	}

	wins := 0
	for _, r := range results {
		if r.Phase == tactics.Victory {
			wins++
		}
		fmt.Printf("Level %2d %-22s %-12s turns=%-3d ap=%-4d lost=%d score=%-4d level_score=%-4d perfect=%v nodes=%d\n",
			r.Number, r.Name, r.Phase, r.Result.Turns, r.Result.TotalAPSpent, len(r.Result.UnitsLost),
			r.Result.Score, r.Result.LevelScore, r.Result.Perfect, r.Nodes)
		for _, o := range r.Result.Optional {
			mark := "x"
			if o.Met {
				mark = "ok"
			}
			fmt.Printf("         [%s] %s\n", mark, o.Text)
		}
	}
	fmt.Printf("\n=== %d/%d levels won by autopilot ===\n", wins, len(results))
}
