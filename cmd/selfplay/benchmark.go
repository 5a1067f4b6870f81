package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"chesstactics/internal/engine"
	"chesstactics/internal/level"
	"chesstactics/internal/tactics"
)

// runBenchmark times the enemy AI: every level is built once and each round
// plays one enemy phase on a fresh game from the opening position.
func runBenchmark(c *level.Catalog, nums []int, rounds int, log *zap.Logger) {
	fmt.Printf("%-6s %-22s %8s %10s %12s %12s\n", "level", "name", "phases", "actions", "nodes", "per phase")
	for _, n := range nums {
		ai := engine.NewEngine()
		var (
			elapsed time.Duration
			actions int
		)
		setup, err := c.BuildLevel(n)
		if err != nil {
			log.Error("build", zap.Int("level", n), zap.Error(err))
			continue
		}
		for i := 0; i < rounds; i++ {
			g := setup.NewGame()
			g.SetPlanner(ai)
			if !g.EndPlayerTurn() || g.Phase != tactics.EnemyTurn {
				continue
			}
			start := time.Now()
			actions += len(g.RunEnemyPhase())
			elapsed += time.Since(start)
		}
		per := time.Duration(0)
		if rounds > 0 {
			per = elapsed / time.Duration(rounds)
		}
		fmt.Printf("%-6d %-22s %8d %10d %12d %12v\n", n, setup.Name, rounds, actions, ai.Nodes(), per)
	}
}
