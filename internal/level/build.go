package level

import (
	"errors"
	"fmt"
	"strings"

	"chesstactics/internal/tactics"
)

var ErrInvalidDefinition = errors.New("invalid level definition")

// Setup is a built level: board, roster and rules, ready to start a game.
// It owns its board and units, so build a fresh Setup for every game.
type Setup struct {
	Name     string
	Number   int // 1-based level number, 0 for tutorials
	Tutorial bool
	Page     int
	Seed     int64

	Board   *tactics.Board
	Units   []*tactics.Unit
	Options tactics.Options

	Objectives         []string
	OptionalObjectives []OptionalObjective

	Def Definition
}

// NewGame starts play on copies of the setup's board and units, so one
// setup can seed any number of games.
func (s *Setup) NewGame() *tactics.Game {
	units := make([]*tactics.Unit, len(s.Units))
	for i, u := range s.Units {
		units[i] = u.Clone()
	}
	return tactics.NewGame(s.Board.Clone(), units, s.Options)
}

func (c *Catalog) BuildLevel(n int) (*Setup, error) {
	def, err := c.Level(n)
	if err != nil {
		return nil, err
	}
	seed := int64(n)
	if def.Seed != nil {
		seed = *def.Seed
	}
	s, err := Build(def, seed)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", n, err)
	}
	s.Number = n
	return s, nil
}

func (c *Catalog) BuildTutorial(page int) (*Setup, error) {
	def, err := c.Tutorial(page)
	if err != nil {
		return nil, err
	}
	var seed int64
	if def.Seed != nil {
		seed = *def.Seed
	}
	s, err := Build(def, seed)
	if err != nil {
		return nil, fmt.Errorf("tutorial page %d: %w", page, err)
	}
	s.Tutorial = true
	s.Page = page
	return s, nil
}

func buildBoard(def Definition, seed int64) (*tactics.Board, error) {
	if def.Layout != "" {
		b, err := tactics.DecodeBoard(def.Layout)
		if err != nil {
			return nil, err
		}
		if (def.Width != 0 && b.Width != def.Width) || (def.Height != 0 && b.Height != def.Height) {
			return nil, fmt.Errorf("%w: layout is %dx%d, want %dx%d",
				ErrInvalidDefinition, b.Width, b.Height, def.Width, def.Height)
		}
		return b, nil
	}
	if def.Width < 1 || def.Height < 1 || def.Width > tactics.MaxBoardSide || def.Height > tactics.MaxBoardSide {
		return nil, fmt.Errorf("%w: board %dx%d", ErrInvalidDefinition, def.Width, def.Height)
	}
	shape := def.Shape
	if shape == "" {
		shape = tactics.ShapeNormal
	}
	return tactics.GenerateLevel(def.Width, def.Height, def.Difficulty, seed, shape), nil
}

// unitID names the n-th unit of a side: player_0, enemy_3, ...
func unitID(side tactics.Side, n int) string {
	return fmt.Sprintf("%s_%d", side, n)
}

func placeUnits(b *tactics.Board, def Definition) ([]*tactics.Unit, error) {
	var players, enemies []*tactics.Unit
	taken := make(map[tactics.Coord]bool)
	for _, p := range def.Units {
		c := tactics.Coord{X: p.X, Y: p.Y}
		if !b.InBounds(c.X, c.Y) || b.HasObstacle(c.X, c.Y) || taken[c] {
			return nil, fmt.Errorf("%w: cannot place %s at %s", ErrInvalidDefinition, p.Archetype, c)
		}
		if p.Archetype == tactics.ArchetypeUnknown {
			return nil, fmt.Errorf("%w: unit at %s has no archetype", ErrInvalidDefinition, c)
		}
		taken[c] = true
		var u *tactics.Unit
		if p.Side == tactics.Player {
			u = tactics.NewUnit(unitID(tactics.Player, len(players)), p.Archetype, p.Side, c)
			players = append(players, u)
		} else {
			u = tactics.NewUnit(unitID(tactics.Enemy, len(enemies)), p.Archetype, p.Side, c)
			enemies = append(enemies, u)
		}
		if p.CanAttack != nil {
			u.CanAttack = *p.CanAttack
		}
	}
	return append(players, enemies...), nil
}

func spawnUnits(b *tactics.Board, def Definition) []*tactics.Unit {
	var players, enemies []Spawn
	if def.EnemyFormation == FormationChess {
		players, _ = PickSpawns(b, def.PlayerRoster, nil)
		enemies = ChessFormation(b)
	} else {
		players, enemies = PickSpawns(b, def.PlayerRoster, def.EnemyRoster)
	}
	units := make([]*tactics.Unit, 0, len(players)+len(enemies))
	for i, s := range players {
		units = append(units, tactics.NewUnit(unitID(tactics.Player, i), s.Archetype, tactics.Player, s.Pos))
	}
	for i, s := range enemies {
		units = append(units, tactics.NewUnit(unitID(tactics.Enemy, i), s.Archetype, tactics.Enemy, s.Pos))
	}
	return units
}

// designateBoss promotes the first enemy of the boss archetype. It reports
// false when the roster has no such enemy.
func designateBoss(def Definition, units []*tactics.Unit) bool {
	if !def.IsBoss() {
		return false
	}
	for _, u := range units {
		if u.Side != tactics.Enemy || u.Archetype != def.BossType {
			continue
		}
		u.MakeBoss(def.BossName)
		if u.Archetype == tactics.Bishop &&
			(def.ShadowBishop || strings.Contains(strings.ToLower(def.BossName), "valdris")) {
			u.ShadowBishop = true
			u.BishopParity = 0
		}
		return true
	}
	return false
}

// Build turns a definition into a playable setup. Fixed placements win
// over roster spawning.
func Build(def Definition, seed int64) (*Setup, error) {
	b, err := buildBoard(def, seed)
	if err != nil {
		return nil, err
	}
	var units []*tactics.Unit
	if len(def.Units) > 0 {
		if units, err = placeUnits(b, def); err != nil {
			return nil, err
		}
	} else {
		units = spawnUnits(b, def)
	}

	opts := tactics.Options{
		Boss:           designateBoss(def, units),
		EnemyAP:        tactics.DefaultEnemyAP,
		SurviveTurns:   def.SurviveTurns,
		SkipEnemyPhase: def.SkipEnemyPhase,
	}
	if opts.Boss {
		opts.EnemyAP = tactics.DefaultBossLevelAP
	}

	objectives := def.Objectives
	if len(objectives) == 0 {
		objectives = objAll
		if opts.Boss {
			objectives = objBoss
		}
	}
	return &Setup{
		Name:               def.Name,
		Seed:               seed,
		Board:              b,
		Units:              units,
		Options:            opts,
		Objectives:         append([]string(nil), objectives...),
		OptionalObjectives: append([]OptionalObjective(nil), def.OptionalObjectives...),
		Def:                def,
	}, nil
}
