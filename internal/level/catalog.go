package level

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"chesstactics/internal/tactics"
)

var ErrUnknownLevel = errors.New("unknown level")

// Catalog is the campaign: numbered levels (1-based) plus tutorial pages
// (0-based).
type Catalog struct {
	Levels    []Definition `yaml:"levels" json:"levels"`
	Tutorials []Definition `yaml:"tutorials" json:"tutorials"`
}

func (c *Catalog) Level(n int) (Definition, error) {
	if n < 1 || n > len(c.Levels) {
		return Definition{}, fmt.Errorf("level %d: %w", n, ErrUnknownLevel)
	}
	return c.Levels[n-1], nil
}

func (c *Catalog) Tutorial(page int) (Definition, error) {
	if page < 0 || page >= len(c.Tutorials) {
		return Definition{}, fmt.Errorf("tutorial page %d: %w", page, ErrUnknownLevel)
	}
	return c.Tutorials[page], nil
}

// HasNext reports whether a level follows n.
func (c *Catalog) HasNext(n int) bool { return n >= 1 && n < len(c.Levels) }

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

func LoadCatalog(path string) (*Catalog, error) {
	var c Catalog
	if err := loadYAML(path, &c); err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	if len(c.Levels) == 0 && len(c.Tutorials) == 0 {
		return nil, fmt.Errorf("load catalog %s: no levels", path)
	}
	return &c, nil
}

func (c *Catalog) Marshal() ([]byte, error) { return yaml.Marshal(c) }

func (c *Catalog) Save(path string) error {
	b, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

const (
	pawn   = tactics.Pawn
	rook   = tactics.Rook
	bishop = tactics.Bishop
	knight = tactics.Knight
	queen  = tactics.Queen
	king   = tactics.King
)

func roster(a ...tactics.Archetype) []tactics.Archetype { return a }

func opt(text string, kind ObjectiveKind, value int) OptionalObjective {
	return OptionalObjective{Text: text, Kind: kind, Value: value}
}

var (
	objAll  = []string{"Eliminate all enemy units."}
	objBoss = []string{"Defeat the boss."}
)

func eliminateAll() OptionalObjective {
	return opt("Eliminate all enemy units", ObjectiveEliminateAll, 0)
}

func noUnitsLost() OptionalObjective {
	return opt("No units lost", ObjectiveNoUnitsLost, 0)
}

func withinTurns(n int) OptionalObjective {
	return opt(fmt.Sprintf("Complete in %d turns or fewer", n), ObjectiveMaxTurns, n)
}

func boolPtr(v bool) *bool { return &v }

// DefaultCatalog returns a fresh copy of the built-in campaign.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Levels: []Definition{
			{
				Name: "The Knight's Trial", Width: 8, Height: 6, Difficulty: 0, Shape: tactics.ShapeArena,
				BossType: knight, BossName: "Rourke the Knight of Asteria",
				PlayerRoster:       roster(pawn, pawn, knight),
				EnemyRoster:        roster(knight, pawn, pawn),
				Objectives:         objBoss,
				OptionalObjectives: []OptionalObjective{eliminateAll(), withinTurns(6)},
			},
			{
				Name: "First Steps", Width: 9, Height: 7, Difficulty: 1, Shape: tactics.ShapeNormal,
				PlayerRoster:       roster(pawn, knight),
				EnemyRoster:        roster(pawn, pawn, pawn, knight, knight),
				Objectives:         objAll,
				OptionalObjectives: []OptionalObjective{withinTurns(8), noUnitsLost()},
			},
			{
				Name: "Reinforcements", Width: 11, Height: 8, Difficulty: 1, Shape: tactics.ShapeNormal,
				PlayerRoster:       roster(pawn, knight, bishop),
				EnemyRoster:        roster(pawn, pawn, knight, knight, bishop, pawn),
				Objectives:         objAll,
				OptionalObjectives: []OptionalObjective{withinTurns(10)},
			},
			{
				Name: "The Bishop's Gambit", Width: 10, Height: 8, Difficulty: 2, Shape: tactics.ShapeArena,
				BossType: bishop, BossName: "Valdris the Shadow Bishop", ShadowBishop: true,
				PlayerRoster:       roster(pawn, knight, bishop),
				EnemyRoster:        roster(bishop, pawn, pawn, knight),
				Objectives:         objBoss,
				OptionalObjectives: []OptionalObjective{eliminateAll(), noUnitsLost()},
			},
			{
				Name: "Hold the Line", Width: 13, Height: 9, Difficulty: 2, Shape: tactics.ShapeNormal,
				PlayerRoster:       roster(pawn, pawn, knight, bishop),
				EnemyRoster:        roster(pawn, pawn, pawn, knight, knight, bishop, bishop),
				Objectives:         objAll,
				OptionalObjectives: []OptionalObjective{withinTurns(12)},
			},
			{
				Name: "Heavy Support", Width: 15, Height: 10, Difficulty: 2, Shape: tactics.ShapeNormal,
				PlayerRoster:       roster(pawn, pawn, knight, bishop, rook),
				EnemyRoster:        roster(pawn, pawn, pawn, knight, bishop, bishop, rook, pawn),
				Objectives:         objAll,
				OptionalObjectives: []OptionalObjective{withinTurns(14), noUnitsLost()},
			},
			{
				Name: "Tower's Wrath", Width: 12, Height: 9, Difficulty: 3, Shape: tactics.ShapeArena,
				BossType: rook, BossName: "Torvald the Iron Tower",
				PlayerRoster:       roster(pawn, pawn, knight, bishop, rook),
				EnemyRoster:        roster(rook, rook, bishop, pawn, pawn, knight),
				Objectives:         objBoss,
				OptionalObjectives: []OptionalObjective{eliminateAll(), withinTurns(10)},
			},
			{
				Name: "Royal Power", Width: 17, Height: 11, Difficulty: 3, Shape: tactics.ShapeNormal,
				PlayerRoster:       roster(pawn, pawn, knight, bishop, rook, queen),
				EnemyRoster:        roster(pawn, pawn, pawn, knight, bishop, rook, rook, queen, pawn),
				Objectives:         objAll,
				OptionalObjectives: []OptionalObjective{withinTurns(15)},
			},
			{
				Name: "Crown Guard", Width: 19, Height: 12, Difficulty: 3, Shape: tactics.ShapeNormal,
				PlayerRoster:       roster(pawn, pawn, knight, bishop, rook, queen, king),
				EnemyRoster:        roster(pawn, pawn, pawn, knight, bishop, rook, queen, queen, king, pawn),
				Objectives:         objAll,
				OptionalObjectives: []OptionalObjective{noUnitsLost()},
			},
			{
				Name: "The Queen's Fury", Width: 14, Height: 10, Difficulty: 4, Shape: tactics.ShapeArena,
				BossType: queen, BossName: "Morana the Crimson Queen",
				PlayerRoster:       roster(pawn, pawn, knight, bishop, rook, queen, king),
				EnemyRoster:        roster(queen, rook, bishop, knight, pawn, pawn),
				Objectives:         objBoss,
				OptionalObjectives: []OptionalObjective{eliminateAll(), withinTurns(12)},
			},
			{
				Name: "The King's Decree", Width: 8, Height: 10, Difficulty: 5, Shape: tactics.ShapeNormal,
				BossType: king, BossName: "Aldric the Eternal King",
				EnemyFormation:     FormationChess,
				PlayerRoster:       roster(pawn, pawn, knight, bishop, rook, queen, king),
				Objectives:         objBoss,
				OptionalObjectives: []OptionalObjective{eliminateAll()},
			},
		},
		Tutorials: []Definition{
			{
				Name: "Close Range Combat", Width: 6, Height: 6, Shape: tactics.ShapeTutorial,
				Units: []Placement{
					{Archetype: pawn, Side: tactics.Player, X: 2, Y: 5},
					{Archetype: pawn, Side: tactics.Enemy, X: 3, Y: 4},
				},
				SkipEnemyPhase: true,
				Objectives:     []string{"Attack the enemy pawn on the diagonal.", "Eliminate all enemies."},
			},
			{
				Name: "Ranged Combat", Width: 8, Height: 6, Shape: tactics.ShapeTutorial,
				Units: []Placement{
					{Archetype: knight, Side: tactics.Player, X: 2, Y: 5},
					{Archetype: knight, Side: tactics.Enemy, X: 4, Y: 3},
				},
				SkipEnemyPhase: true,
				Objectives:     []string{"Use your knight's L-shape attack to hit the enemy from range.", "Eliminate the enemy knight."},
			},
			{
				Name: "Defend", Width: 8, Height: 6, Shape: tactics.ShapeTutorial,
				// walls the rook can hide behind from the knights' L-shaped attacks
				Layout: "8/8/2#1#3/3#1#2/2#1#3/8",
				Units:  []Placement{
					{Archetype: rook, Side: tactics.Player, X: 4, Y: 5, CanAttack: boolPtr(false)},
					{Archetype: knight, Side: tactics.Enemy, X: 1, Y: 0},
					{Archetype: knight, Side: tactics.Enemy, X: 6, Y: 0},
				},
				SurviveTurns: 5,
				Objectives:   []string{"Survive for 5 turns. Your rook can only move (no attack). Use obstacles to avoid the knights' L-shaped attacks."},
			},
		},
	}
}
