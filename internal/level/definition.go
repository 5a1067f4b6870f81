package level

import "chesstactics/internal/tactics"

type ObjectiveKind string

const (
	ObjectiveEliminateAll ObjectiveKind = "eliminateAll"
	ObjectiveMaxTurns     ObjectiveKind = "maxTurns"
	ObjectiveNoUnitsLost  ObjectiveKind = "noUnitsLost"
	ObjectiveDefeatBoss   ObjectiveKind = "defeatBoss"
)

type OptionalObjective struct {
	Text  string        `yaml:"text" json:"text"`
	Kind  ObjectiveKind `yaml:"type" json:"type"`
	Value int           `yaml:"value,omitempty" json:"value,omitempty"`
}

// Placement pins one unit to a tile; scripted levels use it instead of
// spawn picking.
type Placement struct {
	Archetype tactics.Archetype `yaml:"archetype" json:"archetype"`
	Side      tactics.Side      `yaml:"side" json:"side"`
	X         int               `yaml:"x" json:"x"`
	Y         int               `yaml:"y" json:"y"`
	CanAttack *bool             `yaml:"can_attack,omitempty" json:"can_attack,omitempty"`
}

// Definition describes one campaign level or tutorial page.
type Definition struct {
	Name       string        `yaml:"name" json:"name"`
	Width      int           `yaml:"width" json:"width"`
	Height     int           `yaml:"height" json:"height"`
	Difficulty int           `yaml:"difficulty" json:"difficulty"`
	Shape      tactics.Shape `yaml:"shape" json:"shape"`
	// Seed overrides the default seed (the level number).
	Seed *int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
	// Layout replaces generation with a fixed board.
	Layout string `yaml:"layout,omitempty" json:"layout,omitempty"`

	BossType     tactics.Archetype `yaml:"boss_type,omitempty" json:"boss_type,omitempty"`
	BossName     string            `yaml:"boss_name,omitempty" json:"boss_name,omitempty"`
	ShadowBishop bool              `yaml:"shadow_bishop,omitempty" json:"shadow_bishop,omitempty"`

	// EnemyFormation "chess" ignores EnemyRoster and lines the enemy up
	// as a chess army.
	EnemyFormation string              `yaml:"enemy_formation,omitempty" json:"enemy_formation,omitempty"`
	PlayerRoster   []tactics.Archetype `yaml:"player_roster,omitempty" json:"player_roster,omitempty"`
	EnemyRoster    []tactics.Archetype `yaml:"enemy_roster,omitempty" json:"enemy_roster,omitempty"`
	Units          []Placement         `yaml:"units,omitempty" json:"units,omitempty"`

	SurviveTurns   int  `yaml:"survive_turns,omitempty" json:"survive_turns,omitempty"`
	SkipEnemyPhase bool `yaml:"skip_enemy_phase,omitempty" json:"skip_enemy_phase,omitempty"`

	Objectives         []string            `yaml:"objectives" json:"objectives"`
	OptionalObjectives []OptionalObjective `yaml:"optional_objectives,omitempty" json:"optional_objectives,omitempty"`
}

// IsBoss reports whether the definition asks for a boss. The built level
// only becomes a boss level when a matching enemy exists.
func (d Definition) IsBoss() bool { return d.BossType != tactics.ArchetypeUnknown }

// TurnLimit is the maxTurns optional objective, or 0.
func (d Definition) TurnLimit() int {
	for _, o := range d.OptionalObjectives {
		if o.Kind == ObjectiveMaxTurns {
			return o.Value
		}
	}
	return 0
}
