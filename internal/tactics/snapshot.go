package tactics

type UnitState struct {
	ID           string    `json:"id"`
	Archetype    Archetype `json:"archetype"`
	Side         Side      `json:"side"`
	Pos          Coord     `json:"pos"`
	Health       int       `json:"health"`
	MaxHealth    int       `json:"max_health"`
	Attack       int       `json:"attack"`
	Defense      int       `json:"defense"`
	IsBoss       bool      `json:"is_boss,omitempty"`
	Name         string    `json:"name"`
	ShadowBishop bool      `json:"shadow_bishop,omitempty"`
	BishopParity int       `json:"bishop_parity,omitempty"`
	CanAttack    bool      `json:"can_attack"`
	Selected     bool      `json:"selected,omitempty"`
	HasMoved     bool      `json:"has_moved,omitempty"`
	HasActed     bool      `json:"has_acted,omitempty"`
}

type BoardState struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	TileSize  int     `json:"tile_size"`
	Obstacles []Coord `json:"obstacles"`
	Cover     []Coord `json:"cover"`
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Board       BoardState  `json:"board"`
	Units       []UnitState `json:"units"`
	Turn        int         `json:"turn"`
	Phase       Phase       `json:"phase"`
	PlayerAP    int         `json:"player_ap"`
	PlayerAPMax int         `json:"player_ap_max"`
	EnemyAP     int         `json:"enemy_ap"`
	EnemyAPMax  int         `json:"enemy_ap_max"`
	Boss        bool        `json:"boss"`
	Selected    string      `json:"selected,omitempty"`
	ValidMoves  []Coord     `json:"valid_moves"`
	AttackRange []Coord     `json:"attack_range"`
	Score       ScoreResult `json:"score"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Board: BoardState{
			Width:     g.Board.Width,
			Height:    g.Board.Height,
			TileSize:  g.Board.TileSize,
			Obstacles: nonNil(g.Board.Obstacles()),
			Cover:     nonNil(g.Board.Cover()),
		},
		Turn:        g.Turn,
		Phase:       g.Phase,
		PlayerAP:    g.PlayerAP,
		PlayerAPMax: g.PlayerAPMax,
		EnemyAP:     g.EnemyAP,
		EnemyAPMax:  g.EnemyAPMax,
		Boss:        g.opts.Boss,
		Selected:    g.selected,
		ValidMoves:  nonNil(g.ValidMoves()),
		AttackRange: nonNil(g.AttackRange()),
		Score:       g.Score(),
	}
	for _, u := range g.Units() {
		s.Units = append(s.Units, UnitState{
			ID:           u.ID,
			Archetype:    u.Archetype,
			Side:         u.Side,
			Pos:          u.Pos,
			Health:       u.Health,
			MaxHealth:    u.MaxHealth,
			Attack:       u.Attack,
			Defense:      u.Defense,
			IsBoss:       u.IsBoss,
			Name:         u.DisplayName(),
			ShadowBishop: u.ShadowBishop,
			BishopParity: u.BishopParity,
			CanAttack:    u.CanAttack,
			Selected:     u.ID == g.selected,
			HasMoved:     u.HasMoved,
			HasActed:     u.HasActed,
		})
	}
	if s.Units == nil {
		s.Units = []UnitState{}
	}
	return s
}

func nonNil(cs []Coord) []Coord {
	if cs == nil {
		return []Coord{}
	}
	return cs
}
