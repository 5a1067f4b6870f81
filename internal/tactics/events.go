package tactics

type EventKind string

const (
	EventMove        EventKind = "move"
	EventAttack      EventKind = "attack"
	EventAreaBlast   EventKind = "area_blast"
	EventLineAttack  EventKind = "line_attack"
	EventColorSwitch EventKind = "color_switch"
	EventRetreat     EventKind = "retreat"
	EventPhase       EventKind = "phase"
)

// Event is the presentation side channel: renderers replay these to
// animate what the engine already applied.
type Event struct {
	Kind    EventKind `json:"kind"`
	Turn    int       `json:"turn"`
	Phase   Phase     `json:"phase"`
	Actor   string    `json:"actor,omitempty"`
	Target  string    `json:"target,omitempty"`
	Victims []string  `json:"victims,omitempty"`
	From    Coord     `json:"from"`
	To      Coord     `json:"to"`
	Damage  int       `json:"damage,omitempty"`
	// Ranged selects the projectile effect over the melee slash.
	Ranged bool `json:"ranged,omitempty"`
}

func (g *Game) emit(e Event) {
	e.Turn = g.Turn
	g.events = append(g.events, e)
}

// Events returns the buffered events without consuming them.
func (g *Game) Events() []Event { return append([]Event(nil), g.events...) }

// DrainEvents returns and clears the buffered events.
func (g *Game) DrainEvents() []Event {
	out := g.events
	g.events = nil
	return out
}

// rangedEffect is false only for adjacent non-knight attacks.
func rangedEffect(attacker *Unit, target Coord) bool {
	return !(Chebyshev(attacker.Pos, target) <= 1 && attacker.Archetype != Knight)
}
