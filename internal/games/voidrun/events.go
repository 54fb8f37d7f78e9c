package voidrun

import "github.com/vovakirdan/voidrun/internal/profile"

// EventKind identifies a progression event reported to the platform.
type EventKind int

const (
	EventLevelStart EventKind = iota
	EventBossSpawned
	EventLevelUp
	EventPerkChosen
	EventLevelEnd
	EventChestOpened
)

func (k EventKind) String() string {
	switch k {
	case EventLevelStart:
		return "level_start"
	case EventBossSpawned:
		return "boss_spawned"
	case EventLevelUp:
		return "level_up"
	case EventPerkChosen:
		return "perk_chosen"
	case EventLevelEnd:
		return "level_end"
	case EventChestOpened:
		return "chest_opened"
	default:
		return "unknown"
	}
}

// Event is emitted by the simulation and drained by the platform.
// Delta is set on EventLevelEnd and EventChestOpened; it has already been
// applied to the bound profile and only needs persisting.
type Event struct {
	Kind   EventKind
	Stage  int
	Level  int
	Arena  bool
	Perk   PerkID
	Value  int // XP level for EventLevelUp, perk level for EventPerkChosen
	Delta  *profile.LevelDelta
	Result *LevelResult
	Reward *ChestReward
}

// LevelResult summarizes a finished level.
type LevelResult struct {
	RunID   string
	Stage   int
	Level   int
	Won     bool
	Weapon  string
	Kills   int
	Elapsed float64
	XPLevel int
	Coins   int // Credited to the profile after retention
	Gems    int
}

func (s *Sim) emit(e Event) {
	s.events = append(s.events, e)
}

// DrainEvents returns and clears the pending events.
func (s *Sim) DrainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}
