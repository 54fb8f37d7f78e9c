package voidrun

import (
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

// HUD is the read-only per-frame view for the interface.
type HUD struct {
	HP          float64
	MaxHP       float64
	XP          int
	XPNeed      int
	XPLevel     int
	Coins       int
	Gems        int
	Elapsed     float64
	Target      float64 // Survival goal in seconds, 0 on the boss level
	Kills       int
	Stage       int
	Level       int
	Arena       bool
	Phase       Phase
	BossHP      float64 // Fraction of boss health left, -1 when no boss is alive
	ShieldReady bool
	Weapon      string
}

// HUD returns the current HUD values.
func (s *Sim) HUD() HUD {
	h := HUD{
		HP:          s.Player.HP,
		MaxHP:       s.Player.MaxHP,
		XP:          s.XP.Cur,
		XPNeed:      s.XP.Need,
		XPLevel:     s.XP.Level,
		Coins:       s.Player.Coins,
		Gems:        s.Player.Gems,
		Elapsed:     s.Wave.Elapsed,
		Kills:       s.Player.Kills,
		Stage:       s.Stage,
		Level:       s.Level,
		Arena:       s.Arena,
		Phase:       s.Phase,
		BossHP:      -1,
		ShieldReady: s.perk(PerkShield) > 0 && s.Timers.ShieldReady,
		Weapon:      s.Player.Weapon,
	}
	if !s.IsBossLevel() {
		h.Target = s.diff.TargetDuration(s.Tier)
	}
	if b := s.boss(); b != nil {
		h.BossHP = b.HP / b.MaxHP
	}
	return h
}

func (s *Sim) boss() *Enemy {
	if s.Wave.BossID == 0 {
		return nil
	}
	for _, e := range s.Enemies {
		if e.ID == s.Wave.BossID && e.Alive() {
			return e
		}
	}
	return nil
}

// EnemySnap is the serialized form of an enemy.
type EnemySnap struct {
	ID   int       `msgpack:"id"`
	Kind EnemyKind `msgpack:"kind"`
	X    float64   `msgpack:"x"`
	Y    float64   `msgpack:"y"`
	HP   float64   `msgpack:"hp"`
	Slow float64   `msgpack:"slow"`
}

// Snapshot is a serializable view of the simulation used for determinism
// checks and headless dumps. The run id is left out so two runs with the
// same seed and input produce the same snapshot.
type Snapshot struct {
	Tick        uint64         `msgpack:"tick"`
	Phase       Phase          `msgpack:"phase"`
	Stage       int            `msgpack:"stage"`
	Level       int            `msgpack:"level"`
	Arena       bool           `msgpack:"arena"`
	PlayerX     float64        `msgpack:"px"`
	PlayerY     float64        `msgpack:"py"`
	PlayerHP    float64        `msgpack:"php"`
	PlayerMaxHP float64        `msgpack:"pmaxhp"`
	Coins       int            `msgpack:"coins"`
	Gems        int            `msgpack:"gems"`
	Kills       int            `msgpack:"kills"`
	XP          XPState        `msgpack:"xp"`
	Perks       map[PerkID]int `msgpack:"perks"`
	Elapsed     float64        `msgpack:"elapsed"`
	SpawnT      float64        `msgpack:"spawn_t"`
	BossSpawned bool           `msgpack:"boss_spawned"`
	Enemies     []EnemySnap    `msgpack:"enemies"`
	Projectiles int            `msgpack:"projectiles"`
	Pickups     int            `msgpack:"pickups"`
	Effects     map[string]int `msgpack:"effects"`
}

// Snapshot captures the current state.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.Tick,
		Phase:       s.Phase,
		Stage:       s.Stage,
		Level:       s.Level,
		Arena:       s.Arena,
		PlayerX:     s.Player.Pos.X,
		PlayerY:     s.Player.Pos.Y,
		PlayerHP:    s.Player.HP,
		PlayerMaxHP: s.Player.MaxHP,
		Coins:       s.Player.Coins,
		Gems:        s.Player.Gems,
		Kills:       s.Player.Kills,
		XP:          s.XP,
		Perks:       make(map[PerkID]int, len(s.Player.Perks)),
		Elapsed:     s.Wave.Elapsed,
		SpawnT:      s.Wave.SpawnT,
		BossSpawned: s.Wave.BossSpawned,
		Enemies:     make([]EnemySnap, 0, len(s.Enemies)),
		Projectiles: len(s.Projectiles),
		Pickups:     len(s.Pickups),
		Effects:     make(map[string]int),
	}
	for id, lv := range s.Player.Perks {
		if lv > 0 {
			snap.Perks[id] = lv
		}
	}
	for _, e := range s.Enemies {
		snap.Enemies = append(snap.Enemies, EnemySnap{ID: e.ID, Kind: e.Kind, X: e.Pos.X, Y: e.Pos.Y, HP: e.HP, Slow: e.Slow})
	}
	for _, fx := range s.Effects {
		snap.Effects[fx.Kind.String()]++
	}
	return snap
}

// Encode serializes the snapshot with msgpack.
func (snap Snapshot) Encode() ([]byte, error) {
	b, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("voidrun: encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses a snapshot produced by Encode.
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("voidrun: decode snapshot: %w", err)
	}
	return snap, nil
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) { h = h*31 + v }
	mixF := func(f float64) { mix(math.Float64bits(f)) }

	mix(uint64(snap.Phase)) //#nosec G115 -- hash computation
	mix(uint64(snap.Stage)) //#nosec G115 -- hash computation
	mix(uint64(snap.Level)) //#nosec G115 -- hash computation
	mixF(snap.PlayerX)
	mixF(snap.PlayerY)
	mixF(snap.PlayerHP)
	mix(uint64(snap.Coins))       //#nosec G115 -- hash computation
	mix(uint64(snap.Gems))        //#nosec G115 -- hash computation
	mix(uint64(snap.Kills))       //#nosec G115 -- hash computation
	mix(uint64(snap.XP.Cur))      //#nosec G115 -- hash computation
	mix(uint64(snap.XP.Level))    //#nosec G115 -- hash computation
	mix(uint64(snap.Projectiles)) //#nosec G115 -- hash computation
	mix(uint64(snap.Pickups))     //#nosec G115 -- hash computation
	mixF(snap.Elapsed)

	for _, e := range snap.Enemies {
		mix(uint64(e.ID)) //#nosec G115 -- hash computation
		mixF(e.X)
		mixF(e.Y)
		mixF(e.HP)
	}
	return h
}
