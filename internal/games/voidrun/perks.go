package voidrun

import (
	"fmt"
	"math"

	"github.com/vovakirdan/voidrun/internal/core"
)

// PerkID identifies a run perk.
type PerkID string

// Run perks. Levels reset at every level start.
const (
	PerkDamage    PerkID = "DMG"
	PerkFireRate  PerkID = "FIRE"
	PerkSpeed     PerkID = "SPD"
	PerkMaxHP     PerkID = "HP"
	PerkHealOnXP  PerkID = "HEAL"
	PerkSaw       PerkID = "SAW"
	PerkGrenade   PerkID = "GREN"
	PerkLightning PerkID = "LIT"
	PerkDrone     PerkID = "DRONE"
	PerkShield    PerkID = "SHIELD"
	PerkCrit      PerkID = "CRIT"
	PerkFrost     PerkID = "FROST"
	PerkPierce    PerkID = "PIERCE"
	PerkMulti     PerkID = "MULTI"
	PerkBlast     PerkID = "BLAST"
	PerkVamp      PerkID = "VAMP"
	PerkArmor     PerkID = "ARMOR"
	PerkMagnet    PerkID = "MAGNET"
)

// Fillers are offered when too few perks can still level up.
const (
	FillerHeal  PerkID = "PATCH"
	FillerCoins PerkID = "CACHE"
	FillerXP    PerkID = "INSIGHT"
)

// PerkKind groups perks by how applyPerk interprets them.
type PerkKind int

const (
	PerkKindStat PerkKind = iota
	PerkKindActive
	PerkKindWeapon
	PerkKindFiller
)

// PerkDef is a data-only perk descriptor.
type PerkDef struct {
	ID       PerkID
	Name     string
	Desc     string
	MaxLevel int // 0 for fillers, which have no level
	Kind     PerkKind
}

// PerkLevels maps acquired perks to their level. Missing means zero.
type PerkLevels map[PerkID]int

// PerkOffer is one level-up choice.
type PerkOffer struct {
	Perk  PerkDef
	Level int // Current level before taking it
}

var perkDefs = []PerkDef{
	{ID: PerkDamage, Name: "Damage +15%", Desc: "+15% damage this level", MaxLevel: 8, Kind: PerkKindStat},
	{ID: PerkFireRate, Name: "Fire rate +12%", Desc: "+12% fire rate", MaxLevel: 8, Kind: PerkKindStat},
	{ID: PerkSpeed, Name: "Speed +10%", Desc: "+10% move speed", MaxLevel: 5, Kind: PerkKindStat},
	{ID: PerkMaxHP, Name: "Max HP +20", Desc: "+20 max HP and heal 20", MaxLevel: 5, Kind: PerkKindStat},
	{ID: PerkHealOnXP, Name: "Vital orbs", Desc: "+1 HP per XP orb", MaxLevel: 3, Kind: PerkKindStat},
	{ID: PerkMagnet, Name: "Magnet", Desc: "+15% pickup radius", MaxLevel: 5, Kind: PerkKindStat},
	{ID: PerkArmor, Name: "Armor", Desc: "-6% damage taken", MaxLevel: 7, Kind: PerkKindStat},
	{ID: PerkVamp, Name: "Vampirism", Desc: "Heal 2% of damage dealt", MaxLevel: 5, Kind: PerkKindStat},
	{ID: PerkSaw, Name: "Orbit saws", Desc: "Spinning blades cut nearby enemies", MaxLevel: 5, Kind: PerkKindActive},
	{ID: PerkGrenade, Name: "Grenades", Desc: "Lob grenades into the crowd", MaxLevel: 5, Kind: PerkKindActive},
	{ID: PerkLightning, Name: "Lightning", Desc: "Strike the nearest enemies", MaxLevel: 8, Kind: PerkKindActive},
	{ID: PerkDrone, Name: "Drone", Desc: "A drone fires on its own", MaxLevel: 5, Kind: PerkKindActive},
	{ID: PerkShield, Name: "Shield", Desc: "Block one hit, then recharge", MaxLevel: 5, Kind: PerkKindActive},
	{ID: PerkFrost, Name: "Frost aura", Desc: "Slow enemies near you", MaxLevel: 6, Kind: PerkKindActive},
	{ID: PerkCrit, Name: "Crits", Desc: "+6% chance of double damage", MaxLevel: 7, Kind: PerkKindWeapon},
	{ID: PerkPierce, Name: "Pierce", Desc: "Shots pass through one more enemy", MaxLevel: 3, Kind: PerkKindWeapon},
	{ID: PerkMulti, Name: "Multishot", Desc: "+1 pellet per volley", MaxLevel: 3, Kind: PerkKindWeapon},
	{ID: PerkBlast, Name: "Blast rounds", Desc: "Shots burst on impact", MaxLevel: 5, Kind: PerkKindWeapon},
}

var fillerDefs = []PerkDef{
	{ID: FillerHeal, Name: "Patch up", Desc: "Restore 30% HP", Kind: PerkKindFiller},
	{ID: FillerCoins, Name: "Coin cache", Desc: "+15 coins", Kind: PerkKindFiller},
	{ID: FillerXP, Name: "Insight", Desc: "Half a level of XP", Kind: PerkKindFiller},
}

const (
	offerSize        = 3
	fillerHealFrac   = 0.30
	fillerCoinAmount = 15
)

// Perks returns every leveled perk definition.
func Perks() []PerkDef {
	out := make([]PerkDef, len(perkDefs))
	copy(out, perkDefs)
	return out
}

// Fillers returns the always-available filler rewards.
func Fillers() []PerkDef {
	out := make([]PerkDef, len(fillerDefs))
	copy(out, fillerDefs)
	return out
}

// LookupPerk finds a perk or filler by id.
func LookupPerk(id PerkID) (PerkDef, bool) {
	for _, d := range perkDefs {
		if d.ID == id {
			return d, true
		}
	}
	for _, d := range fillerDefs {
		if d.ID == id {
			return d, true
		}
	}
	return PerkDef{}, false
}

// rollOffer draws offerSize distinct perks that can still level up, padding
// with fillers when fewer remain.
func (s *Sim) rollOffer() []PerkOffer {
	eligible := make([]PerkDef, 0, len(perkDefs))
	for _, d := range perkDefs {
		if s.Player.Perks[d.ID] < d.MaxLevel {
			eligible = append(eligible, d)
		}
	}
	s.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	offer := make([]PerkOffer, 0, offerSize)
	for _, d := range eligible {
		if len(offer) == offerSize {
			break
		}
		offer = append(offer, PerkOffer{Perk: d, Level: s.Player.Perks[d.ID]})
	}
	for _, d := range fillerDefs {
		if len(offer) == offerSize {
			break
		}
		offer = append(offer, PerkOffer{Perk: d})
	}
	return offer
}

// applyPerk is the single interpreter of perk descriptors.
func (s *Sim) applyPerk(d PerkDef) {
	p := &s.Player
	if d.Kind == PerkKindFiller {
		switch d.ID {
		case FillerHeal:
			p.Heal(p.MaxHP * fillerHealFrac)
		case FillerCoins:
			p.Coins += fillerCoinAmount
		case FillerXP:
			s.gainXP(s.XP.Need / 2)
		default:
			panic(fmt.Sprintf("voidrun: unknown filler %q", d.ID))
		}
		return
	}

	if p.Perks[d.ID] >= d.MaxLevel {
		return
	}
	p.Perks[d.ID]++

	switch d.ID {
	case PerkMaxHP:
		p.MaxHP += 20
		p.Heal(20)
	case PerkShield:
		if p.Perks[d.ID] == 1 {
			s.Timers.ShieldReady = true
			s.Timers.Shield = 0
		}
	case PerkDamage, PerkFireRate, PerkSpeed, PerkHealOnXP, PerkMagnet, PerkArmor, PerkVamp,
		PerkSaw, PerkGrenade, PerkLightning, PerkDrone, PerkFrost,
		PerkCrit, PerkPierce, PerkMulti, PerkBlast:
		// Read from the level by the systems that use it.
	default:
		panic(fmt.Sprintf("voidrun: unknown perk %q", d.ID))
	}
}

func (s *Sim) perk(id PerkID) int {
	return s.Player.Perks[id]
}

// damageMul is the shared multiplier for weapon and perk damage.
func (s *Sim) damageMul() float64 {
	upg := s.prof.Upgrades
	return (1 + s.cfg.Upgrades.DamagePerLevel*float64(upg.Damage)) *
		math.Pow(1.15, float64(s.perk(PerkDamage))) *
		s.weapon.DamageMul
}

func (s *Sim) fireMul() float64 {
	upg := s.prof.Upgrades
	return (1 + s.cfg.Upgrades.FireRatePerLevel*float64(upg.FireRate)) *
		math.Pow(1.12, float64(s.perk(PerkFireRate)))
}

func (s *Sim) moveSpeed() float64 {
	return s.Player.BaseSpeed * math.Pow(1.10, float64(s.perk(PerkSpeed)))
}

func (s *Sim) magnetRadius() float64 {
	return s.cfg.Magnet.BaseRadius * s.Player.MagnetMul * (1 + 0.15*float64(s.perk(PerkMagnet)))
}

func (s *Sim) critChance() float64 {
	return math.Min(0.06*float64(s.perk(PerkCrit)), s.cfg.Combat.CritCap)
}

func (s *Sim) armor() float64 {
	return math.Min(0.06*float64(s.perk(PerkArmor)), s.cfg.Combat.ArmorCap)
}

func (s *Sim) lifesteal() float64 {
	return math.Min(0.02*float64(s.perk(PerkVamp)), s.cfg.Combat.LifestealCap)
}

func shieldRecharge(lv int) float64 {
	return core.ClampF(7-0.6*float64(lv), 2.8, 7)
}
