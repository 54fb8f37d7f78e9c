package voidrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/profile"
)

func TestStartLevelResetsStores(t *testing.T) {
	s := newTestSim(t, func(p *profile.Profile) {
		p.Upgrades.HP = 2
		p.Unlock("Shotgun")
		require.NoError(t, p.Equip("Shotgun"))
	})

	assert.Equal(t, PhaseRun, s.Phase)
	assert.InDelta(t, 130, s.Player.MaxHP, 1e-9, "base 100, two HP upgrades and the shotgun bonus")
	assert.Equal(t, s.Player.MaxHP, s.Player.HP)
	assert.Equal(t, "Shotgun", s.Player.Weapon)
	assert.False(t, s.Arena, "odd levels are open field")
	assert.Equal(t, XPState{Need: 10, Level: 1}, s.XP)
	assert.Len(t, s.RunID, 26)

	first := s.RunID
	s.Player.Perks[PerkDamage] = 3
	s.Player.Coins = 40
	s.spawnEnemy(core.V(300, 0), dummy(10))
	s.Wave.Elapsed = 12

	s.StartLevel()
	assert.Empty(t, s.Player.Perks)
	assert.Zero(t, s.Player.Coins)
	assert.Empty(t, s.Enemies)
	assert.Zero(t, s.Wave.Elapsed)
	assert.NotEqual(t, first, s.RunID)

	arena := newTestSim(t, atLevel(3, 4))
	assert.True(t, arena.Arena, "even levels are arena levels")
	assert.Equal(t, Tier(3, 4), arena.Tier)
}

func TestStepStartsLevelLazily(t *testing.T) {
	p := profile.New()
	s := NewSim(newTestSim(t).Config(), &p, 1, nil)
	s.Step(frame(0.016))

	assert.Equal(t, 1, s.Stage)
	assert.Equal(t, uint64(1), s.Tick)
	assert.Contains(t, eventKinds(s.DrainEvents()), EventLevelStart)
}

func TestTimeWinAndContinue(t *testing.T) {
	s := newTestSim(t)
	target := s.diff.TargetDuration(s.Tier)
	s.Wave.Elapsed = target - 0.001
	s.Player.Coins = 12
	s.Player.Gems = 2

	s.Step(frame(0.016))
	require.Equal(t, PhaseLevelCleared, s.Phase)

	prof := s.Profile()
	assert.Equal(t, 12, prof.Coins)
	assert.Equal(t, 2, prof.Gems)
	assert.Equal(t, 1, prof.Stage)
	assert.Equal(t, 2, prof.LevelInStage)

	events := s.DrainEvents()
	require.Equal(t, []EventKind{EventLevelEnd}, eventKinds(events))
	end := events[0]
	require.NotNil(t, end.Delta)
	assert.True(t, end.Delta.Won)
	assert.Equal(t, 12, end.Delta.CoinsEarned)
	assert.Equal(t, s.RunID, end.Delta.RunID)
	require.NotNil(t, end.Result)
	assert.Equal(t, 1, end.Result.Level)

	frozen := s.Wave.Elapsed
	s.Step(frame(0.016))
	assert.Equal(t, PhaseLevelCleared, s.Phase)
	assert.Equal(t, frozen, s.Wave.Elapsed)

	s.Step(frame(0.016, core.ActionConfirm))
	assert.Equal(t, 2, s.Level)
	assert.True(t, s.Arena)
	assert.Equal(t, PhaseRun, s.Phase)
	assert.Zero(t, s.Player.Coins, "the level wallet starts empty")
	assert.Equal(t, 12, s.Profile().Coins)
}

func TestLossKeepsPartOfWallet(t *testing.T) {
	s := newTestSim(t, atLevel(1, 3))
	s.Player.Coins = 10
	s.Player.Gems = 3

	s.damagePlayer(1e6)
	s.checkProgress()
	require.Equal(t, PhaseLevelFailed, s.Phase)

	prof := s.Profile()
	assert.Equal(t, 6, prof.Coins)
	assert.Equal(t, 1, prof.Gems)
	assert.Equal(t, 1, prof.Stage)
	assert.Equal(t, 1, prof.LevelInStage, "a loss restarts the stage")
	assert.Equal(t, 6, s.Result.Coins)
	assert.False(t, s.Result.Won)

	require.NoError(t, s.Retry())
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, PhaseRun, s.Phase)
	assert.Zero(t, s.Player.Coins)
	assert.False(t, s.Player.Dead)
}

func TestDeathBeatsWinOnSameTick(t *testing.T) {
	s := newTestSim(t)
	s.Wave.Done = true
	s.gainXP(50)
	s.damagePlayer(1e6)

	s.checkProgress()
	assert.Equal(t, PhaseLevelFailed, s.Phase)
	assert.Zero(t, s.pendingLevelUps, "a finished level drops queued level-ups")
	assert.Nil(t, s.Offer)
}

func TestBossWinRequiresSpawnedBoss(t *testing.T) {
	s := newTestSim(t, atLevel(1, 5))
	require.True(t, s.IsBossLevel())

	s.Wave.bossDown = true
	s.checkProgress()
	assert.Equal(t, PhaseRun, s.Phase, "no win before the boss has spawned")
	s.Wave.bossDown = false

	s.spawnBoss()
	boss := s.boss()
	require.NotNil(t, boss)
	assert.Equal(t, []EventKind{EventBossSpawned}, eventKinds(s.DrainEvents()))

	s.damageEnemy(boss, 1e9)
	s.cleanup()
	assert.Nil(t, s.boss())
	s.checkProgress()
	require.Equal(t, PhaseLevelCleared, s.Phase)
	assert.True(t, s.chestQueued)

	prof := s.Profile()
	assert.Equal(t, 2, prof.Stage)
	assert.Equal(t, 1, prof.LevelInStage)

	coins, gems := prof.Coins, prof.Gems
	owned := len(prof.UnlockedWeapons)
	s.DrainEvents()

	require.NoError(t, s.Continue())
	require.Equal(t, PhaseChest, s.Phase)
	assert.Equal(t, ChestSpinning, s.Chest.State)
	assert.ErrorIs(t, s.ClaimChest(), ErrWrongPhase, "nothing to claim while spinning")

	for i := 0; i < 100 && s.Chest.State != ChestRevealed; i++ {
		s.Step(frame(0.05))
	}
	require.Equal(t, ChestRevealed, s.Chest.State)
	reward := s.Chest.Reward

	s.Step(frame(0.016, core.ActionConfirm))
	assert.Equal(t, PhaseRun, s.Phase)
	assert.Equal(t, 2, s.Stage)
	assert.Equal(t, 1, s.Level)

	prof = s.Profile()
	switch reward.Kind {
	case RewardCoins:
		assert.Equal(t, coins+reward.Amount, prof.Coins)
	case RewardGems:
		assert.Equal(t, gems+reward.Amount, prof.Gems)
	case RewardWeapon:
		assert.Len(t, prof.UnlockedWeapons, owned+1)
		assert.True(t, prof.Owns(reward.Weapon))
	}

	kinds := eventKinds(s.DrainEvents())
	require.GreaterOrEqual(t, len(kinds), 2)
	assert.Equal(t, []EventKind{EventChestOpened, EventLevelStart}, kinds[:2])
}

func TestBossLevelHasNoTimeWin(t *testing.T) {
	s := newTestSim(t, atLevel(1, 5))
	s.Wave.Elapsed = 5.9
	s.Step(frame(0.016))
	assert.False(t, s.Wave.BossSpawned, "boss waits for the grace period")

	s.Wave.Elapsed = 6.0
	s.Step(frame(0.016))
	require.True(t, s.Wave.BossSpawned)
	boss := s.boss()
	require.NotNil(t, boss)
	assert.InDelta(t, 810, boss.MaxHP, 1e-9)
	require.NotNil(t, boss.Ult)
	assert.InDelta(t, 2.5-0.016, boss.Ult.Timer, 1e-9)
	assert.Contains(t, eventKinds(s.DrainEvents()), EventBossSpawned)

	s.Wave.Elapsed = 1000
	s.Step(frame(0.016))
	assert.False(t, s.Wave.Done)
	assert.Equal(t, PhaseRun, s.Phase)
	assert.Zero(t, s.HUD().Target)
	assert.InDelta(t, 1, s.HUD().BossHP, 1e-9)
}

func TestMultipleLevelUpsQueueOffers(t *testing.T) {
	s := newTestSim(t)
	s.gainXP(25)
	assert.Equal(t, 2, s.pendingLevelUps)
	assert.Equal(t, XPState{Cur: 0, Need: 21, Level: 3}, s.XP)

	s.checkProgress()
	require.Equal(t, PhaseLevelUp, s.Phase)
	require.Len(t, s.Offer, 3)

	assert.Error(t, s.ChoosePerk(3))
	assert.Equal(t, PhaseLevelUp, s.Phase)

	first := s.Offer[0].Perk.ID
	require.NoError(t, s.ChoosePerk(0))
	assert.Equal(t, PhaseLevelUp, s.Phase, "second level-up opens a new offer")
	assert.Equal(t, 1, s.Player.Perks[first])

	require.NoError(t, s.ChoosePerk(1))
	assert.Equal(t, PhaseRun, s.Phase)
	assert.Nil(t, s.Offer)

	assert.Equal(t,
		[]EventKind{EventLevelUp, EventPerkChosen, EventLevelUp, EventPerkChosen},
		eventKinds(s.DrainEvents()))

	assert.ErrorIs(t, s.ChoosePerk(0), ErrWrongPhase)
}

func TestNonRunPhasesFreezeTime(t *testing.T) {
	s := newTestSim(t)
	for range 5 {
		s.Step(frame(0.016))
	}

	type marks struct {
		tick    uint64
		elapsed float64
		spawnT  float64
		fire    float64
	}
	mark := func() marks {
		return marks{s.Tick, s.Wave.Elapsed, s.Wave.SpawnT, s.Timers.Fire}
	}

	s.Step(frame(0.016, core.ActionPause))
	require.Equal(t, PhasePaused, s.Phase)
	paused := mark()
	for range 30 {
		s.Step(frame(0.05))
	}
	assert.Equal(t, paused, mark())

	s.Step(frame(0.016, core.ActionPause))
	assert.Equal(t, PhaseRun, s.Phase)
	assert.Equal(t, paused.tick+1, s.Tick)

	s.gainXP(s.XP.Need)
	s.checkProgress()
	require.Equal(t, PhaseLevelUp, s.Phase)
	choosing := mark()
	for range 30 {
		s.Step(frame(0.05, core.ActionPause, core.ActionConfirm))
	}
	assert.Equal(t, choosing, mark())
	assert.Equal(t, PhaseLevelUp, s.Phase, "pause is ignored while choosing")

	s.Step(frame(0.016, core.ActionChoice2))
	assert.Equal(t, PhaseRun, s.Phase)
}

func TestWrongPhaseActions(t *testing.T) {
	s := newTestSim(t)
	assert.ErrorIs(t, s.Continue(), ErrWrongPhase)
	assert.ErrorIs(t, s.Retry(), ErrWrongPhase)
	assert.ErrorIs(t, s.ClaimChest(), ErrWrongPhase)

	s.damagePlayer(1e6)
	s.checkProgress()
	assert.ErrorIs(t, s.TogglePause(), ErrWrongPhase)
	assert.ErrorIs(t, s.Continue(), ErrWrongPhase)

	s.Step(frame(0.016, core.ActionRestart))
	assert.Equal(t, PhaseRun, s.Phase)
}

func TestOffersAreDistinctAndEligible(t *testing.T) {
	s := newTestSim(t)
	s.Player.Perks[PerkPierce] = 3
	s.Player.Perks[PerkMulti] = 3

	for range 200 {
		offer := s.rollOffer()
		require.Len(t, offer, 3)
		seen := map[PerkID]bool{}
		for _, o := range offer {
			assert.False(t, seen[o.Perk.ID], "duplicate %s", o.Perk.ID)
			seen[o.Perk.ID] = true
			assert.NotEqual(t, PerkKindFiller, o.Perk.Kind)
			assert.Less(t, o.Level, o.Perk.MaxLevel)
			assert.NotEqual(t, PerkPierce, o.Perk.ID)
			assert.NotEqual(t, PerkMulti, o.Perk.ID)
		}
	}
}

func TestMaxedPerksOfferFillers(t *testing.T) {
	s := newTestSim(t)
	for _, d := range Perks() {
		s.Player.Perks[d.ID] = d.MaxLevel
	}

	offer := s.rollOffer()
	require.Len(t, offer, 3)
	ids := []PerkID{offer[0].Perk.ID, offer[1].Perk.ID, offer[2].Perk.ID}
	assert.Equal(t, []PerkID{FillerHeal, FillerCoins, FillerXP}, ids)

	// One perk left to level: it comes first, padded with fillers.
	s.Player.Perks[PerkSpeed] = 4
	offer = s.rollOffer()
	require.Len(t, offer, 3)
	assert.Equal(t, PerkSpeed, offer[0].Perk.ID)
	assert.Equal(t, FillerHeal, offer[1].Perk.ID)
	assert.Equal(t, FillerCoins, offer[2].Perk.ID)
}

func TestApplyPerkEffects(t *testing.T) {
	s := newTestSim(t)
	get := func(id PerkID) PerkDef {
		d, ok := LookupPerk(id)
		require.True(t, ok, "perk %s", id)
		return d
	}

	s.Player.HP = 60
	s.applyPerk(get(PerkMaxHP))
	assert.InDelta(t, 120, s.Player.MaxHP, 1e-9)
	assert.InDelta(t, 80, s.Player.HP, 1e-9)

	speed := get(PerkSpeed)
	for range 10 {
		s.applyPerk(speed)
	}
	assert.Equal(t, speed.MaxLevel, s.Player.Perks[PerkSpeed], "levels stop at the cap")

	s.applyPerk(get(FillerHeal))
	assert.InDelta(t, 116, s.Player.HP, 1e-9)

	s.applyPerk(get(FillerCoins))
	assert.Equal(t, 15, s.Player.Coins)

	s.applyPerk(get(FillerXP))
	assert.Equal(t, 5, s.XP.Cur)

	_, ok := LookupPerk("NOPE")
	assert.False(t, ok)
	assert.Panics(t, func() {
		s.applyPerk(PerkDef{ID: "NOPE", MaxLevel: 1, Kind: PerkKindStat})
	})
}

func TestPerkTableIsConsistent(t *testing.T) {
	ids := map[PerkID]bool{}
	for _, d := range Perks() {
		assert.False(t, ids[d.ID], "duplicate %s", d.ID)
		ids[d.ID] = true
		assert.Positive(t, d.MaxLevel, d.ID)
		assert.NotEqual(t, PerkKindFiller, d.Kind)
		assert.NotEmpty(t, d.Name)
	}
	assert.Len(t, ids, 18)
	for _, d := range Fillers() {
		assert.Equal(t, PerkKindFiller, d.Kind)
		assert.Zero(t, d.MaxLevel)
	}
}
