package voidrun

import (
	"math"

	"github.com/vovakirdan/voidrun/internal/core"
)

// arenaSafeDistance is how close an arena spawn may land to the player when
// the ring had to be clamped into the arena.
const arenaSafeDistance = 180

// spawnAttempts bounds the search for an arena spawn point far enough away.
const spawnAttempts = 8

// updateSpawner advances wave timers and spawns enemies for this tick.
func (s *Sim) updateSpawner(dt float64) {
	w := &s.Wave
	w.Elapsed += dt
	w.SpawnT -= dt

	if !s.IsBossLevel() {
		if w.SpawnT <= 0 {
			w.SpawnT = s.diff.SpawnInterval(s.Tier)
			n := s.randInt(1, s.diff.BatchCap(s.Tier))
			for range n {
				s.spawnEnemy(s.ringPoint(s.cfg.Spawner.RingMin, s.cfg.Spawner.RingMax), s.diff.RollEnemy(s.Tier, s.rng))
			}
		}
		if w.Elapsed >= s.diff.TargetDuration(s.Tier) {
			w.Done = true
		}
		return
	}

	if !w.BossSpawned && w.Elapsed > s.cfg.Boss.GracePeriod {
		s.spawnBoss()
	}
	if w.SpawnT <= 0 {
		w.SpawnT = s.diff.BossAddInterval(s.Tier)
		n := s.randInt(1, s.diff.BossAddCap(s.Tier))
		for range n {
			s.spawnEnemy(s.ringPoint(s.cfg.Spawner.RingMin, s.cfg.Spawner.RingMax), s.diff.BossAdd(s.Stage, s.cfg.Boss.AddHPMul, s.rng))
		}
	}
}

func (s *Sim) spawnBoss() {
	boss := s.spawnEnemy(s.ringPoint(s.cfg.Spawner.RingMin, s.cfg.Spawner.RingMax), s.diff.Boss(s.Stage))
	boss.Ult = &BossUlt{Timer: s.cfg.Boss.UltFirst}
	s.Wave.BossSpawned = true
	s.Wave.BossID = boss.ID
	s.emit(Event{Kind: EventBossSpawned, Stage: s.Stage, Level: s.Level})
	s.log.Debug("boss spawned", "stage", s.Stage, "hp", boss.HP, "elapsed", s.Wave.Elapsed)
}

// updateBossUlt counts down the boss ultimate and summons adds around the player.
func (s *Sim) updateBossUlt(e *Enemy, dt float64) {
	e.Ult.Timer -= dt
	if e.Ult.Timer > 0 {
		return
	}
	e.Ult.Timer = s.diff.UltCooldown(s.rng)
	n := s.randInt(s.cfg.Boss.UltAddsMin, s.cfg.Boss.UltAddsMax)
	for range n {
		s.spawnEnemy(s.ringPoint(s.cfg.Boss.UltRingMin, s.cfg.Boss.UltRingMax), s.diff.BossAdd(s.Stage, s.cfg.Boss.UltAddHPMul, s.rng))
	}
	s.addEffect(Effect{Kind: EffectBossUlt, Pos: e.Pos, T: bossUltTime})
}

func (s *Sim) spawnEnemy(pos core.Vec2, st EnemyStats) *Enemy {
	e := newEnemy(s.newID(), pos, st)
	if s.Arena {
		e.Pos = core.ClampToCircle(e.Pos, s.ArenaRadius)
	}
	s.Enemies = append(s.Enemies, e)
	return e
}

// ringPoint picks a point at a random angle and distance in [lo, hi] around
// the player. In the arena the point is clamped inside the circle, retrying
// a few angles to keep it away from the player.
func (s *Sim) ringPoint(lo, hi float64) core.Vec2 {
	origin := s.Player.Pos
	if !s.Arena {
		return origin.Add(core.FromAngle(s.randRange(0, 2*math.Pi), s.randRange(lo, hi)))
	}

	var best core.Vec2
	bestD := -1.0
	for range spawnAttempts {
		p := core.ClampToCircle(origin.Add(core.FromAngle(s.randRange(0, 2*math.Pi), s.randRange(lo, hi))), s.ArenaRadius)
		d := core.Dist(p, origin)
		if d >= arenaSafeDistance {
			return p
		}
		if d > bestD {
			best, bestD = p, d
		}
	}
	return best
}
