package voidrun

// ChestState is the bonus chest state machine: Idle -> Spinning -> Revealed.
type ChestState int

const (
	ChestIdle ChestState = iota
	ChestSpinning
	ChestRevealed
)

func (c ChestState) String() string {
	switch c {
	case ChestIdle:
		return "idle"
	case ChestSpinning:
		return "spinning"
	case ChestRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// RewardKind is what a chest gave.
type RewardKind int

const (
	RewardCoins RewardKind = iota
	RewardGems
	RewardWeapon
)

func (k RewardKind) String() string {
	switch k {
	case RewardCoins:
		return "coins"
	case RewardGems:
		return "gems"
	case RewardWeapon:
		return "weapon"
	default:
		return "unknown"
	}
}

// ChestReward is the revealed prize.
type ChestReward struct {
	Kind   RewardKind
	Amount int
	Weapon string
}

// Chest is a timed state machine advanced by Step.
type Chest struct {
	State    ChestState
	Elapsed  float64
	Duration float64
	Reward   ChestReward
}

// Open starts spinning. It is a no-op unless the chest is idle.
func (c *Chest) Open(duration float64) {
	if c.State != ChestIdle {
		return
	}
	c.State = ChestSpinning
	c.Elapsed = 0
	c.Duration = duration
}

// Update advances the spin and reports whether it finished on this call.
func (c *Chest) Update(dt float64) bool {
	if c.State != ChestSpinning {
		return false
	}
	c.Elapsed += dt
	if c.Elapsed < c.Duration {
		return false
	}
	c.Elapsed = c.Duration
	c.State = ChestRevealed
	return true
}

// Progress is the spin completion in [0, 1].
func (c *Chest) Progress() float64 {
	switch c.State {
	case ChestSpinning:
		if c.Duration <= 0 {
			return 1
		}
		return c.Elapsed / c.Duration
	case ChestRevealed:
		return 1
	default:
		return 0
	}
}

// rollChestReward picks the prize for a stage clear. A weapon roll with
// nothing left to unlock pays coins instead.
func (s *Sim) rollChestReward(stage int) ChestReward {
	c := s.cfg.Chest
	coins := ChestReward{Kind: RewardCoins, Amount: s.randInt(c.CoinsMin, c.CoinsMax) * stage}

	roll := s.rng.Float64()
	switch {
	case roll < c.CoinWeight:
		return coins
	case roll < c.CoinWeight+c.GemWeight:
		return ChestReward{Kind: RewardGems, Amount: s.randInt(c.GemsMin, c.GemsMax)}
	}

	var locked []string
	for _, id := range s.cfg.WeaponIDs() {
		if !s.prof.Owns(id) {
			locked = append(locked, id)
		}
	}
	if len(locked) == 0 {
		return coins
	}
	return ChestReward{Kind: RewardWeapon, Weapon: locked[s.rng.Intn(len(locked))]}
}
