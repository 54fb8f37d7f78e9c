package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultVoidrunConfig().Validate())
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var fromYAML VoidrunConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML(), &fromYAML))

	assert.Equal(t, DefaultVoidrunConfig(), fromYAML)
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voidrun.yaml")
	data := []byte(`
player:
  base_hp: 250
weapons:
  Railgun:
    base_damage: 40
    fire_interval: 1.2
    projectile_speed: 1400
    pellets: 1
    pierce: 5
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadVoidrun(path)
	require.NoError(t, err)

	assert.Equal(t, 250.0, cfg.Player.BaseHP)
	assert.Equal(t, 14.0, cfg.Player.Radius, "unlisted keys keep defaults")
	assert.Contains(t, cfg.Weapons, "Pistol")
	require.Contains(t, cfg.Weapons, "Railgun")
	assert.Equal(t, "Railgun", cfg.Weapons["Railgun"].Name)
	assert.Equal(t, 1.0, cfg.Weapons["Railgun"].DamageMul)
}

func TestLoadOverridesSingleWeaponField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voidrun.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weapons:\n  Pistol:\n    base_damage: 9\n"), 0o600))

	cfg, err := LoadVoidrun(path)
	require.NoError(t, err)

	def := DefaultVoidrunConfig().Weapons["Pistol"]
	got := cfg.Weapons["Pistol"]
	assert.Equal(t, 9.0, got.BaseDamage)
	assert.Equal(t, def.FireInterval, got.FireInterval)
	assert.Equal(t, def.ProjectileSpeed, got.ProjectileSpeed)
	assert.Equal(t, def.Pellets, got.Pellets)
	assert.Equal(t, def.Name, got.Name)
	assert.Equal(t, DefaultVoidrunConfig().Weapons["Shotgun"], cfg.Weapons["Shotgun"])
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := LoadVoidrun(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("player: [1, 2"), 0o600))
	_, err = LoadVoidrun(bad)
	require.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("player:\n  radius: -3\n"), 0o600))
	_, err = LoadVoidrun(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player.radius")
}

func TestValidateCatchesBrokenValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*VoidrunConfig)
	}{
		{"ring inside player", func(c *VoidrunConfig) { c.Spawner.RingMin = 5 }},
		{"inverted ring", func(c *VoidrunConfig) { c.Spawner.RingMax = c.Spawner.RingMin - 1 }},
		{"no weapons", func(c *VoidrunConfig) { c.Weapons = map[string]Weapon{} }},
		{"zero archetype weight", func(c *VoidrunConfig) {
			for i := range c.Enemies.Archetypes {
				c.Enemies.Archetypes[i].Weight = 0
			}
		}},
		{"retention above one", func(c *VoidrunConfig) { c.Progression.LossRetention = 1.5 }},
		{"shrinking xp", func(c *VoidrunConfig) { c.Progression.XPGrowth = 0.5 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultVoidrunConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPresets(t *testing.T) {
	p, err := ParsePreset("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)
	assert.Greater(t, DifficultyHard.StatMultiplier(), DifficultyNormal.StatMultiplier())
	assert.Less(t, DifficultyEasy.StatMultiplier(), DifficultyNormal.StatMultiplier())

	_, err = ParsePreset("nightmare")
	assert.Error(t, err)

	cfg := DefaultVoidrunConfig()
	ApplyVoidrunPreset(&cfg, "")
	assert.Equal(t, DifficultyNormal, cfg.Difficulty.Preset)
	ApplyVoidrunPreset(&cfg, DifficultyEasy)
	assert.Equal(t, DifficultyEasy, cfg.Difficulty.Preset)
}

func TestWeaponIDsSorted(t *testing.T) {
	assert.Equal(t, []string{"Laser", "Pistol", "SMG", "Shotgun"}, DefaultVoidrunConfig().WeaponIDs())
}
