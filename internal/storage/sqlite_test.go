package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/voidrun/internal/profile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestLoadMissingProfileIsFresh(t *testing.T) {
	store := openTestStore(t)

	p, err := store.LoadProfile("nobody")
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}
	if p.Stage != 1 || p.LevelInStage != 1 || p.Coins != 0 {
		t.Errorf("expected a fresh profile, got %+v", p)
	}
	if !p.Owns(profile.DefaultWeapon) {
		t.Errorf("fresh profile should own %s", profile.DefaultWeapon)
	}
}

func TestSaveAndLoadProfile(t *testing.T) {
	store := openTestStore(t)

	p := profile.New()
	p.Coins = 420
	p.Gems = 9
	p.Stage = 3
	p.LevelInStage = 4
	p.Unlock("Shotgun")
	if err := p.Equip("Shotgun"); err != nil {
		t.Fatal(err)
	}
	p.Upgrades = profile.Upgrades{HP: 2, Damage: 1, FireRate: 3, MoveSpeed: 0, Magnet: 5}

	if err := store.SaveProfile("alice", p); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}
	got, err := store.LoadProfile("alice")
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}

	if got.Coins != 420 || got.Gems != 9 || got.Stage != 3 || got.LevelInStage != 4 {
		t.Errorf("wallet or position mismatch: %+v", got)
	}
	if got.EquippedWeapon != "Shotgun" || len(got.UnlockedWeapons) != 2 {
		t.Errorf("weapons mismatch: %v equipped %s", got.UnlockedWeapons, got.EquippedWeapon)
	}
	if got.Upgrades != p.Upgrades {
		t.Errorf("upgrades mismatch: got %+v, want %+v", got.Upgrades, p.Upgrades)
	}

	// Saving again replaces the row.
	got.Coins = 1
	if err := store.SaveProfile("alice", got); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}
	again, _ := store.LoadProfile("alice")
	if again.Coins != 1 {
		t.Errorf("expected coins 1 after overwrite, got %d", again.Coins)
	}
}

func TestApplyDelta(t *testing.T) {
	store := openTestStore(t)

	p, err := store.ApplyDelta("bob", profile.LevelDelta{Won: true, CoinsEarned: 30, GemsEarned: 1, NewStage: 1, NewLevelInStage: 2})
	if err != nil {
		t.Fatalf("ApplyDelta() failed: %v", err)
	}
	if p.Coins != 30 || p.LevelInStage != 2 {
		t.Errorf("unexpected profile after first delta: %+v", p)
	}

	_, err = store.ApplyDelta("bob", profile.LevelDelta{Won: true, CoinsEarned: 12, UnlockedWeapon: "Laser"})
	if err != nil {
		t.Fatalf("ApplyDelta() failed: %v", err)
	}

	got, err := store.LoadProfile("bob")
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}
	if got.Coins != 42 || got.Gems != 1 {
		t.Errorf("expected 42 coins and 1 gem, got %d and %d", got.Coins, got.Gems)
	}
	if got.LevelInStage != 2 {
		t.Errorf("a chest delta must not move the campaign, got level %d", got.LevelInStage)
	}
	if !got.Owns("Laser") {
		t.Error("expected Laser to be unlocked")
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{ID: "01J00000000000000000000001", Profile: "alice", Stage: 1, Level: 1, Won: true, Weapon: "Pistol", Kills: 40, Elapsed: 55.2, XPLevel: 6, Coins: 31},
		{ID: "01J00000000000000000000002", Profile: "alice", Stage: 1, Level: 2, Won: false, Weapon: "Pistol", Kills: 12, Elapsed: 20, XPLevel: 3, Coins: 6, Gems: 1},
		{ID: "01J00000000000000000000003", Profile: "bob", Stage: 2, Level: 5, Won: true, Weapon: "Laser", Kills: 90},
	}
	for _, r := range runs {
		if _, err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	alice, err := store.RecentRuns("alice", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(alice) != 2 {
		t.Fatalf("expected 2 runs for alice, got %d", len(alice))
	}
	if alice[0].Level != 2 || alice[0].Won {
		t.Errorf("expected newest run first, got %+v", alice[0])
	}
	if alice[1].Elapsed != 55.2 || !alice[1].Won || alice[1].Coins != 31 {
		t.Errorf("run fields not preserved: %+v", alice[1])
	}
	if alice[0].CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	all, err := store.RecentRuns("", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 2 || all[0].Profile != "bob" {
		t.Errorf("expected the two newest runs across profiles, got %+v", all)
	}
}

func TestRecordRunAssignsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.RecordRun(RunRecord{Profile: "carol", Stage: 1, Level: 1, Weapon: "SMG"})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if len(id) != 26 {
		t.Errorf("expected a ULID, got %q", id)
	}
	if _, err := store.RecordRun(RunRecord{ID: id, Profile: "carol", Weapon: "SMG"}); err == nil {
		t.Error("expected duplicate run id to fail")
	}
}

func TestStatsAndDelete(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("dave")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("expected empty stats, got %+v", empty)
	}

	for i, won := range []bool{true, true, false} {
		_, err := store.RecordRun(RunRecord{Profile: "dave", Stage: 1 + i, Level: 1, Won: won, Weapon: "Pistol", Kills: 10, Coins: 5})
		if err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}
	if err := store.SaveProfile("dave", profile.New()); err != nil {
		t.Fatal(err)
	}

	stats, err := store.Stats("dave")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Wins != 2 || stats.Kills != 30 || stats.Coins != 15 || stats.BestStage != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if err := store.DeleteProfile("dave"); err != nil {
		t.Fatalf("DeleteProfile() failed: %v", err)
	}
	runs, _ := store.RecentRuns("dave", 10)
	if len(runs) != 0 {
		t.Errorf("expected history to be cleared, got %d runs", len(runs))
	}
}
