package pet

import (
	"testing"
	"time"

	"github.com/pondside/duckpet/internal/config"
	"github.com/pondside/duckpet/internal/store"
)

var t0 = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testEngine(t *testing.T) (*Engine, *fakeClock, *store.DB) {
	t.Helper()
	db := testDB(t)
	clk := &fakeClock{t: t0}
	return NewEngine(db, config.Default().Pet, clk.now), clk, db
}

// seedStatus writes a raw status into the settings store so a fresh engine
// loads it, without going through care actions.
func seedStatus(t *testing.T, db *store.DB, s Status) {
	t.Helper()
	db.SetFloat(store.KeyHunger, s.Hunger)
	db.SetFloat(store.KeyCleanliness, s.Cleanliness)
	db.SetFloat(store.KeyHappiness, s.Happiness)
	db.SetInt(store.KeyLastUpdate, s.LastUpdate.UnixMilli())
	db.SetInt(store.KeyLastFeed, s.LastFed.UnixMilli())
	db.SetInt(store.KeyLastClean, s.LastCleaned.UnixMilli())
	db.SetInt(store.KeyLastPlay, s.LastPlayed.UnixMilli())
	db.SetBool(store.KeyIsDead, s.Dead)
	cause := s.DeathCause
	if cause == "" {
		cause = CauseNone
	}
	db.SetString(store.KeyDeathCause, string(cause))
}

func TestFirstRunDefaults(t *testing.T) {
	eng, _, _ := testEngine(t)

	s := eng.Snapshot()
	if s.Hunger != 50 || s.Cleanliness != 50 || s.Happiness != 50 {
		t.Errorf("needs = %v/%v/%v, want 50/50/50", s.Hunger, s.Cleanliness, s.Happiness)
	}
	if s.Dead || s.DeathCause != CauseNone {
		t.Errorf("fresh pet dead=%v cause=%v", s.Dead, s.DeathCause)
	}
	if !s.LastUpdate.Equal(t0) || !s.LastFed.Equal(t0) {
		t.Errorf("timestamps not initialized to now: %+v", s)
	}
}

func TestTickDecaysLinearly(t *testing.T) {
	eng, clk, _ := testEngine(t)

	clk.advance(2 * time.Hour)
	eng.Tick()

	s := eng.Snapshot()
	if s.Hunger != 30 { // 50 - 10/h * 2h
		t.Errorf("Hunger = %v, want 30", s.Hunger)
	}
	if s.Cleanliness != 40 { // 50 - 5/h * 2h
		t.Errorf("Cleanliness = %v, want 40", s.Cleanliness)
	}
	if s.Happiness != 36 { // 50 - 7/h * 2h
		t.Errorf("Happiness = %v, want 36", s.Happiness)
	}
	if !s.LastUpdate.Equal(clk.t) {
		t.Errorf("LastUpdate = %v, want %v", s.LastUpdate, clk.t)
	}
}

func TestTickClampsAtZero(t *testing.T) {
	eng, clk, _ := testEngine(t)

	clk.advance(200 * time.Hour)
	eng.Tick()

	s := eng.Snapshot()
	for name, v := range map[string]float64{"hunger": s.Hunger, "cleanliness": s.Cleanliness, "happiness": s.Happiness} {
		if v < 0 || v > 100 {
			t.Errorf("%s = %v, out of [0,100]", name, v)
		}
		if v != 0 {
			t.Errorf("%s = %v, want clamped to 0 after 200h", name, v)
		}
	}
}

func TestTickNoOpOnZeroOrNegativeElapsed(t *testing.T) {
	eng, clk, _ := testEngine(t)

	eng.Tick() // zero elapsed
	if s := eng.Snapshot(); s.Hunger != 50 {
		t.Errorf("zero elapsed decayed hunger to %v", s.Hunger)
	}

	clk.advance(-time.Hour) // clock skew
	eng.Tick()
	if s := eng.Snapshot(); s.Hunger != 50 || !s.LastUpdate.Equal(t0) {
		t.Errorf("negative elapsed mutated state: %+v", s)
	}
}

func TestFeedThenTickAtFeedTimeLeavesHungerUnchanged(t *testing.T) {
	eng, _, _ := testEngine(t)

	eng.Feed()
	before := eng.Snapshot().Hunger
	eng.Tick() // now == LastFed, zero elapsed
	if got := eng.Snapshot().Hunger; got != before {
		t.Errorf("Hunger = %v, want %v", got, before)
	}
}

func TestCareActionsAreIndependent(t *testing.T) {
	eng, clk, _ := testEngine(t)

	clk.advance(time.Minute)
	eng.Feed()
	s := eng.Snapshot()
	if s.Hunger != 90 { // 50 + 40
		t.Errorf("Hunger = %v, want 90", s.Hunger)
	}
	if s.Cleanliness != 50 || s.Happiness != 50 {
		t.Errorf("feed leaked into other needs: %+v", s)
	}
	if !s.LastFed.Equal(clk.t) {
		t.Errorf("LastFed not stamped")
	}
	if !s.LastCleaned.Equal(t0) || !s.LastPlayed.Equal(t0) {
		t.Errorf("feed stamped unrelated timestamps")
	}

	eng.Feed() // cap at 100
	if got := eng.Snapshot().Hunger; got != 100 {
		t.Errorf("Hunger = %v, want capped 100", got)
	}

	eng.Clean()
	eng.Play()
	s = eng.Snapshot()
	if s.Cleanliness != 90 || s.Happiness != 90 {
		t.Errorf("clean/play = %v/%v, want 90/90", s.Cleanliness, s.Happiness)
	}
}

func TestDecayToZeroIsImmediateDeath(t *testing.T) {
	// Hunger 10, freshly fed, 1h neglect window, decay 10/h. Two hours
	// later hunger hits the zero clamp, which kills regardless of the
	// window having been satisfied by the recent feed timestamp.
	db := testDB(t)
	seedStatus(t, db, Status{
		Hunger: 10, Cleanliness: 50, Happiness: 50,
		LastUpdate: t0, LastFed: t0, LastCleaned: t0, LastPlayed: t0,
	})

	cfg := config.Default().Pet
	cfg.NeglectWindow = time.Hour
	clk := &fakeClock{t: t0.Add(2 * time.Hour)}
	eng := NewEngine(db, cfg, clk.now)

	eng.Tick()
	if got := eng.Snapshot().Hunger; got != 0 {
		t.Fatalf("Hunger = %v, want 0", got)
	}
	if !eng.CheckDeath() {
		t.Fatal("CheckDeath did not report a transition")
	}

	s := eng.Snapshot()
	if !s.Dead || s.DeathCause != CauseHunger {
		t.Errorf("dead=%v cause=%v, want dead of hunger", s.Dead, s.DeathCause)
	}
}

func TestNeglectWindowDeath(t *testing.T) {
	db := testDB(t)
	stale := t0.Add(-25 * time.Hour)
	seedStatus(t, db, Status{
		Hunger: 4, Cleanliness: 50, Happiness: 50,
		LastUpdate: t0, LastFed: stale, LastCleaned: t0, LastPlayed: t0,
	})

	clk := &fakeClock{t: t0}
	eng := NewEngine(db, config.Default().Pet, clk.now)

	if !eng.CheckDeath() {
		t.Fatal("low need past neglect window did not kill")
	}
	if got := eng.Snapshot().DeathCause; got != CauseHunger {
		t.Errorf("cause = %v, want hunger", got)
	}
}

func TestLowNeedWithinNeglectWindowSurvives(t *testing.T) {
	db := testDB(t)
	seedStatus(t, db, Status{
		Hunger: 4, Cleanliness: 50, Happiness: 50,
		LastUpdate: t0, LastFed: t0.Add(-time.Hour), LastCleaned: t0, LastPlayed: t0,
	})

	clk := &fakeClock{t: t0}
	eng := NewEngine(db, config.Default().Pet, clk.now)

	if eng.CheckDeath() {
		t.Fatal("pet died inside the neglect window")
	}
}

func TestDeathCausePriority(t *testing.T) {
	mk := func(h, c, p float64) *Engine {
		db := testDB(t)
		seedStatus(t, db, Status{
			Hunger: h, Cleanliness: c, Happiness: p,
			LastUpdate: t0, LastFed: t0, LastCleaned: t0, LastPlayed: t0,
		})
		clk := &fakeClock{t: t0}
		return NewEngine(db, config.Default().Pet, clk.now)
	}

	tests := []struct {
		name    string
		h, c, p float64
		want    Cause
	}{
		{"all zero picks hunger", 0, 0, 0, CauseHunger},
		{"cleanliness and happiness zero picks dirty", 50, 0, 0, CauseDirty},
		{"happiness zero picks sadness", 50, 50, 0, CauseSadness},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := mk(tt.h, tt.c, tt.p)
			if !eng.CheckDeath() {
				t.Fatal("expected death")
			}
			if got := eng.Snapshot().DeathCause; got != tt.want {
				t.Errorf("cause = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeathIsMonotonic(t *testing.T) {
	db := testDB(t)
	seedStatus(t, db, Status{
		Hunger: 0, Cleanliness: 37, Happiness: 42,
		LastUpdate: t0, LastFed: t0, LastCleaned: t0, LastPlayed: t0,
	})
	clk := &fakeClock{t: t0}
	eng := NewEngine(db, config.Default().Pet, clk.now)

	if !eng.CheckDeath() {
		t.Fatal("expected death")
	}
	if eng.CheckDeath() {
		t.Error("CheckDeath reported a second transition")
	}

	before := eng.Snapshot()
	for i := 0; i < 3; i++ {
		clk.advance(10 * time.Hour)
		eng.Tick()
		eng.Feed()
		eng.Clean()
		eng.Play()
	}
	after := eng.Snapshot()
	if after != before {
		t.Errorf("dead pet mutated:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestReviveResetsEverything(t *testing.T) {
	db := testDB(t)
	seedStatus(t, db, Status{
		Hunger: 0, Cleanliness: 0, Happiness: 0,
		LastUpdate: t0.Add(-48 * time.Hour), LastFed: t0.Add(-48 * time.Hour),
		LastCleaned: t0.Add(-48 * time.Hour), LastPlayed: t0.Add(-48 * time.Hour),
		Dead: true, DeathCause: CauseDirty,
	})
	clk := &fakeClock{t: t0}
	eng := NewEngine(db, config.Default().Pet, clk.now)

	eng.Revive()
	s := eng.Snapshot()
	if s.Hunger != 50 || s.Cleanliness != 50 || s.Happiness != 50 {
		t.Errorf("needs = %v/%v/%v, want 50/50/50", s.Hunger, s.Cleanliness, s.Happiness)
	}
	if s.Dead || s.DeathCause != CauseNone {
		t.Errorf("dead=%v cause=%v after revive", s.Dead, s.DeathCause)
	}
	for _, ts := range []time.Time{s.LastUpdate, s.LastFed, s.LastCleaned, s.LastPlayed} {
		if !ts.Equal(t0) {
			t.Errorf("timestamp %v, want %v", ts, t0)
		}
	}
}

func TestReviveIsIdempotentOnAlivePet(t *testing.T) {
	eng, clk, _ := testEngine(t)

	clk.advance(time.Hour)
	eng.Tick()
	eng.Revive()

	s := eng.Snapshot()
	if s.Hunger != 50 || s.Dead {
		t.Errorf("revive on alive pet: %+v", s)
	}
}

func TestStatusSurvivesRestart(t *testing.T) {
	db := testDB(t)
	clk := &fakeClock{t: t0}
	eng := NewEngine(db, config.Default().Pet, clk.now)

	clk.advance(time.Hour)
	eng.Tick()
	eng.Feed()
	want := eng.Snapshot()

	// Fresh engine on the same store simulates a process restart.
	eng2 := NewEngine(db, config.Default().Pet, clk.now)
	if got := eng2.Snapshot(); got != want {
		t.Errorf("reloaded status:\ngot  %+v\nwant %+v", got, want)
	}
}
