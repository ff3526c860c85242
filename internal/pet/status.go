package pet

import (
	"log"
	"time"

	"github.com/pondside/duckpet/internal/config"
	"github.com/pondside/duckpet/internal/store"
)

// Cause classifies what killed the pet.
type Cause string

const (
	CauseNone    Cause = "none"
	CauseHunger  Cause = "hunger"
	CauseDirty   Cause = "dirty"
	CauseSadness Cause = "sadness"
)

// Status is the pet's full state at a point in time. It is a value: engine
// operations replace it rather than sharing references with callers.
type Status struct {
	Hunger      float64
	Cleanliness float64
	Happiness   float64
	LastUpdate  time.Time
	LastFed     time.Time
	LastCleaned time.Time
	LastPlayed  time.Time
	Dead        bool
	DeathCause  Cause
}

const neutral = 50.0

// Engine owns Status mutation: time-based decay, care actions, death
// detection and revival. All operations are pure state math; persistence is
// best-effort and never rolls back the in-memory state.
type Engine struct {
	db  *store.DB
	now func() time.Time

	hungerDecay      float64 // points per hour
	cleanlinessDecay float64
	happinessDecay   float64
	deathThreshold   float64
	neglectWindow    time.Duration
	careBonus        float64

	status Status
}

// NewEngine creates an Engine with the given balance knobs and clock,
// loading persisted state or initializing neutral defaults on first run.
func NewEngine(db *store.DB, cfg config.PetConfig, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	e := &Engine{
		db:               db,
		now:              now,
		hungerDecay:      cfg.HungerDecay,
		cleanlinessDecay: cfg.CleanlinessDecay,
		happinessDecay:   cfg.HappinessDecay,
		deathThreshold:   cfg.DeathThreshold,
		neglectWindow:    cfg.NeglectWindow,
		careBonus:        cfg.CareBonus,
	}
	e.load()
	return e
}

// load restores the persisted status, or initializes neutral defaults when
// no state has ever been written.
func (e *Engine) load() {
	lastUpdate, err := e.db.GetInt(store.KeyLastUpdate, 0)
	if err != nil {
		log.Printf("pet: load: %v", err)
	}
	if lastUpdate == 0 {
		e.reset()
		return
	}

	s := Status{LastUpdate: time.UnixMilli(lastUpdate)}
	s.Hunger, _ = e.db.GetFloat(store.KeyHunger, neutral)
	s.Cleanliness, _ = e.db.GetFloat(store.KeyCleanliness, neutral)
	s.Happiness, _ = e.db.GetFloat(store.KeyHappiness, neutral)
	s.LastFed = loadTime(e.db, store.KeyLastFeed)
	s.LastCleaned = loadTime(e.db, store.KeyLastClean)
	s.LastPlayed = loadTime(e.db, store.KeyLastPlay)
	s.Dead, _ = e.db.GetBool(store.KeyIsDead, false)
	cause, _ := e.db.GetString(store.KeyDeathCause, string(CauseNone))
	s.DeathCause = Cause(cause)
	if !s.Dead {
		s.DeathCause = CauseNone
	}
	e.status = s
}

func loadTime(db *store.DB, key string) time.Time {
	ms, _ := db.GetInt(key, 0)
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// reset puts the pet into the fresh neutral state used on first run and on
// revival, and persists it.
func (e *Engine) reset() {
	now := e.now()
	e.status = Status{
		Hunger:      neutral,
		Cleanliness: neutral,
		Happiness:   neutral,
		LastUpdate:  now,
		LastFed:     now,
		LastCleaned: now,
		LastPlayed:  now,
		Dead:        false,
		DeathCause:  CauseNone,
	}
	e.persist()
}

// Snapshot returns a copy of the current status.
func (e *Engine) Snapshot() Status {
	return e.status
}

// Tick applies linear decay for the wall-clock time elapsed since the last
// update. No-op when the pet is dead or when no time has passed (including
// backwards clock skew).
func (e *Engine) Tick() {
	if e.status.Dead {
		return
	}
	now := e.now()
	hours := now.Sub(e.status.LastUpdate).Hours()
	if hours <= 0 {
		return
	}

	e.status.Hunger = clamp(e.status.Hunger - e.hungerDecay*hours)
	e.status.Cleanliness = clamp(e.status.Cleanliness - e.cleanlinessDecay*hours)
	e.status.Happiness = clamp(e.status.Happiness - e.happinessDecay*hours)
	e.status.LastUpdate = now
	e.persist()
}

// CheckDeath evaluates the death conditions and returns true exactly when
// the pet transitions from alive to dead on this call.
//
// A need at exactly zero kills immediately. A need at or below the death
// threshold kills only once its care action has been neglected for longer
// than the neglect window. When several needs trip at once the cause is
// decided in the order hunger, cleanliness, happiness.
func (e *Engine) CheckDeath() bool {
	if e.status.Dead {
		return false
	}
	now := e.now()

	checks := []struct {
		need     float64
		lastCare time.Time
		cause    Cause
	}{
		{e.status.Hunger, e.status.LastFed, CauseHunger},
		{e.status.Cleanliness, e.status.LastCleaned, CauseDirty},
		{e.status.Happiness, e.status.LastPlayed, CauseSadness},
	}

	for _, c := range checks {
		if c.need == 0 {
			e.die(c.cause)
			return true
		}
	}
	for _, c := range checks {
		if c.need <= e.deathThreshold && now.Sub(c.lastCare) > e.neglectWindow {
			e.die(c.cause)
			return true
		}
	}
	return false
}

func (e *Engine) die(cause Cause) {
	e.status.Dead = true
	e.status.DeathCause = cause
	e.persist()
	log.Printf("pet: died of %s", cause)
}

// Feed raises hunger by the care bonus and stamps the feed time.
// No-op when dead.
func (e *Engine) Feed() {
	if e.status.Dead {
		return
	}
	e.status.Hunger = clamp(e.status.Hunger + e.careBonus)
	e.status.LastFed = e.now()
	e.persist()
}

// Clean raises cleanliness by the care bonus and stamps the clean time.
// No-op when dead.
func (e *Engine) Clean() {
	if e.status.Dead {
		return
	}
	e.status.Cleanliness = clamp(e.status.Cleanliness + e.careBonus)
	e.status.LastCleaned = e.now()
	e.persist()
}

// Play raises happiness by the care bonus and stamps the play time.
// No-op when dead.
func (e *Engine) Play() {
	if e.status.Dead {
		return
	}
	e.status.Happiness = clamp(e.status.Happiness + e.careBonus)
	e.status.LastPlayed = e.now()
	e.persist()
}

// Revive resets the pet to the neutral state, clearing any death. It works
// whether or not the pet is currently dead.
func (e *Engine) Revive() {
	e.reset()
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// persist writes the full status to the settings store. Failures are logged;
// the in-memory status stays authoritative for this process.
func (e *Engine) persist() {
	s := e.status
	writes := []error{
		e.db.SetFloat(store.KeyHunger, s.Hunger),
		e.db.SetFloat(store.KeyCleanliness, s.Cleanliness),
		e.db.SetFloat(store.KeyHappiness, s.Happiness),
		e.db.SetInt(store.KeyLastUpdate, s.LastUpdate.UnixMilli()),
		e.db.SetInt(store.KeyLastFeed, msOrZero(s.LastFed)),
		e.db.SetInt(store.KeyLastClean, msOrZero(s.LastCleaned)),
		e.db.SetInt(store.KeyLastPlay, msOrZero(s.LastPlayed)),
		e.db.SetBool(store.KeyIsDead, s.Dead),
		e.db.SetString(store.KeyDeathCause, string(s.DeathCause)),
	}
	for _, err := range writes {
		if err != nil {
			log.Printf("pet: persist: %v", err)
			return
		}
	}
}

func msOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
