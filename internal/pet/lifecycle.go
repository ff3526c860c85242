package pet

import (
	"sync"

	"github.com/pondside/duckpet/internal/locale"
	"github.com/pondside/duckpet/internal/store"
)

const (
	attentionThreshold = 30.0
	warningThreshold   = 20.0
)

// AttentionLevel grades how urgently the pet needs care.
type AttentionLevel int

const (
	// Attention means a need dropped below 30: show a subtle cue.
	Attention AttentionLevel = iota
	// Warning means a need dropped below 20: show a cause-specific message.
	Warning
)

// AttentionEvent is emitted when the lowest need crosses a care threshold.
// Message is localized and only set for Warning level.
type AttentionEvent struct {
	Level   AttentionLevel
	Cause   Cause
	Message string
}

// Controller wraps the Engine with lifecycle policy: it serializes access
// from the scheduler and the HTTP layer, decides when to raise attention
// signals, and distinguishes a death discovered in persisted state at
// startup from one that happens during a live tick.
//
// Collaborators subscribe plain callbacks before Start; the lists are not
// mutated afterwards, so callbacks run without extra locking.
type Controller struct {
	mu  sync.Mutex
	eng *Engine
	db  *store.DB

	onStatus         []func(Status)
	onAttention      []func(AttentionEvent)
	onDeath          []func(Cause) // death during a live tick: noisy
	onDeathAtStartup []func(Cause) // death found in persisted state: silent
}

// NewController wraps an Engine.
func NewController(eng *Engine, db *store.DB) *Controller {
	return &Controller{eng: eng, db: db}
}

// OnStatusChanged registers a callback fired after any mutation.
func (c *Controller) OnStatusChanged(f func(Status)) { c.onStatus = append(c.onStatus, f) }

// OnAttention registers a callback for care-threshold crossings.
func (c *Controller) OnAttention(f func(AttentionEvent)) { c.onAttention = append(c.onAttention, f) }

// OnDeath registers a callback for a death that happens during a live tick.
func (c *Controller) OnDeath(f func(Cause)) { c.onDeath = append(c.onDeath, f) }

// OnDeathAtStartup registers a callback for a death discovered when loading
// persisted state. Collaborators typically render this without fanfare.
func (c *Controller) OnDeathAtStartup(f func(Cause)) {
	c.onDeathAtStartup = append(c.onDeathAtStartup, f)
}

// Start emits the startup death event if the persisted state was already
// dead. Call once after all subscriptions are in place.
func (c *Controller) Start() {
	c.mu.Lock()
	s := c.eng.Snapshot()
	c.mu.Unlock()

	if s.Dead {
		for _, f := range c.onDeathAtStartup {
			f(s.DeathCause)
		}
	}
}

// Status returns a snapshot of the current pet state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eng.Snapshot()
}

// Alive reports whether the pet is currently alive.
func (c *Controller) Alive() bool {
	return !c.Status().Dead
}

// Tick advances decay and evaluates death. The live death event fires
// exactly once, on the tick that transitions the pet to dead.
func (c *Controller) Tick() {
	c.mu.Lock()
	c.eng.Tick()
	died := c.eng.CheckDeath()
	s := c.eng.Snapshot()
	c.mu.Unlock()

	c.emitStatus(s)
	if died {
		for _, f := range c.onDeath {
			f(s.DeathCause)
		}
		return
	}
	if !s.Dead {
		c.evaluateAttention(s)
	}
}

// Feed applies the feed care action.
func (c *Controller) Feed() Status { return c.care((*Engine).Feed) }

// Clean applies the clean care action.
func (c *Controller) Clean() Status { return c.care((*Engine).Clean) }

// Play applies the play care action.
func (c *Controller) Play() Status { return c.care((*Engine).Play) }

func (c *Controller) care(action func(*Engine)) Status {
	c.mu.Lock()
	action(c.eng)
	s := c.eng.Snapshot()
	c.mu.Unlock()

	c.emitStatus(s)
	return s
}

// Revive resets the pet to the neutral alive state.
func (c *Controller) Revive() Status {
	c.mu.Lock()
	c.eng.Revive()
	s := c.eng.Snapshot()
	c.mu.Unlock()

	c.emitStatus(s)
	return s
}

func (c *Controller) emitStatus(s Status) {
	for _, f := range c.onStatus {
		f(s)
	}
}

// evaluateAttention emits at most one event per tick, for the lowest need
// that crossed a threshold.
func (c *Controller) evaluateAttention(s Status) {
	need, cause, warnKey := lowestNeed(s)
	if need >= attentionThreshold {
		return
	}

	ev := AttentionEvent{Level: Attention, Cause: cause}
	if need < warningThreshold {
		lang, _ := c.db.GetString(store.KeyLanguage, "en")
		name, _ := c.db.GetString(store.KeyDuckName, "")
		ev.Level = Warning
		ev.Message = locale.Warn(lang, warnKey, name)
	}
	for _, f := range c.onAttention {
		f(ev)
	}
}

func lowestNeed(s Status) (float64, Cause, locale.Key) {
	need, cause, key := s.Hunger, CauseHunger, locale.WarnHunger
	if s.Cleanliness < need {
		need, cause, key = s.Cleanliness, CauseDirty, locale.WarnDirty
	}
	if s.Happiness < need {
		need, cause, key = s.Happiness, CauseSadness, locale.WarnSad
	}
	return need, cause, key
}
