// Package sched coordinates the three periodic activities around the pet:
// the status tick, the randomized auto-comment, and daily capture cleanup.
package sched

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pondside/duckpet/internal/capture"
	"github.com/pondside/duckpet/internal/chat"
	"github.com/pondside/duckpet/internal/config"
	"github.com/pondside/duckpet/internal/pet"
)

// Scheduler runs the fixed-cadence jobs (status tick, cleanup) on a cron
// runner and the auto-comment on a self-rescheduling one-shot timer, so
// each comment delay is an independent random draw and drift never
// accumulates. Comments can be paused without touching the other jobs.
type Scheduler struct {
	ctrl *pet.Controller
	gw   *chat.Gateway

	tickInterval    time.Duration
	commentMin      time.Duration
	commentMax      time.Duration
	captureDir      string
	retention       time.Duration
	cleanupInterval time.Duration

	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	commentTimer *time.Timer
	paused       bool
	stopped      bool

	onComment []func(string)
}

// New creates a Scheduler. The capture directory may be empty, which
// disables the cleanup job.
func New(ctrl *pet.Controller, gw *chat.Gateway, cfg config.Config) *Scheduler {
	return &Scheduler{
		ctrl:            ctrl,
		gw:              gw,
		tickInterval:    cfg.Pet.TickInterval,
		commentMin:      cfg.Pet.CommentMin,
		commentMax:      cfg.Pet.CommentMax,
		captureDir:      cfg.Capture.Dir,
		retention:       cfg.Capture.Retention,
		cleanupInterval: cfg.Capture.CleanupInterval,
	}
}

// OnComment registers a callback that receives each auto-comment reply.
// Register before Start.
func (s *Scheduler) OnComment(f func(string)) {
	s.onComment = append(s.onComment, f)
}

// Start launches all three activities.
func (s *Scheduler) Start() error {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.tickInterval), s.ctrl.Tick); err != nil {
		return fmt.Errorf("schedule status tick: %w", err)
	}
	if s.captureDir != "" {
		if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.cleanupInterval), s.cleanup); err != nil {
			return fmt.Errorf("schedule cleanup: %w", err)
		}
	}
	s.cron.Start()

	s.scheduleComment()
	log.Printf("sched: started (tick %s, comments %s-%s)", s.tickInterval, s.commentMin, s.commentMax)
	return nil
}

// Stop cancels all pending timers and waits for running jobs to finish.
// No callback fires after Stop returns, and an in-flight AI reply that
// lands later is discarded.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.commentTimer != nil {
		s.commentTimer.Stop()
		s.commentTimer = nil
	}
	s.mu.Unlock()

	s.cancel()
	<-s.cron.Stop().Done()
	log.Printf("sched: stopped")
}

// PauseComments suspends the auto-comment timer. The status tick and
// cleanup cadences are unaffected.
func (s *Scheduler) PauseComments() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return
	}
	s.paused = true
	if s.commentTimer != nil {
		s.commentTimer.Stop()
		s.commentTimer = nil
	}
}

// ResumeComments restarts the auto-comment timer with a fresh random delay.
// No-op when not paused.
func (s *Scheduler) ResumeComments() {
	s.mu.Lock()
	if !s.paused || s.stopped {
		s.mu.Unlock()
		return
	}
	s.paused = false
	s.mu.Unlock()

	s.scheduleComment()
}

// CommentsPaused reports whether auto-comments are currently paused.
func (s *Scheduler) CommentsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// commentDelay draws an independent uniform delay from [min, max].
func (s *Scheduler) commentDelay() time.Duration {
	if s.commentMax <= s.commentMin {
		return s.commentMin
	}
	return s.commentMin + rand.N(s.commentMax-s.commentMin)
}

// scheduleComment arms the one-shot comment timer unless stopped or paused.
func (s *Scheduler) scheduleComment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.paused || s.commentTimer != nil {
		return
	}
	s.commentTimer = time.AfterFunc(s.commentDelay(), s.fireComment)
}

// fireComment runs one auto-comment cycle, then reschedules itself.
func (s *Scheduler) fireComment() {
	s.mu.Lock()
	s.commentTimer = nil
	if s.stopped || s.paused {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	defer s.scheduleComment()

	if !s.ctrl.Alive() || !s.gw.HasCredential() {
		return
	}

	reply, err := s.gw.AutoComment(s.ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("sched: auto comment: %v", err)
		}
		return
	}
	// The reply may have raced with Stop; a disposed scheduler must not
	// deliver it.
	if s.ctx.Err() != nil {
		return
	}
	for _, f := range s.onComment {
		f(reply)
	}
}

// cleanup purges capture artifacts older than the retention window.
func (s *Scheduler) cleanup() {
	removed, err := capture.Purge(s.captureDir, s.retention, time.Now())
	if err != nil {
		log.Printf("sched: cleanup: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("sched: cleanup removed %d stale captures", removed)
	}
}
