package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pondside/duckpet/internal/capture"
	"github.com/pondside/duckpet/internal/chat"
	"github.com/pondside/duckpet/internal/config"
	"github.com/pondside/duckpet/internal/pet"
	"github.com/pondside/duckpet/internal/sched"
	"github.com/pondside/duckpet/internal/server"
	"github.com/pondside/duckpet/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pet daemon and HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Resolve database path
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	eng := pet.NewEngine(db, cfg.Pet, nil)
	ctrl := pet.NewController(eng, db)

	var capProvider capture.Provider
	if cfg.Capture.Dir != "" {
		capProvider = &capture.DirProvider{Dir: cfg.Capture.Dir}
	}
	gw := chat.NewGateway(db, cfg.AI, capProvider)

	scheduler := sched.New(ctrl, gw, cfg)
	scheduler.OnComment(func(text string) {
		log.Printf("pet says: %s", text)
	})

	// The pet stays quiet while dead; a revive resumes the chatter.
	ctrl.OnDeath(func(cause pet.Cause) {
		log.Printf("pet died of %s", cause)
		scheduler.PauseComments()
	})
	ctrl.OnDeathAtStartup(func(cause pet.Cause) {
		log.Printf("pet was found dead of %s (died while the daemon was down)", cause)
		scheduler.PauseComments()
	})
	ctrl.OnStatusChanged(func(s pet.Status) {
		if !s.Dead && scheduler.CommentsPaused() {
			scheduler.ResumeComments()
		}
	})
	ctrl.OnAttention(func(ev pet.AttentionEvent) {
		if ev.Level == pet.Warning {
			log.Printf("warning: %s", ev.Message)
		}
	})

	ctrl.Start()
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer scheduler.Stop()

	srv := server.New(db, ctrl, gw, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "duckpet serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  db: %s\n", dbPath)
		if gw.HasCredential() {
			fmt.Fprintf(os.Stderr, "  ai: %s\n", cfg.AI.Model)
		} else {
			fmt.Fprintln(os.Stderr, "  ai: disabled (no API key)")
		}
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
