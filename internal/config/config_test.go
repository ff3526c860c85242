package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 38488 {
		t.Errorf("Port = %d, want 38488", cfg.Server.Port)
	}
	if cfg.Pet.HungerDecay != 10 {
		t.Errorf("HungerDecay = %v, want 10", cfg.Pet.HungerDecay)
	}
	if cfg.Pet.NeglectWindow != 24*time.Hour {
		t.Errorf("NeglectWindow = %v, want 24h", cfg.Pet.NeglectWindow)
	}
	if cfg.Pet.TickInterval != 30*time.Second {
		t.Errorf("TickInterval = %v, want 30s", cfg.Pet.TickInterval)
	}
	if cfg.AI.MaxTokens != 150 {
		t.Errorf("MaxTokens = %d, want 150", cfg.AI.MaxTokens)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DUCKPET_PORT", "9999")
	t.Setenv("DUCKPET_NEGLECT_WINDOW", "1h")
	t.Setenv("DUCKPET_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Pet.NeglectWindow != time.Hour {
		t.Errorf("NeglectWindow = %v, want 1h", cfg.Pet.NeglectWindow)
	}
	if cfg.AI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", cfg.AI.APIKey)
	}
}

func TestLoadRejectsInvertedCommentRange(t *testing.T) {
	t.Setenv("DUCKPET_COMMENT_MIN", "30m")
	t.Setenv("DUCKPET_COMMENT_MAX", "10m")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted max < min")
	}
}

func TestListenAddr(t *testing.T) {
	cfg := Default()
	if got := cfg.ListenAddr(); got != "127.0.0.1:38488" {
		t.Errorf("ListenAddr = %q", got)
	}
}
