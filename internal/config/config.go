package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all duckpet configuration. Defaults are baked into the env
// tags; any field can be overridden through DUCKPET_* environment variables.
type Config struct {
	Server   ServerConfig   `envPrefix:"DUCKPET_"`
	Database DatabaseConfig `envPrefix:"DUCKPET_"`
	AI       AIConfig       `envPrefix:"DUCKPET_"`
	Pet      PetConfig      `envPrefix:"DUCKPET_"`
	Capture  CaptureConfig  `envPrefix:"DUCKPET_"`
}

type ServerConfig struct {
	Bind string `env:"BIND" envDefault:"127.0.0.1"`
	Port int    `env:"PORT" envDefault:"38488"`
}

type DatabaseConfig struct {
	Path string `env:"DB_PATH"` // resolved at runtime via store.DefaultDBPath()
}

type AIConfig struct {
	APIKey    string        `env:"API_KEY"` // overrides the persisted chatgpt_api_key
	Model     string        `env:"MODEL" envDefault:"gpt-4o-mini"`
	MaxTokens int           `env:"MAX_TOKENS" envDefault:"150"`
	Timeout   time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`
}

// PetConfig is the game-balance knob set. The decay rates and neglect window
// were tuned together; changing one without the others shifts how long an
// unattended pet survives.
type PetConfig struct {
	HungerDecay      float64       `env:"HUNGER_DECAY" envDefault:"10"` // points per hour
	CleanlinessDecay float64       `env:"CLEANLINESS_DECAY" envDefault:"5"`
	HappinessDecay   float64       `env:"HAPPINESS_DECAY" envDefault:"7"`
	DeathThreshold   float64       `env:"DEATH_THRESHOLD" envDefault:"5"`
	NeglectWindow    time.Duration `env:"NEGLECT_WINDOW" envDefault:"24h"`
	CareBonus        float64       `env:"CARE_BONUS" envDefault:"40"`

	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"30s"`
	CommentMin   time.Duration `env:"COMMENT_MIN" envDefault:"10m"`
	CommentMax   time.Duration `env:"COMMENT_MAX" envDefault:"20m"`
}

type CaptureConfig struct {
	Dir             string        `env:"CAPTURE_DIR"` // empty disables visual context
	Retention       time.Duration `env:"CAPTURE_RETENTION" envDefault:"24h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"24h"`
}

// Load returns the default configuration with environment overrides applied.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Pet.CommentMax < cfg.Pet.CommentMin {
		return cfg, fmt.Errorf("comment interval: max %s < min %s", cfg.Pet.CommentMax, cfg.Pet.CommentMin)
	}
	return cfg, nil
}

// Default returns the configuration with no environment applied.
// Intended for tests that need a known-good baseline.
func Default() Config {
	return Config{
		Server: ServerConfig{Bind: "127.0.0.1", Port: 38488},
		AI:     AIConfig{Model: "gpt-4o-mini", MaxTokens: 150, Timeout: 30 * time.Second},
		Pet: PetConfig{
			HungerDecay:      10,
			CleanlinessDecay: 5,
			HappinessDecay:   7,
			DeathThreshold:   5,
			NeglectWindow:    24 * time.Hour,
			CareBonus:        40,
			TickInterval:     30 * time.Second,
			CommentMin:       10 * time.Minute,
			CommentMax:       20 * time.Minute,
		},
		Capture: CaptureConfig{Retention: 24 * time.Hour, CleanupInterval: 24 * time.Hour},
	}
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
