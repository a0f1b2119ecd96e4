package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/playperu/geoguess/internal/geoguess"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/geoguess.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	TimerSeconds int           `env:"TIMER_SECONDS" envDefault:"30"`
	RevealDelay  time.Duration `env:"REVEAL_DELAY" envDefault:"3500ms"`
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`
	MaxTeamSize  int           `env:"MAX_TEAM_SIZE" envDefault:"20"`
	BasePoints   int           `env:"BASE_POINTS" envDefault:"100"`
	StreakBonus  int           `env:"STREAK_BONUS" envDefault:"10"`

	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
}

// Load reads the environment. Variables from the given dotenv files are
// applied first without overriding ones already set; missing files are
// skipped.
func Load(dotenv ...string) (*Config, error) {
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.TimerSeconds <= 0:
		return fmt.Errorf("TIMER_SECONDS must be positive, got %d", c.TimerSeconds)
	case c.TickInterval <= 0:
		return fmt.Errorf("TICK_INTERVAL must be positive, got %s", c.TickInterval)
	case c.RevealDelay < 0:
		return fmt.Errorf("REVEAL_DELAY must not be negative, got %s", c.RevealDelay)
	case c.MaxTeamSize <= 0:
		return fmt.Errorf("MAX_TEAM_SIZE must be positive, got %d", c.MaxTeamSize)
	case c.BasePoints <= 0:
		return fmt.Errorf("BASE_POINTS must be positive, got %d", c.BasePoints)
	case c.SweepInterval <= 0:
		return fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	}
	return nil
}

func (c Config) Rules() geoguess.Rules {
	return geoguess.Rules{
		TimerDuration:         c.TimerSeconds,
		BasePoints:            c.BasePoints,
		StreakBonusMultiplier: c.StreakBonus,
		MaxTeamSize:           c.MaxTeamSize,
		RevealDelay:           c.RevealDelay,
	}
}
