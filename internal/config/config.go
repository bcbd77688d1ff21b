package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MINES_"

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return errors.New("invalid duration")
	}
}

// [Duration] implements [encoding.TextUnmarshaler] for env variables
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// DefaultMaxCells caps boards requested from the server.
const DefaultMaxCells = 10000

type BoardConfig struct {
	Width     int `json:"width" env:"WIDTH"`
	Height    int `json:"height" env:"HEIGHT"`
	MineCount int `json:"mine_count" env:"MINE_COUNT"`
	MaxCells  int `json:"max_cells" env:"MAX_CELLS"`
}

func (b BoardConfig) Params() mines.GameParams {
	return mines.GameParams{Width: b.Width, Height: b.Height, MineCount: b.MineCount}
}

type LogConfig struct {
	Level      string `json:"level" env:"LEVEL"`
	File       string `json:"file" env:"FILE"`
	MaxSizeMB  int    `json:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxBackups int    `json:"max_backups" env:"MAX_BACKUPS"`
	MaxAgeDays int    `json:"max_age_days" env:"MAX_AGE_DAYS"`
}

type Config struct {
	Mode            string      `json:"mode" env:"MODE"`
	Addr            string      `json:"addr" env:"ADDR"`
	SessionTTL      Duration    `json:"session_ttl" env:"SESSION_TTL"`
	ShutdownTimeout Duration    `json:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	Board           BoardConfig `json:"board" envPrefix:"BOARD_"`
	Log             LogConfig   `json:"log" envPrefix:"LOG_"`
}

func Default() *Config {
	params := mines.DefaultParams()
	return &Config{
		Mode:            "development",
		Addr:            ":8080",
		SessionTTL:      Duration{30 * time.Minute},
		ShutdownTimeout: Duration{15 * time.Second},
		Board: BoardConfig{
			Width:     params.Width,
			Height:    params.Height,
			MineCount: params.MineCount,
			MaxCells:  DefaultMaxCells,
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":             c.Mode,
		"addr":             c.Addr,
		"session_ttl":      c.SessionTTL.String(),
		"shutdown_timeout": c.ShutdownTimeout.String(),
		"board":            c.Board.Params().Seed(),
		"log_level":        c.Log.Level,
		"log_file":         c.Log.File,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}

// Load builds the configuration from defaults, the JSON file at path (if
// path is not empty) and MINES_* environment variables, in that order.
// A .env file in the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	config := Default()
	if path != "" {
		if err := ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("unable to parse environment: %w", err)
	}

	if config.Board.MaxCells <= 0 {
		return nil, fmt.Errorf("board.max_cells must be positive, got %d", config.Board.MaxCells)
	}
	if err := config.Board.Params().ValidateLimit(config.Board.MaxCells); err != nil {
		return nil, err
	}
	if config.SessionTTL.Duration <= 0 {
		return nil, fmt.Errorf("session_ttl must be positive, got %s", config.SessionTTL)
	}

	return config, nil
}
