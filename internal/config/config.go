package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"github.com/benbeisheim/draughts-backend/internal/draughts"
)

type Config struct {
	ServerPort          string        `mapstructure:"SERVER_PORT"`
	AllowOrigins        string        `mapstructure:"ALLOW_ORIGINS"`
	MatchmakingInterval time.Duration `mapstructure:"MATCHMAKING_INTERVAL"`
	LogDevelopment      bool          `mapstructure:"LOG_DEVELOPMENT"`
	HalfmoveLimit       int           `mapstructure:"HALFMOVE_LIMIT"`
	RepetitionLimit     int           `mapstructure:"REPETITION_LIMIT"`
	PromoteMidCapture   bool          `mapstructure:"PROMOTE_MID_CAPTURE"`
	CapturedPiecesBlock bool          `mapstructure:"CAPTURED_PIECES_BLOCK"`
}

var defaults = map[string]any{
	"SERVER_PORT":           ":3000",
	"ALLOW_ORIGINS":         "http://localhost:5173",
	"MATCHMAKING_INTERVAL":  "1s",
	"LOG_DEVELOPMENT":       false,
	"HALFMOVE_LIMIT":        50,
	"REPETITION_LIMIT":      3,
	"PROMOTE_MID_CAPTURE":   false,
	"CAPTURED_PIECES_BLOCK": false,
}

// Load reads cfgPath if it exists, then lets environment variables override
// it. An empty path skips the file.
func Load(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.MatchmakingInterval <= 0 {
		return nil, errors.New("MATCHMAKING_INTERVAL must be positive")
	}
	return &cfg, nil
}

// Rules builds the draughts rule set described by the config.
func (c *Config) Rules() (draughts.Rules, error) {
	rules := draughts.DefaultRules()
	rules.HalfmoveLimit = c.HalfmoveLimit
	rules.RepetitionLimit = c.RepetitionLimit
	rules.PromoteMidCapture = c.PromoteMidCapture
	rules.CapturedPiecesBlock = c.CapturedPiecesBlock
	if err := rules.Validate(); err != nil {
		return draughts.Rules{}, err
	}
	return rules, nil
}
