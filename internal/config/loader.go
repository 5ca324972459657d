// Package config layers the engine's tunable thresholds from defaults,
// an optional YAML tuning file, and environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/farshadalemi/Basketball-Analytics-Application/internal/scout"
)

// Load builds the engine configuration. Order of precedence (low -> high):
//  1. defaults (scout.DefaultConfig)
//  2. file (YAML) if SCOUT_CONFIG is set
//  3. env (prefix SCOUT_), e.g. SCOUT_FRAME_WIDTH, SCOUT_SHOT.COOLDOWN_FRAMES
func Load() (*scout.Config, error) {
	cfg := scout.DefaultConfig()

	k := koanf.New(".")

	if path := os.Getenv("SCOUT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables map SCOUT_FRAME_WIDTH -> frame_width. Dots
	// in the variable name address nested sections.
	envProvider := env.Provider("SCOUT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scout_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.FrameWidth <= 0 || cfg.FrameHeight <= 0 {
		return nil, errors.New("frame dimensions must be positive")
	}
	if cfg.Court.Width <= 0 || cfg.Court.Length <= 0 {
		return nil, errors.New("court dimensions must be positive")
	}
	return &cfg, nil
}
