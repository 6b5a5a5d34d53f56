// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the parameters of a generation run.
package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/emer/phrygian/domain"
	"github.com/emer/phrygian/melody"
	"github.com/emer/phrygian/rhythm"
	"github.com/emer/phrygian/synth"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PHRYGIAN_"

// Harmony voicings
const (
	// HarmonyTriad snaps the fifth and third of every melody note onto the derived scale
	HarmonyTriad = "triad"

	// HarmonyParallel moves a fifth above the melody, with a third voice at the
	// geometric mean of the fifth and the minor third, neither snapped to a scale
	HarmonyParallel = "parallel"
)

// Gains are the mix levels of the three voices
type Gains struct {
	Melody float64 `def:"0.9" desc:"gain of the melody (root) voice"`
	Fifth  float64 `def:"0.6" desc:"gain of the fifth-harmony voice"`
	Third  float64 `def:"0.8" desc:"gain of the third-harmony voice"`
}

// Config is everything a generation run needs besides the random source
type Config struct {
	BaseFreq  float64 `def:"0" desc:"base frequency of the scale in Hz -- 0 extracts it from a random sweep"`
	SweepSecs float64 `def:"1" desc:"length of the sweep the base frequency is extracted from, and of the example note"`
	Octaves   int     `def:"2" desc:"number of octave blocks in the base and derived scales"`
	Notes     int     `def:"16" desc:"number of melody notes"`
	Style     string  `def:"melodic_arch" desc:"melody style: melodic_arch or call_response"`
	Pattern   string  `def:"repeating" desc:"rhythm pattern: repeating, random, sacred, epic or ancient_greek"`
	Seed      int64   `def:"1" desc:"seed of the random source"`
	Harmony   string  `def:"triad" desc:"harmony voicing: triad or parallel"`

	RandomTimbre bool `desc:"draw the harmonics and decay of the example note at random"`

	Synth synth.Params
	Gains Gains

	SentryDSN   string `json:",omitempty" desc:"sentry dsn for error reporting -- empty disables it"`
	Environment string `def:"development" desc:"environment name reported with errors"`
}

// Defaults sets the parameters of the reference run
func (cfg *Config) Defaults() {
	cfg.BaseFreq = 0
	cfg.SweepSecs = 1
	cfg.Octaves = 2
	cfg.Notes = 16
	cfg.Style = melody.MelodicArch.String()
	cfg.Pattern = rhythm.Repeating.String()
	cfg.Seed = 1
	cfg.Harmony = HarmonyTriad
	cfg.RandomTimbre = false
	cfg.Synth.Defaults()
	cfg.Gains = Gains{Melody: 0.9, Fifth: 0.6, Third: 0.8}
	cfg.Environment = "development"
}

// OpenJSON opens config from a JSON-formatted file, on top of the current values
func (cfg *Config) OpenJSON(fn string) error {
	b, err := os.ReadFile(fn)
	if err != nil {
		return errors.Wrapf(err, "config: reading %s", fn)
	}
	if err := json.Unmarshal(b, cfg); err != nil {
		return errors.Wrapf(err, "config: parsing %s", fn)
	}
	return nil
}

// SaveJSON writes config to a JSON-formatted file
func (cfg *Config) SaveJSON(fn string) error {
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(fn, b, 0o644), "config: writing %s", fn)
}

// ApplyEnv loads the optional env files (default ".env") and then overrides
// fields from PHRYGIAN_* variables. A missing env file is not an error.
func (cfg *Config) ApplyEnv(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, fn := range envFiles {
		if _, err := os.Stat(fn); err != nil {
			continue
		}
		if err := godotenv.Load(fn); err != nil {
			return errors.Wrapf(err, "config: loading %s", fn)
		}
	}

	var err error
	setFloat(&cfg.BaseFreq, "BASE_FREQ", &err)
	setFloat(&cfg.SweepSecs, "SWEEP_SECS", &err)
	setInt(&cfg.Octaves, "OCTAVES", &err)
	setInt(&cfg.Notes, "NOTES", &err)
	setString(&cfg.Style, "STYLE")
	setString(&cfg.Pattern, "PATTERN")
	setInt64(&cfg.Seed, "SEED", &err)
	setString(&cfg.Harmony, "HARMONY")
	setBool(&cfg.RandomTimbre, "RANDOM_TIMBRE", &err)
	setInt(&cfg.Synth.SampleRate, "SAMPLE_RATE", &err)
	setInt(&cfg.Synth.Harmonics, "HARMONICS", &err)
	setFloat(&cfg.Synth.Decay, "DECAY", &err)
	setFloat(&cfg.Gains.Melody, "GAIN_MELODY", &err)
	setFloat(&cfg.Gains.Fifth, "GAIN_FIFTH", &err)
	setFloat(&cfg.Gains.Third, "GAIN_THIRD", &err)
	setString(&cfg.SentryDSN, "SENTRY_DSN")
	setString(&cfg.Environment, "ENVIRONMENT")
	return err
}

// Validate checks every parameter, returning domain errors
func (cfg *Config) Validate() error {
	const op = "config.Validate"
	if cfg.BaseFreq < 0 {
		return domain.Errorf(domain.InvalidParameter, op, "base frequency %v must be > 0, or 0 to extract it", cfg.BaseFreq)
	}
	if !(cfg.SweepSecs > 0) {
		return domain.Errorf(domain.InvalidParameter, op, "sweep length %v must be > 0", cfg.SweepSecs)
	}
	if cfg.Octaves < 1 {
		return domain.Errorf(domain.InvalidParameter, op, "octave count %d must be >= 1", cfg.Octaves)
	}
	if cfg.Notes <= 0 {
		return domain.Errorf(domain.InvalidParameter, op, "note count %d must be > 0", cfg.Notes)
	}
	if _, err := melody.ParseStyle(cfg.Style); err != nil {
		return err
	}
	if _, err := rhythm.ParsePattern(cfg.Pattern); err != nil {
		return err
	}
	if cfg.Harmony != HarmonyTriad && cfg.Harmony != HarmonyParallel {
		return domain.Errorf(domain.UnsupportedTag, op, "unknown harmony %q", cfg.Harmony)
	}
	return cfg.Synth.Validate()
}

func getEnv(key string) string {
	return os.Getenv(EnvPrefix + key)
}

func setString(dst *string, key string) {
	if v := getEnv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string, errp *error) {
	var n int64
	if setInt64(&n, key, errp) {
		*dst = int(n)
	}
}

func setInt64(dst *int64, key string, errp *error) bool {
	v := getEnv(key)
	if v == "" {
		return false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		if *errp == nil {
			*errp = errors.Wrapf(err, "config: %s%s", EnvPrefix, key)
		}
		return false
	}
	*dst = n
	return true
}

func setFloat(dst *float64, key string, errp *error) {
	v := getEnv(key)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		if *errp == nil {
			*errp = errors.Wrapf(err, "config: %s%s", EnvPrefix, key)
		}
		return
	}
	*dst = f
}

func setBool(dst *bool, key string, errp *error) {
	v := getEnv(key)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		if *errp == nil {
			*errp = errors.Wrapf(err, "config: %s%s", EnvPrefix, key)
		}
		return
	}
	*dst = b
}
