// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Config holds the project-wide settings shared by every callback.
// Build it once and pass it to NewBuilder.
type Config struct {
	// Debug turns on the configuration checks of Builder.Build.
	// Without it, nil collaborators and nil events are undefined
	// behavior.
	Debug bool

	// Bus receives every event posted by callbacks.
	Bus Bus

	// Sessions reports the current session. Nil means StaticSession,
	// so session-only events behave like multi-session ones.
	Sessions SessionSource

	// Handlers are run on every successful result. May be nil.
	Handlers *Handlers

	// Logger receives conversion failures and misuse reports.
	// Nil means a no-op logger.
	Logger *zap.SugaredLogger
}

func (c Config) withDefaults() Config {
	if c.Sessions == nil {
		c.Sessions = StaticSession{}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop().Sugar()
	}
	return c
}

func (c Config) validate() error {
	if absent(c.Bus) {
		return &ValidationError{Field: "bus"}
	}
	if absent(c.Sessions) {
		return &ValidationError{Field: "session source"}
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("Config{debug=%t, bus=%T, sessions=%T, handlers=%v}",
		c.Debug, c.Bus, c.Sessions, c.Handlers)
}

// Settings are the environment-tunable knobs.
type Settings struct {
	Debug bool `env:"EVCB_DEBUG" envDefault:"false"`
	// LoopCapacity is the queue capacity of loops made by NewLoop.
	// Unset means DefaultLoopCapacity.
	LoopCapacity int `env:"EVCB_LOOP_CAPACITY"`
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, errors.Wrap(err, "evcb: parse env")
	}
	return s, nil
}

// Apply copies the settings that belong to Config into c.
func (s Settings) Apply(c *Config) {
	c.Debug = s.Debug
}

// NewLoop returns a Loop delivering to next with the configured
// capacity.
func (s Settings) NewLoop(next Bus) *Loop {
	return NewLoop(next, s.LoopCapacity)
}
