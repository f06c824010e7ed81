package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// envOverrides mirrors the GLASSBOARD_* environment. Pointers distinguish
// unset variables from zero values. Plain field names keep envconfig from
// falling back to unprefixed variables.
type envOverrides struct {
	Theme      *string
	ProjectDir *string `split_words:"true"`
	Refraction *float64
	Aberration *float64
	MinZoom    *float64 `split_words:"true"`
	MaxZoom    *float64 `split_words:"true"`
}

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "GLASSBOARD"

// ApplyEnv overlays GLASSBOARD_* variables onto c.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if env.Theme != nil {
		c.Theme = *env.Theme
	}
	if env.ProjectDir != nil {
		c.ProjectDir = *env.ProjectDir
	}
	if env.Refraction != nil {
		if *env.Refraction <= 0 {
			return fmt.Errorf("environment: %s_REFRACTION must be positive", EnvPrefix)
		}
		c.Glass.Refraction = *env.Refraction
	}
	if env.Aberration != nil {
		c.Glass.Aberration = *env.Aberration
	}
	if env.MinZoom != nil {
		c.View.MinZoom = *env.MinZoom
	}
	if env.MaxZoom != nil {
		c.View.MaxZoom = *env.MaxZoom
	}
	if c.View.MinZoom <= 0 || c.View.MaxZoom < c.View.MinZoom {
		return fmt.Errorf("environment: invalid zoom range %g..%g", c.View.MinZoom, c.View.MaxZoom)
	}
	return nil
}
