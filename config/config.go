// Package config defines the compositor's configuration record. Parsing a
// config file or CLI flags into the overlay map consumed here is explicitly
// external to this core (spec Non-goals); this package only defines the
// recognised fields, their defaults, and the InvalidConfiguration
// clamp/default-unknown-enum sanitisation policy.
package config

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// ShadowQuality controls shadow tap count and blur pass count in the effects
// engine's adaptive quality ladder.
type ShadowQuality int

const (
	ShadowQualityLow ShadowQuality = iota
	ShadowQualityMedium
	ShadowQualityHigh
	ShadowQualityUltra
)

// parseShadowQuality maps a free-form string to a ShadowQuality, defaulting
// to Medium for anything unrecognised (InvalidConfiguration: unknown enums
// default rather than fail).
func parseShadowQuality(s string) ShadowQuality {
	switch s {
	case "low", "Low":
		return ShadowQualityLow
	case "medium", "Medium":
		return ShadowQualityMedium
	case "high", "High":
		return ShadowQualityHigh
	case "ultra", "Ultra":
		return ShadowQualityUltra
	default:
		return ShadowQualityMedium
	}
}

// Workspace holds the scrollable-workspace configuration surface.
type Workspace struct {
	WorkspaceWidth   int     `mapstructure:"workspace_width"`
	Gaps             int     `mapstructure:"gaps"`
	ScrollSpeed      float64 `mapstructure:"scroll_speed"`
	SmoothScrolling  bool    `mapstructure:"smooth_scrolling"`
	MaxColumns       int     `mapstructure:"max_columns"`
	ColumnGraceMs    int     `mapstructure:"column_grace_ms"`
}

// Shadow holds drop-shadow rendering parameters.
type Shadow struct {
	Size       float64    `mapstructure:"size"`
	BlurRadius float64    `mapstructure:"blur_radius"`
	Opacity    float64    `mapstructure:"opacity"`
	OffsetX    float64    `mapstructure:"offset_x"`
	OffsetY    float64    `mapstructure:"offset_y"`
	Color      [4]float32 `mapstructure:"color"`
}

// Effects holds the GPU effects engine configuration surface.
type Effects struct {
	Enabled            bool          `mapstructure:"enabled"`
	BlurRadius         float64       `mapstructure:"blur_radius"`
	Shadow             Shadow        `mapstructure:"shadow"`
	CornerRadius       float64       `mapstructure:"corner_radius"`
	AnimationDurationMs int          `mapstructure:"animation_duration_ms"`
	Quality            ShadowQuality `mapstructure:"-"`
	QualityRaw         string        `mapstructure:"quality"`
}

// Config is the full recognised configuration record (spec.md §6).
type Config struct {
	Workspace Workspace `mapstructure:"workspace"`
	Effects   Effects   `mapstructure:"effects"`
}

// Default returns a Config populated with sane defaults, already sanitised.
func Default() Config {
	c := Config{
		Workspace: Workspace{
			WorkspaceWidth:  1920,
			Gaps:            8,
			ScrollSpeed:     0.18, // half-life, seconds
			SmoothScrolling: true,
			MaxColumns:      4096,
			ColumnGraceMs:   2000,
		},
		Effects: Effects{
			Enabled:    true,
			BlurRadius: 24,
			Shadow: Shadow{
				Size:       12,
				BlurRadius: 18,
				Opacity:    0.45,
				OffsetY:    6,
				Color:      [4]float32{0, 0, 0, 1},
			},
			CornerRadius:        8,
			AnimationDurationMs: 300,
			QualityRaw:          "High",
		},
	}
	c.Sanitize()
	return c
}

// FromOverlay decodes a loosely-typed overlay (as produced by whatever
// external file/CLI parser the host uses) onto a copy of Default, then
// sanitises the result.
func FromOverlay(overlay map[string]any) (Config, error) {
	c := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &c,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return c, err
	}
	if err := decoder.Decode(overlay); err != nil {
		return c, err
	}
	c.Sanitize()
	return c, nil
}

// Sanitize clamps out-of-range numeric values and defaults unknown enums,
// implementing the InvalidConfiguration policy from spec.md §7: this core
// never fails to load on bad config, it degrades to a safe value instead.
func (c *Config) Sanitize() {
	c.Workspace.WorkspaceWidth = clampInt(c.Workspace.WorkspaceWidth, 100, 16384)
	c.Workspace.Gaps = clampInt(c.Workspace.Gaps, 0, 512)
	c.Workspace.ScrollSpeed = clampFloat(c.Workspace.ScrollSpeed, 0.01, 5.0)
	c.Workspace.MaxColumns = clampInt(c.Workspace.MaxColumns, 1, 1<<20)
	c.Workspace.ColumnGraceMs = clampInt(c.Workspace.ColumnGraceMs, 0, 3_600_000)

	c.Effects.BlurRadius = clampFloat(c.Effects.BlurRadius, 0, 128)
	c.Effects.Shadow.Size = clampFloat(c.Effects.Shadow.Size, 0, 256)
	c.Effects.Shadow.BlurRadius = clampFloat(c.Effects.Shadow.BlurRadius, 0, 256)
	c.Effects.Shadow.Opacity = clampFloat(c.Effects.Shadow.Opacity, 0, 1)
	c.Effects.CornerRadius = clampFloat(c.Effects.CornerRadius, 0, 512)
	c.Effects.AnimationDurationMs = clampInt(c.Effects.AnimationDurationMs, 0, 60_000)
	c.Effects.Quality = parseShadowQuality(c.Effects.QualityRaw)
}

// ColumnGrace returns the configured column cleanup grace interval as a
// time.Duration.
func (w Workspace) ColumnGrace() time.Duration {
	return time.Duration(w.ColumnGraceMs) * time.Millisecond
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
