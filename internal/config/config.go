// Package config loads and publishes the pipeline configuration. The GUI
// collaborator mutates it at runtime; the tick loop reads immutable
// snapshots through Store.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"colortrack/internal/aim"
	"colortrack/internal/track"
	"colortrack/pkg/colorutil"

	"github.com/spf13/viper"
)

// ConfigFileName is the optional JSON settings file looked up in the
// config directory.
const ConfigFileName = "colortrack.cfg.json"

// Capabilities is the set of feature toggles consumed by the scheduler.
// Each flag is independent; the scheduler derives its per-tick behavior
// from the combination.
type Capabilities struct {
	Aim              bool `json:"aim" mapstructure:"aim"`
	ESP              bool `json:"esp" mapstructure:"esp"`
	Trigger          bool `json:"trigger" mapstructure:"trigger"`
	Radar            bool `json:"radar" mapstructure:"radar"`
	Prediction       bool `json:"prediction" mapstructure:"prediction"`
	PredictionVisual bool `json:"predictionVisual" mapstructure:"predictionVisual"`
}

// Settings is the full pipeline configuration, read once per tick.
type Settings struct {
	FOVRadius        int                `json:"fovRadius" mapstructure:"fovRadius"`
	TargetColor      colorutil.RGB      `json:"targetColor" mapstructure:"targetColor"`
	Tolerance        int                `json:"tolerance" mapstructure:"tolerance"`
	Priority         track.PriorityMode `json:"priority" mapstructure:"priority"`
	AimPosition      aim.PositionMode   `json:"aimPosition" mapstructure:"aimPosition"`
	YOffset          float64            `json:"yOffset" mapstructure:"yOffset"`
	PredictionFactor float64            `json:"predictionFactor" mapstructure:"predictionFactor"`
	Smoothness       float64            `json:"smoothness" mapstructure:"smoothness"`
	Speed            float64            `json:"speed" mapstructure:"speed"`
	TickInterval     time.Duration      `json:"tickInterval" mapstructure:"tickInterval"`
	Enabled          Capabilities       `json:"enabled" mapstructure:"enabled"`
}

// MarshalJSON writes TickInterval in the "1ms" form Load expects back.
func (s Settings) MarshalJSON() ([]byte, error) {
	type alias Settings
	return json.Marshal(struct {
		alias
		TickInterval string `json:"tickInterval"`
	}{alias(s), s.TickInterval.String()})
}

// setDefaults registers every knob's default with viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("fovRadius", 200)
	v.SetDefault("targetColor.r", 255)
	v.SetDefault("targetColor.g", 0)
	v.SetDefault("targetColor.b", 0)
	v.SetDefault("tolerance", 40)
	v.SetDefault("priority", string(track.PriorityProximity))
	v.SetDefault("aimPosition", string(aim.PositionBody))
	v.SetDefault("yOffset", 0.0)
	v.SetDefault("predictionFactor", 10.0)
	v.SetDefault("smoothness", 50.0)
	v.SetDefault("speed", 10.0)
	v.SetDefault("tickInterval", "1ms")

	v.SetDefault("enabled.aim", false)
	v.SetDefault("enabled.esp", false)
	v.SetDefault("enabled.trigger", false)
	v.SetDefault("enabled.radar", false)
	v.SetDefault("enabled.prediction", false)
	v.SetDefault("enabled.predictionVisual", false)
}

// Load reads configuration from the given directory, falling back to
// defaults when no config file exists.
func Load(configDir string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(filepath.Join(configDir, ConfigFileName))
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding config: %w", err)
	}
	return s, nil
}

// Save writes the settings as JSON into the config directory, creating it
// if needed.
func Save(configDir string, s Settings) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	path := filepath.Join(configDir, ConfigFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the built-in settings without touching the filesystem.
func Default() Settings {
	v := viper.New()
	setDefaults(v)
	var s Settings
	_ = v.Unmarshal(&s)
	return s
}

// Store publishes settings snapshots to the tick loop while allowing the
// GUI collaborator to mutate them concurrently.
type Store struct {
	mu sync.RWMutex
	s  Settings
}

// NewStore creates a store seeded with the given settings.
func NewStore(s Settings) *Store {
	return &Store{s: s}
}

// Snapshot returns a copy of the current settings.
func (st *Store) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s
}

// Update applies a mutation atomically.
func (st *Store) Update(fn func(*Settings)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	fn(&st.s)
}
