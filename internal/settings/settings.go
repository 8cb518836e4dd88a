// Package settings persists per-user choices (ball skin, difficulty) in the
// platform's user data directory.
package settings

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "pinball_madness"
	objectName   = "settings"
	propertyName = "player"
)

// Settings holds the persisted choices.
type Settings struct {
	BallSkin   string `yaml:"ball_skin"`
	Difficulty string `yaml:"difficulty"`
}

// Defaults returns the settings used before anything is saved.
func Defaults() Settings {
	return Settings{BallSkin: "classic", Difficulty: "normal"}
}

// Manager loads and saves Settings. With a nil gdata manager it keeps
// settings in memory only.
type Manager struct {
	data     *gdata.Manager
	settings Settings
}

// Open creates a manager backed by the user data directory.
func Open() (*Manager, error) {
	data, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("settings: cannot open data dir: %w", err)
	}
	return NewManager(data)
}

// NewManager wraps an existing gdata manager and loads saved settings.
func NewManager(data *gdata.Manager) (*Manager, error) {
	m := &Manager{data: data, settings: Defaults()}
	if err := m.Load(); err != nil {
		return m, err
	}
	return m, nil
}

// Load replaces the in-memory settings with the saved ones. Missing data
// leaves the defaults in place.
func (m *Manager) Load() error {
	if m.data == nil || !m.data.ObjectPropExists(objectName, propertyName) {
		return nil
	}
	raw, err := m.data.LoadObjectProp(objectName, propertyName)
	if err != nil {
		return fmt.Errorf("settings: cannot load: %w", err)
	}
	s := Defaults()
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("settings: cannot parse: %w", err)
	}
	m.settings = s
	return nil
}

// Save writes the current settings.
func (m *Manager) Save() error {
	if m.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: cannot encode: %w", err)
	}
	if err := m.data.SaveObjectProp(objectName, propertyName, raw); err != nil {
		return fmt.Errorf("settings: cannot save: %w", err)
	}
	return nil
}

// Get returns the current settings.
func (m *Manager) Get() Settings {
	return m.settings
}

// SetBallSkin changes the skin in memory. Call Save to persist.
func (m *Manager) SetBallSkin(id string) {
	m.settings.BallSkin = id
}

// SetDifficulty changes the preset in memory. Call Save to persist.
func (m *Manager) SetDifficulty(preset string) {
	m.settings.Difficulty = preset
}
