// Package config persists camera settings as YAML, either in a per-user data
// store or as plain files, and watches the file form for live reload.
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/heinsteinh/agl-game-engine/pkg/camera"
)

// Storage location inside the per-user store
const (
	settingsObject   = "config"
	settingsProperty = "camera"
)

// Manager loads and saves controller settings in a per-user data store. A
// failed store open degrades to in-memory defaults instead of an error.
type Manager struct {
	store    *gdata.Manager
	settings camera.Settings
}

// NewManager opens the per-user store for the given application name and
// loads any previously saved settings.
func NewManager(appName string) *Manager {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Config] Warning: persistent store unavailable: %v (settings will not persist)", err)
		store = nil
	}

	m := &Manager{
		store:    store,
		settings: camera.DefaultSettings(),
	}
	if err := m.Load(); err != nil {
		log.Printf("[Config] Warning: failed to load settings: %v (using defaults)", err)
	}
	return m
}

// Load reads settings from the store. Defaults are adopted when the store is
// absent, the property does not exist, or the payload fails to parse; only
// the two failure cases return an error.
func (m *Manager) Load() error {
	if m.store == nil {
		m.settings = camera.DefaultSettings()
		return nil
	}
	if !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = camera.DefaultSettings()
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = camera.DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings, err := decode(data)
	if err != nil {
		m.settings = camera.DefaultSettings()
		return fmt.Errorf("failed to decode settings: %w", err)
	}
	m.settings = settings
	return nil
}

// Save adopts the given settings and writes them to the store. With no store
// the settings are kept in memory and Save reports success.
func (m *Manager) Save(settings camera.Settings) error {
	m.settings = settings
	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Settings returns the current settings.
func (m *Manager) Settings() camera.Settings {
	return m.settings
}

// HasStored reports whether the store holds previously saved settings. It is
// false in the degraded in-memory mode.
func (m *Manager) HasStored() bool {
	return m.store != nil && m.store.ObjectPropExists(settingsObject, settingsProperty)
}

// LoadFile reads settings from a YAML file. Missing keys keep their default
// values; out-of-range values are clamped.
func LoadFile(path string) (camera.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return camera.DefaultSettings(), fmt.Errorf("failed to read settings file: %w", err)
	}
	settings, err := decode(data)
	if err != nil {
		return camera.DefaultSettings(), fmt.Errorf("failed to parse settings file: %w", err)
	}
	return settings, nil
}

// SaveFile writes settings to a YAML file.
func SaveFile(path string, settings camera.Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// decode unmarshals over the defaults, so absent keys stay at their defaults
func decode(data []byte) (camera.Settings, error) {
	settings := camera.DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return camera.DefaultSettings(), err
	}
	return sanitize(settings), nil
}

// sanitize clamps loaded values into the ranges the controller expects
func sanitize(s camera.Settings) camera.Settings {
	s.MovementSpeed = clampMin(s.MovementSpeed, 0)
	s.SprintMultiplier = clampMin(s.SprintMultiplier, 0)
	s.CrouchMultiplier = clampMin(s.CrouchMultiplier, 0)
	s.MouseSensitivity = clampMin(s.MouseSensitivity, 0)
	s.MovementSmoothing = clamp(s.MovementSmoothing, 0, 1)
	s.RotationSmoothing = clamp(s.RotationSmoothing, 0, 1)
	s.ThirdPersonDistance = clampMin(s.ThirdPersonDistance, 0)

	s.MinPitch = clamp(s.MinPitch, camera.MinPitch, camera.MaxPitch)
	s.MaxPitch = clamp(s.MaxPitch, camera.MinPitch, camera.MaxPitch)
	if s.MinPitch > s.MaxPitch {
		s.MinPitch, s.MaxPitch = s.MaxPitch, s.MinPitch
	}

	s.DefaultFOV = clamp(s.DefaultFOV, camera.MinZoom, camera.MaxZoom)
	s.SprintFOV = clamp(s.SprintFOV, camera.MinZoom, camera.MaxZoom)
	s.AimFOV = clamp(s.AimFOV, camera.MinZoom, camera.MaxZoom)
	s.FOVTransitionSpeed = clampMin(s.FOVTransitionSpeed, 0)

	s.ShakeIntensity = clampMin(s.ShakeIntensity, 0)
	s.ShakeDamping = clampMin(s.ShakeDamping, 0)
	return s
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampMin(v, lo float32) float32 {
	if v < lo {
		return lo
	}
	return v
}
