package config

import (
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

// Manager is the live settings provider. Reads return snapshots; every
// update is normalised and, when a path is configured, written to disk.
type Manager struct {
	path     string
	settings Settings
	mu       deadlock.RWMutex
}

// NewManager creates a manager seeded with settings, persisting to path
// (an empty path keeps settings in memory only)
func NewManager(path string, settings Settings) *Manager {
	settings.Normalize()
	return &Manager{
		path:     path,
		settings: settings,
	}
}

// Open loads settings from path and wraps them in a Manager
func Open(path string) (*Manager, error) {
	settings, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewManager(path, settings), nil
}

// Settings returns a snapshot of the current settings
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.Clone()
}

// Update applies fn to a copy of the settings, normalises and stores it
func (m *Manager) Update(fn func(*Settings)) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.settings.Clone()
	fn(&next)
	next.Normalize()

	if err := m.persist(next); err != nil {
		return m.settings.Clone(), err
	}
	m.settings = next
	return next.Clone(), nil
}

// Reset restores the factory defaults
func (m *Manager) Reset() (Settings, error) {
	return m.Update(func(s *Settings) { *s = Defaults() })
}

func (m *Manager) persist(settings Settings) error {
	if m.path == "" {
		return nil
	}
	if err := Save(m.path, settings); err != nil {
		log.Error().Err(err).Str("path", m.path).Msg("failed to save settings")
		return err
	}
	return nil
}
