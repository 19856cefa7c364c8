package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// ErrUnknownPlacement indicates a placement id that is not in the store.
var ErrUnknownPlacement = errors.New("unknown placement")

// Placement is the persisted record of one action placed on a surface.
type Placement struct {
	ID       string         `yaml:"id"`
	Action   string         `yaml:"action"`
	Surface  string         `yaml:"surface"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

type yamlFile struct {
	Placements []Placement `yaml:"placements"`
}

// Store keeps per-placement action settings in a YAML file. Every write is
// flushed to disk immediately.
type Store struct {
	mu   sync.Mutex
	path string
	data yamlFile
}

// DefaultPath returns the settings file location for appName.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// Open reads the store at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	store := &Store{path: path}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	if err := yaml.Unmarshal(rawData, &store.data); err != nil {
		return nil, fmt.Errorf("parse settings yaml: %w", err)
	}
	return store, nil
}

// Path returns the backing file.
func (store *Store) Path() string {
	return store.path
}

// Placements returns a snapshot of the stored placements.
func (store *Store) Placements() []Placement {
	store.mu.Lock()
	defer store.mu.Unlock()

	placements := make([]Placement, 0, len(store.data.Placements))
	for _, placement := range store.data.Placements {
		placement.Settings = copySettings(placement.Settings)
		placements = append(placements, placement)
	}
	return placements
}

// Ensure returns the placement id for actionID on surface, allocating and
// saving a new one if none exists yet.
func (store *Store) Ensure(surface, actionID string) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, placement := range store.data.Placements {
		if placement.Surface == surface && placement.Action == actionID {
			return placement.ID, nil
		}
	}

	placement := Placement{
		ID:      uuid.NewString(),
		Action:  actionID,
		Surface: surface,
	}
	store.data.Placements = append(store.data.Placements, placement)
	if err := store.saveLocked(); err != nil {
		return "", err
	}
	return placement.ID, nil
}

// Load returns a copy of the settings of a placement.
func (store *Store) Load(id string) (map[string]any, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexLocked(id)
	if index < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlacement, id)
	}
	return copySettings(store.data.Placements[index].Settings), nil
}

// Save replaces the settings of a placement and writes the file.
func (store *Store) Save(id string, settings map[string]any) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexLocked(id)
	if index < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownPlacement, id)
	}
	store.data.Placements[index].Settings = copySettings(settings)
	return store.saveLocked()
}

// Remove forgets a placement.
func (store *Store) Remove(id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexLocked(id)
	if index < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownPlacement, id)
	}
	store.data.Placements = append(store.data.Placements[:index], store.data.Placements[index+1:]...)
	return store.saveLocked()
}

func (store *Store) indexLocked(id string) int {
	for index, placement := range store.data.Placements {
		if placement.ID == id {
			return index
		}
	}
	return -1
}

func (store *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(store.data)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func copySettings(settings map[string]any) map[string]any {
	copied := make(map[string]any, len(settings))
	for key, value := range settings {
		copied[key] = value
	}
	return copied
}
