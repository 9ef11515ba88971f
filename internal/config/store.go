package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/ytget/movebreak/internal/platform"
)

// FileName is the settings file name inside the data directory
const FileName = "config.json"

// Store persists Settings as a flat JSON object
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore creates a store backed by path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored settings. A missing file yields defaults; an
// unparseable file yields defaults and a logged warning. Fields absent from
// the file keep their default values.
func (s *Store) Load() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read settings: %w", err)
	}

	settings, err := decode(data)
	if err != nil {
		log.Printf("[config] Warning: invalid settings JSON in %s, using defaults: %v", s.path, err)
		return Default(), nil
	}
	return settings, nil
}

// Save normalizes and writes settings, replacing the file atomically
func (s *Store) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(settings.Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := platform.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func decode(data []byte) (Settings, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Settings{}, err
	}

	settings := Default()
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}, err
	}

	if _, ok := raw[KeyTriggerOffsetMinute]; !ok {
		if legacy, ok := raw[KeyLegacyBreakOffset]; ok {
			var offset int
			if err := json.Unmarshal(legacy, &offset); err == nil {
				settings.TriggerOffsetMinute = offset
			}
		}
	}
	return settings.Normalize(), nil
}
