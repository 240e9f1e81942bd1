// Package settings persists the user's selected filter and theme across
// sessions as a small YAML file.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

type Settings struct {
	Filter string `mapstructure:"filter" yaml:"filter"`
	Theme  string `mapstructure:"theme" yaml:"theme"`
}

func defaults() Settings {
	return Settings{Filter: "all", Theme: "system"}
}

type Store struct {
	path string

	mu      sync.Mutex
	current Settings
}

// NewStore reads the settings file once. A missing file yields defaults,
// not an error.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("filter", "all")
	v.SetDefault("theme", "system")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			s.current = defaults()
			return s, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			s.current = defaults()
			return s, nil
		}
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	cfg := defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	s.current = cfg
	return s, nil
}

func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Save writes the settings to disk and updates the in-memory copy,
// creating parent directories if needed.
func (s *Store) Save(cfg Settings) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")
	v.Set("filter", cfg.Filter)
	v.Set("theme", cfg.Theme)

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing settings to %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()
	return nil
}
