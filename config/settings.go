package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is returned when a settings value is not one the services understand.
var ErrInvalidSettings = errors.New("invalid settings")

var (
	// Generators lists the generation algorithms the generation service offers.
	Generators = []string{"EmptyMazeGenerator", "SimpleMazeGenerator", "MyMazeGenerator"}

	// Searchers lists the search algorithms the solving service offers.
	Searchers = []string{"BreadthFirstSearch", "DepthFirstSearch", "BestFirstSearch"}
)

// Settings are the user selected game properties. The client only uses them to label log lines.
type Settings struct {
	Generator string `yaml:"generator"`
	Searcher  string `yaml:"searcher"`
	Threads   int    `yaml:"threads"`
}

// DefaultSettings returns the properties used until the user picks others.
func DefaultSettings() Settings {
	return Settings{
		Generator: "MyMazeGenerator",
		Searcher:  "BreadthFirstSearch",
		Threads:   3,
	}
}

// Validate checks every property against the values the services accept.
func (s Settings) Validate() error {
	if !slices.Contains(Generators, s.Generator) {
		return fmt.Errorf("%w: unknown generator %q", ErrInvalidSettings, s.Generator)
	}
	if !slices.Contains(Searchers, s.Searcher) {
		return fmt.Errorf("%w: unknown searcher %q", ErrInvalidSettings, s.Searcher)
	}
	if s.Threads <= 0 {
		return fmt.Errorf("%w: thread pool size must be bigger than 0, got %d", ErrInvalidSettings, s.Threads)
	}
	return nil
}

// LoadSettings reads settings from a YAML file. Properties missing from the file keep their defaults.
// An empty path yields the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
