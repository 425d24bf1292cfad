package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// DifficultyMode selects which questions the pool prefers
type DifficultyMode string

const (
	DifficultyEasy   DifficultyMode = "easy"
	DifficultyMedium DifficultyMode = "medium"
	DifficultyHard   DifficultyMode = "hard"
	DifficultyMixed  DifficultyMode = "mixed"
)

var (
	RoundCountOptions    = []int{3, 6, 9}
	TimerDurationOptions = []int{60, 90, 120, 180}
	DifficultyOptions    = []DifficultyMode{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMixed}

	// AllCategories lists every category the bundled corpus uses
	AllCategories = []string{
		"Science",
		"History",
		"Geography",
		"Nature",
		"Sports",
		"Culture",
		"Food & Drink",
		"Technology",
	}
)

const (
	DefaultRoundsPerGame     = 6
	DefaultDiscussionSeconds = 120
	DefaultDifficulty        = DifficultyMixed
)

// Settings holds the player-facing game options
type Settings struct {
	RoundsPerGame     int            `yaml:"rounds_per_game" json:"rounds_per_game"`
	DiscussionSeconds int            `yaml:"discussion_seconds" json:"discussion_seconds"`
	EnabledCategories []string       `yaml:"enabled_categories" json:"enabled_categories"`
	Difficulty        DifficultyMode `yaml:"difficulty" json:"difficulty"`
	SoundEnabled      bool           `yaml:"sound_enabled" json:"sound_enabled"`
	HapticsEnabled    bool           `yaml:"haptics_enabled" json:"haptics_enabled"`
}

// Defaults returns the factory settings
func Defaults() Settings {
	return Settings{
		RoundsPerGame:     DefaultRoundsPerGame,
		DiscussionSeconds: DefaultDiscussionSeconds,
		EnabledCategories: slices.Clone(AllCategories),
		Difficulty:        DefaultDifficulty,
		SoundEnabled:      true,
		HapticsEnabled:    true,
	}
}

// Normalize replaces every out-of-range value with its default
func (s *Settings) Normalize() {
	if !slices.Contains(RoundCountOptions, s.RoundsPerGame) {
		s.RoundsPerGame = DefaultRoundsPerGame
	}
	if !slices.Contains(TimerDurationOptions, s.DiscussionSeconds) {
		s.DiscussionSeconds = DefaultDiscussionSeconds
	}
	if !slices.Contains(DifficultyOptions, s.Difficulty) {
		s.Difficulty = DefaultDifficulty
	}

	categories := make([]string, 0, len(s.EnabledCategories))
	for _, c := range s.EnabledCategories {
		if c != "" && !slices.Contains(categories, c) {
			categories = append(categories, c)
		}
	}
	if len(categories) == 0 {
		categories = slices.Clone(AllCategories)
	}
	s.EnabledCategories = categories
}

// Validate reports the first value outside its allowed set
func (s Settings) Validate() error {
	if !slices.Contains(RoundCountOptions, s.RoundsPerGame) {
		return fmt.Errorf("rounds_per_game must be one of %v, got %d", RoundCountOptions, s.RoundsPerGame)
	}
	if !slices.Contains(TimerDurationOptions, s.DiscussionSeconds) {
		return fmt.Errorf("discussion_seconds must be one of %v, got %d", TimerDurationOptions, s.DiscussionSeconds)
	}
	if !slices.Contains(DifficultyOptions, s.Difficulty) {
		return fmt.Errorf("difficulty must be one of %v, got %q", DifficultyOptions, s.Difficulty)
	}
	if len(s.EnabledCategories) == 0 {
		return errors.New("enabled_categories must not be empty")
	}
	return nil
}

// CategoryEnabled reports whether a category is in the enabled set
func (s Settings) CategoryEnabled(category string) bool {
	return slices.Contains(s.EnabledCategories, category)
}

// Clone returns a copy that shares no slices with s
func (s Settings) Clone() Settings {
	s.EnabledCategories = slices.Clone(s.EnabledCategories)
	return s
}

// Load reads settings from a YAML file. A missing file yields the defaults;
// keys absent from the file keep their default values.
func Load(path string) (Settings, error) {
	settings := Defaults()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Defaults(), fmt.Errorf("parsing %s: %w", path, err)
	}
	settings.Normalize()
	return settings, nil
}

// Save writes settings to a YAML file, creating its directory if needed
func Save(path string, settings Settings) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
