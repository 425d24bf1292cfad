package corpus

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aaronzipp/snakesss/internal/models"
)

//go:embed questions.json
var embeddedQuestions []byte

// Default returns the bundled question corpus
func Default() ([]models.Question, error) {
	return Parse(embeddedQuestions, ".json")
}

// LoadFile reads a corpus from a .json, .yaml or .yml file
func LoadFile(path string) ([]models.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	questions, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return questions, nil
}

// Load returns the corpus at path, or the bundled one when path is empty
func Load(path string) ([]models.Question, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes and validates a corpus. The extension picks the format.
func Parse(data []byte, ext string) ([]models.Question, error) {
	var questions []models.Question

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &questions); err != nil {
			return nil, err
		}
	case ".json", "":
		if err := json.Unmarshal(data, &questions); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported corpus format %q", ext)
	}

	seen := make(map[string]struct{}, len(questions))
	for i := range questions {
		q := &questions[i]
		if err := normalize(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("question %d: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return questions, nil
}

func normalize(q *models.Question) error {
	q.ID = strings.TrimSpace(q.ID)
	if q.ID == "" {
		return errors.New("missing id")
	}
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%s: missing question text", q.ID)
	}
	if q.Choices.A == "" || q.Choices.B == "" || q.Choices.C == "" {
		return fmt.Errorf("%s: all three choices are required", q.ID)
	}

	answer, ok := models.ParseVote(q.Answer)
	if !ok || answer == models.VoteSnake {
		return fmt.Errorf("%s: answer must be a, b or c, got %q", q.ID, q.Answer)
	}
	q.Answer = strings.ToUpper(string(answer))

	switch q.Difficulty {
	case "":
		q.Difficulty = models.DifficultyMedium
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return fmt.Errorf("%s: unknown difficulty %q", q.ID, q.Difficulty)
	}
	return nil
}
