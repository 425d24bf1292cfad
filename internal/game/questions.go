package game

import (
	"fmt"
	"sort"

	"github.com/repeale/fp-go"
	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"

	"github.com/aaronzipp/snakesss/internal/config"
	"github.com/aaronzipp/snakesss/internal/models"
)

// SettingsProvider exposes the live game settings
type SettingsProvider interface {
	Settings() config.Settings
}

// UsedIDStore persists the set of question ids already asked, across games
type UsedIDStore interface {
	LoadUsedIDs() ([]string, error)
	SaveUsedIDs(ids []string) error
}

// QuestionPool selects questions from a static corpus, honouring the
// category and difficulty settings and avoiding repeats until the
// filtered pool runs dry.
type QuestionPool struct {
	questions []models.Question
	used      map[string]struct{}
	settings  SettingsProvider
	store     UsedIDStore
	rand      Random
	mu        deadlock.Mutex
}

// NewQuestionPool loads the used-id set from store. The store and random
// source may be nil (no persistence, global source).
func NewQuestionPool(questions []models.Question, settings SettingsProvider, store UsedIDStore, r Random) (*QuestionPool, error) {
	if r == nil {
		r = DefaultRandom
	}
	p := &QuestionPool{
		questions: questions,
		used:      make(map[string]struct{}),
		settings:  settings,
		store:     store,
		rand:      r,
	}
	if store != nil {
		ids, err := store.LoadUsedIDs()
		if err != nil {
			return nil, fmt.Errorf("loading used question ids: %w", err)
		}
		for _, id := range ids {
			p.used[id] = struct{}{}
		}
	}
	return p, nil
}

// Size is the number of questions in the corpus
func (p *QuestionPool) Size() int {
	return len(p.questions)
}

// GetQuestion picks the next question and marks it used. It is None only
// when the corpus is empty.
func (p *QuestionPool) GetQuestion() opt.Option[models.Question] {
	p.mu.Lock()
	defer p.mu.Unlock()

	settings := p.currentSettings()
	pool := p.selectionPool(settings)
	if len(pool) == 0 {
		return opt.None[models.Question]()
	}

	available := p.unused(pool)
	if len(available) == 0 {
		// Only this pool's ids are forgotten; other filter combinations keep their history.
		for _, q := range pool {
			delete(p.used, q.ID)
		}
		log.Debug().Int("pool", len(pool)).Msg("question pool exhausted, recycling")
		available = pool
	}

	candidates := available
	if settings.Difficulty == config.DifficultyMixed {
		target := p.rollDifficulty()
		targeted := fp.Filter(func(q models.Question) bool { return q.Difficulty == target })(available)
		if len(targeted) > 0 {
			candidates = targeted
		}
	}

	question := candidates[p.rand.Intn(len(candidates))]
	p.used[question.ID] = struct{}{}
	p.persist()
	return opt.Some(question)
}

// MarkUsed records a question id as asked
func (p *QuestionPool) MarkUsed(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.used[id] = struct{}{}
	p.persist()
}

// ResetPool forgets every used id
func (p *QuestionPool) ResetPool() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.used = make(map[string]struct{})
	p.persist()
}

// RemainingCount is the number of unused questions that pass the current filters
func (p *QuestionPool) RemainingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.unused(p.selectionPool(p.currentSettings())))
}

// UsedIDs returns the used-id set, sorted
func (p *QuestionPool) UsedIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sortedUsed()
}

func (p *QuestionPool) currentSettings() config.Settings {
	if p.settings == nil {
		return config.Defaults()
	}
	return p.settings.Settings()
}

// selectionPool applies the category filter, then the difficulty filter
// unless it would leave fewer questions than the game has rounds.
func (p *QuestionPool) selectionPool(settings config.Settings) []models.Question {
	pool := fp.Filter(func(q models.Question) bool {
		return !q.HasCategory() || settings.CategoryEnabled(q.Category)
	})(p.questions)
	if len(pool) == 0 {
		// every category disabled; the corpus itself is still playable
		pool = p.questions
	}

	if settings.Difficulty == config.DifficultyMixed {
		return pool
	}

	want := models.Difficulty(settings.Difficulty)
	filtered := fp.Filter(func(q models.Question) bool { return q.Difficulty == want })(pool)
	if len(filtered) < settings.RoundsPerGame {
		return pool
	}
	return filtered
}

func (p *QuestionPool) unused(pool []models.Question) []models.Question {
	return fp.Filter(func(q models.Question) bool {
		_, used := p.used[q.ID]
		return !used
	})(pool)
}

func (p *QuestionPool) rollDifficulty() models.Difficulty {
	roll := p.rand.Intn(MixedRollRange)
	switch {
	case roll < MixedEasyBelow:
		return models.DifficultyEasy
	case roll < MixedMediumBelow:
		return models.DifficultyMedium
	default:
		return models.DifficultyHard
	}
}

func (p *QuestionPool) sortedUsed() []string {
	ids := make([]string, 0, len(p.used))
	for id := range p.used {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// persist must be called with mu held. Failures are logged; the in-memory set stays authoritative.
func (p *QuestionPool) persist() {
	if p.store == nil {
		return
	}
	if err := p.store.SaveUsedIDs(p.sortedUsed()); err != nil {
		log.Error().Err(err).Msg("failed to persist used question ids")
	}
}
