package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/aaronzipp/snakesss/internal/config"
	"github.com/aaronzipp/snakesss/internal/models"
)

type fixedRoles struct {
	roles []models.Role
}

func (f fixedRoles) AssignRoles(int) []models.Role {
	return append([]models.Role(nil), f.roles...)
}

// scriptedRandom replays values for Intn and never shuffles
type scriptedRandom struct {
	values []int
	next   int
}

func (s *scriptedRandom) Intn(n int) int {
	if s.next >= len(s.values) {
		return 0
	}
	v := s.values[s.next] % n
	s.next++
	return v
}

func (s *scriptedRandom) Shuffle(int, func(i, j int)) {}

type memoryUsedIDs struct {
	mu    sync.Mutex
	ids   []string
	saves int
	err   error
}

func (m *memoryUsedIDs) LoadUsedIDs() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ids...), nil
}

func (m *memoryUsedIDs) SaveUsedIDs(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.err != nil {
		return m.err
	}
	m.ids = append([]string(nil), ids...)
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	phases   []models.Phase
	warnings []int
	ticks    []int
	expired  int
	votes    []models.VoteEntry
}

func (r *recordingNotifier) PhaseChanged(p models.Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = append(r.phases, p)
}

func (r *recordingNotifier) TimerWarning(remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, remaining)
}

func (r *recordingNotifier) TimerTick(remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, remaining)
}

func (r *recordingNotifier) TimerExpired() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expired++
}

func (r *recordingNotifier) VoteRecorded(i int, v models.Vote) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.votes = append(r.votes, models.VoteEntry{PlayerIndex: i, Vote: v})
}

func (r *recordingNotifier) Phases() []models.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Phase(nil), r.phases...)
}

func (r *recordingNotifier) Expired() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.expired
}

type recordingRecorder struct {
	mu      sync.Mutex
	records []models.GameRecord
	err     error
}

func (r *recordingRecorder) RecordGame(_ context.Context, record models.GameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return r.err
}

func makeQuestions(n int, answer string, category string, difficulty models.Difficulty) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			ID:         fmt.Sprintf("%s-%s-%d", category, difficulty, i),
			Question:   fmt.Sprintf("Question %d?", i),
			Choices:    models.Choices{A: "Alpha", B: "Beta", C: "Gamma"},
			Answer:     answer,
			Category:   category,
			Difficulty: difficulty,
		}
	}
	return questions
}

func makePlayers(n int) []*models.Player {
	players := make([]*models.Player, n)
	for i := range players {
		players[i] = &models.Player{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Player %d", i+1)}
	}
	return players
}

func testSettings(rounds int) config.Settings {
	s := config.Defaults()
	s.RoundsPerGame = rounds
	s.DiscussionSeconds = 60
	return s
}

func rolesFor(n int) []models.Role {
	h, s, m := models.RoleHuman, models.RoleSnake, models.RoleMongoose
	switch n {
	case 4:
		return []models.Role{h, s, s, m}
	case 5:
		return []models.Role{h, h, s, s, m}
	case 6:
		return []models.Role{h, h, s, s, s, m}
	case 7:
		return []models.Role{h, h, h, s, s, s, m}
	case 8:
		return []models.Role{h, h, h, s, s, s, s, m}
	}
	panic(fmt.Sprintf("unsupported player count %d", n))
}
