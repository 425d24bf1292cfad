package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"

	"github.com/aaronzipp/snakesss/internal/config"
	"github.com/aaronzipp/snakesss/internal/models"
)

// Options carries the collaborators of a Session. Questions is required;
// everything else falls back to a sensible default.
type Options struct {
	Roles     RoleAssigner
	Questions QuestionSource
	Notifier  Notifier
	Recorder  Recorder

	// TimeUnit is the length of one countdown second
	TimeUnit time.Duration

	// Now stamps the game record
	Now func() time.Time
}

// Snapshot is a consistent copy of everything a UI driver renders
type Snapshot struct {
	Phase                   models.Phase
	Round                   int
	TotalRounds             int
	DiscussionSeconds       int
	DiscussionTimeRemaining int
	Players                 []models.Player
	CurrentQuestion         opt.Option[models.Question]
	SnakeIndices            []int
	MongooseIndex           int // -1 before the first round
	Results                 []models.RoundResult
	Winners                 []models.Player
}

// Session owns one game on the shared device: the seats, the phase state
// machine, running scores and the discussion countdown.
type Session struct {
	players      []*models.Player
	phase        models.Phase
	round        int
	question     opt.Option[models.Question]
	results      []models.RoundResult
	snakeIndices []int

	totalRounds       int
	discussionSeconds int
	remaining         int
	stopCountdown     context.CancelFunc
	recorded          bool

	roles     RoleAssigner
	questions QuestionSource
	notifier  Notifier
	recorder  Recorder
	unit      time.Duration
	now       func() time.Time

	mu deadlock.Mutex
}

// New creates a session in the setup phase. Rounds per game and the
// discussion length are read from settings once, here.
func New(players []*models.Player, settings config.Settings, opts Options) (*Session, error) {
	if _, ok := DistributionTable[len(players)]; !ok {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, len(players))
	}
	if opts.Questions == nil {
		return nil, errors.New("session needs a question source")
	}
	if settings.RoundsPerGame <= 0 || settings.DiscussionSeconds <= 0 {
		return nil, fmt.Errorf("rounds and discussion length must be positive, got %d and %d", settings.RoundsPerGame, settings.DiscussionSeconds)
	}

	if opts.Roles == nil {
		opts.Roles = NewRoleAssigner(nil)
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.TimeUnit <= 0 {
		opts.TimeUnit = DefaultTimeUnit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	for _, p := range players {
		p.Role = models.RoleNone
		p.CurrentVote = models.VoteNone
		p.TotalScore = 0
	}

	return &Session{
		players:           players,
		phase:             models.Setup(),
		question:          opt.None[models.Question](),
		totalRounds:       settings.RoundsPerGame,
		discussionSeconds: settings.DiscussionSeconds,
		remaining:         settings.DiscussionSeconds,
		roles:             opts.Roles,
		questions:         opts.Questions,
		notifier:          opts.Notifier,
		recorder:          opts.Recorder,
		unit:              opts.TimeUnit,
		now:               opts.Now,
	}, nil
}

// StartRound assigns fresh roles, clears last round's votes and shows the
// first role reveal.
func (s *Session) StartRound() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startRoundLocked()
}

func (s *Session) startRoundLocked() error {
	if s.phase.Kind == models.PhaseGameEnd {
		return ErrGameOver
	}

	roles := s.roles.AssignRoles(len(s.players))
	if len(roles) != len(s.players) {
		return fmt.Errorf("%w: got %d roles for %d players", ErrInvalidPlayerCount, len(roles), len(s.players))
	}

	s.cancelCountdownLocked()
	s.round++
	s.question = opt.None[models.Question]()
	s.remaining = s.discussionSeconds
	s.snakeIndices = s.snakeIndices[:0]
	for i, p := range s.players {
		p.Role = roles[i]
		p.CurrentVote = models.VoteNone
		if roles[i] == models.RoleSnake {
			s.snakeIndices = append(s.snakeIndices, i)
		}
	}

	log.Debug().Int("round", s.round).Ints("snakes", s.snakeIndices).Msg("round started")
	s.setPhase(models.RoleReveal(0))
	return nil
}

// RevealNextRole moves past player i's role card
func (s *Session) RevealNextRole(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(models.RoleReveal(i)); err != nil {
		return err
	}
	if next := i + 1; next < len(s.players) {
		s.setPhase(models.RoleReveal(next))
	} else {
		s.setPhase(models.MongooseAnnouncement())
	}
	return nil
}

// ShowQuestion draws this round's question. When the corpus is empty it
// returns ErrNoQuestions and the phase does not move.
func (s *Session) ShowQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(models.MongooseAnnouncement()); err != nil {
		return err
	}

	q := s.questions.GetQuestion()
	if opt.IsNone(q) {
		log.Warn().Int("round", s.round).Msg("question pool returned nothing")
		return ErrNoQuestions
	}
	s.question = q
	s.setPhase(models.QuestionShown())
	return nil
}

// StartSnakeReveal shows the first snake, or goes straight to discussion
// when nobody drew the snake role
func (s *Session) StartSnakeReveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(models.QuestionShown()); err != nil {
		return err
	}
	if len(s.snakeIndices) == 0 {
		s.startDiscussionLocked()
		return nil
	}
	s.setPhase(models.SnakeReveal(0))
	return nil
}

// RevealNextSnake moves past the i-th snake's reveal
func (s *Session) RevealNextSnake(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(models.SnakeReveal(i)); err != nil {
		return err
	}
	if next := i + 1; next < len(s.snakeIndices) {
		s.setPhase(models.SnakeReveal(next))
	} else {
		s.startDiscussionLocked()
	}
	return nil
}

// SkipDiscussion cancels the countdown and opens voting
func (s *Session) SkipDiscussion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(models.Discussion()); err != nil {
		return err
	}
	s.cancelCountdownLocked()
	s.setPhase(models.Voting(0))
	return nil
}

// SubmitVote records player i's ballot as given. Whether the ballot suits
// the player's role is the UI's business, not the engine's.
func (s *Session) SubmitVote(vote models.Vote, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(models.Voting(i)); err != nil {
		return err
	}

	s.players[i].CurrentVote = vote
	s.notifier.VoteRecorded(i, vote)

	if next := i + 1; next < len(s.players) {
		s.setPhase(models.Voting(next))
		return nil
	}
	s.scoreRoundLocked()
	return nil
}

// NextRound leaves the results screen. After the last round the session
// ends and the finished game goes to the recorder; a recorder error is
// returned but the session stays ended.
func (s *Session) NextRound(ctx context.Context) error {
	s.mu.Lock()

	if err := s.expect(models.RoundResults()); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.round < s.totalRounds {
		err := s.startRoundLocked()
		s.mu.Unlock()
		return err
	}

	s.setPhase(models.GameEnd())
	record := s.recordLocked()
	recorder := s.recorder
	first := !s.recorded
	s.recorded = true
	s.mu.Unlock()

	log.Info().
		Int("rounds", record.RoundCount).
		Strs("winners", record.WinnerNames).
		Msg("game finished")

	if recorder == nil || !first {
		return nil
	}
	if err := recorder.RecordGame(ctx, record); err != nil {
		log.Error().Err(err).Msg("failed to record finished game")
		return fmt.Errorf("recording game: %w", err)
	}
	return nil
}

// Close stops any running countdown
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelCountdownLocked()
}

// Phase returns the current phase
func (s *Session) Phase() models.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CurrentRound is the 1-based number of the round in progress, 0 before the first
func (s *Session) CurrentRound() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// TotalRounds is the configured game length
func (s *Session) TotalRounds() int {
	return s.totalRounds
}

// CurrentQuestion returns this round's question once it has been shown
func (s *Session) CurrentQuestion() opt.Option[models.Question] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.question
}

// DiscussionTimeRemaining is the countdown value in seconds
func (s *Session) DiscussionTimeRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Players returns copies of the seats in seat order
func (s *Session) Players() []models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playersLocked()
}

// RoundResults returns the scored rounds, oldest first
func (s *Session) RoundResults() []models.RoundResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultsLocked()
}

// SnakeIndices returns the seats holding the snake role this round
func (s *Session) SnakeIndices() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.snakeIndices...)
}

// SnakeNames returns the names of this round's snakes in reveal order
func (s *Session) SnakeNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.snakeIndices))
	for _, i := range s.snakeIndices {
		names = append(names, s.players[i].Name)
	}
	return names
}

// MongooseIndex returns the seat holding the mongoose role this round
func (s *Session) MongooseIndex() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.mongooseLocked()
	return i, i >= 0
}

// Winners returns every player sharing the highest total score
func (s *Session) Winners() []models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winnersLocked()
}

// Snapshot copies the whole observable state under one lock
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Phase:                   s.phase,
		Round:                   s.round,
		TotalRounds:             s.totalRounds,
		DiscussionSeconds:       s.discussionSeconds,
		DiscussionTimeRemaining: s.remaining,
		Players:                 s.playersLocked(),
		CurrentQuestion:         s.question,
		SnakeIndices:            append([]int(nil), s.snakeIndices...),
		MongooseIndex:           s.mongooseLocked(),
		Results:                 s.resultsLocked(),
		Winners:                 s.winnersLocked(),
	}
}

func (s *Session) expect(want models.Phase) error {
	if s.phase != want {
		return fmt.Errorf("%w: in %s, wanted %s", ErrWrongPhase, s.phase, want)
	}
	return nil
}

func (s *Session) setPhase(p models.Phase) {
	log.Debug().Int("round", s.round).Str("from", s.phase.String()).Str("to", p.String()).Msg("phase change")
	s.phase = p
	s.notifier.PhaseChanged(p)
}

func (s *Session) scoreRoundLocked() {
	if opt.IsNone(s.question) {
		return
	}
	question := s.question.Value

	roles := make(map[int]models.Role, len(s.players))
	votes := make(map[int]models.Vote, len(s.players))
	result := models.RoundResult{
		RoundNumber: s.round,
		Question:    question,
	}
	for i, p := range s.players {
		if p.HasRole() {
			roles[i] = p.Role
			result.Roles = append(result.Roles, models.RoleEntry{PlayerIndex: i, Role: p.Role})
		}
		if p.HasVoted() {
			votes[i] = p.CurrentVote
			result.Votes = append(result.Votes, models.VoteEntry{PlayerIndex: i, Vote: p.CurrentVote})
		}
	}

	points := CalculateRoundScores(s.players, roles, votes, question.Answer)
	for i, p := range s.players {
		p.TotalScore += points[i]
		result.PointsEarned = append(result.PointsEarned, models.PointsEntry{PlayerIndex: i, Points: points[i]})
	}

	s.results = append(s.results, result)
	s.setPhase(models.RoundResults())
}

func (s *Session) startDiscussionLocked() {
	s.cancelCountdownLocked()
	s.remaining = s.discussionSeconds

	ctx, cancel := context.WithCancel(context.Background())
	s.stopCountdown = cancel
	s.setPhase(models.Discussion())

	go s.runCountdown(ctx)
}

func (s *Session) cancelCountdownLocked() {
	if s.stopCountdown != nil {
		s.stopCountdown()
		s.stopCountdown = nil
	}
}

func (s *Session) runCountdown(ctx context.Context) {
	ticker := time.NewTicker(s.unit)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if s.tick(ctx) {
			return
		}
	}
}

// tick reports whether the countdown is finished
func (s *Session) tick(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	// cancellation happens under mu, so this check cannot race a skip
	if ctx.Err() != nil {
		return true
	}

	s.remaining--
	switch {
	case s.remaining == TimerWarningSeconds:
		s.notifier.TimerWarning(s.remaining)
	case s.remaining > 0 && s.remaining <= TimerTickSeconds:
		s.notifier.TimerTick(s.remaining)
	}
	if s.remaining > 0 {
		return false
	}

	s.notifier.TimerExpired()
	s.cancelCountdownLocked()
	s.setPhase(models.Voting(0))
	return true
}

func (s *Session) playersLocked() []models.Player {
	out := make([]models.Player, len(s.players))
	for i, p := range s.players {
		out[i] = *p
	}
	return out
}

func (s *Session) resultsLocked() []models.RoundResult {
	out := make([]models.RoundResult, len(s.results))
	for i, r := range s.results {
		out[i] = r.Clone()
	}
	return out
}

func (s *Session) mongooseLocked() int {
	for i, p := range s.players {
		if p.Role == models.RoleMongoose {
			return i
		}
	}
	return -1
}

func (s *Session) winnersLocked() []models.Player {
	best := 0
	for i, p := range s.players {
		if i == 0 || p.TotalScore > best {
			best = p.TotalScore
		}
	}

	var winners []models.Player
	for _, p := range s.players {
		if p.TotalScore == best {
			winners = append(winners, *p)
		}
	}
	return winners
}

func (s *Session) recordLocked() models.GameRecord {
	record := models.GameRecord{
		Date:       s.now(),
		RoundCount: s.round,
	}
	for _, p := range s.players {
		record.PlayerNames = append(record.PlayerNames, p.Name)
		record.FinalScores = append(record.FinalScores, p.TotalScore)
	}
	for _, w := range s.winnersLocked() {
		record.WinnerNames = append(record.WinnerNames, w.Name)
	}
	return record
}
