package game

import (
	"context"
	"errors"
	"testing"
	"time"

	opt "github.com/repeale/fp-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/snakesss/internal/config"
	"github.com/aaronzipp/snakesss/internal/models"
)

type sessionFixture struct {
	session  *Session
	notifier *recordingNotifier
	recorder *recordingRecorder
	pool     *QuestionPool
}

func newFixture(t *testing.T, roles []models.Role, rounds int, unit time.Duration, questions []models.Question) *sessionFixture {
	t.Helper()

	settings := testSettings(rounds)
	pool, err := NewQuestionPool(questions, config.NewManager("", settings), nil, nil)
	require.NoError(t, err)

	f := &sessionFixture{
		notifier: &recordingNotifier{},
		recorder: &recordingRecorder{},
		pool:     pool,
	}
	f.session, err = New(makePlayers(len(roles)), settings, Options{
		Roles:     fixedRoles{roles: roles},
		Questions: pool,
		Notifier:  f.notifier,
		Recorder:  f.recorder,
		TimeUnit:  unit,
		Now:       func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	require.NoError(t, err)
	t.Cleanup(f.session.Close)
	return f
}

// playUntilDiscussion walks a started round through reveals up to the discussion phase
func playUntilDiscussion(t *testing.T, s *Session) {
	t.Helper()

	n := len(s.Players())
	for i := range n {
		require.NoError(t, s.RevealNextRole(i))
	}
	require.NoError(t, s.ShowQuestion())
	require.NoError(t, s.StartSnakeReveal())
	for i := range len(s.SnakeIndices()) {
		require.NoError(t, s.RevealNextSnake(i))
	}
	require.Equal(t, models.Discussion(), s.Phase())
}

// voteCorrectly has every non-snake pick the answer and every snake pick snake
func voteCorrectly(t *testing.T, s *Session) {
	t.Helper()

	q := s.CurrentQuestion()
	for i, p := range s.Players() {
		vote := q.Value.CorrectVote()
		if p.Role == models.RoleSnake {
			vote = models.VoteSnake
		}
		require.NoError(t, s.SubmitVote(vote, i))
	}
}

func TestNewRejectsBadTables(t *testing.T) {
	t.Parallel()

	pool, err := NewQuestionPool(nil, nil, nil, nil)
	require.NoError(t, err)

	for _, n := range []int{0, 3, 9} {
		_, err := New(makePlayers(n), testSettings(3), Options{Questions: pool})
		assert.ErrorIs(t, err, ErrInvalidPlayerCount, "count %d", n)
	}

	_, err = New(makePlayers(4), testSettings(3), Options{})
	assert.Error(t, err)
}

func TestStartRoundRejectsShortRoleList(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(4), 3, time.Hour, makeQuestions(3, "A", "Science", models.DifficultyMedium))
	f.session.roles = fixedRoles{roles: rolesFor(4)[:3]}

	err := f.session.StartRound()
	assert.ErrorIs(t, err, ErrInvalidPlayerCount)
	assert.Equal(t, models.Setup(), f.session.Phase())
	assert.Equal(t, 0, f.session.CurrentRound())
}

func TestPhaseSequence(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(4), 1, time.Hour, makeQuestions(3, "A", "Science", models.DifficultyMedium))
	s := f.session
	assert.Equal(t, models.Setup(), s.Phase())

	require.NoError(t, s.StartRound())
	playUntilDiscussion(t, s)
	require.NoError(t, s.SkipDiscussion())
	voteCorrectly(t, s)
	require.NoError(t, s.NextRound(context.Background()))

	want := []models.Phase{
		models.RoleReveal(0),
		models.RoleReveal(1),
		models.RoleReveal(2),
		models.RoleReveal(3),
		models.MongooseAnnouncement(),
		models.QuestionShown(),
		models.SnakeReveal(0),
		models.SnakeReveal(1),
		models.Discussion(),
		models.Voting(0),
		models.Voting(1),
		models.Voting(2),
		models.Voting(3),
		models.RoundResults(),
		models.GameEnd(),
	}
	assert.Equal(t, want, f.notifier.Phases())
	assert.Len(t, f.notifier.votes, 4)
}

func TestSnakeRevealSkippedWithoutSnakes(t *testing.T) {
	t.Parallel()

	roles := []models.Role{models.RoleHuman, models.RoleHuman, models.RoleHuman, models.RoleMongoose}
	f := newFixture(t, roles, 1, time.Hour, makeQuestions(3, "A", "Science", models.DifficultyMedium))
	s := f.session

	require.NoError(t, s.StartRound())
	for i := range 4 {
		require.NoError(t, s.RevealNextRole(i))
	}
	require.NoError(t, s.ShowQuestion())
	require.NoError(t, s.StartSnakeReveal())

	assert.Equal(t, models.Discussion(), s.Phase())
	assert.Empty(t, s.SnakeIndices())
	for _, p := range f.notifier.Phases() {
		assert.NotEqual(t, models.PhaseSnakeReveal, p.Kind)
	}
}

func TestFullGame(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(4), 6, time.Hour, makeQuestions(3, "A", "Science", models.DifficultyMedium))
	s := f.session
	ctx := context.Background()

	require.NoError(t, s.StartRound())
	for s.Phase().Kind != models.PhaseGameEnd {
		playUntilDiscussion(t, s)
		require.NoError(t, s.SkipDiscussion())
		voteCorrectly(t, s)
		require.Equal(t, models.RoundResults(), s.Phase())
		require.NoError(t, s.NextRound(ctx))
	}

	results := s.RoundResults()
	require.Len(t, results, 6)
	for i, r := range results {
		assert.Equal(t, i+1, r.RoundNumber)
		assert.Len(t, r.Roles, 4)
		assert.Len(t, r.Votes, 4)
		assert.Equal(t, 2, r.PointsFor(0))
		assert.Equal(t, 0, r.PointsFor(1))
	}

	total := 0
	scores := []int{}
	for _, p := range s.Players() {
		scores = append(scores, p.TotalScore)
		total += p.TotalScore
	}
	assert.Equal(t, []int{12, 0, 0, 12}, scores)
	assert.Equal(t, 24, total)

	winners := s.Winners()
	require.Len(t, winners, 2)
	assert.Equal(t, "Player 1", winners[0].Name)
	assert.Equal(t, "Player 4", winners[1].Name)

	require.Len(t, f.recorder.records, 1)
	record := f.recorder.records[0]
	assert.Equal(t, 6, record.RoundCount)
	assert.Equal(t, []int{12, 0, 0, 12}, record.FinalScores)
	assert.Equal(t, []string{"Player 1", "Player 4"}, record.WinnerNames)
	assert.Equal(t, []string{"Player 1", "Player 2", "Player 3", "Player 4"}, record.PlayerNames)
	assert.Equal(t, 2026, record.Date.Year())

	// terminal: nothing moves any more and the sink is not called again
	assert.ErrorIs(t, s.NextRound(ctx), ErrWrongPhase)
	assert.ErrorIs(t, s.StartRound(), ErrGameOver)
	assert.Len(t, f.recorder.records, 1)
}

func TestRoundNumbersAndVotesReset(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(5), 3, time.Hour, makeQuestions(5, "B", "Science", models.DifficultyMedium))
	s := f.session

	require.NoError(t, s.StartRound())
	for round := 1; round <= 3; round++ {
		assert.Equal(t, round, s.CurrentRound())
		for _, p := range s.Players() {
			assert.False(t, p.HasVoted())
			assert.True(t, p.HasRole())
		}
		idx, ok := s.MongooseIndex()
		assert.True(t, ok)
		assert.Equal(t, 4, idx)
		assert.Equal(t, []string{"Player 3", "Player 4"}, s.SnakeNames())

		playUntilDiscussion(t, s)
		require.NoError(t, s.SkipDiscussion())
		voteCorrectly(t, s)
		require.NoError(t, s.NextRound(context.Background()))
	}

	numbers := []int{}
	for _, r := range s.RoundResults() {
		numbers = append(numbers, r.RoundNumber)
	}
	assert.Equal(t, []int{1, 2, 3}, numbers)
}

func TestScoresNeverDecrease(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(6), 3, time.Hour, makeQuestions(5, "C", "Science", models.DifficultyMedium))
	s := f.session
	require.NoError(t, s.StartRound())

	previous := make([]int, 6)
	for s.Phase().Kind != models.PhaseGameEnd {
		playUntilDiscussion(t, s)
		require.NoError(t, s.SkipDiscussion())
		for i := range 6 {
			require.NoError(t, s.SubmitVote(models.VoteA, i))
		}
		for i, p := range s.Players() {
			assert.GreaterOrEqual(t, p.TotalScore, previous[i])
			previous[i] = p.TotalScore
		}
		require.NoError(t, s.NextRound(context.Background()))
	}
	// three non-snakes fooled every round, three snakes
	assert.Equal(t, []int{0, 0, 9, 9, 9, 0}, previous)
}

func TestShowQuestionWithEmptyCorpus(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(4), 3, time.Hour, nil)
	s := f.session

	require.NoError(t, s.StartRound())
	for i := range 4 {
		require.NoError(t, s.RevealNextRole(i))
	}

	err := s.ShowQuestion()
	assert.ErrorIs(t, err, ErrNoQuestions)
	assert.Equal(t, models.MongooseAnnouncement(), s.Phase())
	assert.True(t, opt.IsNone(s.CurrentQuestion()))
}

func TestWrongPhaseCallsLeaveStateAlone(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(4), 3, time.Hour, makeQuestions(3, "A", "Science", models.DifficultyMedium))
	s := f.session
	ctx := context.Background()

	assert.ErrorIs(t, s.RevealNextRole(0), ErrWrongPhase)
	require.NoError(t, s.StartRound())

	assert.ErrorIs(t, s.RevealNextRole(1), ErrWrongPhase)
	assert.ErrorIs(t, s.ShowQuestion(), ErrWrongPhase)
	assert.ErrorIs(t, s.StartSnakeReveal(), ErrWrongPhase)
	assert.ErrorIs(t, s.RevealNextSnake(0), ErrWrongPhase)
	assert.ErrorIs(t, s.SkipDiscussion(), ErrWrongPhase)
	assert.ErrorIs(t, s.SubmitVote(models.VoteA, 0), ErrWrongPhase)
	assert.ErrorIs(t, s.NextRound(ctx), ErrWrongPhase)
	assert.Equal(t, models.RoleReveal(0), s.Phase())

	// a double tap on the same reveal only advances once
	require.NoError(t, s.RevealNextRole(0))
	assert.ErrorIs(t, s.RevealNextRole(0), ErrWrongPhase)
	assert.Equal(t, models.RoleReveal(1), s.Phase())
}

func TestVotesAreRecordedAsGiven(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(4), 1, time.Hour, makeQuestions(1, "A", "Science", models.DifficultyMedium))
	s := f.session

	require.NoError(t, s.StartRound())
	playUntilDiscussion(t, s)
	require.NoError(t, s.SkipDiscussion())

	// a human voting snake and a snake voting a are both stored untouched
	votes := []models.Vote{models.VoteSnake, models.VoteA, models.VoteSnake, models.VoteA}
	for i, v := range votes {
		require.NoError(t, s.SubmitVote(v, i))
	}

	result := s.RoundResults()[0]
	for i, v := range votes {
		assert.Equal(t, models.VoteEntry{PlayerIndex: i, Vote: v}, result.Votes[i])
	}
	assert.Equal(t, 0, result.PointsFor(0))
	assert.Equal(t, 1, result.PointsFor(1))
	assert.Equal(t, 1, result.PointsFor(3))
}

func TestDiscussionCountdownExpires(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(4), 1, time.Millisecond, makeQuestions(1, "A", "Science", models.DifficultyMedium))
	s := f.session

	require.NoError(t, s.StartRound())
	playUntilDiscussion(t, s)

	require.Eventually(t, func() bool {
		return s.Phase() == models.Voting(0)
	}, 5*time.Second, 5*time.Millisecond)

	assert.Equal(t, 0, s.DiscussionTimeRemaining())
	assert.Equal(t, 1, f.notifier.Expired())

	f.notifier.mu.Lock()
	defer f.notifier.mu.Unlock()
	assert.Equal(t, []int{30}, f.notifier.warnings)
	assert.Equal(t, []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, f.notifier.ticks)
}

func TestSkipDiscussionCancelsCountdown(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(4), 1, 2*time.Millisecond, makeQuestions(1, "A", "Science", models.DifficultyMedium))
	s := f.session

	require.NoError(t, s.StartRound())
	playUntilDiscussion(t, s)
	require.NoError(t, s.SkipDiscussion())

	remaining := s.DiscussionTimeRemaining()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, remaining, s.DiscussionTimeRemaining())
	assert.Equal(t, 0, f.notifier.Expired())
	assert.Equal(t, models.Voting(0), s.Phase())
}

func TestCountdownRestartsEachRound(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(4), 2, time.Hour, makeQuestions(3, "A", "Science", models.DifficultyMedium))
	s := f.session

	require.NoError(t, s.StartRound())
	playUntilDiscussion(t, s)
	first := s.stopCountdown
	require.NotNil(t, first)
	require.NoError(t, s.SkipDiscussion())
	assert.Nil(t, s.stopCountdown)
	voteCorrectly(t, s)
	require.NoError(t, s.NextRound(context.Background()))

	playUntilDiscussion(t, s)
	assert.NotNil(t, s.stopCountdown)
	assert.Equal(t, 60, s.DiscussionTimeRemaining())
}

func TestRecorderErrorStillEndsGame(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(4), 1, time.Hour, makeQuestions(1, "A", "Science", models.DifficultyMedium))
	f.recorder.err = errors.New("db locked")
	s := f.session

	require.NoError(t, s.StartRound())
	playUntilDiscussion(t, s)
	require.NoError(t, s.SkipDiscussion())
	voteCorrectly(t, s)

	err := s.NextRound(context.Background())
	assert.ErrorContains(t, err, "db locked")
	assert.Equal(t, models.GameEnd(), s.Phase())
	assert.Len(t, f.recorder.records, 1)
}

func TestWinnersTie(t *testing.T) {
	t.Parallel()

	f := newFixture(t, rolesFor(4), 1, time.Hour, makeQuestions(1, "A", "Science", models.DifficultyMedium))
	winners := f.session.Winners()
	assert.Len(t, winners, 4, "everyone ties at zero")
}

func TestNewPlayers(t *testing.T) {
	t.Parallel()

	players, err := NewPlayers([]string{" Alice ", "Bob", "Carol", "Dave"})
	require.NoError(t, err)
	require.Len(t, players, 4)
	assert.Equal(t, "Alice", players[0].Name)
	assert.NotEmpty(t, players[0].ID)
	assert.NotEqual(t, players[0].ID, players[1].ID)

	_, err = NewPlayers([]string{"A", "B", "C"})
	assert.ErrorIs(t, err, ErrInvalidPlayerCount)

	_, err = NewPlayers([]string{"A", "B", "C", " "})
	assert.ErrorIs(t, err, ErrInvalidPlayers)

	_, err = NewPlayers([]string{"A", "B", "C", "a"})
	assert.ErrorIs(t, err, ErrInvalidPlayers)
}

func TestSnapshotMatchesGetters(t *testing.T) {
	t.Parallel()

	roles := []models.Role{models.RoleHuman, models.RoleSnake, models.RoleSnake, models.RoleMongoose}
	f := newFixture(t, roles, 1, time.Hour, makeQuestions(3, "A", "Science", models.DifficultyMedium))
	s := f.session

	snap := s.Snapshot()
	assert.Equal(t, models.Setup(), snap.Phase)
	assert.Equal(t, -1, snap.MongooseIndex)
	assert.True(t, opt.IsNone(snap.CurrentQuestion))

	require.NoError(t, s.StartRound())
	playUntilDiscussion(t, s)
	require.NoError(t, s.SkipDiscussion())
	voteCorrectly(t, s)
	require.NoError(t, s.NextRound(context.Background()))

	snap = s.Snapshot()
	assert.Equal(t, models.GameEnd(), snap.Phase)
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, 1, snap.TotalRounds)
	assert.Equal(t, []int{1, 2}, snap.SnakeIndices)
	assert.Equal(t, 3, snap.MongooseIndex)
	assert.Equal(t, s.Players(), snap.Players)
	assert.Equal(t, s.RoundResults(), snap.Results)
	assert.Equal(t, s.Winners(), snap.Winners)
	assert.True(t, opt.IsSome(snap.CurrentQuestion))

	// copies, not views
	snap.Players[0].TotalScore = 100
	snap.SnakeIndices[0] = 7
	assert.Equal(t, 2, s.Players()[0].TotalScore)
	assert.Equal(t, []int{1, 2}, s.SnakeIndices())
}
