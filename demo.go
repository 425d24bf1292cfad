package main

import (
	"context"
	"math/rand"
	"time"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/snakesss/internal/config"
	"github.com/aaronzipp/snakesss/internal/corpus"
	"github.com/aaronzipp/snakesss/internal/game"
	"github.com/aaronzipp/snakesss/internal/models"
	"github.com/aaronzipp/snakesss/internal/store"
)

// demoNotifier logs every session event and wakes the driver when the
// discussion countdown runs out
type demoNotifier struct {
	expired chan struct{}
}

func (n *demoNotifier) PhaseChanged(phase models.Phase) {
	log.Info().Str("phase", phase.String()).Msg("phase")
}

func (n *demoNotifier) TimerWarning(remaining int) {
	log.Info().Int("remaining", remaining).Msg("discussion warning")
}

func (n *demoNotifier) TimerTick(remaining int) {
	log.Debug().Int("remaining", remaining).Msg("tick")
}

func (n *demoNotifier) TimerExpired() {
	log.Info().Msg("discussion time is up")
	select {
	case n.expired <- struct{}{}:
	default:
	}
}

func (n *demoNotifier) VoteRecorded(playerIndex int, vote models.Vote) {
	log.Debug().Int("player", playerIndex).Str("vote", string(vote)).Msg("vote recorded")
}

type logRecorder struct{}

func (logRecorder) RecordGame(_ context.Context, record models.GameRecord) error {
	log.Info().
		Strs("players", record.PlayerNames).
		Ints("scores", record.FinalScores).
		Strs("winners", record.WinnerNames).
		Msg("game record")
	return nil
}

func demoCommand(ctx context.Context) error {
	questions, err := corpus.Load(CLI.Corpus)
	if err != nil {
		return err
	}

	seed := CLI.Demo.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Info().Int64("seed", seed).Msg("demo starting")

	settings := config.Defaults()
	settings.RoundsPerGame = CLI.Demo.Rounds
	settings.DiscussionSeconds = CLI.Demo.Seconds

	pool, err := game.NewQuestionPool(questions, config.NewManager("", settings), &store.MemoryUsedIDs{}, rng)
	if err != nil {
		return err
	}
	players, err := game.NewPlayers(CLI.Demo.Players)
	if err != nil {
		return err
	}

	notifier := &demoNotifier{expired: make(chan struct{}, 1)}
	session, err := game.New(players, settings, game.Options{
		Roles:     game.NewRoleAssigner(rng),
		Questions: pool,
		Notifier:  notifier,
		Recorder:  logRecorder{},
		TimeUnit:  CLI.Demo.Second,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.StartRound(); err != nil {
		return err
	}
	return runDemo(ctx, session, notifier, rng)
}

// runDemo plays the session to the end. Non-snakes answer correctly two
// times out of three.
func runDemo(ctx context.Context, s *game.Session, n *demoNotifier, rng *rand.Rand) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		phase := s.Phase()
		switch phase.Kind {
		case models.PhaseRoleReveal:
			p := s.Players()[phase.Index]
			log.Info().Str("player", p.Name).Str("role", string(p.Role)).Msg("role reveal")
			err = s.RevealNextRole(phase.Index)

		case models.PhaseMongooseAnnouncement:
			if i, ok := s.MongooseIndex(); ok {
				log.Info().Str("mongoose", s.Players()[i].Name).Msg("the mongoose is")
			}
			err = s.ShowQuestion()

		case models.PhaseQuestion:
			if q := s.CurrentQuestion(); opt.IsSome(q) {
				log.Info().
					Str("question", q.Value.Question).
					Str("a", q.Value.Choices.A).
					Str("b", q.Value.Choices.B).
					Str("c", q.Value.Choices.C).
					Msg("question")
			}
			err = s.StartSnakeReveal()

		case models.PhaseSnakeReveal:
			if phase.Index == 0 {
				log.Info().Strs("snakes", s.SnakeNames()).Msg("snakes see the answer")
			}
			err = s.RevealNextSnake(phase.Index)

		case models.PhaseDiscussion:
			select {
			case <-n.expired:
			case <-ctx.Done():
				return ctx.Err()
			}

		case models.PhaseVoting:
			err = s.SubmitVote(demoVote(s, phase.Index, rng), phase.Index)

		case models.PhaseRoundResults:
			results := s.RoundResults()
			last := results[len(results)-1]
			players := s.Players()
			for i, p := range players {
				log.Info().
					Int("round", last.RoundNumber).
					Str("player", p.Name).
					Int("points", last.PointsFor(i)).
					Int("total", p.TotalScore).
					Msg("score")
			}
			err = s.NextRound(ctx)

		case models.PhaseGameEnd:
			for _, w := range s.Winners() {
				log.Info().Str("winner", w.Name).Int("score", w.TotalScore).Msg("game over")
			}
			return nil

		default:
			return game.ErrWrongPhase
		}

		if err != nil {
			return err
		}
	}
}

func demoVote(s *game.Session, i int, rng *rand.Rand) models.Vote {
	if s.Players()[i].Role == models.RoleSnake {
		return models.VoteSnake
	}
	q := s.CurrentQuestion()
	if opt.IsSome(q) && rng.Intn(3) < 2 {
		return q.Value.CorrectVote()
	}
	return []models.Vote{models.VoteA, models.VoteB, models.VoteC}[rng.Intn(3)]
}
