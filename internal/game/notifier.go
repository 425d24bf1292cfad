package game

import (
	"context"

	opt "github.com/repeale/fp-go/option"

	"github.com/aaronzipp/snakesss/internal/models"
)

// Notifier receives the side effects of a session, such as phase changes
// and countdown checkpoints. Methods run with the session lock held and
// must not call back into the session.
type Notifier interface {
	PhaseChanged(phase models.Phase)
	TimerWarning(remaining int)
	TimerTick(remaining int)
	TimerExpired()
	VoteRecorded(playerIndex int, vote models.Vote)
}

// NopNotifier ignores every event
type NopNotifier struct{}

var _ Notifier = NopNotifier{}

func (NopNotifier) PhaseChanged(models.Phase)     {}
func (NopNotifier) TimerWarning(int)              {}
func (NopNotifier) TimerTick(int)                 {}
func (NopNotifier) TimerExpired()                 {}
func (NopNotifier) VoteRecorded(int, models.Vote) {}

// Recorder stores a finished game. It is called once per session.
type Recorder interface {
	RecordGame(ctx context.Context, record models.GameRecord) error
}

// QuestionSource hands out one question per round. *QuestionPool satisfies it.
type QuestionSource interface {
	GetQuestion() opt.Option[models.Question]
}
