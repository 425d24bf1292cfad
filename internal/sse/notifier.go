package sse

import (
	"github.com/aaronzipp/snakesss/internal/game"
	"github.com/aaronzipp/snakesss/internal/models"
)

// Notifier turns session side effects into events on a hub
type Notifier struct {
	Hub *Hub
}

var _ game.Notifier = Notifier{}

type timerPayload struct {
	Remaining int `json:"remaining"`
}

type votePayload struct {
	PlayerIndex int `json:"player_index"`
}

func (n Notifier) PhaseChanged(phase models.Phase) {
	n.Hub.BroadcastJSON(EventPhase, phase)
}

func (n Notifier) TimerWarning(remaining int) {
	n.Hub.BroadcastJSON(EventTimerWarning, timerPayload{Remaining: remaining})
}

func (n Notifier) TimerTick(remaining int) {
	n.Hub.BroadcastJSON(EventTimerTick, timerPayload{Remaining: remaining})
}

func (n Notifier) TimerExpired() {
	n.Hub.BroadcastJSON(EventTimerExpired, timerPayload{})
}

// VoteRecorded leaves the ballot out; the device is passed around and votes are secret
func (n Notifier) VoteRecorded(playerIndex int, _ models.Vote) {
	n.Hub.BroadcastJSON(EventVoteRecorded, votePayload{PlayerIndex: playerIndex})
}
