package render

import (
	"github.com/repeale/fp-go"
	opt "github.com/repeale/fp-go/option"

	"github.com/aaronzipp/snakesss/internal/config"
	"github.com/aaronzipp/snakesss/internal/game"
	"github.com/aaronzipp/snakesss/internal/models"
)

// PlayerView is a seat as everyone around the device may see it
type PlayerView struct {
	Index      int         `json:"index"`
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	TotalScore int         `json:"total_score"`
	HasVoted   bool        `json:"has_voted"`
	Role       models.Role `json:"role,omitempty"`
}

// QuestionView hides the answer and fun fact unless Reveal was set
type QuestionView struct {
	ID         string            `json:"id"`
	Question   string            `json:"question"`
	Choices    models.Choices    `json:"choices"`
	Category   string            `json:"category,omitempty"`
	Difficulty models.Difficulty `json:"difficulty,omitempty"`
	Answer     string            `json:"answer,omitempty"`
	FunFact    string            `json:"fun_fact,omitempty"`
}

// RoundView is one scored round with names resolved
type RoundView struct {
	RoundNumber int          `json:"round_number"`
	Question    QuestionView `json:"question"`
	Lines       []ResultLine `json:"lines"`
}

// ResultLine is one player's row on the results screen
type ResultLine struct {
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
	Vote   models.Vote `json:"vote,omitempty"`
	Points int         `json:"points"`
}

// Feedback tells the device which cues it may play
type Feedback struct {
	Sound   bool `json:"sound"`
	Haptics bool `json:"haptics"`
}

// SessionView is the JSON body served for a session
type SessionView struct {
	Code                    string        `json:"code"`
	Phase                   models.Phase  `json:"phase"`
	Round                   int           `json:"round"`
	TotalRounds             int           `json:"total_rounds"`
	DiscussionSeconds       int           `json:"discussion_seconds"`
	DiscussionTimeRemaining int           `json:"discussion_time_remaining"`
	Players                 []PlayerView  `json:"players"`
	Holder                  *PlayerView   `json:"holder,omitempty"`
	Mongoose                string        `json:"mongoose,omitempty"`
	Snake                   string        `json:"snake,omitempty"`
	Question                *QuestionView `json:"question,omitempty"`
	LastRound               *RoundView    `json:"last_round,omitempty"`
	History                 []RoundView   `json:"history,omitempty"`
	Winners                 []string      `json:"winners,omitempty"`
	Feedback                Feedback      `json:"feedback"`
}

// Session builds the view of a snapshot. Roles are only shown to the
// player currently holding the device, the mongoose from its
// announcement on, and everything once the round is scored.
func Session(code string, snap game.Snapshot, settings config.Settings) SessionView {
	v := SessionView{
		Code:                    code,
		Phase:                   snap.Phase,
		Round:                   snap.Round,
		TotalRounds:             snap.TotalRounds,
		DiscussionSeconds:       snap.DiscussionSeconds,
		DiscussionTimeRemaining: snap.DiscussionTimeRemaining,
		Feedback: Feedback{
			Sound:   settings.SoundEnabled,
			Haptics: settings.HapticsEnabled,
		},
	}

	revealAll := snap.Phase.Kind == models.PhaseRoundResults || snap.Phase.Kind == models.PhaseGameEnd
	v.Players = make([]PlayerView, len(snap.Players))
	for i, p := range snap.Players {
		v.Players[i] = playerView(i, p, revealAll)
	}

	switch snap.Phase.Kind {
	case models.PhaseRoleReveal, models.PhaseVoting:
		if i := snap.Phase.Index; i >= 0 && i < len(snap.Players) {
			holder := playerView(i, snap.Players[i], true)
			v.Holder = &holder
		}
	case models.PhaseSnakeReveal:
		if i := snap.Phase.Index; i >= 0 && i < len(snap.SnakeIndices) {
			seat := snap.SnakeIndices[i]
			v.Snake = snap.Players[seat].Name
			holder := playerView(seat, snap.Players[seat], true)
			v.Holder = &holder
		}
	}

	if snap.MongooseIndex >= 0 && snap.Phase.Kind != models.PhaseRoleReveal {
		v.Mongoose = snap.Players[snap.MongooseIndex].Name
	}

	if opt.IsSome(snap.CurrentQuestion) {
		reveal := revealAll || snap.Phase.Kind == models.PhaseSnakeReveal
		q := questionView(snap.CurrentQuestion.Value, reveal)
		v.Question = &q
	}

	v.History = fp.Map(func(r models.RoundResult) RoundView {
		return roundView(r, snap.Players)
	})(snap.Results)
	if revealAll && len(v.History) > 0 {
		last := v.History[len(v.History)-1]
		v.LastRound = &last
	}

	if snap.Phase.Kind == models.PhaseGameEnd {
		v.Winners = fp.Map(func(p models.Player) string { return p.Name })(snap.Winners)
	}
	return v
}

func playerView(i int, p models.Player, withRole bool) PlayerView {
	pv := PlayerView{
		Index:      i,
		ID:         p.ID,
		Name:       p.Name,
		TotalScore: p.TotalScore,
		HasVoted:   p.HasVoted(),
	}
	if withRole {
		pv.Role = p.Role
	}
	return pv
}

func questionView(q models.Question, reveal bool) QuestionView {
	qv := QuestionView{
		ID:         q.ID,
		Question:   q.Question,
		Choices:    q.Choices,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
	if reveal {
		qv.Answer = string(q.CorrectVote())
		qv.FunFact = q.FunFact
	}
	return qv
}

func roundView(r models.RoundResult, players []models.Player) RoundView {
	lines := make([]ResultLine, len(players))
	for i, p := range players {
		lines[i] = ResultLine{Name: p.Name, Points: r.PointsFor(i)}
	}
	for _, e := range r.Roles {
		if e.PlayerIndex < len(lines) {
			lines[e.PlayerIndex].Role = e.Role
		}
	}
	for _, e := range r.Votes {
		if e.PlayerIndex < len(lines) {
			lines[e.PlayerIndex].Vote = e.Vote
		}
	}
	return RoundView{
		RoundNumber: r.RoundNumber,
		Question:    questionView(r.Question, true),
		Lines:       lines,
	}
}
