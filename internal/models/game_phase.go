package models

import "fmt"

// PhaseKind names a state of the round state machine
type PhaseKind string

const (
	PhaseSetup                PhaseKind = "setup"
	PhaseRoleReveal           PhaseKind = "role_reveal"
	PhaseMongooseAnnouncement PhaseKind = "mongoose_announcement"
	PhaseQuestion             PhaseKind = "question"
	PhaseSnakeReveal          PhaseKind = "snake_reveal"
	PhaseDiscussion           PhaseKind = "discussion"
	PhaseVoting               PhaseKind = "voting"
	PhaseRoundResults         PhaseKind = "round_results"
	PhaseGameEnd              PhaseKind = "game_end"
)

// Phase is the current state of a session. Index is only meaningful for
// role_reveal (player index), snake_reveal (position in the snake list)
// and voting (player index); it is zero for every other kind.
type Phase struct {
	Kind  PhaseKind `json:"kind"`
	Index int       `json:"index"`
}

func Setup() Phase                { return Phase{Kind: PhaseSetup} }
func RoleReveal(player int) Phase { return Phase{Kind: PhaseRoleReveal, Index: player} }
func MongooseAnnouncement() Phase { return Phase{Kind: PhaseMongooseAnnouncement} }
func QuestionShown() Phase        { return Phase{Kind: PhaseQuestion} }
func SnakeReveal(snake int) Phase { return Phase{Kind: PhaseSnakeReveal, Index: snake} }
func Discussion() Phase           { return Phase{Kind: PhaseDiscussion} }
func Voting(player int) Phase     { return Phase{Kind: PhaseVoting, Index: player} }
func RoundResults() Phase         { return Phase{Kind: PhaseRoundResults} }
func GameEnd() Phase              { return Phase{Kind: PhaseGameEnd} }

// Indexed reports whether the phase carries an index
func (p Phase) Indexed() bool {
	switch p.Kind {
	case PhaseRoleReveal, PhaseSnakeReveal, PhaseVoting:
		return true
	}
	return false
}

func (p Phase) String() string {
	if p.Indexed() {
		return fmt.Sprintf("%s(%d)", p.Kind, p.Index)
	}
	return string(p.Kind)
}
