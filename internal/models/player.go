package models

import "strings"

// Role is the secret part a player plays for a single round
type Role string

const (
	RoleNone     Role = ""
	RoleHuman    Role = "human"
	RoleSnake    Role = "snake"
	RoleMongoose Role = "mongoose"
)

// Vote is the ballot a player casts during the voting phase
type Vote string

const (
	VoteNone  Vote = ""
	VoteA     Vote = "a"
	VoteB     Vote = "b"
	VoteC     Vote = "c"
	VoteSnake Vote = "snake"
)

// ParseVote maps a ballot string to a Vote, case-insensitively
func ParseVote(s string) (Vote, bool) {
	switch Vote(strings.ToLower(strings.TrimSpace(s))) {
	case VoteA:
		return VoteA, true
	case VoteB:
		return VoteB, true
	case VoteC:
		return VoteC, true
	case VoteSnake:
		return VoteSnake, true
	}
	return VoteNone, false
}

// Player represents a seat at the shared device for the whole game
type Player struct {
	ID          string
	Name        string
	Role        Role // unset until the round starts
	TotalScore  int
	CurrentVote Vote // cleared at the start of every round
}

// HasRole reports whether a role was assigned this round
func (p *Player) HasRole() bool {
	return p.Role != RoleNone
}

// HasVoted reports whether a ballot was recorded this round
func (p *Player) HasVoted() bool {
	return p.CurrentVote != VoteNone
}

