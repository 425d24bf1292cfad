package models

import "time"

// RoleEntry pairs a player index with the role they held
type RoleEntry struct {
	PlayerIndex int  `json:"player_index"`
	Role        Role `json:"role"`
}

// VoteEntry pairs a player index with the ballot they cast
type VoteEntry struct {
	PlayerIndex int  `json:"player_index"`
	Vote        Vote `json:"vote"`
}

// PointsEntry pairs a player index with the points earned in a round
type PointsEntry struct {
	PlayerIndex int `json:"player_index"`
	Points      int `json:"points"`
}

// RoundResult is the snapshot taken once per round when it is scored.
// It is never edited after it has been appended to the history.
type RoundResult struct {
	RoundNumber  int           `json:"round_number"`
	Question     Question      `json:"question"`
	Roles        []RoleEntry   `json:"roles"`
	Votes        []VoteEntry   `json:"votes"`
	PointsEarned []PointsEntry `json:"points_earned"`
}

// Clone returns a copy that shares no slices with r
func (r RoundResult) Clone() RoundResult {
	r.Roles = append([]RoleEntry(nil), r.Roles...)
	r.Votes = append([]VoteEntry(nil), r.Votes...)
	r.PointsEarned = append([]PointsEntry(nil), r.PointsEarned...)
	return r
}

// PointsFor returns the points earned by a player index, zero if absent
func (r RoundResult) PointsFor(playerIndex int) int {
	for _, e := range r.PointsEarned {
		if e.PlayerIndex == playerIndex {
			return e.Points
		}
	}
	return 0
}

// GameRecord is handed to the completion sink once a game ends
type GameRecord struct {
	Date        time.Time `json:"date"`
	PlayerNames []string  `json:"player_names"`
	FinalScores []int     `json:"final_scores"`
	WinnerNames []string  `json:"winner_names"`
	RoundCount  int       `json:"round_count"`
}
