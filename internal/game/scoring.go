package game

import "github.com/aaronzipp/snakesss/internal/models"

// CalculateRoundScores awards points for one round.
//
// Non-snakes who picked the correct answer each earn the number of
// non-snakes who picked it. Every snake earns the number of non-snakes who
// did not, whatever the snake itself voted. A missing vote never matches.
// A player without a role entry is scored as a human.
func CalculateRoundScores(players []*models.Player, roles map[int]models.Role, votes map[int]models.Vote, correctAnswer string) map[int]int {
	correct, ok := models.ParseVote(correctAnswer)
	if !ok || correct == models.VoteSnake {
		correct = models.VoteA
	}

	roleOf := func(i int) models.Role {
		if r, ok := roles[i]; ok && r != models.RoleNone {
			return r
		}
		return models.RoleHuman
	}

	correctVoters, fooled := 0, 0
	for i := range players {
		if roleOf(i) == models.RoleSnake {
			continue
		}
		if v, ok := votes[i]; ok && v == correct {
			correctVoters++
		} else {
			fooled++
		}
	}

	points := make(map[int]int, len(players))
	for i := range players {
		switch roleOf(i) {
		case models.RoleSnake:
			points[i] = fooled
		default:
			if v, ok := votes[i]; ok && v == correct {
				points[i] = correctVoters
			} else {
				points[i] = 0
			}
		}
	}
	return points
}
