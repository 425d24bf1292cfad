package game

import "github.com/aaronzipp/snakesss/internal/models"

// Distribution is how many of each role a table gets
type Distribution struct {
	Humans   int
	Snakes   int
	Mongoose int
}

// Total is the number of seats the distribution fills
func (d Distribution) Total() int {
	return d.Humans + d.Snakes + d.Mongoose
}

// DistributionTable maps a player count to its role counts. There is
// always exactly one mongoose.
var DistributionTable = map[int]Distribution{
	4: {Humans: 1, Snakes: 2, Mongoose: 1},
	5: {Humans: 2, Snakes: 2, Mongoose: 1},
	6: {Humans: 2, Snakes: 3, Mongoose: 1},
	7: {Humans: 3, Snakes: 3, Mongoose: 1},
	8: {Humans: 3, Snakes: 4, Mongoose: 1},
}

// RoleAssigner hands out one role per seat for a round
type RoleAssigner interface {
	AssignRoles(playerCount int) []models.Role
}

// ShuffledRoles builds the table's role multiset and returns a uniformly
// random permutation of it
type ShuffledRoles struct {
	Rand Random
}

var _ RoleAssigner = ShuffledRoles{}

// NewRoleAssigner returns a RoleAssigner backed by r, or by the global source when r is nil
func NewRoleAssigner(r Random) ShuffledRoles {
	if r == nil {
		r = DefaultRandom
	}
	return ShuffledRoles{Rand: r}
}

// AssignRoles returns an empty list for counts outside the table
func (a ShuffledRoles) AssignRoles(playerCount int) []models.Role {
	d, ok := DistributionTable[playerCount]
	if !ok {
		return []models.Role{}
	}

	roles := make([]models.Role, 0, d.Total())
	roles = appendN(roles, models.RoleHuman, d.Humans)
	roles = appendN(roles, models.RoleSnake, d.Snakes)
	roles = appendN(roles, models.RoleMongoose, d.Mongoose)

	r := a.Rand
	if r == nil {
		r = DefaultRandom
	}
	// Fisher-Yates, every permutation equally likely
	r.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})
	return roles
}

func appendN(roles []models.Role, role models.Role, n int) []models.Role {
	for range n {
		roles = append(roles, role)
	}
	return roles
}
