package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aaronzipp/snakesss/internal/models"
)

// NewPlayers builds a fresh seat list from display names. Names are
// trimmed and must be non-empty and unique.
func NewPlayers(names []string) ([]*models.Player, error) {
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, len(names))
	}

	seen := make(map[string]struct{}, len(names))
	players := make([]*models.Player, 0, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: player %d has no name", ErrInvalidPlayers, i+1)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidPlayers, name)
		}
		seen[key] = struct{}{}

		players = append(players, &models.Player{
			ID:   uuid.NewString(),
			Name: name,
		})
	}
	return players, nil
}
