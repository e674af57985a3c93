package lineup

import (
	"fmt"

	"club-roster/internal/domain"
)

// MovePlayer moves the player to the other team and returns the recomputed
// result. The input is left untouched.
func MovePlayer(result domain.TeamResult, playerID string) (domain.TeamResult, error) {
	out := result.Recompute()

	if i := indexOf(out.TeamA, playerID); i >= 0 {
		p := out.TeamA[i]
		out.TeamA = append(out.TeamA[:i], out.TeamA[i+1:]...)
		out.TeamB = append(out.TeamB, p)
		return out.Recompute(), nil
	}
	if i := indexOf(out.TeamB, playerID); i >= 0 {
		p := out.TeamB[i]
		out.TeamB = append(out.TeamB[:i], out.TeamB[i+1:]...)
		out.TeamA = append(out.TeamA, p)
		return out.Recompute(), nil
	}

	return result, fmt.Errorf("move %s: %w", playerID, domain.ErrPlayerNotInLineup)
}

// SetPosition changes the position a player takes in this lineup only.
func SetPosition(result domain.TeamResult, playerID string, position domain.Position) (domain.TeamResult, error) {
	if !position.Valid() {
		return result, fmt.Errorf("position %q: %w", position, domain.ErrInvalidPosition)
	}

	out := result.Recompute()
	if i := indexOf(out.TeamA, playerID); i >= 0 {
		out.TeamA[i].Position = position
		return out.Recompute(), nil
	}
	if i := indexOf(out.TeamB, playerID); i >= 0 {
		out.TeamB[i].Position = position
		return out.Recompute(), nil
	}

	return result, fmt.Errorf("set position %s: %w", playerID, domain.ErrPlayerNotInLineup)
}

func indexOf(team []domain.Player, playerID string) int {
	for i, p := range team {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}
