// Package lineup picks who plays the next match of a session and splits them
// into two teams of similar total skill.
package lineup

import (
	"cmp"
	"slices"

	"club-roster/internal/constants"
	"club-roster/internal/domain"
)

// SelectSquad returns the players eligible for the next match. Attendees must be
// ordered by arrival. Players who have played fewer matches this session come
// first and ties keep arrival order. At most capacity players are returned and
// the last constants.GoalkeeperHintCount of them are relabeled as goalkeepers.
//
// The relabel is only a hint for the coach; it never touches attendees.
func SelectSquad(attendees []domain.Player, matchCounts map[string]int, excluded map[string]bool, capacity int) []domain.Player {
	if capacity <= 0 {
		return []domain.Player{}
	}

	squad := make([]domain.Player, 0, len(attendees))
	for _, p := range attendees {
		if excluded[p.ID] {
			continue
		}
		squad = append(squad, p)
	}

	slices.SortStableFunc(squad, func(a, b domain.Player) int {
		return cmp.Compare(matchCounts[a.ID], matchCounts[b.ID])
	})

	if len(squad) > capacity {
		squad = squad[:capacity]
	}

	if len(squad) >= constants.GoalkeeperHintCount {
		for i := len(squad) - constants.GoalkeeperHintCount; i < len(squad); i++ {
			squad[i].Position = domain.Goalkeeper
		}
	}

	return squad
}

// GoalkeeperHints reports the ids SelectSquad marks as suggested keepers.
func GoalkeeperHints(squad []domain.Player) map[string]bool {
	hints := make(map[string]bool, constants.GoalkeeperHintCount)
	if len(squad) < constants.GoalkeeperHintCount {
		return hints
	}
	for _, p := range squad[len(squad)-constants.GoalkeeperHintCount:] {
		hints[p.ID] = true
	}
	return hints
}

// MatchCounts tallies how many confirmed matches each player took part in.
func MatchCounts(history []domain.MatchRecord) map[string]int {
	counts := make(map[string]int)
	for _, m := range history {
		for _, id := range m.PlayerIDs {
			counts[id]++
		}
	}
	return counts
}
