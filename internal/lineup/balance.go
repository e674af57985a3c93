package lineup

import (
	"cmp"
	"slices"

	"club-roster/internal/domain"
)

// BalanceTeams splits the squad into two teams with a greedy pass over skill
// scores. Goalkeepers are placed first so both teams get one whenever the
// squad has two or more. The same squad in the same order always produces the
// same split.
func BalanceTeams(squad []domain.Player) domain.TeamResult {
	var keepers, outfield []domain.Player
	for _, p := range squad {
		if p.Position == domain.Goalkeeper {
			keepers = append(keepers, p)
		} else {
			outfield = append(outfield, p)
		}
	}

	bySkillDesc := func(a, b domain.Player) int {
		return cmp.Compare(b.SkillScore, a.SkillScore)
	}
	slices.SortStableFunc(keepers, bySkillDesc)
	slices.SortStableFunc(outfield, bySkillDesc)

	var b builder
	for _, gk := range keepers {
		if b.result.ScoreA <= b.result.ScoreB && len(b.result.TeamA) <= len(b.result.TeamB) {
			b.addA(gk)
		} else {
			b.addB(gk)
		}
	}

	for _, p := range outfield {
		switch {
		case b.result.ScoreA < b.result.ScoreB:
			b.addA(p)
		case b.result.ScoreB < b.result.ScoreA:
			b.addB(p)
		case len(b.result.TeamA) <= len(b.result.TeamB):
			b.addA(p)
		default:
			b.addB(p)
		}
	}

	return b.result.Recompute()
}

type builder struct {
	result domain.TeamResult
}

func (b *builder) addA(p domain.Player) {
	b.result.TeamA = append(b.result.TeamA, p)
	b.result.ScoreA += p.SkillScore
}

func (b *builder) addB(p domain.Player) {
	b.result.TeamB = append(b.result.TeamB, p)
	b.result.ScoreB += p.SkillScore
}
