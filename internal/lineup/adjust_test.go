package lineup

import (
	"testing"

	"club-roster/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLineup() domain.TeamResult {
	return BalanceTeams([]domain.Player{
		player("s5", 5, domain.Forward),
		player("s4", 4, domain.Midfielder),
		player("s3", 3, domain.Defender),
		player("s1", 1, domain.Midfielder),
	})
}

func TestMovePlayerRecomputesScores(t *testing.T) {
	before := sampleLineup()

	after, err := MovePlayer(before, "s1")
	require.NoError(t, err)

	assert.Equal(t, []string{"s5"}, ids(after.TeamA))
	assert.Equal(t, []string{"s4", "s3", "s1"}, ids(after.TeamB))
	assert.Equal(t, 5.0, after.ScoreA)
	assert.Equal(t, 8.0, after.ScoreB)

	// input proposal is unchanged
	assert.Equal(t, []string{"s5", "s1"}, ids(before.TeamA))
	assert.Equal(t, 6.0, before.ScoreA)

	back, err := MovePlayer(after, "s4")
	require.NoError(t, err)
	assert.Equal(t, []string{"s5", "s4"}, ids(back.TeamA))
	assert.Equal(t, 9.0, back.ScoreA)
	assert.Equal(t, 4.0, back.ScoreB)
}

func TestMovePlayerUnknown(t *testing.T) {
	before := sampleLineup()

	after, err := MovePlayer(before, "ghost")

	assert.ErrorIs(t, err, domain.ErrPlayerNotInLineup)
	assert.Equal(t, before, after)
}

func TestSetPosition(t *testing.T) {
	before := sampleLineup()

	after, err := SetPosition(before, "s3", domain.Goalkeeper)
	require.NoError(t, err)

	assert.Equal(t, domain.Goalkeeper, after.TeamB[1].Position)
	assert.Equal(t, domain.Defender, before.TeamB[1].Position)
	assert.Equal(t, before.ScoreA, after.ScoreA)
	assert.Equal(t, before.ScoreB, after.ScoreB)

	_, err = SetPosition(before, "s3", domain.Position("XX"))
	assert.ErrorIs(t, err, domain.ErrInvalidPosition)

	_, err = SetPosition(before, "ghost", domain.Forward)
	assert.ErrorIs(t, err, domain.ErrPlayerNotInLineup)
}

func TestRecomputeAfterSkillEdit(t *testing.T) {
	result := sampleLineup()
	result.TeamA[0].SkillScore = 2

	fixed := result.Recompute()

	assert.Equal(t, 3.0, fixed.ScoreA)
	assert.Equal(t, 7.0, fixed.ScoreB)
}
