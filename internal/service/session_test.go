package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"club-roster/internal/constants"
	"club-roster/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playerIDs(players []domain.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

func TestGenerateLineupNeedsTwoPlayers(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)
	ctx := context.Background()

	_, err := f.sessions.GenerateLineup(ctx, testSession)
	assert.ErrorIs(t, err, domain.ErrInsufficientPlayers)

	f.register(t, "Solo", "FW")
	_, err = f.sessions.GenerateLineup(ctx, testSession)
	assert.ErrorIs(t, err, domain.ErrInsufficientPlayers)
}

func TestSessionViewOrdersByArrival(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)
	ctx := context.Background()

	x := f.register(t, "X", "FW")
	y := f.register(t, "Y", "DF")
	z := f.register(t, "Z", "MF")

	view, err := f.sessions.View(ctx, testSession)
	require.NoError(t, err)

	assert.Equal(t, []string{x.ID, y.ID, z.ID}, playerIDs(view.Squad))
	assert.Equal(t, 1, view.NextMatch)
	assert.Nil(t, view.Proposal)
	require.Len(t, view.Attendees, 3)
	assert.Equal(t, 1, view.Attendees[0].ArrivalOrder)
	assert.False(t, view.Attendees[0].GoalkeeperHint)
	assert.True(t, view.Attendees[1].GoalkeeperHint)
	assert.True(t, view.Attendees[2].GoalkeeperHint)
	for _, a := range view.Attendees {
		assert.True(t, a.InSquad)
		assert.Zero(t, a.MatchesPlayed)
	}
}

func TestRotationAcrossMatches(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()

	var arrived []*domain.Player
	for i := 0; i < 6; i++ {
		arrived = append(arrived, f.register(t, fmt.Sprintf("P%d", i), "MF"))
	}

	first, err := f.sessions.GenerateLineup(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Size())
	assert.ElementsMatch(t, []string{arrived[0].ID, arrived[1].ID, arrived[2].ID, arrived[3].ID}, first.PlayerIDs())

	match, err := f.sessions.ConfirmMatch(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, 1, match.Number)

	select {
	case <-f.notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("match notification not sent")
	}

	view, err := f.sessions.View(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, 2, view.NextMatch)
	assert.Nil(t, view.Proposal)
	// the two who sat out lead, then the earliest arrivals among those who played
	assert.Equal(t, []string{arrived[4].ID, arrived[5].ID, arrived[0].ID, arrived[1].ID}, playerIDs(view.Squad))
	for _, a := range view.Attendees[:4] {
		assert.Equal(t, 1, a.MatchesPlayed)
	}

	second, err := f.sessions.GenerateLineup(ctx, testSession)
	require.NoError(t, err)
	match, err = f.sessions.ConfirmMatch(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, 2, match.Number)
	assert.ElementsMatch(t, second.PlayerIDs(), match.PlayerIDs)

	view, err = f.sessions.View(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, view.History, 2)
	counts := map[string]int{}
	for _, a := range view.Attendees {
		counts[a.Player.ID] = a.MatchesPlayed
	}
	for _, id := range playerIDs(view.Squad) {
		assert.GreaterOrEqual(t, 2, counts[id])
	}
	assert.Equal(t, 2, counts[arrived[0].ID])
	assert.Equal(t, 1, counts[arrived[2].ID])
}

func TestManualEditsKeepScoresAccurate(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)
	ctx := context.Background()

	ids := map[string]string{}
	for name, skill := range map[string]float64{"A": 5, "B": 4, "C": 3, "D": 1} {
		p := f.register(t, name, "FW")
		_, err := f.roster.UpdateSkill(ctx, p.ID, skill)
		require.NoError(t, err)
		ids[name] = p.ID
	}

	_, err := f.sessions.MovePlayer(ctx, testSession, ids["A"])
	assert.ErrorIs(t, err, domain.ErrNoProposal)

	result, err := f.sessions.GenerateLineup(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, 13.0, result.ScoreA+result.ScoreB)

	moved, err := f.sessions.MovePlayer(ctx, testSession, ids["D"])
	require.NoError(t, err)
	assert.Equal(t, sumSkills(moved.TeamA), moved.ScoreA)
	assert.Equal(t, sumSkills(moved.TeamB), moved.ScoreB)
	assert.Equal(t, 13.0, moved.ScoreA+moved.ScoreB)

	repositioned, err := f.sessions.SetLineupPosition(ctx, testSession, ids["A"], domain.Defender)
	require.NoError(t, err)
	assert.Equal(t, moved.ScoreA, repositioned.ScoreA)

	view, err := f.sessions.View(ctx, testSession)
	require.NoError(t, err)
	require.NotNil(t, view.Proposal)
	assert.Equal(t, repositioned, *view.Proposal)

	match, err := f.sessions.ConfirmMatch(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, repositioned.ScoreA, match.Teams.ScoreA)
	assert.Equal(t, repositioned.ScoreB, match.Teams.ScoreB)

	view, err = f.sessions.View(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, view.History, 1)
	assert.Equal(t, match.PlayerIDs, view.History[0].PlayerIDs)
	assert.Equal(t, playerIDs(repositioned.TeamA), playerIDs(view.History[0].Teams.TeamA))
}

func TestToggleExclusion(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)
	ctx := context.Background()

	a := f.register(t, "A", "FW")
	b := f.register(t, "B", "FW")
	c := f.register(t, "C", "FW")

	_, err := f.sessions.GenerateLineup(ctx, testSession)
	require.NoError(t, err)

	excluded, err := f.sessions.ToggleExclusion(ctx, testSession, b.ID)
	require.NoError(t, err)
	assert.True(t, excluded)

	view, err := f.sessions.View(ctx, testSession)
	require.NoError(t, err)
	assert.Nil(t, view.Proposal, "toggling drops the pending lineup")
	assert.Equal(t, []string{a.ID, c.ID}, playerIDs(view.Squad))
	assert.True(t, view.Attendees[1].Excluded)
	assert.False(t, view.Attendees[1].InSquad)

	excluded, err = f.sessions.ToggleExclusion(ctx, testSession, b.ID)
	require.NoError(t, err)
	assert.False(t, excluded)

	_, err = f.sessions.ToggleExclusion(ctx, testSession, "stranger")
	assert.ErrorIs(t, err, domain.ErrNotAttending)
}

func TestResetClearsTallyAndExclusions(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)
	ctx := context.Background()

	f.register(t, "A", "FW")
	b := f.register(t, "B", "FW")
	f.register(t, "C", "FW")

	_, err := f.sessions.GenerateLineup(ctx, testSession)
	require.NoError(t, err)
	_, err = f.sessions.ConfirmMatch(ctx, testSession)
	require.NoError(t, err)
	_, err = f.sessions.ToggleExclusion(ctx, testSession, b.ID)
	require.NoError(t, err)
	_, err = f.sessions.GenerateLineup(ctx, testSession)
	require.NoError(t, err)

	require.NoError(t, f.sessions.Reset(ctx, testSession))

	view, err := f.sessions.View(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, view.History)
	assert.Equal(t, 1, view.NextMatch)
	assert.Nil(t, view.Proposal)
	for _, a := range view.Attendees {
		assert.Zero(t, a.MatchesPlayed)
		assert.False(t, a.Excluded)
	}

	_, err = f.sessions.ConfirmMatch(ctx, testSession)
	assert.ErrorIs(t, err, domain.ErrNoProposal)
}

func TestSessionsAreIndependent(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)
	ctx := context.Background()

	f.register(t, "A", "FW")
	f.register(t, "B", "FW")

	_, err := f.sessions.GenerateLineup(ctx, testSession)
	require.NoError(t, err)
	_, err = f.sessions.ConfirmMatch(ctx, testSession)
	require.NoError(t, err)

	other := domain.SessionKey{Date: testDate, Venue: "Futsal Court"}
	view, err := f.sessions.View(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, view.Attendees)
	assert.Empty(t, view.History)

	_, err = f.sessions.View(ctx, domain.SessionKey{Date: testDate, Venue: "Nowhere"})
	assert.ErrorIs(t, err, domain.ErrUnknownVenue)
}

func sumSkills(players []domain.Player) float64 {
	var total float64
	for _, p := range players {
		total += p.SkillScore
	}
	return total
}
