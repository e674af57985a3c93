package service

import (
	"context"
	"testing"

	"club-roster/internal/constants"
	"club-roster/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAttendanceCreatesPlayer(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)
	ctx := context.Background()

	player, record, err := f.roster.RegisterAttendance(ctx, RegisterInput{
		Name:     "  Mina  ",
		AgeGroup: "20s",
		Position: "FW",
		Date:     testDate,
		Venue:    testVenue,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, player.ID)
	assert.Equal(t, "Mina", player.Name)
	assert.Equal(t, domain.AgeGroup("20s"), player.AgeGroup)
	assert.Equal(t, domain.Forward, player.Position)
	assert.Equal(t, constants.DefaultSkillScore, player.SkillScore)
	assert.Equal(t, 1, player.TotalAttendance)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, player.ID, record.PlayerID)
	assert.Equal(t, testDate, record.Date)
	assert.Equal(t, testVenue, record.Venue)
}

func TestRegisterAttendanceDefaults(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)

	player := f.register(t, "Jun", "")

	assert.Equal(t, domain.AgeGroup(constants.DefaultAgeGroup), player.AgeGroup)
	assert.Equal(t, domain.Midfielder, player.Position)
}

func TestRegisterAttendanceCountsEverySession(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)
	ctx := context.Background()

	first := f.register(t, "Jun", "DF")

	again, _, err := f.roster.RegisterAttendance(ctx, RegisterInput{Name: "Jun", Date: testDate, Venue: "Futsal Court"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 2, again.TotalAttendance)
	assert.Equal(t, domain.Defender, again.Position, "existing player keeps stored position")

	_, _, err = f.roster.RegisterAttendance(ctx, RegisterInput{Name: "Jun", Date: testDate, Venue: testVenue})
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	records, err := f.attendance.CountForPlayer(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, records)

	board, err := f.roster.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board.Players, 1)
	assert.Equal(t, 2, board.Players[0].TotalAttendance)
	assert.Equal(t, 2, board.TotalAttendance)
}

func TestRegisterAttendanceValidation(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"blank name", RegisterInput{Name: "  ", Date: testDate, Venue: testVenue}, domain.ErrEmptyName},
		{"bad date", RegisterInput{Name: "A", Date: "16/10/2026", Venue: testVenue}, domain.ErrInvalidDate},
		{"unknown venue", RegisterInput{Name: "A", Date: testDate, Venue: "Moon"}, domain.ErrUnknownVenue},
		{"bad position", RegisterInput{Name: "A", Position: "ST", Date: testDate, Venue: testVenue}, domain.ErrInvalidPosition},
		{"bad age group", RegisterInput{Name: "A", AgeGroup: "teens", Date: testDate, Venue: testVenue}, domain.ErrInvalidAgeGroup},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := f.roster.RegisterAttendance(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateSkillBounds(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)
	ctx := context.Background()
	p := f.register(t, "Sora", "MF")

	updated, err := f.roster.UpdateSkill(ctx, p.ID, 4.5)
	require.NoError(t, err)
	assert.Equal(t, 4.5, updated.SkillScore)

	_, err = f.roster.UpdateSkill(ctx, p.ID, 5.5)
	assert.ErrorIs(t, err, domain.ErrSkillOutOfRange)
	_, err = f.roster.UpdateSkill(ctx, p.ID, -0.5)
	assert.ErrorIs(t, err, domain.ErrSkillOutOfRange)

	_, err = f.roster.UpdateSkill(ctx, "missing", 3)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestUpdatePosition(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)
	ctx := context.Background()
	p := f.register(t, "Sora", "MF")

	updated, err := f.roster.UpdatePosition(ctx, p.ID, domain.Goalkeeper)
	require.NoError(t, err)
	assert.Equal(t, domain.Goalkeeper, updated.Position)

	_, err = f.roster.UpdatePosition(ctx, p.ID, domain.Position("LW"))
	assert.ErrorIs(t, err, domain.ErrInvalidPosition)
}

func TestDailyRoster(t *testing.T) {
	f := newFixture(t, constants.SquadCapacity)
	ctx := context.Background()

	f.register(t, "Mina", "FW")
	f.register(t, "Dae", "GK")
	f.register(t, "Minho", "FW")
	_, _, err := f.roster.RegisterAttendance(ctx, RegisterInput{Name: "Later", Date: "2026-10-17", Venue: testVenue})
	require.NoError(t, err)

	all, err := f.roster.DailyRoster(ctx, testDate, "")
	require.NoError(t, err)
	require.Len(t, all.Players, 3)
	assert.Equal(t, "Dae", all.Players[0].Name)
	assert.Equal(t, "Mina", all.Players[1].Name)
	assert.Equal(t, "Minho", all.Players[2].Name)
	assert.Equal(t, map[domain.Position]int{
		domain.Goalkeeper: 1,
		domain.Defender:   0,
		domain.Midfielder: 0,
		domain.Forward:    2,
	}, all.PositionCounts)

	filtered, err := f.roster.DailyRoster(ctx, testDate, "MIN")
	require.NoError(t, err)
	require.Len(t, filtered.Players, 2)
	assert.Equal(t, 3, filtered.PositionCounts[domain.Forward]+filtered.PositionCounts[domain.Goalkeeper])

	_, err = f.roster.DailyRoster(ctx, "yesterday", "")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
