package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"club-roster/internal/config"
	"club-roster/internal/database"
	"club-roster/internal/db"
	"club-roster/internal/domain"
	"club-roster/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testDate  = "2026-10-16"
	testVenue = "Main Pitch"
)

var testSession = domain.SessionKey{Date: testDate, Venue: testVenue}

type recordingNotifier struct {
	mu      sync.Mutex
	matches []domain.MatchRecord
	done    chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 16)}
}

func (n *recordingNotifier) MatchConfirmed(_ context.Context, match domain.MatchRecord) error {
	n.mu.Lock()
	n.matches = append(n.matches, match)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

type fixture struct {
	roster     *RosterService
	sessions   *SessionService
	attendance *repository.AttendanceRepository
	notifier   *recordingNotifier
}

func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()

	cfg := &config.Config{
		DBPath:        filepath.Join(t.TempDir(), "club.db"),
		AccessCode:    "1234",
		Venues:        []string{testVenue, "Futsal Court"},
		SquadCapacity: capacity,
	}
	logger := zerolog.Nop()

	sqlDB, err := database.New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	queries := db.New(sqlDB)
	players := repository.NewPlayerRepository(sqlDB, queries, logger)
	attendance := repository.NewAttendanceRepository(sqlDB, queries, logger)
	matches := repository.NewMatchRepository(sqlDB, queries, logger)
	exclusions := repository.NewExclusionRepository(sqlDB, queries, logger)
	notifier := newRecordingNotifier()

	return &fixture{
		roster:     NewRosterService(players, attendance, cfg, logger),
		sessions:   NewSessionService(attendance, matches, exclusions, notifier, cfg, logger),
		attendance: attendance,
		notifier:   notifier,
	}
}

func (f *fixture) register(t *testing.T, name, position string) *domain.Player {
	t.Helper()
	p, _, err := f.roster.RegisterAttendance(context.Background(), RegisterInput{
		Name:     name,
		Position: position,
		Date:     testDate,
		Venue:    testVenue,
	})
	require.NoError(t, err)
	return p
}
