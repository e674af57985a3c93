package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"club-roster/internal/constants"
	"club-roster/internal/db"
	"club-roster/internal/domain"

	"github.com/rs/zerolog"
)

type AttendanceRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewAttendanceRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *AttendanceRepository {
	return &AttendanceRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Registration is a check-in for one session. NewPlayerID is only used when
// no player with Name exists yet.
type Registration struct {
	RecordID    string
	NewPlayerID string
	Name        string
	AgeGroup    domain.AgeGroup
	Position    domain.Position
	Session     domain.SessionKey
	ArrivedAt   time.Time
}

// Register finds or creates the player by name, bumps the attendance counter
// and writes the attendance record in a single transaction.
func (r *AttendanceRepository) Register(ctx context.Context, reg Registration) (*domain.Player, *domain.AttendanceRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now()

	player, err := qtx.GetPlayerByName(ctx, reg.Name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		player = db.Player{
			ID:              reg.NewPlayerID,
			Name:            reg.Name,
			AgeGroup:        string(reg.AgeGroup),
			SkillScore:      constants.DefaultSkillScore,
			Position:        string(reg.Position),
			TotalAttendance: 1,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := qtx.CreatePlayer(ctx, db.CreatePlayerParams(player)); err != nil {
			return nil, nil, fmt.Errorf("failed to create player %s: %w", reg.Name, err)
		}
		r.logger.Debug().Str("player_id", player.ID).Str("name", player.Name).Msg("player created")

	case err != nil:
		return nil, nil, fmt.Errorf("failed to look up player %s: %w", reg.Name, err)

	default:
		exists, err := qtx.HasAttendance(ctx, db.HasAttendanceParams{
			Date:     reg.Session.Date,
			Venue:    reg.Session.Venue,
			PlayerID: player.ID,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check attendance: %w", err)
		}
		if exists {
			return nil, nil, fmt.Errorf("%s on %s at %s: %w", reg.Name, reg.Session.Date, reg.Session.Venue, domain.ErrAlreadyRegistered)
		}

		if err := qtx.IncrementPlayerAttendance(ctx, db.IncrementPlayerAttendanceParams{UpdatedAt: now, ID: player.ID}); err != nil {
			return nil, nil, fmt.Errorf("failed to increment attendance for %s: %w", player.ID, err)
		}
		player.TotalAttendance++
		player.UpdatedAt = now
	}

	record := db.CreateAttendanceParams{
		ID:        reg.RecordID,
		Date:      reg.Session.Date,
		Venue:     reg.Session.Venue,
		PlayerID:  player.ID,
		ArrivedAt: reg.ArrivedAt.UnixNano(),
	}
	if err := qtx.CreateAttendance(ctx, record); err != nil {
		return nil, nil, fmt.Errorf("failed to create attendance record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	p := toDomainPlayer(player)
	return &p, &domain.AttendanceRecord{
		ID:        record.ID,
		Date:      record.Date,
		Venue:     record.Venue,
		PlayerID:  record.PlayerID,
		ArrivedAt: time.Unix(0, record.ArrivedAt),
	}, nil
}

// SessionAttendees returns the players checked in for the session in arrival order.
func (r *AttendanceRepository) SessionAttendees(ctx context.Context, key domain.SessionKey) ([]domain.Player, error) {
	rows, err := r.queries.ListSessionAttendees(ctx, db.ListSessionAttendeesParams{
		Date:  key.Date,
		Venue: key.Venue,
	})
	if err != nil {
		return nil, err
	}

	players := make([]domain.Player, len(rows))
	for i, row := range rows {
		players[i] = domain.Player{
			ID:              row.ID,
			Name:            row.Name,
			AgeGroup:        domain.AgeGroup(row.AgeGroup),
			SkillScore:      row.SkillScore,
			Position:        domain.Position(row.Position),
			TotalAttendance: int(row.TotalAttendance),
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		}
	}
	return players, nil
}

func (r *AttendanceRepository) CountForPlayer(ctx context.Context, playerID string) (int, error) {
	n, err := r.queries.CountAttendanceByPlayer(ctx, playerID)
	return int(n), err
}
