package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"club-roster/internal/db"
	"club-roster/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*domain.Player, error) {
	player, err := r.queries.GetPlayer(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", id, domain.ErrPlayerNotFound)
	}
	if err != nil {
		return nil, err
	}

	p := toDomainPlayer(player)
	return &p, nil
}

func (r *PlayerRepository) UpdateSkill(ctx context.Context, id string, score float64) error {
	n, err := r.queries.UpdatePlayerSkill(ctx, db.UpdatePlayerSkillParams{
		SkillScore: score,
		UpdatedAt:  time.Now(),
		ID:         id,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("player_id", id).Msg("failed to update skill")
		return err
	}
	if n == 0 {
		return fmt.Errorf("player %s: %w", id, domain.ErrPlayerNotFound)
	}
	return nil
}

func (r *PlayerRepository) UpdatePosition(ctx context.Context, id string, position domain.Position) error {
	n, err := r.queries.UpdatePlayerPosition(ctx, db.UpdatePlayerPositionParams{
		Position:  string(position),
		UpdatedAt: time.Now(),
		ID:        id,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("player_id", id).Msg("failed to update position")
		return err
	}
	if n == 0 {
		return fmt.Errorf("player %s: %w", id, domain.ErrPlayerNotFound)
	}
	return nil
}

// ListByAttendance returns every player, most frequent attendees first.
func (r *PlayerRepository) ListByAttendance(ctx context.Context) ([]domain.Player, error) {
	players, err := r.queries.ListPlayersByAttendance(ctx)
	if err != nil {
		return nil, err
	}
	return toDomainPlayers(players), nil
}

func (r *PlayerRepository) ListAttendingOn(ctx context.Context, date string) ([]domain.Player, error) {
	players, err := r.queries.ListPlayersAttendingOn(ctx, date)
	if err != nil {
		return nil, err
	}
	return toDomainPlayers(players), nil
}

func toDomainPlayers(players []db.Player) []domain.Player {
	result := make([]domain.Player, len(players))
	for i, p := range players {
		result[i] = toDomainPlayer(p)
	}
	return result
}

func toDomainPlayer(p db.Player) domain.Player {
	return domain.Player{
		ID:              p.ID,
		Name:            p.Name,
		AgeGroup:        domain.AgeGroup(p.AgeGroup),
		SkillScore:      p.SkillScore,
		Position:        domain.Position(p.Position),
		TotalAttendance: int(p.TotalAttendance),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
