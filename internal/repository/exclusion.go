package repository

import (
	"context"
	"database/sql"

	"club-roster/internal/db"
	"club-roster/internal/domain"

	"github.com/rs/zerolog"
)

// ExclusionRepository stores the players a coach has sat out for a session.
type ExclusionRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewExclusionRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ExclusionRepository {
	return &ExclusionRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *ExclusionRepository) List(ctx context.Context, key domain.SessionKey) (map[string]bool, error) {
	ids, err := r.queries.ListExclusions(ctx, db.SessionParams{Date: key.Date, Venue: key.Venue})
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(ids))
	for _, id := range ids {
		excluded[id] = true
	}
	return excluded, nil
}

// Toggle flips the exclusion and reports whether the player is now excluded.
func (r *ExclusionRepository) Toggle(ctx context.Context, key domain.SessionKey, playerID string) (bool, error) {
	params := db.ExclusionParams{Date: key.Date, Venue: key.Venue, PlayerID: playerID}

	removed, err := r.queries.RemoveExclusion(ctx, params)
	if err != nil {
		return false, err
	}
	if removed > 0 {
		r.logger.Debug().Str("player_id", playerID).Msg("player back in rotation")
		return false, nil
	}

	if err := r.queries.AddExclusion(ctx, params); err != nil {
		return false, err
	}
	r.logger.Debug().Str("player_id", playerID).Msg("player sat out")
	return true, nil
}
