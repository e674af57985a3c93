package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"club-roster/internal/db"
	"club-roster/internal/domain"

	"github.com/rs/zerolog"
)

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// stored with each match so history shows the lineup as it was played
type lineupPlayer struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	AgeGroup   string  `json:"age_group"`
	SkillScore float64 `json:"skill_score"`
	Position   string  `json:"position"`
}

func (r *MatchRepository) History(ctx context.Context, key domain.SessionKey) ([]domain.MatchRecord, error) {
	rows, err := r.queries.ListSessionMatches(ctx, db.SessionParams{Date: key.Date, Venue: key.Venue})
	if err != nil {
		return nil, err
	}

	history := make([]domain.MatchRecord, len(rows))
	for i, row := range rows {
		record, err := toDomainMatch(row)
		if err != nil {
			r.logger.Error().Err(err).Str("match_id", row.ID).Msg("failed to decode match")
			return nil, err
		}
		history[i] = record
	}
	return history, nil
}

// Append stores the next match of the session. The match number is assigned
// inside the transaction and written back to record.
func (r *MatchRepository) Append(ctx context.Context, record *domain.MatchRecord) error {
	teamA, err := encodeLineup(record.Teams.TeamA)
	if err != nil {
		return err
	}
	teamB, err := encodeLineup(record.Teams.TeamB)
	if err != nil {
		return err
	}
	playerIDs, err := json.Marshal(record.PlayerIDs)
	if err != nil {
		return fmt.Errorf("failed to encode player ids: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	session := db.SessionParams{Date: record.Session.Date, Venue: record.Session.Venue}

	played, err := qtx.CountSessionMatches(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to count matches: %w", err)
	}
	record.Number = int(played) + 1

	err = qtx.CreateSessionMatch(ctx, db.CreateSessionMatchParams{
		ID:          record.ID,
		Date:        record.Session.Date,
		Venue:       record.Session.Venue,
		MatchNumber: int64(record.Number),
		TeamA:       teamA,
		TeamB:       teamB,
		ScoreA:      record.Teams.ScoreA,
		ScoreB:      record.Teams.ScoreB,
		PlayerIds:   string(playerIDs),
		CreatedAt:   record.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create match %s: %w", record.ID, err)
	}

	return tx.Commit()
}

// ResetSession removes every match and exclusion of the session.
func (r *MatchRepository) ResetSession(ctx context.Context, key domain.SessionKey) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	session := db.SessionParams{Date: key.Date, Venue: key.Venue}

	if err := qtx.DeleteSessionMatches(ctx, session); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	if err := qtx.DeleteExclusions(ctx, session); err != nil {
		return fmt.Errorf("failed to delete exclusions: %w", err)
	}

	return tx.Commit()
}

func encodeLineup(team []domain.Player) (string, error) {
	players := make([]lineupPlayer, len(team))
	for i, p := range team {
		players[i] = lineupPlayer{
			ID:         p.ID,
			Name:       p.Name,
			AgeGroup:   string(p.AgeGroup),
			SkillScore: p.SkillScore,
			Position:   string(p.Position),
		}
	}
	data, err := json.Marshal(players)
	if err != nil {
		return "", fmt.Errorf("failed to encode lineup: %w", err)
	}
	return string(data), nil
}

func decodeLineup(raw string) ([]domain.Player, error) {
	var players []lineupPlayer
	if err := json.Unmarshal([]byte(raw), &players); err != nil {
		return nil, fmt.Errorf("failed to decode lineup: %w", err)
	}
	team := make([]domain.Player, len(players))
	for i, p := range players {
		team[i] = domain.Player{
			ID:         p.ID,
			Name:       p.Name,
			AgeGroup:   domain.AgeGroup(p.AgeGroup),
			SkillScore: p.SkillScore,
			Position:   domain.Position(p.Position),
		}
	}
	return team, nil
}

func toDomainMatch(row db.SessionMatch) (domain.MatchRecord, error) {
	teamA, err := decodeLineup(row.TeamA)
	if err != nil {
		return domain.MatchRecord{}, err
	}
	teamB, err := decodeLineup(row.TeamB)
	if err != nil {
		return domain.MatchRecord{}, err
	}
	var playerIDs []string
	if err := json.Unmarshal([]byte(row.PlayerIds), &playerIDs); err != nil {
		return domain.MatchRecord{}, fmt.Errorf("failed to decode player ids: %w", err)
	}

	return domain.MatchRecord{
		ID:      row.ID,
		Session: domain.SessionKey{Date: row.Date, Venue: row.Venue},
		Number:  int(row.MatchNumber),
		Teams: domain.TeamResult{
			TeamA:  teamA,
			TeamB:  teamB,
			ScoreA: row.ScoreA,
			ScoreB: row.ScoreB,
		},
		PlayerIDs: playerIDs,
		CreatedAt: row.CreatedAt,
	}, nil
}
