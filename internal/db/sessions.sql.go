package db

import (
	"context"
	"time"
)

type SessionParams struct {
	Date  string
	Venue string
}

type ExclusionParams struct {
	Date     string
	Venue    string
	PlayerID string
}

const addExclusion = `INSERT OR IGNORE INTO session_exclusions (date, venue, player_id) VALUES (?, ?, ?)`

func (q *Queries) AddExclusion(ctx context.Context, arg ExclusionParams) error {
	_, err := q.db.ExecContext(ctx, addExclusion, arg.Date, arg.Venue, arg.PlayerID)
	return err
}

const removeExclusion = `DELETE FROM session_exclusions WHERE date = ? AND venue = ? AND player_id = ?`

func (q *Queries) RemoveExclusion(ctx context.Context, arg ExclusionParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, removeExclusion, arg.Date, arg.Venue, arg.PlayerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listExclusions = `SELECT player_id FROM session_exclusions WHERE date = ? AND venue = ?`

func (q *Queries) ListExclusions(ctx context.Context, arg SessionParams) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listExclusions, arg.Date, arg.Venue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var playerID string
		if err := rows.Scan(&playerID); err != nil {
			return nil, err
		}
		items = append(items, playerID)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteExclusions = `DELETE FROM session_exclusions WHERE date = ? AND venue = ?`

func (q *Queries) DeleteExclusions(ctx context.Context, arg SessionParams) error {
	_, err := q.db.ExecContext(ctx, deleteExclusions, arg.Date, arg.Venue)
	return err
}

const createSessionMatch = `INSERT INTO session_matches (
    id, date, venue, match_number, team_a, team_b, score_a, score_b, player_ids, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type CreateSessionMatchParams struct {
	ID          string
	Date        string
	Venue       string
	MatchNumber int64
	TeamA       string
	TeamB       string
	ScoreA      float64
	ScoreB      float64
	PlayerIds   string
	CreatedAt   time.Time
}

func (q *Queries) CreateSessionMatch(ctx context.Context, arg CreateSessionMatchParams) error {
	_, err := q.db.ExecContext(ctx, createSessionMatch,
		arg.ID,
		arg.Date,
		arg.Venue,
		arg.MatchNumber,
		arg.TeamA,
		arg.TeamB,
		arg.ScoreA,
		arg.ScoreB,
		arg.PlayerIds,
		arg.CreatedAt,
	)
	return err
}

const countSessionMatches = `SELECT COUNT(*) FROM session_matches WHERE date = ? AND venue = ?`

func (q *Queries) CountSessionMatches(ctx context.Context, arg SessionParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countSessionMatches, arg.Date, arg.Venue).Scan(&count)
	return count, err
}

const listSessionMatches = `SELECT id, date, venue, match_number, team_a, team_b, score_a, score_b, player_ids, created_at
FROM session_matches
WHERE date = ? AND venue = ?
ORDER BY match_number ASC`

func (q *Queries) ListSessionMatches(ctx context.Context, arg SessionParams) ([]SessionMatch, error) {
	rows, err := q.db.QueryContext(ctx, listSessionMatches, arg.Date, arg.Venue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []SessionMatch
	for rows.Next() {
		var i SessionMatch
		if err := rows.Scan(
			&i.ID,
			&i.Date,
			&i.Venue,
			&i.MatchNumber,
			&i.TeamA,
			&i.TeamB,
			&i.ScoreA,
			&i.ScoreB,
			&i.PlayerIds,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteSessionMatches = `DELETE FROM session_matches WHERE date = ? AND venue = ?`

func (q *Queries) DeleteSessionMatches(ctx context.Context, arg SessionParams) error {
	_, err := q.db.ExecContext(ctx, deleteSessionMatches, arg.Date, arg.Venue)
	return err
}
