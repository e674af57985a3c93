package db

import (
	"context"
	"time"
)

const playerColumns = `id, name, age_group, skill_score, position, total_attendance, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayer(row rowScanner) (Player, error) {
	var p Player
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.AgeGroup,
		&p.SkillScore,
		&p.Position,
		&p.TotalAttendance,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const getPlayer = `SELECT ` + playerColumns + ` FROM players WHERE id = ?`

func (q *Queries) GetPlayer(ctx context.Context, id string) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayer, id))
}

const getPlayerByName = `SELECT ` + playerColumns + ` FROM players WHERE name = ?`

func (q *Queries) GetPlayerByName(ctx context.Context, name string) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayerByName, name))
}

const createPlayer = `INSERT INTO players (` + playerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

type CreatePlayerParams struct {
	ID              string
	Name            string
	AgeGroup        string
	SkillScore      float64
	Position        string
	TotalAttendance int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) error {
	_, err := q.db.ExecContext(ctx, createPlayer,
		arg.ID,
		arg.Name,
		arg.AgeGroup,
		arg.SkillScore,
		arg.Position,
		arg.TotalAttendance,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const incrementPlayerAttendance = `UPDATE players SET total_attendance = total_attendance + 1, updated_at = ? WHERE id = ?`

type IncrementPlayerAttendanceParams struct {
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) IncrementPlayerAttendance(ctx context.Context, arg IncrementPlayerAttendanceParams) error {
	_, err := q.db.ExecContext(ctx, incrementPlayerAttendance, arg.UpdatedAt, arg.ID)
	return err
}

const updatePlayerSkill = `UPDATE players SET skill_score = ?, updated_at = ? WHERE id = ?`

type UpdatePlayerSkillParams struct {
	SkillScore float64
	UpdatedAt  time.Time
	ID         string
}

func (q *Queries) UpdatePlayerSkill(ctx context.Context, arg UpdatePlayerSkillParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updatePlayerSkill, arg.SkillScore, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updatePlayerPosition = `UPDATE players SET position = ?, updated_at = ? WHERE id = ?`

type UpdatePlayerPositionParams struct {
	Position  string
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdatePlayerPosition(ctx context.Context, arg UpdatePlayerPositionParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updatePlayerPosition, arg.Position, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listPlayersByAttendance = `SELECT ` + playerColumns + ` FROM players ORDER BY total_attendance DESC, name ASC`

func (q *Queries) ListPlayersByAttendance(ctx context.Context) ([]Player, error) {
	return q.listPlayers(ctx, listPlayersByAttendance)
}

const listPlayersAttendingOn = `SELECT ` + playerColumns + ` FROM players
WHERE id IN (SELECT player_id FROM attendance WHERE date = ?)
ORDER BY name ASC`

func (q *Queries) ListPlayersAttendingOn(ctx context.Context, date string) ([]Player, error) {
	return q.listPlayers(ctx, listPlayersAttendingOn, date)
}

func (q *Queries) listPlayers(ctx context.Context, query string, args ...interface{}) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
