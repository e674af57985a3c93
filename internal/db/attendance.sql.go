package db

import (
	"context"
)

const createAttendance = `INSERT INTO attendance (id, date, venue, player_id, arrived_at) VALUES (?, ?, ?, ?, ?)`

type CreateAttendanceParams struct {
	ID        string
	Date      string
	Venue     string
	PlayerID  string
	ArrivedAt int64
}

func (q *Queries) CreateAttendance(ctx context.Context, arg CreateAttendanceParams) error {
	_, err := q.db.ExecContext(ctx, createAttendance,
		arg.ID,
		arg.Date,
		arg.Venue,
		arg.PlayerID,
		arg.ArrivedAt,
	)
	return err
}

const hasAttendance = `SELECT EXISTS (SELECT 1 FROM attendance WHERE date = ? AND venue = ? AND player_id = ?)`

type HasAttendanceParams struct {
	Date     string
	Venue    string
	PlayerID string
}

func (q *Queries) HasAttendance(ctx context.Context, arg HasAttendanceParams) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, hasAttendance, arg.Date, arg.Venue, arg.PlayerID).Scan(&exists)
	return exists, err
}

const countAttendanceByPlayer = `SELECT COUNT(*) FROM attendance WHERE player_id = ?`

func (q *Queries) CountAttendanceByPlayer(ctx context.Context, playerID string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countAttendanceByPlayer, playerID).Scan(&count)
	return count, err
}

// arrival order, insertion order breaks ties
const listSessionAttendees = `SELECT a.id, a.arrived_at,
       p.id, p.name, p.age_group, p.skill_score, p.position, p.total_attendance, p.created_at, p.updated_at
FROM attendance a
JOIN players p ON p.id = a.player_id
WHERE a.date = ? AND a.venue = ?
ORDER BY a.arrived_at ASC, a.rowid ASC`

type ListSessionAttendeesParams struct {
	Date  string
	Venue string
}

func (q *Queries) ListSessionAttendees(ctx context.Context, arg ListSessionAttendeesParams) ([]SessionAttendee, error) {
	rows, err := q.db.QueryContext(ctx, listSessionAttendees, arg.Date, arg.Venue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []SessionAttendee
	for rows.Next() {
		var i SessionAttendee
		if err := rows.Scan(
			&i.AttendanceID,
			&i.ArrivedAt,
			&i.ID,
			&i.Name,
			&i.AgeGroup,
			&i.SkillScore,
			&i.Position,
			&i.TotalAttendance,
			&i.CreatedAt,
			&i.UpdatedAt,
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
