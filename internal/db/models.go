package db

import (
	"time"
)

type Player struct {
	ID              string
	Name            string
	AgeGroup        string
	SkillScore      float64
	Position        string
	TotalAttendance int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Attendance struct {
	ID        string
	Date      string
	Venue     string
	PlayerID  string
	ArrivedAt int64
}

type SessionAttendee struct {
	AttendanceID    string
	ArrivedAt       int64
	ID              string
	Name            string
	AgeGroup        string
	SkillScore      float64
	Position        string
	TotalAttendance int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type SessionMatch struct {
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
