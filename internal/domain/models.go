package domain

import (
	"time"
)

type Position string

const (
	Goalkeeper Position = "GK"
	Defender   Position = "DF"
	Midfielder Position = "MF"
	Forward    Position = "FW"
)

var Positions = []Position{Goalkeeper, Defender, Midfielder, Forward}

func (p Position) Valid() bool {
	switch p {
	case Goalkeeper, Defender, Midfielder, Forward:
		return true
	}
	return false
}

type AgeGroup string

var AgeGroups = []AgeGroup{"20s", "30s", "40s", "50s", "60s+"}

func (a AgeGroup) Valid() bool {
	for _, g := range AgeGroups {
		if a == g {
			return true
		}
	}
	return false
}

type Player struct {
	ID              string // nanoid
	Name            string
	AgeGroup        AgeGroup
	SkillScore      float64 // 0.0 - 5.0
	Position        Position
	TotalAttendance int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type AttendanceRecord struct {
	ID        string // uuid
	Date      string // YYYY-MM-DD
	Venue     string
	PlayerID  string
	ArrivedAt time.Time
}

// SessionKey identifies every match played at one venue on one date.
type SessionKey struct {
	Date  string
	Venue string
}

type TeamResult struct {
	TeamA  []Player
	TeamB  []Player
	ScoreA float64
	ScoreB float64
}

// Recompute returns a copy of the result whose scores are summed from the
// current members.
func (r TeamResult) Recompute() TeamResult {
	out := TeamResult{
		TeamA: append([]Player(nil), r.TeamA...),
		TeamB: append([]Player(nil), r.TeamB...),
	}
	out.ScoreA = sumSkill(out.TeamA)
	out.ScoreB = sumSkill(out.TeamB)
	return out
}

func (r TeamResult) Size() int {
	return len(r.TeamA) + len(r.TeamB)
}

func (r TeamResult) PlayerIDs() []string {
	ids := make([]string, 0, r.Size())
	for _, p := range r.TeamA {
		ids = append(ids, p.ID)
	}
	for _, p := range r.TeamB {
		ids = append(ids, p.ID)
	}
	return ids
}

func sumSkill(players []Player) float64 {
	var total float64
	for _, p := range players {
		total += p.SkillScore
	}
	return total
}

type MatchRecord struct {
	ID        string // uuid
	Session   SessionKey
	Number    int
	Teams     TeamResult
	PlayerIDs []string
	CreatedAt time.Time
}
