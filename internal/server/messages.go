package server

import (
	"time"

	"club-roster/internal/domain"
	"club-roster/internal/service"
)

type SessionRef struct {
	Date  string `json:"date"`
	Venue string `json:"venue"`
}

func (r SessionRef) key() domain.SessionKey {
	return domain.SessionKey{Date: r.Date, Venue: r.Venue}
}

type Player struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	AgeGroup        string  `json:"ageGroup"`
	SkillScore      float64 `json:"skillScore"`
	Position        string  `json:"position"`
	TotalAttendance int     `json:"totalAttendance"`
}

type Lineup struct {
	TeamA  []Player `json:"teamA"`
	TeamB  []Player `json:"teamB"`
	ScoreA float64  `json:"scoreA"`
	ScoreB float64  `json:"scoreB"`
}

type Match struct {
	ID          string   `json:"id"`
	MatchNumber int      `json:"matchNumber"`
	Lineup      Lineup   `json:"lineup"`
	PlayerIDs   []string `json:"playerIds"`
	CreatedAt   string   `json:"createdAt"`
}

type Attendee struct {
	Player         Player `json:"player"`
	ArrivalOrder   int    `json:"arrivalOrder"`
	MatchesPlayed  int    `json:"matchesPlayed"`
	Excluded       bool   `json:"excluded"`
	InSquad        bool   `json:"inSquad"`
	GoalkeeperHint bool   `json:"goalkeeperHint"`
}

type RegisterAttendanceRequest struct {
	Name     string `json:"name"`
	AgeGroup string `json:"ageGroup"`
	Position string `json:"position"`
	Date     string `json:"date"`
	Venue    string `json:"venue"`
}

type RegisterAttendanceResponse struct {
	Player       Player `json:"player"`
	AttendanceID string `json:"attendanceId"`
	ArrivedAt    string `json:"arrivedAt"`
}

type LeaderboardRequest struct{}

type LeaderboardResponse struct {
	Players         []Player `json:"players"`
	TotalAttendance int      `json:"totalAttendance"`
}

type ListVenuesRequest struct{}

type ListVenuesResponse struct {
	Venues    []string `json:"venues"`
	Positions []string `json:"positions"`
	AgeGroups []string `json:"ageGroups"`
}

type UnlockRequest struct {
	Code string `json:"code"`
}

type UnlockResponse struct {
	Ok bool `json:"ok"`
}

type GetSessionRequest struct {
	SessionRef
}

type SessionResponse struct {
	SessionRef
	Attendees []Attendee `json:"attendees"`
	Squad     []Player   `json:"squad"`
	NextMatch int        `json:"nextMatch"`
	History   []Match    `json:"history"`
	Proposal  *Lineup    `json:"proposal,omitempty"`
}

type ToggleExclusionRequest struct {
	SessionRef
	PlayerID string `json:"playerId"`
}

type ToggleExclusionResponse struct {
	Excluded bool `json:"excluded"`
}

type GenerateLineupRequest struct {
	SessionRef
}

type MovePlayerRequest struct {
	SessionRef
	PlayerID string `json:"playerId"`
}

type UpdateLineupPositionRequest struct {
	SessionRef
	PlayerID string `json:"playerId"`
	Position string `json:"position"`
}

type LineupResponse struct {
	Lineup Lineup `json:"lineup"`
}

type ConfirmMatchRequest struct {
	SessionRef
}

type ConfirmMatchResponse struct {
	Match Match `json:"match"`
}

type ResetSessionRequest struct {
	SessionRef
}

type ResetSessionResponse struct{}

type UpdateSkillRequest struct {
	PlayerID   string  `json:"playerId"`
	SkillScore float64 `json:"skillScore"`
}

type UpdatePositionRequest struct {
	PlayerID string `json:"playerId"`
	Position string `json:"position"`
}

type PlayerResponse struct {
	Player Player `json:"player"`
}

type DailyRosterRequest struct {
	Date   string `json:"date"`
	Search string `json:"search"`
}

type DailyRosterResponse struct {
	Date           string         `json:"date"`
	Players        []Player       `json:"players"`
	PositionCounts map[string]int `json:"positionCounts"`
}

func toPlayer(p domain.Player) Player {
	return Player{
		ID:              p.ID,
		Name:            p.Name,
		AgeGroup:        string(p.AgeGroup),
		SkillScore:      p.SkillScore,
		Position:        string(p.Position),
		TotalAttendance: p.TotalAttendance,
	}
}

func toPlayers(players []domain.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = toPlayer(p)
	}
	return out
}

func toLineup(r domain.TeamResult) Lineup {
	return Lineup{
		TeamA:  toPlayers(r.TeamA),
		TeamB:  toPlayers(r.TeamB),
		ScoreA: r.ScoreA,
		ScoreB: r.ScoreB,
	}
}

func toMatch(m domain.MatchRecord) Match {
	return Match{
		ID:          m.ID,
		MatchNumber: m.Number,
		Lineup:      toLineup(m.Teams),
		PlayerIDs:   m.PlayerIDs,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

func toSessionResponse(v *service.SessionView) *SessionResponse {
	resp := &SessionResponse{
		SessionRef: SessionRef{Date: v.Session.Date, Venue: v.Session.Venue},
		Attendees:  make([]Attendee, len(v.Attendees)),
		Squad:      toPlayers(v.Squad),
		NextMatch:  v.NextMatch,
		History:    make([]Match, len(v.History)),
	}
	for i, a := range v.Attendees {
		resp.Attendees[i] = Attendee{
			Player:         toPlayer(a.Player),
			ArrivalOrder:   a.ArrivalOrder,
			MatchesPlayed:  a.MatchesPlayed,
			Excluded:       a.Excluded,
			InSquad:        a.InSquad,
			GoalkeeperHint: a.GoalkeeperHint,
		}
	}
	for i, m := range v.History {
		resp.History[i] = toMatch(m)
	}
	if v.Proposal != nil {
		lineup := toLineup(*v.Proposal)
		resp.Proposal = &lineup
	}
	return resp
}
