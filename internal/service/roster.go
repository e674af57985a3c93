package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"club-roster/internal/config"
	"club-roster/internal/constants"
	"club-roster/internal/domain"
	"club-roster/internal/repository"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type RosterService struct {
	players    *repository.PlayerRepository
	attendance *repository.AttendanceRepository
	cfg        *config.Config
	logger     zerolog.Logger
}

func NewRosterService(players *repository.PlayerRepository, attendance *repository.AttendanceRepository, cfg *config.Config, logger zerolog.Logger) *RosterService {
	return &RosterService{players: players, attendance: attendance, cfg: cfg, logger: logger}
}

type RegisterInput struct {
	Name     string
	AgeGroup string
	Position string
	Date     string
	Venue    string
}

type Leaderboard struct {
	Players         []domain.Player
	TotalAttendance int
}

type DailyRoster struct {
	Date           string
	Players        []domain.Player
	PositionCounts map[domain.Position]int
}

func (s *RosterService) Venues() []string {
	return append([]string(nil), s.cfg.Venues...)
}

func (s *RosterService) RegisterAttendance(ctx context.Context, in RegisterInput) (*domain.Player, *domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, nil, domain.ErrEmptyName
	}

	key := domain.SessionKey{Date: in.Date, Venue: in.Venue}
	if err := validateSession(s.cfg, key); err != nil {
		return nil, nil, err
	}

	ageGroup := domain.AgeGroup(orDefault(in.AgeGroup, constants.DefaultAgeGroup))
	if !ageGroup.Valid() {
		return nil, nil, fmt.Errorf("age group %q: %w", ageGroup, domain.ErrInvalidAgeGroup)
	}
	position := domain.Position(orDefault(in.Position, constants.DefaultPosition))
	if !position.Valid() {
		return nil, nil, fmt.Errorf("position %q: %w", position, domain.ErrInvalidPosition)
	}

	playerID, err := gonanoid.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate player id: %w", err)
	}

	player, record, err := s.attendance.Register(ctx, repository.Registration{
		RecordID:    uuid.NewString(),
		NewPlayerID: playerID,
		Name:        name,
		AgeGroup:    ageGroup,
		Position:    position,
		Session:     key,
		ArrivedAt:   time.Now(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("name", name).Str("date", key.Date).Str("venue", key.Venue).Msg("attendance registration failed")
		return nil, nil, err
	}

	s.logger.Info().
		Str("player_id", player.ID).
		Str("name", player.Name).
		Str("date", record.Date).
		Str("venue", record.Venue).
		Int("total_attendance", player.TotalAttendance).
		Msg("attendance registered")

	return player, record, nil
}

func (s *RosterService) UpdateSkill(ctx context.Context, playerID string, score float64) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if score < constants.MinSkillScore || score > constants.MaxSkillScore {
		return nil, fmt.Errorf("%.2f not in [%.1f, %.1f]: %w", score, constants.MinSkillScore, constants.MaxSkillScore, domain.ErrSkillOutOfRange)
	}

	if err := s.players.UpdateSkill(ctx, playerID, score); err != nil {
		return nil, err
	}

	s.logger.Info().Str("player_id", playerID).Float64("skill_score", score).Msg("skill updated")
	return s.players.Get(ctx, playerID)
}

func (s *RosterService) UpdatePosition(ctx context.Context, playerID string, position domain.Position) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if !position.Valid() {
		return nil, fmt.Errorf("position %q: %w", position, domain.ErrInvalidPosition)
	}

	if err := s.players.UpdatePosition(ctx, playerID, position); err != nil {
		return nil, err
	}

	s.logger.Info().Str("player_id", playerID).Str("position", string(position)).Msg("position updated")
	return s.players.Get(ctx, playerID)
}

func (s *RosterService) Leaderboard(ctx context.Context) (*Leaderboard, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.players.ListByAttendance(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list players")
		return nil, err
	}

	board := &Leaderboard{Players: players}
	for _, p := range players {
		board.TotalAttendance += p.TotalAttendance
	}
	return board, nil
}

// DailyRoster lists everyone who checked in on date at any venue, optionally
// filtered by a case-insensitive name fragment.
func (s *RosterService) DailyRoster(ctx context.Context, date, search string) (*DailyRoster, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := validateDate(date); err != nil {
		return nil, err
	}

	players, err := s.players.ListAttendingOn(ctx, date)
	if err != nil {
		s.logger.Error().Err(err).Str("date", date).Msg("failed to list attendees")
		return nil, err
	}

	roster := &DailyRoster{
		Date:           date,
		Players:        []domain.Player{},
		PositionCounts: make(map[domain.Position]int, len(domain.Positions)),
	}
	for _, pos := range domain.Positions {
		roster.PositionCounts[pos] = 0
	}

	// position counts cover the whole day, the search only narrows the list
	needle := strings.ToLower(strings.TrimSpace(search))
	for _, p := range players {
		roster.PositionCounts[p.Position]++
		if needle == "" || strings.Contains(strings.ToLower(p.Name), needle) {
			roster.Players = append(roster.Players, p)
		}
	}

	return roster, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
