package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"club-roster/internal/config"
	"club-roster/internal/constants"
	"club-roster/internal/domain"
	"club-roster/internal/lineup"
	"club-roster/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type MatchNotifier interface {
	MatchConfirmed(ctx context.Context, match domain.MatchRecord) error
}

// SessionService drives the match rotation for a session. Match history and
// exclusions live in storage; the lineup being edited lives only in memory
// until it is confirmed.
type SessionService struct {
	attendance *repository.AttendanceRepository
	matches    *repository.MatchRepository
	exclusions *repository.ExclusionRepository
	notifier   MatchNotifier
	cfg        *config.Config
	logger     zerolog.Logger

	mu        sync.Mutex
	proposals map[domain.SessionKey]domain.TeamResult
}

func NewSessionService(
	attendance *repository.AttendanceRepository,
	matches *repository.MatchRepository,
	exclusions *repository.ExclusionRepository,
	notifier MatchNotifier,
	cfg *config.Config,
	logger zerolog.Logger,
) *SessionService {
	return &SessionService{
		attendance: attendance,
		matches:    matches,
		exclusions: exclusions,
		notifier:   notifier,
		cfg:        cfg,
		logger:     logger,
		proposals:  make(map[domain.SessionKey]domain.TeamResult),
	}
}

type AttendeeStatus struct {
	Player         domain.Player
	ArrivalOrder   int
	MatchesPlayed  int
	Excluded       bool
	InSquad        bool
	GoalkeeperHint bool
}

type SessionView struct {
	Session   domain.SessionKey
	Attendees []AttendeeStatus
	Squad     []domain.Player
	NextMatch int
	History   []domain.MatchRecord
	Proposal  *domain.TeamResult
}

type sessionState struct {
	attendees []domain.Player
	history   []domain.MatchRecord
	excluded  map[string]bool
}

func (st sessionState) squad(capacity int) []domain.Player {
	return lineup.SelectSquad(st.attendees, lineup.MatchCounts(st.history), st.excluded, capacity)
}

func (s *SessionService) loadState(ctx context.Context, key domain.SessionKey) (*sessionState, error) {
	if err := validateSession(s.cfg, key); err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)
	var st sessionState

	g.Go(func() error {
		var err error
		st.attendees, err = s.attendance.SessionAttendees(gCtx, key)
		return err
	})

	g.Go(func() error {
		var err error
		st.history, err = s.matches.History(gCtx, key)
		return err
	})

	g.Go(func() error {
		var err error
		st.excluded, err = s.exclusions.List(gCtx, key)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("date", key.Date).Str("venue", key.Venue).Msg("failed to load session")
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return &st, nil
}

func (s *SessionService) View(ctx context.Context, key domain.SessionKey) (*SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	st, err := s.loadState(ctx, key)
	if err != nil {
		return nil, err
	}

	counts := lineup.MatchCounts(st.history)
	squad := st.squad(s.cfg.SquadCapacity)
	hints := lineup.GoalkeeperHints(squad)
	inSquad := make(map[string]bool, len(squad))
	for _, p := range squad {
		inSquad[p.ID] = true
	}

	view := &SessionView{
		Session:   key,
		Attendees: make([]AttendeeStatus, len(st.attendees)),
		Squad:     squad,
		NextMatch: len(st.history) + 1,
		History:   st.history,
	}
	for i, p := range st.attendees {
		view.Attendees[i] = AttendeeStatus{
			Player:         p,
			ArrivalOrder:   i + 1,
			MatchesPlayed:  counts[p.ID],
			Excluded:       st.excluded[p.ID],
			InSquad:        inSquad[p.ID],
			GoalkeeperHint: hints[p.ID],
		}
	}

	s.mu.Lock()
	if proposal, ok := s.proposals[key]; ok {
		view.Proposal = &proposal
	}
	s.mu.Unlock()

	return view, nil
}

// ToggleExclusion sits an attendee out of the rotation, or brings them back.
// Any pending lineup for the session is discarded.
func (s *SessionService) ToggleExclusion(ctx context.Context, key domain.SessionKey, playerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	st, err := s.loadState(ctx, key)
	if err != nil {
		return false, err
	}
	if !containsPlayer(st.attendees, playerID) {
		return false, fmt.Errorf("player %s: %w", playerID, domain.ErrNotAttending)
	}

	excluded, err := s.exclusions.Toggle(ctx, key, playerID)
	if err != nil {
		s.logger.Error().Err(err).Str("player_id", playerID).Msg("failed to toggle exclusion")
		return false, err
	}

	s.mu.Lock()
	delete(s.proposals, key)
	s.mu.Unlock()

	s.logger.Info().
		Str("date", key.Date).
		Str("venue", key.Venue).
		Str("player_id", playerID).
		Bool("excluded", excluded).
		Msg("exclusion toggled")
	return excluded, nil
}

func (s *SessionService) GenerateLineup(ctx context.Context, key domain.SessionKey) (domain.TeamResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	st, err := s.loadState(ctx, key)
	if err != nil {
		return domain.TeamResult{}, err
	}

	squad := st.squad(s.cfg.SquadCapacity)
	if len(squad) < constants.MinLineupPlayers {
		return domain.TeamResult{}, fmt.Errorf("need at least %d players, have %d: %w", constants.MinLineupPlayers, len(squad), domain.ErrInsufficientPlayers)
	}

	result := lineup.BalanceTeams(squad)

	s.mu.Lock()
	s.proposals[key] = result
	s.mu.Unlock()

	s.logger.Info().
		Str("date", key.Date).
		Str("venue", key.Venue).
		Int("match_number", len(st.history)+1).
		Int("team_a", len(result.TeamA)).
		Int("team_b", len(result.TeamB)).
		Float64("score_a", result.ScoreA).
		Float64("score_b", result.ScoreB).
		Msg("lineup generated")
	return result, nil
}

func (s *SessionService) MovePlayer(ctx context.Context, key domain.SessionKey, playerID string) (domain.TeamResult, error) {
	return s.editProposal(key, func(r domain.TeamResult) (domain.TeamResult, error) {
		return lineup.MovePlayer(r, playerID)
	})
}

func (s *SessionService) SetLineupPosition(ctx context.Context, key domain.SessionKey, playerID string, position domain.Position) (domain.TeamResult, error) {
	return s.editProposal(key, func(r domain.TeamResult) (domain.TeamResult, error) {
		return lineup.SetPosition(r, playerID, position)
	})
}

func (s *SessionService) editProposal(key domain.SessionKey, edit func(domain.TeamResult) (domain.TeamResult, error)) (domain.TeamResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.proposals[key]
	if !ok {
		return domain.TeamResult{}, domain.ErrNoProposal
	}

	next, err := edit(current)
	if err != nil {
		return domain.TeamResult{}, err
	}
	s.proposals[key] = next
	return next, nil
}

// ConfirmMatch locks in the pending lineup as the next match of the session.
func (s *SessionService) ConfirmMatch(ctx context.Context, key domain.SessionKey) (*domain.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := validateSession(s.cfg, key); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	proposal, ok := s.proposals[key]
	if !ok {
		return nil, domain.ErrNoProposal
	}

	record := &domain.MatchRecord{
		ID:        uuid.NewString(),
		Session:   key,
		Teams:     proposal.Recompute(),
		PlayerIDs: proposal.PlayerIDs(),
		CreatedAt: time.Now(),
	}
	if err := s.matches.Append(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("date", key.Date).Str("venue", key.Venue).Msg("failed to confirm match")
		return nil, err
	}
	delete(s.proposals, key)

	s.logger.Info().
		Str("date", key.Date).
		Str("venue", key.Venue).
		Str("match_id", record.ID).
		Int("match_number", record.Number).
		Int("players", len(record.PlayerIDs)).
		Msg("match confirmed")

	s.notify(*record)
	return record, nil
}

func (s *SessionService) notify(record domain.MatchRecord) {
	g := new(errgroup.Group)
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), constants.WebhookTimeout)
		defer cancel()
		return s.notifier.MatchConfirmed(ctx, record)
	})

	go func() {
		if err := g.Wait(); err != nil {
			s.logger.Warn().Err(err).Str("match_id", record.ID).Msg("match notification failed")
		}
	}()
}

// Reset clears the session's match history and exclusions.
func (s *SessionService) Reset(ctx context.Context, key domain.SessionKey) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := validateSession(s.cfg, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.matches.ResetSession(ctx, key); err != nil {
		s.logger.Error().Err(err).Str("date", key.Date).Str("venue", key.Venue).Msg("failed to reset session")
		return err
	}
	delete(s.proposals, key)

	s.logger.Info().Str("date", key.Date).Str("venue", key.Venue).Msg("session reset")
	return nil
}

func containsPlayer(players []domain.Player, id string) bool {
	for _, p := range players {
		if p.ID == id {
			return true
		}
	}
	return false
}
