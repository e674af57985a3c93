package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"club-roster/internal/config"
	"club-roster/internal/domain"
	"club-roster/internal/middleware"
	"club-roster/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const ServiceName = "club.v1.ClubService"

const (
	RegisterAttendanceProcedure   = "/" + ServiceName + "/RegisterAttendance"
	LeaderboardProcedure          = "/" + ServiceName + "/Leaderboard"
	ListVenuesProcedure           = "/" + ServiceName + "/ListVenues"
	UnlockProcedure               = "/" + ServiceName + "/Unlock"
	GetSessionProcedure           = "/" + ServiceName + "/GetSession"
	ToggleExclusionProcedure      = "/" + ServiceName + "/ToggleExclusion"
	GenerateLineupProcedure       = "/" + ServiceName + "/GenerateLineup"
	MovePlayerProcedure           = "/" + ServiceName + "/MovePlayer"
	UpdateLineupPositionProcedure = "/" + ServiceName + "/UpdateLineupPosition"
	ConfirmMatchProcedure         = "/" + ServiceName + "/ConfirmMatch"
	ResetSessionProcedure         = "/" + ServiceName + "/ResetSession"
	UpdateSkillProcedure          = "/" + ServiceName + "/UpdateSkill"
	UpdatePositionProcedure       = "/" + ServiceName + "/UpdatePosition"
	DailyRosterProcedure          = "/" + ServiceName + "/DailyRoster"
)

// coach-only procedures
var ProtectedProcedures = map[string]bool{
	GetSessionProcedure:           true,
	ToggleExclusionProcedure:      true,
	GenerateLineupProcedure:       true,
	MovePlayerProcedure:           true,
	UpdateLineupPositionProcedure: true,
	ConfirmMatchProcedure:         true,
	ResetSessionProcedure:         true,
	UpdateSkillProcedure:          true,
	UpdatePositionProcedure:       true,
	DailyRosterProcedure:          true,
}

type ClubServer struct {
	roster   *service.RosterService
	sessions *service.SessionService
	cfg      *config.Config
	logger   zerolog.Logger
}

func NewClubServer(roster *service.RosterService, sessions *service.SessionService, cfg *config.Config, logger zerolog.Logger) *ClubServer {
	return &ClubServer{roster: roster, sessions: sessions, cfg: cfg, logger: logger}
}

// Handler returns the mount path and handler for every procedure.
func (s *ClubServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(middleware.AccessCode(s.cfg.AccessCode, ProtectedProcedures)),
	}, opts...)

	mux := http.NewServeMux()
	mux.Handle(RegisterAttendanceProcedure, connect.NewUnaryHandler(RegisterAttendanceProcedure, s.RegisterAttendance, opts...))
	mux.Handle(LeaderboardProcedure, connect.NewUnaryHandler(LeaderboardProcedure, s.Leaderboard, opts...))
	mux.Handle(ListVenuesProcedure, connect.NewUnaryHandler(ListVenuesProcedure, s.ListVenues, opts...))
	mux.Handle(UnlockProcedure, connect.NewUnaryHandler(UnlockProcedure, s.Unlock, opts...))
	mux.Handle(GetSessionProcedure, connect.NewUnaryHandler(GetSessionProcedure, s.GetSession, opts...))
	mux.Handle(ToggleExclusionProcedure, connect.NewUnaryHandler(ToggleExclusionProcedure, s.ToggleExclusion, opts...))
	mux.Handle(GenerateLineupProcedure, connect.NewUnaryHandler(GenerateLineupProcedure, s.GenerateLineup, opts...))
	mux.Handle(MovePlayerProcedure, connect.NewUnaryHandler(MovePlayerProcedure, s.MovePlayer, opts...))
	mux.Handle(UpdateLineupPositionProcedure, connect.NewUnaryHandler(UpdateLineupPositionProcedure, s.UpdateLineupPosition, opts...))
	mux.Handle(ConfirmMatchProcedure, connect.NewUnaryHandler(ConfirmMatchProcedure, s.ConfirmMatch, opts...))
	mux.Handle(ResetSessionProcedure, connect.NewUnaryHandler(ResetSessionProcedure, s.ResetSession, opts...))
	mux.Handle(UpdateSkillProcedure, connect.NewUnaryHandler(UpdateSkillProcedure, s.UpdateSkill, opts...))
	mux.Handle(UpdatePositionProcedure, connect.NewUnaryHandler(UpdatePositionProcedure, s.UpdatePosition, opts...))
	mux.Handle(DailyRosterProcedure, connect.NewUnaryHandler(DailyRosterProcedure, s.DailyRoster, opts...))

	return "/" + ServiceName + "/", mux
}

func (s *ClubServer) RegisterAttendance(ctx context.Context, req *connect.Request[RegisterAttendanceRequest]) (*connect.Response[RegisterAttendanceResponse], error) {
	player, record, err := s.roster.RegisterAttendance(ctx, service.RegisterInput{
		Name:     req.Msg.Name,
		AgeGroup: req.Msg.AgeGroup,
		Position: req.Msg.Position,
		Date:     req.Msg.Date,
		Venue:    req.Msg.Venue,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&RegisterAttendanceResponse{
		Player:       toPlayer(*player),
		AttendanceID: record.ID,
		ArrivedAt:    record.ArrivedAt.Format(time.RFC3339Nano),
	}), nil
}

func (s *ClubServer) Leaderboard(ctx context.Context, req *connect.Request[LeaderboardRequest]) (*connect.Response[LeaderboardResponse], error) {
	board, err := s.roster.Leaderboard(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&LeaderboardResponse{
		Players:         toPlayers(board.Players),
		TotalAttendance: board.TotalAttendance,
	}), nil
}

func (s *ClubServer) ListVenues(ctx context.Context, req *connect.Request[ListVenuesRequest]) (*connect.Response[ListVenuesResponse], error) {
	resp := &ListVenuesResponse{Venues: s.roster.Venues()}
	for _, p := range domain.Positions {
		resp.Positions = append(resp.Positions, string(p))
	}
	for _, a := range domain.AgeGroups {
		resp.AgeGroups = append(resp.AgeGroups, string(a))
	}
	return connect.NewResponse(resp), nil
}

func (s *ClubServer) Unlock(ctx context.Context, req *connect.Request[UnlockRequest]) (*connect.Response[UnlockResponse], error) {
	return connect.NewResponse(&UnlockResponse{
		Ok: middleware.CheckAccessCode(s.cfg.AccessCode, req.Msg.Code),
	}), nil
}

func (s *ClubServer) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[SessionResponse], error) {
	view, err := s.sessions.View(ctx, req.Msg.key())
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toSessionResponse(view)), nil
}

func (s *ClubServer) ToggleExclusion(ctx context.Context, req *connect.Request[ToggleExclusionRequest]) (*connect.Response[ToggleExclusionResponse], error) {
	excluded, err := s.sessions.ToggleExclusion(ctx, req.Msg.key(), req.Msg.PlayerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ToggleExclusionResponse{Excluded: excluded}), nil
}

func (s *ClubServer) GenerateLineup(ctx context.Context, req *connect.Request[GenerateLineupRequest]) (*connect.Response[LineupResponse], error) {
	result, err := s.sessions.GenerateLineup(ctx, req.Msg.key())
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&LineupResponse{Lineup: toLineup(result)}), nil
}

func (s *ClubServer) MovePlayer(ctx context.Context, req *connect.Request[MovePlayerRequest]) (*connect.Response[LineupResponse], error) {
	result, err := s.sessions.MovePlayer(ctx, req.Msg.key(), req.Msg.PlayerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&LineupResponse{Lineup: toLineup(result)}), nil
}

func (s *ClubServer) UpdateLineupPosition(ctx context.Context, req *connect.Request[UpdateLineupPositionRequest]) (*connect.Response[LineupResponse], error) {
	result, err := s.sessions.SetLineupPosition(ctx, req.Msg.key(), req.Msg.PlayerID, domain.Position(req.Msg.Position))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&LineupResponse{Lineup: toLineup(result)}), nil
}

func (s *ClubServer) ConfirmMatch(ctx context.Context, req *connect.Request[ConfirmMatchRequest]) (*connect.Response[ConfirmMatchResponse], error) {
	match, err := s.sessions.ConfirmMatch(ctx, req.Msg.key())
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ConfirmMatchResponse{Match: toMatch(*match)}), nil
}

func (s *ClubServer) ResetSession(ctx context.Context, req *connect.Request[ResetSessionRequest]) (*connect.Response[ResetSessionResponse], error) {
	if err := s.sessions.Reset(ctx, req.Msg.key()); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ResetSessionResponse{}), nil
}

func (s *ClubServer) UpdateSkill(ctx context.Context, req *connect.Request[UpdateSkillRequest]) (*connect.Response[PlayerResponse], error) {
	player, err := s.roster.UpdateSkill(ctx, req.Msg.PlayerID, req.Msg.SkillScore)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&PlayerResponse{Player: toPlayer(*player)}), nil
}

func (s *ClubServer) UpdatePosition(ctx context.Context, req *connect.Request[UpdatePositionRequest]) (*connect.Response[PlayerResponse], error) {
	player, err := s.roster.UpdatePosition(ctx, req.Msg.PlayerID, domain.Position(req.Msg.Position))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&PlayerResponse{Player: toPlayer(*player)}), nil
}

func (s *ClubServer) DailyRoster(ctx context.Context, req *connect.Request[DailyRosterRequest]) (*connect.Response[DailyRosterResponse], error) {
	roster, err := s.roster.DailyRoster(ctx, req.Msg.Date, req.Msg.Search)
	if err != nil {
		return nil, toConnectError(err)
	}

	counts := make(map[string]int, len(roster.PositionCounts))
	for pos, n := range roster.PositionCounts {
		counts[string(pos)] = n
	}
	return connect.NewResponse(&DailyRosterResponse{
		Date:           roster.Date,
		Players:        toPlayers(roster.Players),
		PositionCounts: counts,
	}), nil
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrUnknownVenue),
		errors.Is(err, domain.ErrInvalidPosition),
		errors.Is(err, domain.ErrInvalidAgeGroup),
		errors.Is(err, domain.ErrSkillOutOfRange),
		errors.Is(err, domain.ErrNotAttending),
		errors.Is(err, domain.ErrPlayerNotInLineup):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, domain.ErrInsufficientPlayers),
		errors.Is(err, domain.ErrNoProposal):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, domain.ErrPlayerNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
