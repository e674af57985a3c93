package fx

import (
	"database/sql"

	"club-roster/internal/api"
	"club-roster/internal/config"
	"club-roster/internal/database"
	"club-roster/internal/db"
	"club-roster/internal/logger"
	"club-roster/internal/repository"
	"club-roster/internal/server"
	"club-roster/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewAttendanceRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewExclusionRepository),
	// webhook
	fx.Provide(fx.Annotate(api.NewWebhookClient, fx.As(new(service.MatchNotifier)))),
	// svc
	fx.Provide(service.NewRosterService),
	fx.Provide(service.NewSessionService),
	// server
	fx.Provide(server.NewClubServer),
)
