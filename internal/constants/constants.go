package constants

import "time"

const (
	SquadCapacity       = 22
	GoalkeeperHintCount = 2
	MinLineupPlayers    = 2
)

const (
	MinSkillScore     = 0.0
	MaxSkillScore     = 5.0
	DefaultSkillScore = 2.5
	DefaultAgeGroup   = "30s"
	DefaultPosition   = "MF"
	DateLayout        = "2006-01-02"
)

const (
	WebhookTimeout  = 10 * time.Second
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)
