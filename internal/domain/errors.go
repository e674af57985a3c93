package domain

import "errors"

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrAlreadyRegistered   = errors.New("player already registered for this session")
	ErrEmptyName           = errors.New("name is required")
	ErrInvalidDate         = errors.New("date must be formatted as YYYY-MM-DD")
	ErrUnknownVenue        = errors.New("unknown venue")
	ErrInvalidPosition     = errors.New("invalid position")
	ErrInvalidAgeGroup     = errors.New("invalid age group")
	ErrSkillOutOfRange     = errors.New("skill score out of range")
	ErrNotAttending        = errors.New("player is not attending this session")
	ErrInsufficientPlayers = errors.New("insufficient players")
	ErrNoProposal          = errors.New("no lineup proposal for this session")
	ErrPlayerNotInLineup   = errors.New("player is not in the lineup")
)
