package service

import (
	"fmt"
	"time"

	"club-roster/internal/config"
	"club-roster/internal/constants"
	"club-roster/internal/domain"
)

func validateDate(date string) error {
	if _, err := time.Parse(constants.DateLayout, date); err != nil {
		return fmt.Errorf("%q: %w", date, domain.ErrInvalidDate)
	}
	return nil
}

func validateSession(cfg *config.Config, key domain.SessionKey) error {
	if err := validateDate(key.Date); err != nil {
		return err
	}
	if !cfg.HasVenue(key.Venue) {
		return fmt.Errorf("%q: %w", key.Venue, domain.ErrUnknownVenue)
	}
	return nil
}
