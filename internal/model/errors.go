package model

import "errors"

var (
	// ErrUnknownTournament no configuration registered for the tournament id
	ErrUnknownTournament = errors.New("unknown tournament")
	// ErrInvalidDate date is not one of the collected dates
	ErrInvalidDate = errors.New("invalid date")
	// ErrNoGameDay date is collected but no match was played on it
	ErrNoGameDay = errors.New("no game on this day")
	// ErrUnknownMode unsupported edge semantic or visualization kind
	ErrUnknownMode = errors.New("unknown mode")
)
