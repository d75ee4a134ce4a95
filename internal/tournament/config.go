package tournament

import (
	"fmt"
	"time"
	"unicode/utf8"

	"TennisGraph/internal/config"
	"TennisGraph/internal/model"
)

// FromConfig builds a tournament from its yaml tables
func FromConfig(id string, c config.TournamentConfig) (*Tournament, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("tournament %s: load timezone %q: %w", id, c.Timezone, err)
	}
	qualifierDates, err := DateRange(c.QualifierDates.From, c.QualifierDates.To)
	if err != nil {
		return nil, fmt.Errorf("tournament %s: qualifier dates: %w", id, err)
	}
	mainDrawDates, err := DateRange(c.MainDrawDates.From, c.MainDrawDates.To)
	if err != nil {
		return nil, fmt.Errorf("tournament %s: main draw dates: %w", id, err)
	}
	for _, d := range c.NoGameDates {
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			return nil, fmt.Errorf("tournament %s: no game date %q: %w", id, d, err)
		}
	}

	sep := '|'
	if c.ScheduleSeparator != "" {
		r, size := utf8.DecodeRuneInString(c.ScheduleSeparator)
		if size != len(c.ScheduleSeparator) {
			return nil, fmt.Errorf("tournament %s: schedule separator %q must be a single character", id, c.ScheduleSeparator)
		}
		sep = r
	}

	aliases := make(map[model.PlayerName]model.PlayerName, len(c.Aliases))
	for _, a := range c.Aliases {
		aliases[model.PlayerName(a.From)] = model.PlayerName(a.To)
	}

	return &Tournament{
		ID:                id,
		Location:          loc,
		QualifierStart:    c.QualifierStart,
		MainDrawStart:     c.MainDrawStart,
		QualifierDates:    qualifierDates,
		MainDrawDates:     mainDrawDates,
		NoGameDates:       append([]string(nil), c.NoGameDates...),
		Aliases:           aliases,
		ScheduleSeparator: sep,
	}, nil
}

// RegisterConfigured registers every tournament of the config file
func RegisterConfigured(cfgs map[string]config.TournamentConfig) error {
	for id, c := range cfgs {
		t, err := FromConfig(id, c)
		if err != nil {
			return err
		}
		Register(t)
	}
	return nil
}
