package tournament

import (
	"time"

	"TennisGraph/internal/model"
)

// Window collection window of a tournament for one qualifier-inclusion mode
type Window struct {
	Start       int64
	End         int64 // Start + 86400 * len(Dates)
	Dates       []string
	NoGameDates []string
	Location    *time.Location
}

// Window selects the start timestamp and valid dates for the inclusion mode
func (t *Tournament) Window(includeQualifiers bool) Window {
	start, dates := t.MainDrawStart, t.MainDrawDates
	if includeQualifiers {
		start, dates = t.QualifierStart, t.QualifierDates
	}
	return Window{
		Start:       start,
		End:         start + secondsPerDay*int64(len(dates)),
		Dates:       append([]string(nil), dates...),
		NoGameDates: append([]string(nil), t.NoGameDates...),
		Location:    t.Location,
	}
}

// Contains inclusive on both ends
func (w Window) Contains(epoch int64) bool {
	return epoch >= w.Start && epoch <= w.End
}

// DateOf calendar date of epoch in the tournament timezone
func (w Window) DateOf(epoch int64) string {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(epoch, 0).In(loc).Format(time.DateOnly)
}

// IndexOf position of date in the valid-date list, -1 if absent
func (w Window) IndexOf(date string) int {
	for i, d := range w.Dates {
		if d == date {
			return i
		}
	}
	return -1
}

// IsNoGame reports whether date is flagged as a day without matches
func (w Window) IsNoGame(date string) bool {
	for _, d := range w.NoGameDates {
		if d == date {
			return true
		}
	}
	return false
}

// Partition drops events outside the window and stamps the local date on the rest.
// Input order is kept.
func (w Window) Partition(events []model.MentionEvent) []model.DatedMention {
	out := make([]model.DatedMention, 0, len(events))
	for _, e := range events {
		if !w.Contains(e.Epoch) {
			continue
		}
		out = append(out, model.DatedMention{MentionEvent: e, Date: w.DateOf(e.Epoch)})
	}
	return out
}
