// Package tournament holds the static per-tournament tables: timezone, collection window,
// valid dates, no-game dates and player name aliases.
package tournament

import (
	"fmt"
	"sort"
	"sync"
	"time"
	_ "time/tzdata"

	"TennisGraph/internal/model"
)

const secondsPerDay = 86400

// Tournament static configuration of one collected tournament
type Tournament struct {
	ID                string
	Location          *time.Location
	QualifierStart    int64    // first second of the first qualifier date, local time
	MainDrawStart     int64    // first second of the first main draw date, local time
	QualifierDates    []string // valid dates when qualifiers are included
	MainDrawDates     []string // valid dates when qualifiers are excluded
	NoGameDates       []string
	Aliases           map[model.PlayerName]model.PlayerName // account map spelling → schedule spelling
	ScheduleSeparator rune
}

// Ref files a DataSource must read for this tournament
func (t *Tournament) Ref() model.CorpusRef {
	return model.CorpusRef{ID: t.ID, ScheduleSeparator: t.ScheduleSeparator}
}

var (
	mu       sync.RWMutex
	registry = make(map[string]*Tournament)
)

// Register adds or replaces a tournament configuration
func Register(t *Tournament) {
	if t == nil || t.ID == "" {
		panic("tournament: cannot register tournament without id")
	}
	mu.Lock()
	defer mu.Unlock()
	registry[t.ID] = t
}

// Get returns the configuration registered under id
func Get(id string) (*Tournament, error) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", model.ErrUnknownTournament, id, listLocked())
	}
	return t, nil
}

// List registered tournament ids, sorted
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	return listLocked()
}

func listLocked() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DateRange inclusive list of YYYY-MM-DD dates between from and to
func DateRange(from, to string) ([]string, error) {
	start, err := time.Parse(time.DateOnly, from)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", from, err)
	}
	end, err := time.Parse(time.DateOnly, to)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", to, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("date range %s..%s is empty", from, to)
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(time.DateOnly))
	}
	return dates, nil
}

func mustDateRange(from, to string) []string {
	dates, err := DateRange(from, to)
	if err != nil {
		panic(err)
	}
	return dates
}

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// uo17 schedule spellings; rg17 uses the reverse direction
var usOpenAliases = map[model.PlayerName]model.PlayerName{
	"Carla Suarez Navarro":  "Carla Suárez Navarro",
	"Coco Vandeweghe":       "CoCo Vandeweghe",
	"Juan Martin Del Potro": "Juan Martin del Potro",
	"Diede De Groot":        "Diede de Groot",
	"Mariana Duque-Marino":  "Mariana Duque-Mariño",
	"Alex De Minaur":        "Alex de Minaur",
	"Tracy Austin-Holt":     "Tracy Austin",
}

func reverseAliases(in map[model.PlayerName]model.PlayerName) map[model.PlayerName]model.PlayerName {
	out := make(map[model.PlayerName]model.PlayerName, len(in))
	for k, v := range in {
		out[v] = k
	}
	return out
}

func init() {
	// Roland Garros 2017; 2017-05-22 and 2017-05-23 are missing from the collection
	Register(&Tournament{
		ID:                "rg17",
		Location:          mustLocation("Europe/Paris"),
		QualifierStart:    1495576800,
		MainDrawStart:     1495922400,
		QualifierDates:    mustDateRange("2017-05-24", "2017-06-11"),
		MainDrawDates:     mustDateRange("2017-05-28", "2017-06-11"),
		NoGameDates:       []string{"2017-05-27"},
		Aliases:           reverseAliases(usOpenAliases),
		ScheduleSeparator: '|',
	})
	// US Open 2017
	Register(&Tournament{
		ID:                "uo17",
		Location:          mustLocation("America/New_York"),
		QualifierStart:    1503374400,
		MainDrawStart:     1503892800,
		QualifierDates:    mustDateRange("2017-08-22", "2017-09-10"),
		MainDrawDates:     mustDateRange("2017-08-28", "2017-09-10"),
		NoGameDates:       []string{"2017-08-26", "2017-08-27"},
		Aliases:           usOpenAliases,
		ScheduleSeparator: ';',
	})
}
