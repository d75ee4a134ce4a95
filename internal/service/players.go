package service

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"TennisGraph/internal/model"
	"TennisGraph/internal/tournament"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gonum.org/v1/gonum/stat"
)

// DailyPlayers date → player → representative match
type DailyPlayers map[string]map[model.PlayerName]model.MatchID

// ExtractDailyPlayers groups the schedule by date in one forward pass; the last match of a
// player on a date is its representative match. headerFilter, when set, keeps only matches
// whose header it matches. Records are sorted by date, players inside a record by name.
func ExtractDailyPlayers(schedule []model.ScheduleEntry, accounts model.AccountMap, t *tournament.Tournament, headerFilter *regexp.Regexp) (DailyPlayers, []model.DailyPlayerRecord) {
	daily := make(DailyPlayers)
	for _, e := range schedule {
		if headerFilter != nil && !headerFilter.MatchString(e.MatchHeader) {
			continue
		}
		day, ok := daily[e.Date]
		if !ok {
			day = make(map[model.PlayerName]model.MatchID)
			daily[e.Date] = day
		}
		id := e.MatchID()
		for _, p := range []model.PlayerName{e.Winner, e.Loser} {
			if p == "" {
				continue
			}
			day[p] = id
		}
	}

	covered := t.Coverage(accounts)
	records := make([]model.DailyPlayerRecord, 0, len(daily))
	for date, day := range daily {
		rec := model.DailyPlayerRecord{
			Date:           date,
			Players:        make([]model.PlayerName, 0, len(day)),
			FoundPlayers:   []model.PlayerName{},
			MissingPlayers: []model.PlayerName{},
		}
		for p := range day {
			rec.Players = append(rec.Players, p)
		}
		sortPlayers(rec.Players)
		for _, p := range rec.Players {
			if _, ok := covered[p]; ok {
				rec.FoundPlayers = append(rec.FoundPlayers, p)
			} else {
				rec.MissingPlayers = append(rec.MissingPlayers, p)
			}
		}
		rec.NumPlayers = len(rec.Players)
		rec.NumFoundPlayers = len(rec.FoundPlayers)
		rec.NumMissingPlayers = len(rec.MissingPlayers)
		if rec.NumPlayers > 0 {
			rec.FracMissingPlayers = float64(rec.NumMissingPlayers) / float64(rec.NumPlayers)
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return daily, records
}

// FoundByDate date → found players, the labeler's view of the records
func FoundByDate(records []model.DailyPlayerRecord) map[string]map[model.PlayerName]struct{} {
	out := make(map[string]map[model.PlayerName]struct{}, len(records))
	for _, rec := range records {
		set := make(map[model.PlayerName]struct{}, len(rec.FoundPlayers))
		for _, p := range rec.FoundPlayers {
			set[p] = struct{}{}
		}
		out[rec.Date] = set
	}
	return out
}

func sortPlayers(ps []model.PlayerName) {
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
}

// PlayerStats account coverage over a set of daily records
type PlayerStats struct {
	Days            int
	MeanPlayers     float64
	MeanFound       float64
	MeanMissingFrac float64
	StdMissingFrac  float64
	MaxMissingDate  string // date with the highest missing fraction
}

// ComputePlayerStats summary statistics of DailyPlayerRecord diagnostics
func ComputePlayerStats(records []model.DailyPlayerRecord) PlayerStats {
	st := PlayerStats{Days: len(records)}
	if len(records) == 0 {
		return st
	}
	players := make([]float64, len(records))
	found := make([]float64, len(records))
	frac := make([]float64, len(records))
	worst := -1.0
	for i, rec := range records {
		players[i] = float64(rec.NumPlayers)
		found[i] = float64(rec.NumFoundPlayers)
		frac[i] = rec.FracMissingPlayers
		if rec.FracMissingPlayers > worst {
			worst = rec.FracMissingPlayers
			st.MaxMissingDate = rec.Date
		}
	}
	st.MeanPlayers = stat.Mean(players, nil)
	st.MeanFound = stat.Mean(found, nil)
	st.MeanMissingFrac, st.StdMissingFrac = stat.MeanStdDev(frac, nil)
	if len(records) == 1 {
		st.StdMissingFrac = 0
	}
	return st
}

// AliasSuggestion closest account map spelling for a player missing from it
type AliasSuggestion struct {
	Missing   model.PlayerName
	Candidate model.PlayerName
	Distance  int // edit distance after folding
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldName lower case without diacritics, "Suárez" and "suarez" fold to the same key
func foldName(p model.PlayerName) string {
	s, _, err := transform.String(foldTransformer, string(p))
	if err != nil {
		s = string(p)
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// SuggestAliases pairs every missing player with the nearest account map player within
// maxDistance edits of the folded names. Suggestions are diagnostics and never applied.
func SuggestAliases(missing []model.PlayerName, accounts model.AccountMap, maxDistance int) []AliasSuggestion {
	candidates := accounts.Players()
	folded := make([]string, len(candidates))
	for i, c := range candidates {
		folded[i] = foldName(c)
	}

	var out []AliasSuggestion
	seen := make(map[model.PlayerName]struct{}, len(missing))
	for _, m := range missing {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}

		key := foldName(m)
		best, bestDist := -1, maxDistance+1
		for i, c := range folded {
			if d := levenshtein.ComputeDistance(key, c); d < bestDist {
				best, bestDist = i, d
			}
		}
		if best >= 0 {
			out = append(out, AliasSuggestion{Missing: m, Candidate: candidates[best], Distance: bestDist})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Missing < out[j].Missing
	})
	return out
}

// MissingPlayers distinct missing players over records, sorted
func MissingPlayers(records []model.DailyPlayerRecord) []model.PlayerName {
	set := make(map[model.PlayerName]struct{})
	for _, rec := range records {
		for _, p := range rec.MissingPlayers {
			set[p] = struct{}{}
		}
	}
	out := make([]model.PlayerName, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sortPlayers(out)
	return out
}
