package service

import (
	"regexp"
	"testing"

	"TennisGraph/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDailyPlayers(t *testing.T) {
	daily, records := ExtractDailyPlayers(testSchedule(), testAccounts(), testTournament, nil)

	require.Len(t, records, 5)
	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.Date
	}
	assert.Equal(t, []string{"2019-12-31", "2020-01-01", "2020-01-03", "2020-01-04", "2020-01-05"}, dates)

	jan1 := records[1]
	assert.Equal(t, []model.PlayerName{"Rafael Nadal", "Roger Federer", "Stanislas Wawrinka", "Zed Missing"}, jan1.Players)
	assert.Equal(t, []model.PlayerName{"Rafael Nadal", "Roger Federer", "Stanislas Wawrinka"}, jan1.FoundPlayers)
	assert.Equal(t, []model.PlayerName{"Zed Missing"}, jan1.MissingPlayers)
	assert.Equal(t, 4, jan1.NumPlayers)
	assert.Equal(t, 3, jan1.NumFoundPlayers)
	assert.Equal(t, 1, jan1.NumMissingPlayers)
	assert.InDelta(t, 0.25, jan1.FracMissingPlayers, 1e-12)

	// last match of the day is the representative one
	assert.Equal(t, model.MatchID("Men's Singles_Court 2_3"), daily["2020-01-01"]["Rafael Nadal"])
	assert.Equal(t, model.MatchID("Men's Singles_Court 1_2"), daily["2020-01-01"]["Zed Missing"])

	jan5 := records[4]
	assert.Empty(t, jan5.MissingPlayers)
	assert.Zero(t, jan5.FracMissingPlayers)
}

func TestExtractDailyPlayersHeaderFilter(t *testing.T) {
	daily, records := ExtractDailyPlayers(testSchedule(), testAccounts(), testTournament, regexp.MustCompile(`^Men's`))
	require.Len(t, records, 4)
	_, ok := daily["2020-01-04"]
	assert.False(t, ok)
}

func TestExtractDailyPlayersSkipsBlankNames(t *testing.T) {
	schedule := []model.ScheduleEntry{{Date: "2020-01-01", Winner: "Rafael Nadal", Loser: "", MatchHeader: menSingles, Court: "Court 1", Order: 1}}
	_, records := ExtractDailyPlayers(schedule, testAccounts(), testTournament, nil)
	require.Len(t, records, 1)
	assert.Equal(t, []model.PlayerName{"Rafael Nadal"}, records[0].Players)
}

func TestFoundByDate(t *testing.T) {
	_, records := ExtractDailyPlayers(testSchedule(), testAccounts(), testTournament, nil)
	found := FoundByDate(records)
	assert.Contains(t, found["2020-01-04"], model.PlayerName("Roger Federer"))
	assert.NotContains(t, found["2020-01-04"], model.PlayerName("Zed Missing"))
	_, ok := found["2020-01-02"]
	assert.False(t, ok)
}

func TestComputePlayerStats(t *testing.T) {
	records := []model.DailyPlayerRecord{
		{Date: "2020-01-01", NumPlayers: 4, NumFoundPlayers: 3, FracMissingPlayers: 0.25},
		{Date: "2020-01-03", NumPlayers: 2, NumFoundPlayers: 2, FracMissingPlayers: 0},
		{Date: "2020-01-04", NumPlayers: 2, NumFoundPlayers: 1, FracMissingPlayers: 0.5},
	}
	st := ComputePlayerStats(records)
	assert.Equal(t, 3, st.Days)
	assert.InDelta(t, 8.0/3.0, st.MeanPlayers, 1e-12)
	assert.InDelta(t, 2.0, st.MeanFound, 1e-12)
	assert.InDelta(t, 0.25, st.MeanMissingFrac, 1e-12)
	assert.InDelta(t, 0.25, st.StdMissingFrac, 1e-12)
	assert.Equal(t, "2020-01-04", st.MaxMissingDate)

	single := ComputePlayerStats(records[:1])
	assert.Zero(t, single.StdMissingFrac)
	assert.Equal(t, PlayerStats{}, ComputePlayerStats(nil))
}

func TestSuggestAliases(t *testing.T) {
	accounts := model.AccountMap{
		{Player: "Carla Suarez Navarro"},
		{Player: "Juan Martin Del Potro"},
		{Player: "Rafael Nadal"},
	}
	missing := []model.PlayerName{"Juan Martin del Potro", "Carla Suárez Navarro", "Totally Unknown", "Carla Suárez Navarro"}
	got := SuggestAliases(missing, accounts, 2)

	require.Len(t, got, 2)
	assert.Equal(t, AliasSuggestion{Missing: "Carla Suárez Navarro", Candidate: "Carla Suarez Navarro", Distance: 0}, got[0])
	assert.Equal(t, AliasSuggestion{Missing: "Juan Martin del Potro", Candidate: "Juan Martin Del Potro", Distance: 0}, got[1])
}

func TestMissingPlayers(t *testing.T) {
	_, records := ExtractDailyPlayers(testSchedule(), testAccounts(), testTournament, nil)
	assert.Equal(t, []model.PlayerName{"Zed Missing"}, MissingPlayers(records))
}
