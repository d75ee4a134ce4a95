package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TennisGraph/internal/config"
	"TennisGraph/internal/model"
)

func TestWindowReferenceValues(t *testing.T) {
	tests := []struct {
		id                string
		includeQualifiers bool
		start             int64
		end               int64
		numDates          int
		first, last       string
	}{
		{"rg17", true, 1495576800, 1497218400, 19, "2017-05-24", "2017-06-11"},
		{"rg17", false, 1495922400, 1495922400 + 15*86400, 15, "2017-05-28", "2017-06-11"},
		{"uo17", true, 1503374400, 1505102400, 20, "2017-08-22", "2017-09-10"},
		{"uo17", false, 1503892800, 1503892800 + 14*86400, 14, "2017-08-28", "2017-09-10"},
	}
	for _, tt := range tests {
		tour, err := Get(tt.id)
		require.NoError(t, err)
		w := tour.Window(tt.includeQualifiers)
		assert.Equal(t, tt.start, w.Start, tt.id)
		assert.Equal(t, tt.end, w.End, tt.id)
		require.Len(t, w.Dates, tt.numDates, tt.id)
		assert.Equal(t, tt.first, w.Dates[0], tt.id)
		assert.Equal(t, tt.last, w.Dates[len(w.Dates)-1], tt.id)
	}
}

func TestWindowStartIsLocalMidnight(t *testing.T) {
	for _, id := range []string{"rg17", "uo17"} {
		tour, err := Get(id)
		require.NoError(t, err)
		for _, q := range []bool{true, false} {
			w := tour.Window(q)
			assert.Equal(t, w.Dates[0], w.DateOf(w.Start))
			assert.Equal(t, w.Dates[0], w.DateOf(w.Start+86399))
		}
	}
}

func TestWindowContainsIsInclusive(t *testing.T) {
	tour, err := Get("rg17")
	require.NoError(t, err)
	w := tour.Window(true)

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start-1))
	assert.False(t, w.Contains(w.End+1))
}

func TestWindowDateOfUsesTournamentZone(t *testing.T) {
	rg, err := Get("rg17")
	require.NoError(t, err)
	uo, err := Get("uo17")
	require.NoError(t, err)

	// 2017-06-01T22:30:00Z is already June 2nd in Paris and still June 1st in New York
	const epoch = 1496356200
	assert.Equal(t, "2017-06-02", rg.Window(true).DateOf(epoch))
	assert.Equal(t, "2017-06-01", uo.Window(true).DateOf(epoch))
	assert.Equal(t, "2017-06-01", Window{}.DateOf(epoch))
}

func TestWindowNoGameDates(t *testing.T) {
	uo, err := Get("uo17")
	require.NoError(t, err)
	w := uo.Window(true)

	assert.True(t, w.IsNoGame("2017-08-26"))
	assert.True(t, w.IsNoGame("2017-08-27"))
	assert.False(t, w.IsNoGame("2017-08-28"))
	assert.Equal(t, 0, w.IndexOf("2017-08-22"))
	assert.Equal(t, -1, w.IndexOf("2017-08-21"))

	// main draw still reports the qualifier-week no-game dates
	assert.Equal(t, []string{"2017-08-26", "2017-08-27"}, uo.Window(false).NoGameDates)
}

func TestWindowCopiesDates(t *testing.T) {
	rg, err := Get("rg17")
	require.NoError(t, err)
	w := rg.Window(true)
	w.Dates[0] = "mutated"
	assert.Equal(t, "2017-05-24", rg.QualifierDates[0])
}

func TestPartitionKeepsOrderAndDropsOutOfWindow(t *testing.T) {
	rg, err := Get("rg17")
	require.NoError(t, err)
	w := rg.Window(true)

	events := []model.MentionEvent{
		{Epoch: w.Start - 1, Source: 1, Target: 2},
		{Epoch: w.End, Source: 3, Target: 4},
		{Epoch: w.Start, Source: 5, Target: 6},
		{Epoch: w.End + 1, Source: 7, Target: 8},
	}
	got := w.Partition(events)
	require.Len(t, got, 2)
	assert.Equal(t, model.AccountID(3), got[0].Source)
	assert.Equal(t, "2017-06-12", got[0].Date)
	assert.Equal(t, model.AccountID(5), got[1].Source)
	assert.Equal(t, "2017-05-24", got[1].Date)
}

func TestReconcile(t *testing.T) {
	rg, err := Get("rg17")
	require.NoError(t, err)
	uo, err := Get("uo17")
	require.NoError(t, err)

	assert.Equal(t, model.PlayerName("Carla Suárez Navarro"), uo.Reconcile("Carla Suarez Navarro"))
	assert.Equal(t, model.PlayerName("Carla Suarez Navarro"), rg.Reconcile("Carla Suárez Navarro"))
	assert.Equal(t, model.PlayerName("Rafael Nadal"), rg.Reconcile("Rafael Nadal"))

	cov := uo.Coverage(model.AccountMap{{Player: "Coco Vandeweghe"}, {Player: "Rafael Nadal"}})
	assert.Contains(t, cov, model.PlayerName("CoCo Vandeweghe"))
	assert.Contains(t, cov, model.PlayerName("Rafael Nadal"))
	assert.NotContains(t, cov, model.PlayerName("Coco Vandeweghe"))
}

func TestGetUnknownTournament(t *testing.T) {
	_, err := Get("wimbledon")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownTournament)
	assert.Contains(t, err.Error(), "rg17")
	assert.Contains(t, err.Error(), "uo17")
}

func TestDateRange(t *testing.T) {
	dates, err := DateRange("2017-05-30", "2017-06-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2017-05-30", "2017-05-31", "2017-06-01", "2017-06-02"}, dates)

	_, err = DateRange("2017-06-02", "2017-05-30")
	assert.Error(t, err)
	_, err = DateRange("30/05/2017", "2017-06-02")
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	tour, err := FromConfig("ao18", config.TournamentConfig{
		Timezone:          "Australia/Melbourne",
		QualifierStart:    1515502800,
		MainDrawStart:     1515934800,
		QualifierDates:    config.DateSpan{From: "2018-01-10", To: "2018-01-28"},
		MainDrawDates:     config.DateSpan{From: "2018-01-15", To: "2018-01-28"},
		NoGameDates:       []string{"2018-01-14"},
		ScheduleSeparator: ";",
		Aliases:           []config.AliasEntry{{From: "Alex De Minaur", To: "Alex de Minaur"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ao18", tour.ID)
	assert.Equal(t, ';', tour.ScheduleSeparator)
	assert.Len(t, tour.QualifierDates, 19)
	assert.Len(t, tour.MainDrawDates, 14)
	assert.Equal(t, model.PlayerName("Alex de Minaur"), tour.Reconcile("Alex De Minaur"))
	assert.Equal(t, "2018-01-10", tour.Window(true).DateOf(1515502800))

	_, err = FromConfig("bad", config.TournamentConfig{Timezone: "Mars/Olympus"})
	assert.Error(t, err)

	_, err = FromConfig("bad", config.TournamentConfig{
		Timezone:          "UTC",
		QualifierDates:    config.DateSpan{From: "2018-01-10", To: "2018-01-12"},
		MainDrawDates:     config.DateSpan{From: "2018-01-10", To: "2018-01-12"},
		ScheduleSeparator: "||",
	})
	assert.Error(t, err)
}

func TestRegisterConfigured(t *testing.T) {
	err := RegisterConfigured(map[string]config.TournamentConfig{
		"test-cfg": {
			Timezone:       "UTC",
			QualifierDates: config.DateSpan{From: "2020-01-01", To: "2020-01-03"},
			MainDrawDates:  config.DateSpan{From: "2020-01-02", To: "2020-01-03"},
		},
	})
	require.NoError(t, err)
	tour, err := Get("test-cfg")
	require.NoError(t, err)
	assert.Equal(t, '|', tour.ScheduleSeparator)
	assert.Contains(t, List(), "test-cfg")
}
