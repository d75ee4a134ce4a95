package service

import (
	"testing"

	"TennisGraph/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLabeler() *Labeler {
	w := testTournament.Window(true)
	idx, _ := testIndex(true)
	_, records := ExtractDailyPlayers(testSchedule(), testAccounts(), testTournament, nil)
	return NewLabeler(w.Dates, w.NoGameDates, FoundByDate(records), idx)
}

func TestLabelsTernary(t *testing.T) {
	labels := testLabeler().Labels(model.TernaryScale)

	// ids: alice 1, bob 2, carol 3, Nadal 10, Federer 11, Wawrinka 12
	expected := map[string]map[model.AccountID]model.Label{
		"2020-01-01": {1: 0, 2: 0, 3: 0, 10: 2, 11: 2, 12: 2},
		"2020-01-02": {1: 0, 2: 0, 3: 0, 10: 1, 11: 1, 12: 1},
		"2020-01-03": {1: 0, 2: 0, 3: 0, 10: 2, 11: 1, 12: 2},
		"2020-01-04": {1: 0, 2: 0, 3: 0, 10: 1, 11: 2, 12: 1},
		"2020-01-05": {1: 0, 2: 0, 3: 0, 10: 2, 11: 2, 12: 0},
	}
	require.Len(t, labels, len(expected))
	for date, want := range expected {
		assert.Equal(t, want, labels[date], date)
	}
}

func TestLabelsBinaryCountsFoundAccounts(t *testing.T) {
	labels := testLabeler().Labels(model.BinaryScale)

	positives := map[string]int{}
	values := map[model.Label]struct{}{}
	for date, byID := range labels {
		for _, l := range byID {
			values[l] = struct{}{}
			if l == 1 {
				positives[date]++
			}
		}
	}
	assert.Equal(t, map[model.Label]struct{}{0: {}, 1: {}}, values)
	assert.Equal(t, map[string]int{"2020-01-01": 3, "2020-01-03": 2, "2020-01-04": 1, "2020-01-05": 2}, positives)
}

func TestLabelsTernaryValueSet(t *testing.T) {
	values := map[model.Label]struct{}{}
	for _, byID := range testLabeler().Labels(model.TernaryScale) {
		for _, l := range byID {
			values[l] = struct{}{}
		}
	}
	assert.Equal(t, map[model.Label]struct{}{0: {}, 1: {}, 2: {}}, values)
}

func TestLabelsDeterministic(t *testing.T) {
	l := testLabeler()
	assert.Equal(t, l.Labels(model.TernaryScale), l.Labels(model.TernaryScale))
	assert.Equal(t, testLabeler().Labels(model.BinaryScale), testLabeler().Labels(model.BinaryScale))
}

func TestLabelAdjacencyBoundaries(t *testing.T) {
	idx, _ := testIndex(true)
	dates := []string{"d0", "d1", "d2"}
	found := map[string]map[model.PlayerName]struct{}{
		"d2": {"Rafael Nadal": {}},
	}
	l := NewLabeler(dates, nil, found, idx)

	// found only on the last date: no next beyond it, next on the date before
	assert.Equal(t, model.Label(2), l.Label(model.TernaryScale, 2, "RafaelNadal"))
	assert.Equal(t, model.Label(1), l.Label(model.TernaryScale, 1, "RafaelNadal"))
	assert.Equal(t, model.Label(0), l.Label(model.TernaryScale, 0, "RafaelNadal"))

	// found only on the first date: previous on the following date only
	l = NewLabeler(dates, nil, map[string]map[model.PlayerName]struct{}{"d0": {"Rafael Nadal": {}}}, idx)
	assert.Equal(t, model.Label(1), l.Label(model.TernaryScale, 1, "RafaelNadal"))
	assert.Equal(t, model.Label(0), l.Label(model.TernaryScale, 2, "RafaelNadal"))
}

func TestLabelNoGameDateNeverCurrent(t *testing.T) {
	idx, _ := testIndex(true)
	dates := []string{"d0", "d1", "d2"}
	found := map[string]map[model.PlayerName]struct{}{
		"d1": {"Rafael Nadal": {}},
	}
	l := NewLabeler(dates, []string{"d1"}, found, idx)
	for i := range dates {
		assert.Equal(t, model.Label(0), l.Label(model.TernaryScale, i, "RafaelNadal"))
	}
	// the caller's map is left untouched
	assert.Contains(t, found["d1"], model.PlayerName("Rafael Nadal"))
}

func TestLabelUnknownAccount(t *testing.T) {
	assert.Equal(t, model.Label(0), testLabeler().Label(model.TernaryScale, 0, "nobody"))
}
