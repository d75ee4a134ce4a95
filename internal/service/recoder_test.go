package service

import (
	"testing"

	"TennisGraph/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankAccounts(t *testing.T) {
	_, mentions := testIndex(true)
	// alice 5, RafaelNadal 4, stanwawrinka 3, bob 2, carol 1, rogerfederer 1 (carol seen first)
	assert.Equal(t, []model.ScreenName{"alice", "RafaelNadal", "stanwawrinka", "bob", "carol", "rogerfederer"}, RankAccounts(mentions))
}

func TestNewRecoderIsBijection(t *testing.T) {
	_, mentions := testIndex(true)
	for _, k := range []int{0, 1, 3, 6, 100} {
		nodes := NewRecoder(mentions, RecoderOptions{TopK: k})
		seen := make(map[int]bool)
		for name, i := range nodes.Index {
			require.False(t, seen[i], "index %d repeated", i)
			seen[i] = true
			assert.Equal(t, name, nodes.Order[i])
		}
		for i := 0; i < nodes.Len(); i++ {
			assert.True(t, seen[i], "index %d missing", i)
		}
	}
}

func TestNewRecoderTopK(t *testing.T) {
	_, mentions := testIndex(true)
	nodes := NewRecoder(mentions, RecoderOptions{TopK: 3})
	assert.Equal(t, []model.ScreenName{"alice", "RafaelNadal", "stanwawrinka"}, nodes.Order)
	assert.Equal(t, 3, nodes.Len())
}

func TestNewRecoderAllowlist(t *testing.T) {
	_, mentions := testIndex(true)
	nodes := NewRecoder(mentions, RecoderOptions{
		Allowlist: []model.ScreenName{"rogerfederer", "bob", "carol", "not_in_window"},
		TopK:      2,
	})
	assert.Equal(t, []model.ScreenName{"bob", "carol"}, nodes.Order)
}

func TestReindexEdgeDropsWholeEdge(t *testing.T) {
	idx, mentions := testIndex(true)
	nodes := NewRecoder(mentions, RecoderOptions{TopK: 3})

	from, to, ok := ReindexEdge(idx, nodes, 1, 10)
	require.True(t, ok)
	assert.Equal(t, 0, from)
	assert.Equal(t, 1, to)

	_, _, ok = ReindexEdge(idx, nodes, 1, 11) // rogerfederer not retained
	assert.False(t, ok)
	_, _, ok = ReindexEdge(idx, nodes, 2, 10) // bob not retained
	assert.False(t, ok)
	_, _, ok = ReindexEdge(idx, nodes, 99, 10) // unknown id
	assert.False(t, ok)
}
