package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeaturesTriangleWithTail(t *testing.T) {
	// 0-1-2 triangle, 2-3 tail, 4 isolated
	edges := [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 3}}
	feats := NodeFeatures(5, edges)
	require.Len(t, feats, 5)

	assert.Equal(t, []float64{2, 1}, feats[0])
	assert.Equal(t, []float64{2, 1}, feats[1])
	assert.Equal(t, 3.0, feats[2][0])
	assert.InDelta(t, 1.0/3.0, feats[2][1], 1e-12)
	assert.Equal(t, []float64{1, 0}, feats[3])
	assert.Equal(t, []float64{0, 0}, feats[4])
}

func TestFeaturesCollapseRepeatedAndReversedPairs(t *testing.T) {
	feats := NodeFeatures(2, [][2]int{{0, 1}, {1, 0}, {0, 1}})
	assert.Equal(t, []float64{1, 0}, feats[0])
	assert.Equal(t, []float64{1, 0}, feats[1])
}

func TestFeaturesSelfLoop(t *testing.T) {
	s := NewSnapshot(3, [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 2}})
	assert.Equal(t, 4, s.Degree(0))
	assert.Equal(t, 1.0, s.Clustering(0))

	lonely := NewSnapshot(1, [][2]int{{0, 0}})
	assert.Equal(t, 2, lonely.Degree(0))
	assert.Equal(t, 0.0, lonely.Clustering(0))
}

func TestFeaturesEmptyGraph(t *testing.T) {
	assert.Empty(t, NodeFeatures(0, nil))
	assert.Equal(t, [][]float64{{0, 0}, {0, 0}}, NodeFeatures(2, nil))
}
