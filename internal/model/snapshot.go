package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EdgeMode edge semantic of a snapshot
type EdgeMode string

const (
	EdgeTemporal   EdgeMode = "temporal"   // one row per mention, unit weight
	EdgeWeighted   EdgeMode = "weighted"   // repeated pairs counted
	EdgeUnweighted EdgeMode = "unweighted" // repeated pairs collapsed, weight 1
)

// EdgeModes accepted edge semantics
var EdgeModes = []EdgeMode{EdgeTemporal, EdgeWeighted, EdgeUnweighted}

// ParseEdgeMode fails with ErrUnknownMode naming the accepted set
func ParseEdgeMode(s string) (EdgeMode, error) {
	m := EdgeMode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range EdgeModes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: edge mode %q, choose from %v", ErrUnknownMode, s, EdgeModes)
}

// WeightedEdge aggregated (src, trg, date) pair
type WeightedEdge struct {
	Source AccountID
	Target AccountID
	Date   string
	Weight int
}

// Snapshot graph of a single date over dense node ids
type Snapshot struct {
	Index    int         `json:"index"`
	Date     string      `json:"date"`
	Edges    [][2]int    `json:"edges"`
	Weights  []float64   `json:"weights"`
	Labels   []Label     `json:"y"`
	Features [][]float64 `json:"X,omitempty"`
}

// NodeTable dense re-indexing of screen names, Order[i] has index i
type NodeTable struct {
	Order []ScreenName
	Index map[ScreenName]int
}

// NewNodeTable builds the table from an ordered list
func NewNodeTable(order []ScreenName) *NodeTable {
	t := &NodeTable{
		Order: order,
		Index: make(map[ScreenName]int, len(order)),
	}
	for i, name := range order {
		t.Index[name] = i
	}
	return t
}

// Len number of retained nodes
func (t *NodeTable) Len() int { return len(t.Order) }

// Dataset all selected snapshots plus global metadata
type Dataset struct {
	TimePeriods int
	NodeIDs     *NodeTable
	Snapshots   []Snapshot
}

// MarshalJSON flat layout: "time_periods", "node_ids" and one key per snapshot index
func (d *Dataset) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Snapshots)+2)
	out["time_periods"] = d.TimePeriods
	nodeIDs := make(map[ScreenName]int)
	if d.NodeIDs != nil {
		nodeIDs = d.NodeIDs.Index
	}
	out["node_ids"] = nodeIDs
	for _, s := range d.Snapshots {
		out[strconv.Itoa(s.Index)] = s
	}
	return json.Marshal(out)
}
