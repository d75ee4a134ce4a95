package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"TennisGraph/internal/graph"
	"TennisGraph/internal/model"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SnapshotOptions what BuildDataset assembles
type SnapshotOptions struct {
	Mode         model.EdgeMode
	Binary       bool               // label scale of y
	TopK         int                // node cap, 0 keeps every account
	Allowlist    []model.ScreenName // node allowlist, empty allows every account
	MaxSnapshots int                // first M dates only, 0 keeps all
	Features     bool               // attach degree and clustering as X
	Workers      int                // parallel dates, 0 uses GOMAXPROCS
}

// WeightedEdges counts mentions per (source, target, date), sorted by source, target, date
func WeightedEdges(mentions []model.DatedMention) []model.WeightedEdge {
	type key struct {
		src, trg model.AccountID
		date     string
	}
	counts := make(map[key]int)
	for _, m := range mentions {
		counts[key{m.Source, m.Target, m.Date}]++
	}
	out := make([]model.WeightedEdge, 0, len(counts))
	for k, c := range counts {
		out = append(out, model.WeightedEdge{Source: k.src, Target: k.trg, Date: k.date, Weight: c})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Date < b.Date
	})
	return out
}

// GroupWeightedEdges date → weighted edges, order kept
func GroupWeightedEdges(edges []model.WeightedEdge) map[string][]model.WeightedEdge {
	out := make(map[string][]model.WeightedEdge)
	for _, e := range edges {
		out[e.Date] = append(out[e.Date], e)
	}
	return out
}

// GroupMentions date → mentions in chronological order; equal timestamps keep input order
func GroupMentions(mentions []model.DatedMention) map[string][]model.DatedMention {
	out := make(map[string][]model.DatedMention)
	for _, m := range mentions {
		out[m.Date] = append(out[m.Date], m)
	}
	for _, ms := range out {
		sort.SliceStable(ms, func(i, j int) bool { return ms[i].Epoch < ms[j].Epoch })
	}
	return out
}

// SnapshotBuilder turns the partitioned corpus into per-date snapshots
type SnapshotBuilder struct {
	accounts *AccountIndex
	mentions []model.DatedMention
	byDate   map[string][]model.DatedMention
	weighted map[string][]model.WeightedEdge
	logger   *logrus.Logger
}

func NewSnapshotBuilder(mentions []model.DatedMention, accounts *AccountIndex, logger *logrus.Logger) *SnapshotBuilder {
	return &SnapshotBuilder{
		accounts: accounts,
		mentions: mentions,
		byDate:   GroupMentions(mentions),
		weighted: GroupWeightedEdges(WeightedEdges(mentions)),
		logger:   logger,
	}
}

// Build one snapshot per selected date. labels must hold the labels of every date.
func (b *SnapshotBuilder) Build(ctx context.Context, dates []string, labels model.DailyLabels, opts SnapshotOptions) (*model.Dataset, error) {
	if opts.Mode == "" {
		opts.Mode = model.EdgeWeighted
	}
	if _, err := model.ParseEdgeMode(string(opts.Mode)); err != nil {
		return nil, err
	}
	if opts.MaxSnapshots > 0 && opts.MaxSnapshots < len(dates) {
		dates = dates[:opts.MaxSnapshots]
	}
	nodes := NewRecoder(b.mentions, RecoderOptions{TopK: opts.TopK, Allowlist: opts.Allowlist})

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	snapshots := make([]model.Snapshot, len(dates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, date := range dates {
		i, date := i, date
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			snapshots[i] = b.snapshot(i, date, nodes, labels[date], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build snapshots: %w", err)
	}

	b.logger.WithFields(logrus.Fields{
		"mode":      opts.Mode,
		"snapshots": len(snapshots),
		"nodes":     nodes.Len(),
		"features":  opts.Features,
	}).Info("snapshots built")
	return &model.Dataset{TimePeriods: len(snapshots), NodeIDs: nodes, Snapshots: snapshots}, nil
}

func (b *SnapshotBuilder) snapshot(i int, date string, nodes *model.NodeTable, labels map[model.AccountID]model.Label, opts SnapshotOptions) model.Snapshot {
	s := model.Snapshot{
		Index:   i,
		Date:    date,
		Edges:   [][2]int{},
		Weights: []float64{},
		Labels:  make([]model.Label, nodes.Len()),
	}

	switch opts.Mode {
	case model.EdgeTemporal:
		for _, m := range b.byDate[date] {
			if from, to, ok := ReindexEdge(b.accounts, nodes, m.Source, m.Target); ok {
				s.Edges = append(s.Edges, [2]int{from, to})
				s.Weights = append(s.Weights, 1)
			}
		}
	case model.EdgeWeighted, model.EdgeUnweighted:
		for _, e := range b.weighted[date] {
			from, to, ok := ReindexEdge(b.accounts, nodes, e.Source, e.Target)
			if !ok {
				continue
			}
			w := float64(e.Weight)
			if opts.Mode == model.EdgeUnweighted {
				w = 1
			}
			s.Edges = append(s.Edges, [2]int{from, to})
			s.Weights = append(s.Weights, w)
		}
	}

	for id, label := range labels {
		name, ok := b.accounts.ScreenName(id)
		if !ok {
			continue
		}
		if j, ok := nodes.Index[name]; ok {
			s.Labels[j] = label
		}
	}

	if opts.Features {
		s.Features = graph.NodeFeatures(nodes.Len(), s.Edges)
	}
	return s
}
