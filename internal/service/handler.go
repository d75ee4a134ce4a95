package service

import (
	"context"
	"fmt"
	"maps"
	"regexp"

	"TennisGraph/internal/interfaces"
	"TennisGraph/internal/model"
	"TennisGraph/internal/tournament"

	"github.com/sirupsen/logrus"
)

// HandlerOptions construction options of a Handler
type HandlerOptions struct {
	HeaderFilter *regexp.Regexp // match header filter of the daily player extraction
	Workers      int            // parallel per-date snapshot workers
}

// Handler one loaded tournament corpus with every derived table computed once.
// It is read-only after construction.
type Handler struct {
	tournament        *tournament.Tournament
	includeQualifiers bool
	window            tournament.Window
	mentions          []model.DatedMention
	accounts          *AccountIndex
	daily             DailyPlayers
	records           []model.DailyPlayerRecord
	labeler           *Labeler
	builder           *SnapshotBuilder
	corpus            *model.Corpus
	opts              HandlerOptions
	logger            *logrus.Logger
}

// NewHandler resolves the tournament, fetches its corpus from src and derives every table.
// An unknown tournament fails before anything is fetched.
func NewHandler(ctx context.Context, src interfaces.DataSource, tournamentID string, includeQualifiers bool, opts HandlerOptions, logger *logrus.Logger) (*Handler, error) {
	t, err := tournament.Get(tournamentID)
	if err != nil {
		return nil, err
	}
	corpus, err := src.Fetch(ctx, t.Ref())
	if err != nil {
		return nil, fmt.Errorf("fetch %s corpus from %s: %w", t.ID, src.GetName(), err)
	}
	return NewHandlerFromCorpus(t, includeQualifiers, corpus, opts, logger), nil
}

// NewHandlerFromCorpus derives every table from an already loaded corpus
func NewHandlerFromCorpus(t *tournament.Tournament, includeQualifiers bool, corpus *model.Corpus, opts HandlerOptions, logger *logrus.Logger) *Handler {
	window := t.Window(includeQualifiers)
	mentions := window.Partition(corpus.Mentions)
	accounts := NewAccountIndex(mentions, corpus.Accounts, t)
	daily, records := ExtractDailyPlayers(corpus.Schedule, corpus.Accounts, t, opts.HeaderFilter)

	h := &Handler{
		tournament:        t,
		includeQualifiers: includeQualifiers,
		window:            window,
		mentions:          mentions,
		accounts:          accounts,
		daily:             daily,
		records:           records,
		labeler:           NewLabeler(window.Dates, window.NoGameDates, FoundByDate(records), accounts),
		builder:           NewSnapshotBuilder(mentions, accounts, logger),
		corpus:            corpus,
		opts:              opts,
		logger:            logger,
	}

	logger.WithFields(logrus.Fields{
		"tournament":         t.ID,
		"include_qualifiers": includeQualifiers,
		"start_time":         window.Start,
		"end_time":           window.End,
		"dates":              len(window.Dates),
		"edges":              len(mentions),
		"nodes":              accounts.NumAccounts(),
	}).Info("tournament corpus prepared")
	return h
}

func (h *Handler) Tournament() *tournament.Tournament { return h.tournament }
func (h *Handler) Window() tournament.Window          { return h.window }
func (h *Handler) Accounts() *AccountIndex            { return h.accounts }

// Mentions in-window mentions, input order
func (h *Handler) Mentions() []model.DatedMention { return h.mentions }

// Summary eight-key corpus overview
func (h *Handler) Summary() model.Summary {
	return model.Summary{
		DataID:            h.tournament.ID,
		IncludeQualifiers: h.includeQualifiers,
		Dates:             append([]string(nil), h.window.Dates...),
		DatesWithNoGame:   append([]string(nil), h.window.NoGameDates...),
		StartTime:         h.window.Start,
		EndTime:           h.window.End,
		NumberOfEdges:     len(h.mentions),
		NumberOfNodes:     h.accounts.NumAccounts(),
	}
}

// ShowDailyPlayers daily player records of the valid dates, sorted by date
func (h *Handler) ShowDailyPlayers() []model.DailyPlayerRecord {
	out := make([]model.DailyPlayerRecord, 0, len(h.window.Dates))
	for _, rec := range h.records {
		if h.window.IndexOf(rec.Date) >= 0 {
			out = append(out, rec)
		}
	}
	return out
}

// GetDailyPlayers player → representative match of a valid playing date
func (h *Handler) GetDailyPlayers(date string) (map[model.PlayerName]model.MatchID, error) {
	if h.window.IndexOf(date) < 0 {
		return nil, fmt.Errorf("%w: %q is not one of the collected dates %v", model.ErrInvalidDate, date, h.window.Dates)
	}
	if h.window.IsNoGame(date) {
		return nil, fmt.Errorf("%w: %s", model.ErrNoGameDay, date)
	}
	return maps.Clone(h.daily[date]), nil
}

// GetDailyRelevanceLabels date → account id → label on the binary or ternary scale
func (h *Handler) GetDailyRelevanceLabels(binary bool) model.DailyLabels {
	return h.labeler.Labels(model.ScaleFor(binary))
}

// WeightedEdges (source, target, date, weight) over the window
func (h *Handler) WeightedEdges() []model.WeightedEdge {
	return WeightedEdges(h.mentions)
}

// BuildDataset snapshots of the valid dates
func (h *Handler) BuildDataset(ctx context.Context, opts SnapshotOptions) (*model.Dataset, error) {
	if opts.Workers == 0 {
		opts.Workers = h.opts.Workers
	}
	labels := h.GetDailyRelevanceLabels(opts.Binary)
	return h.builder.Build(ctx, h.window.Dates, labels, opts)
}

// SuggestAliases closest account map names for players missing on valid dates
func (h *Handler) SuggestAliases(maxDistance int) []AliasSuggestion {
	return SuggestAliases(MissingPlayers(h.ShowDailyPlayers()), h.corpus.Accounts, maxDistance)
}

// PlayerStats coverage statistics of the valid dates
func (h *Handler) PlayerStats() PlayerStats {
	return ComputePlayerStats(h.ShowDailyPlayers())
}

// DailyActivity mentions and distinct accounts per valid date
func (h *Handler) DailyActivity() (edges, nodes []int) {
	pos := make(map[string]int, len(h.window.Dates))
	for i, d := range h.window.Dates {
		pos[d] = i
	}
	edges = make([]int, len(h.window.Dates))
	sets := make([]map[model.AccountID]struct{}, len(h.window.Dates))
	for i := range sets {
		sets[i] = make(map[model.AccountID]struct{})
	}
	for _, m := range h.mentions {
		i, ok := pos[m.Date]
		if !ok {
			continue
		}
		edges[i]++
		sets[i][m.Source] = struct{}{}
		sets[i][m.Target] = struct{}{}
	}
	nodes = make([]int, len(sets))
	for i, s := range sets {
		nodes[i] = len(s)
	}
	return edges, nodes
}
