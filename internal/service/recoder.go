package service

import (
	"sort"

	"TennisGraph/internal/model"
)

// RecoderOptions node selection for re-indexing
type RecoderOptions struct {
	TopK      int                // keep the K most active accounts, 0 keeps all
	Allowlist []model.ScreenName // restrict ranking to these accounts, empty allows all
}

// activity mention count of one screen name
type activity struct {
	name  model.ScreenName
	count int
}

// RankAccounts screen names by mention activity, most active first. Activity counts every
// source name and then every target name; ties keep first-encounter order.
func RankAccounts(mentions []model.DatedMention) []model.ScreenName {
	ranked := rankActivity(mentions, nil)
	out := make([]model.ScreenName, len(ranked))
	for i, a := range ranked {
		out[i] = a.name
	}
	return out
}

func rankActivity(mentions []model.DatedMention, allow map[model.ScreenName]struct{}) []activity {
	pos := make(map[model.ScreenName]int)
	var acts []activity
	count := func(name model.ScreenName) {
		if allow != nil {
			if _, ok := allow[name]; !ok {
				return
			}
		}
		i, ok := pos[name]
		if !ok {
			i = len(acts)
			pos[name] = i
			acts = append(acts, activity{name: name})
		}
		acts[i].count++
	}
	for _, m := range mentions {
		count(m.SourceName)
	}
	for _, m := range mentions {
		count(m.TargetName)
	}
	sort.SliceStable(acts, func(i, j int) bool { return acts[i].count > acts[j].count })
	return acts
}

// NewRecoder dense node table over the ranked accounts
func NewRecoder(mentions []model.DatedMention, opts RecoderOptions) *model.NodeTable {
	var allow map[model.ScreenName]struct{}
	if len(opts.Allowlist) > 0 {
		allow = make(map[model.ScreenName]struct{}, len(opts.Allowlist))
		for _, name := range opts.Allowlist {
			allow[name] = struct{}{}
		}
	}
	ranked := rankActivity(mentions, allow)
	if opts.TopK > 0 && opts.TopK < len(ranked) {
		ranked = ranked[:opts.TopK]
	}
	order := make([]model.ScreenName, len(ranked))
	for i, a := range ranked {
		order[i] = a.name
	}
	return model.NewNodeTable(order)
}

// ReindexEdge maps both endpoints through the account index and the node table.
// ok is false when either endpoint is not retained, the whole edge is then dropped.
func ReindexEdge(accounts *AccountIndex, nodes *model.NodeTable, src, trg model.AccountID) (from, to int, ok bool) {
	srcName, ok := accounts.ScreenName(src)
	if !ok {
		return 0, 0, false
	}
	trgName, ok := accounts.ScreenName(trg)
	if !ok {
		return 0, 0, false
	}
	from, ok = nodes.Index[srcName]
	if !ok {
		return 0, 0, false
	}
	to, ok = nodes.Index[trgName]
	if !ok {
		return 0, 0, false
	}
	return from, to, true
}
