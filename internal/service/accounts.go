package service

import (
	"slices"

	"TennisGraph/internal/model"
	"TennisGraph/internal/tournament"
)

// AccountIndex conversions between the three identifier spaces of a loaded corpus.
// Built once from in-window mentions and the account map, read-only afterwards.
type AccountIndex struct {
	screens   []model.ScreenName // first-seen order of screen names
	toID      map[model.ScreenName]model.AccountID
	toScreen  map[model.AccountID]model.ScreenName
	toPlayer  map[model.ScreenName]model.PlayerName
	byPlayer  map[model.PlayerName][]model.ScreenName
	accountNo int // distinct account ids in the window
}

// NewAccountIndex sources are observed before targets and later observations overwrite
// earlier ones. Player names go through t.Reconcile.
func NewAccountIndex(mentions []model.DatedMention, accounts model.AccountMap, t *tournament.Tournament) *AccountIndex {
	idx := &AccountIndex{
		toID:     make(map[model.ScreenName]model.AccountID),
		toScreen: make(map[model.AccountID]model.ScreenName),
		toPlayer: make(map[model.ScreenName]model.PlayerName),
		byPlayer: make(map[model.PlayerName][]model.ScreenName),
	}
	observe := func(name model.ScreenName, id model.AccountID) {
		if _, ok := idx.toID[name]; !ok {
			idx.screens = append(idx.screens, name)
		}
		idx.toID[name] = id
	}
	for _, m := range mentions {
		observe(m.SourceName, m.Source)
	}
	for _, m := range mentions {
		observe(m.TargetName, m.Target)
	}
	for _, name := range idx.screens {
		idx.toScreen[idx.toID[name]] = name
	}

	ids := make(map[model.AccountID]struct{}, len(mentions))
	for _, m := range mentions {
		ids[m.Source] = struct{}{}
		ids[m.Target] = struct{}{}
	}
	idx.accountNo = len(ids)

	for _, pa := range accounts {
		player := t.Reconcile(pa.Player)
		for _, name := range pa.ScreenNames {
			idx.toPlayer[name] = player
		}
	}
	for _, name := range sortedKeys(idx.toPlayer) {
		p := idx.toPlayer[name]
		idx.byPlayer[p] = append(idx.byPlayer[p], name)
	}
	return idx
}

// AccountID id observed for a screen name
func (x *AccountIndex) AccountID(name model.ScreenName) (model.AccountID, bool) {
	id, ok := x.toID[name]
	return id, ok
}

// ScreenName screen name of an account id
func (x *AccountIndex) ScreenName(id model.AccountID) (model.ScreenName, bool) {
	name, ok := x.toScreen[id]
	return name, ok
}

// Player reconciled player a screen name belongs to
func (x *AccountIndex) Player(name model.ScreenName) (model.PlayerName, bool) {
	p, ok := x.toPlayer[name]
	return p, ok
}

// Accounts screen names assigned to a reconciled player, sorted
func (x *AccountIndex) Accounts(player model.PlayerName) []model.ScreenName {
	return append([]model.ScreenName(nil), x.byPlayer[player]...)
}

// ScreenNames every screen name seen in the window, first-seen order
func (x *AccountIndex) ScreenNames() []model.ScreenName {
	return append([]model.ScreenName(nil), x.screens...)
}

// NumAccounts distinct account ids in the window
func (x *AccountIndex) NumAccounts() int {
	return x.accountNo
}

func sortedKeys[V any](m map[model.ScreenName]V) []model.ScreenName {
	keys := make([]model.ScreenName, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
