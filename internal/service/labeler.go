package service

import "TennisGraph/internal/model"

// Labeler assigns per-date relevance labels to accounts
type Labeler struct {
	dates    []string
	found    map[string]map[model.PlayerName]struct{}
	accounts *AccountIndex
}

// NewLabeler found is date → found players; no-game dates are cleared here
func NewLabeler(dates, noGameDates []string, found map[string]map[model.PlayerName]struct{}, accounts *AccountIndex) *Labeler {
	clean := make(map[string]map[model.PlayerName]struct{}, len(found))
	for d, set := range found {
		clean[d] = set
	}
	for _, d := range noGameDates {
		clean[d] = nil
	}
	return &Labeler{dates: dates, found: clean, accounts: accounts}
}

// playedOn reports whether player is among the found players of the i-th date
func (l *Labeler) playedOn(i int, player model.PlayerName) bool {
	if i < 0 || i >= len(l.dates) {
		return false
	}
	_, ok := l.found[l.dates[i]][player]
	return ok
}

// Label label of a screen name on the i-th valid date
func (l *Labeler) Label(scale model.LabelScale, i int, name model.ScreenName) model.Label {
	player, ok := l.accounts.Player(name)
	if !ok {
		return 0
	}
	switch {
	case l.playedOn(i, player):
		return scale.Current
	case l.playedOn(i-1, player):
		return scale.Previous
	case l.playedOn(i+1, player):
		return scale.Next
	}
	return 0
}

// Labels labels of every in-window account for every valid date, keyed by account id.
// Screen names sharing an id resolve in first-seen order, the last one wins.
func (l *Labeler) Labels(scale model.LabelScale) model.DailyLabels {
	screens := l.accounts.ScreenNames()
	out := make(model.DailyLabels, len(l.dates))
	for i, date := range l.dates {
		labels := make(map[model.AccountID]model.Label, l.accounts.NumAccounts())
		for _, name := range screens {
			id, _ := l.accounts.AccountID(name)
			labels[id] = l.Label(scale, i, name)
		}
		out[date] = labels
	}
	return out
}
