package tournament

import "TennisGraph/internal/model"

// Reconcile maps an account-map player name to its spelling in this tournament's schedule.
// Unmapped names pass through unchanged.
func (t *Tournament) Reconcile(name model.PlayerName) model.PlayerName {
	if alias, ok := t.Aliases[name]; ok {
		return alias
	}
	return name
}

// Coverage reconciled names of every player present in the account map
func (t *Tournament) Coverage(accounts model.AccountMap) map[model.PlayerName]struct{} {
	covered := make(map[model.PlayerName]struct{}, len(accounts))
	for _, pa := range accounts {
		covered[t.Reconcile(pa.Player)] = struct{}{}
	}
	return covered
}
