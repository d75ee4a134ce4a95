package model

import "fmt"

// PlayerName canonical tennis player name
type PlayerName string

// MatchID traceable identifier of one scheduled match
type MatchID string

// ScheduleEntry one row of the match schedule
type ScheduleEntry struct {
	Date        string     `json:"date"`
	Winner      PlayerName `json:"winner"` // playerName active
	Loser       PlayerName `json:"loser"`  // playerName opponent
	MatchHeader string     `json:"match_header"`
	Court       string     `json:"court"`
	Order       int        `json:"order"`
}

// MatchID header_court_order
func (s ScheduleEntry) MatchID() MatchID {
	return MatchID(fmt.Sprintf("%s_%s_%d", s.MatchHeader, s.Court, s.Order))
}

// PlayerAccounts one entry of the player-account assignment file
type PlayerAccounts struct {
	Player      PlayerName
	ScreenNames []ScreenName
}

// AccountMap player → screen names, in source order
type AccountMap []PlayerAccounts

// Players player names in source order
func (m AccountMap) Players() []PlayerName {
	out := make([]PlayerName, 0, len(m))
	for _, pa := range m {
		out = append(out, pa.Player)
	}
	return out
}

// Lookup screen names of a player; ok is false when the player has no entry
func (m AccountMap) Lookup(player PlayerName) ([]ScreenName, bool) {
	for _, pa := range m {
		if pa.Player == player {
			return pa.ScreenNames, true
		}
	}
	return nil, false
}

// DailyPlayerRecord who played on one date and how many of them have known accounts
type DailyPlayerRecord struct {
	Date               string       `json:"date"`
	Players            []PlayerName `json:"players"`
	FoundPlayers       []PlayerName `json:"found_players"`
	MissingPlayers     []PlayerName `json:"missing_players"`
	NumPlayers         int          `json:"num_players"`
	NumFoundPlayers    int          `json:"num_found_players"`
	NumMissingPlayers  int          `json:"num_missing_players"`
	FracMissingPlayers float64      `json:"frac_missing_players"`
}
