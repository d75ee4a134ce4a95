package model

import "strconv"

// AccountID numeric social-media account identifier
type AccountID int64

func (a AccountID) String() string { return strconv.FormatInt(int64(a), 10) }

// ScreenName social-media handle, the key used by the account map and the node table
type ScreenName string

// MentionEvent one timestamped directed reference between two accounts
type MentionEvent struct {
	Epoch      int64      // seconds since unix epoch
	Source     AccountID  // src
	Target     AccountID  // trg
	SourceName ScreenName // src_screen_str
	TargetName ScreenName // trg_screen_str
}

// DatedMention a mention that survived window filtering, stamped with its tournament-local date
type DatedMention struct {
	MentionEvent
	Date string
}

// Corpus raw inputs of one tournament, as returned by a DataSource
type Corpus struct {
	Mentions []MentionEvent
	Schedule []ScheduleEntry
	Accounts AccountMap
}

// CorpusRef identifies which files a DataSource should read
type CorpusRef struct {
	ID                string
	ScheduleSeparator rune
}
