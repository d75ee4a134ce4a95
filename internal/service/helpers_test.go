package service

import (
	"bytes"
	"context"
	"time"

	"TennisGraph/internal/model"
	"TennisGraph/internal/tournament"

	"github.com/sirupsen/logrus"
)

const (
	day0 = int64(1577836800) // 2020-01-01T00:00:00Z
	day  = int64(86400)
)

const (
	menSingles = "Men's Singles"
	qualifying = "Qualifying Singles"
)

// testTournament five valid dates 2020-01-01..05 in UTC, 2020-01-02 without games,
// main draw from 2020-01-03
var testTournament = func() *tournament.Tournament {
	t := &tournament.Tournament{
		ID:                "test20",
		Location:          time.UTC,
		QualifierStart:    day0,
		MainDrawStart:     day0 + 2*day,
		QualifierDates:    []string{"2020-01-01", "2020-01-02", "2020-01-03", "2020-01-04", "2020-01-05"},
		MainDrawDates:     []string{"2020-01-03", "2020-01-04", "2020-01-05"},
		NoGameDates:       []string{"2020-01-02"},
		Aliases:           map[model.PlayerName]model.PlayerName{"Stan Wawrinka": "Stanislas Wawrinka"},
		ScheduleSeparator: '|',
	}
	tournament.Register(t)
	return t
}()

func testSchedule() []model.ScheduleEntry {
	return []model.ScheduleEntry{
		{Date: "2019-12-31", Winner: "Rafael Nadal", Loser: "Roger Federer", MatchHeader: menSingles, Court: "Court 1", Order: 1},
		{Date: "2020-01-01", Winner: "Rafael Nadal", Loser: "Roger Federer", MatchHeader: menSingles, Court: "Court 1", Order: 1},
		{Date: "2020-01-01", Winner: "Stanislas Wawrinka", Loser: "Zed Missing", MatchHeader: menSingles, Court: "Court 1", Order: 2},
		{Date: "2020-01-01", Winner: "Rafael Nadal", Loser: "Roger Federer", MatchHeader: menSingles, Court: "Court 2", Order: 3},
		{Date: "2020-01-03", Winner: "Rafael Nadal", Loser: "Stanislas Wawrinka", MatchHeader: menSingles, Court: "Court 1", Order: 1},
		{Date: "2020-01-04", Winner: "Roger Federer", Loser: "Zed Missing", MatchHeader: qualifying, Court: "Court 2", Order: 1},
		{Date: "2020-01-05", Winner: "Rafael Nadal", Loser: "Roger Federer", MatchHeader: menSingles, Court: "Centre Court", Order: 1},
	}
}

func testAccounts() model.AccountMap {
	return model.AccountMap{
		{Player: "Rafael Nadal", ScreenNames: []model.ScreenName{"RafaelNadal"}},
		{Player: "Roger Federer", ScreenNames: []model.ScreenName{"rogerfederer", "federer_fan"}},
		{Player: "Stan Wawrinka", ScreenNames: []model.ScreenName{"stanwawrinka"}},
		{Player: "Nobody Plays", ScreenNames: []model.ScreenName{"ghost"}},
	}
}

func mention(epoch int64, src model.AccountID, srcName model.ScreenName, trg model.AccountID, trgName model.ScreenName) model.MentionEvent {
	return model.MentionEvent{Epoch: epoch, Source: src, Target: trg, SourceName: srcName, TargetName: trgName}
}

// testMentions account ids: alice 1, bob 2, carol 3, RafaelNadal 10, rogerfederer 11, stanwawrinka 12
func testMentions() []model.MentionEvent {
	return []model.MentionEvent{
		mention(day0+100, 1, "alice", 10, "RafaelNadal"),
		mention(day0+200, 2, "bob", 10, "RafaelNadal"),
		mention(day0+300, 1, "alice", 11, "rogerfederer"),
		mention(day0+2*day+50, 10, "RafaelNadal", 12, "stanwawrinka"),
		mention(day0+2*day+60, 1, "alice", 12, "stanwawrinka"),
		mention(day0+2*day+40, 1, "alice", 12, "stanwawrinka"),
		mention(day0+4*day+10, 2, "bob", 10, "RafaelNadal"),
		mention(day0-1, 4, "dave", 1, "alice"),
		mention(day0+5*day, 3, "carol", 1, "alice"),
		mention(day0+5*day+1, 4, "dave", 2, "bob"),
	}
}

func testCorpus() *model.Corpus {
	return &model.Corpus{Mentions: testMentions(), Schedule: testSchedule(), Accounts: testAccounts()}
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(&bytes.Buffer{})
	return l
}

func newTestHandler(includeQualifiers bool) *Handler {
	return NewHandlerFromCorpus(testTournament, includeQualifiers, testCorpus(), HandlerOptions{Workers: 2}, testLogger())
}

// stubSource serves a fixed corpus
type stubSource struct {
	corpus *model.Corpus
	err    error
	calls  int
	ref    model.CorpusRef
}

func (s *stubSource) GetName() string { return "stub" }

func (s *stubSource) Fetch(_ context.Context, ref model.CorpusRef) (*model.Corpus, error) {
	s.calls++
	s.ref = ref
	return s.corpus, s.err
}
