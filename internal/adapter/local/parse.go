package local

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"TennisGraph/internal/model"
)

var (
	mentionColumns  = []string{"epoch", "src", "trg", "src_screen_str", "trg_screen_str"}
	scheduleColumns = []string{"date", "playerName active", "playerName opponent", "matchHeader", "courtName", "orderNumber"}
)

// table header-addressed csv reader
type table struct {
	r   *csv.Reader
	col map[string]int
}

func newTable(r io.Reader, sep rune, required []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := &table{r: cr, col: make(map[string]int, len(header))}
	for i, name := range header {
		t.col[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := t.col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %v (header: %v)", missing, header)
	}
	return t, nil
}

// next returns io.EOF after the last record
func (t *table) next() ([]string, error) {
	return t.r.Read()
}

func (t *table) field(rec []string, name string) string {
	i := t.col[name]
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseInt accepts integer and integral float spellings ("3", "3.0")
func parseInt(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int64(f), nil
}

// ParseMentions reads the '|' separated mention table
func ParseMentions(r io.Reader) ([]model.MentionEvent, error) {
	t, err := newTable(r, '|', mentionColumns)
	if err != nil {
		return nil, fmt.Errorf("mentions: %w", err)
	}
	var out []model.MentionEvent
	for line := 2; ; line++ {
		rec, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mentions line %d: %w", line, err)
		}
		epoch, err := parseInt(t.field(rec, "epoch"))
		if err != nil {
			return nil, fmt.Errorf("mentions line %d: epoch: %w", line, err)
		}
		src, err := parseInt(t.field(rec, "src"))
		if err != nil {
			return nil, fmt.Errorf("mentions line %d: src: %w", line, err)
		}
		trg, err := parseInt(t.field(rec, "trg"))
		if err != nil {
			return nil, fmt.Errorf("mentions line %d: trg: %w", line, err)
		}
		out = append(out, model.MentionEvent{
			Epoch:      epoch,
			Source:     model.AccountID(src),
			Target:     model.AccountID(trg),
			SourceName: model.ScreenName(t.field(rec, "src_screen_str")),
			TargetName: model.ScreenName(t.field(rec, "trg_screen_str")),
		})
	}
	return out, nil
}

// ParseSchedule reads the match schedule with the tournament's separator
func ParseSchedule(r io.Reader, sep rune) ([]model.ScheduleEntry, error) {
	t, err := newTable(r, sep, scheduleColumns)
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}
	var out []model.ScheduleEntry
	for line := 2; ; line++ {
		rec, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("schedule line %d: %w", line, err)
		}
		order, err := parseInt(t.field(rec, "orderNumber"))
		if err != nil {
			return nil, fmt.Errorf("schedule line %d: orderNumber: %w", line, err)
		}
		out = append(out, model.ScheduleEntry{
			Date:        t.field(rec, "date"),
			Winner:      model.PlayerName(t.field(rec, "playerName active")),
			Loser:       model.PlayerName(t.field(rec, "playerName opponent")),
			MatchHeader: t.field(rec, "matchHeader"),
			Court:       t.field(rec, "courtName"),
			Order:       int(order),
		})
	}
	return out, nil
}

// ParsePlayerAccounts reads the player → screen names object keeping key order.
// A repeated player key replaces the earlier list in place.
func ParsePlayerAccounts(r io.Reader) (model.AccountMap, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("player accounts: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("player accounts: expected object, got %v", tok)
	}

	var out model.AccountMap
	pos := make(map[model.PlayerName]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("player accounts: %w", err)
		}
		player := model.PlayerName(tok.(string))
		var names []model.ScreenName
		if err := dec.Decode(&names); err != nil {
			return nil, fmt.Errorf("player accounts %q: %w", player, err)
		}
		if i, ok := pos[player]; ok {
			out[i].ScreenNames = names
			continue
		}
		pos[player] = len(out)
		out = append(out, model.PlayerAccounts{Player: player, ScreenNames: names})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("player accounts: %w", err)
	}
	return out, nil
}
