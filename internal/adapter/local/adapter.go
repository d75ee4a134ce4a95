// Package local reads a tournament corpus from <dir>/<id>/.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"TennisGraph/internal/adapter"
	"TennisGraph/internal/config"
	"TennisGraph/internal/interfaces"
	"TennisGraph/internal/model"

	"github.com/sirupsen/logrus"
)

// Name registered source kind
const Name = "local"

func init() {
	adapter.Register(Name, NewLocalSource)
}

type Source struct {
	dir    string
	logger *logrus.Logger
}

func NewLocalSource(cfg *config.DataConfig, logger *logrus.Logger) interfaces.DataSource {
	return &Source{dir: cfg.Dir, logger: logger}
}

func (s *Source) GetName() string {
	return Name
}

// CorpusDir directory holding the three files of a tournament
func CorpusDir(root, id string) string {
	return filepath.Join(root, id)
}

func MentionsFile(id string) string { return id + "_mentions_with_names.csv" }
func ScheduleFile(id string) string { return id + "_schedule.csv" }
func AccountsFile(id string) string { return id + "_player_accounts.json" }

func (s *Source) Fetch(ctx context.Context, ref model.CorpusRef) (*model.Corpus, error) {
	dir := CorpusDir(s.dir, ref.ID)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("corpus directory %s: %w", dir, err)
	}

	var corpus model.Corpus
	err := readFile(ctx, filepath.Join(dir, MentionsFile(ref.ID)), func(r io.Reader) (err error) {
		corpus.Mentions, err = ParseMentions(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = readFile(ctx, filepath.Join(dir, ScheduleFile(ref.ID)), func(r io.Reader) (err error) {
		corpus.Schedule, err = ParseSchedule(r, ref.ScheduleSeparator)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = readFile(ctx, filepath.Join(dir, AccountsFile(ref.ID)), func(r io.Reader) (err error) {
		corpus.Accounts, err = ParsePlayerAccounts(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"tournament": ref.ID,
		"mentions":   len(corpus.Mentions),
		"matches":    len(corpus.Schedule),
		"players":    len(corpus.Accounts),
	}).Info("corpus loaded")
	return &corpus, nil
}

func readFile(ctx context.Context, path string, parse func(io.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := parse(f); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}
