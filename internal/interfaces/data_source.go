package interfaces

import (
	"context"

	"TennisGraph/internal/config"
	"TennisGraph/internal/model"

	"github.com/sirupsen/logrus"
)

// DataSource provider of the three raw input tables of a tournament
type DataSource interface {
	GetName() string                                                       // provider name
	Fetch(ctx context.Context, ref model.CorpusRef) (*model.Corpus, error) // mentions, schedule, account map
}

// Factory builds a DataSource from the data section of the config
type Factory func(cfg *config.DataConfig, logger *logrus.Logger) DataSource

// ExportSink persists finished exports; never read back by the pipeline
type ExportSink interface {
	SaveExport(ctx context.Context, run *model.ExportRun, players []*model.DailyPlayerRow, labels []*model.LabelRow) error
}
