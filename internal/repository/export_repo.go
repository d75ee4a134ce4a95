package repository

import (
	"context"
	"fmt"

	"TennisGraph/internal/interfaces"
	"TennisGraph/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExportRepository export sink backed by gorm
type ExportRepository interface {
	interfaces.ExportSink
	SaveRun(ctx context.Context, run *model.ExportRun) error
	SaveDailyPlayers(ctx context.Context, runID uint64, rows []*model.DailyPlayerRow) error
	SaveLabels(ctx context.Context, runID uint64, rows []*model.LabelRow) error
	GetRunByUUID(ctx context.Context, runUUID string) (*model.ExportRun, error)
	ListDailyPlayers(ctx context.Context, runID uint64) ([]*model.DailyPlayerRow, error)
	ListLabels(ctx context.Context, runID uint64, dateIndex int) ([]*model.LabelRow, error)
}

type exportRepository struct {
	db        *gorm.DB
	batchSize int
}

func NewExportRepository(db *gorm.DB, batchSize int) ExportRepository {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &exportRepository{db: db, batchSize: batchSize}
}

// AutoMigrate creates the sink tables when missing
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.ExportRun{}, &model.DailyPlayerRow{}, &model.LabelRow{})
}

// SaveExport run, daily players and labels in one transaction
func (r *exportRepository) SaveExport(ctx context.Context, run *model.ExportRun, players []*model.DailyPlayerRow, labels []*model.LabelRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &exportRepository{db: tx, batchSize: r.batchSize}
		if err := txRepo.SaveRun(ctx, run); err != nil {
			return err
		}
		if err := txRepo.SaveDailyPlayers(ctx, run.ID, players); err != nil {
			return err
		}
		return txRepo.SaveLabels(ctx, run.ID, labels)
	})
}

func (r *exportRepository) SaveRun(ctx context.Context, run *model.ExportRun) error {
	if run.RunUUID == "" {
		run.RunUUID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("save export run %s: %w", run.RunUUID, err)
	}
	return nil
}

func (r *exportRepository) SaveDailyPlayers(ctx context.Context, runID uint64, rows []*model.DailyPlayerRow) error {
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		row.RunID = runID
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "run_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"players", "found_players", "missing_players",
			"num_players", "num_found_players", "num_missing_players", "frac_missing_players",
		}),
	}).CreateInBatches(rows, r.batchSize).Error; err != nil {
		return fmt.Errorf("save daily players: %w", err)
	}
	return nil
}

func (r *exportRepository) SaveLabels(ctx context.Context, runID uint64, rows []*model.LabelRow) error {
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		row.RunID = runID
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "run_id"}, {Name: "date_index"}, {Name: "node_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "label"}),
	}).CreateInBatches(rows, r.batchSize).Error; err != nil {
		return fmt.Errorf("save labels: %w", err)
	}
	return nil
}

func (r *exportRepository) GetRunByUUID(ctx context.Context, runUUID string) (*model.ExportRun, error) {
	var run model.ExportRun
	if err := r.db.WithContext(ctx).Where("run_uuid = ?", runUUID).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *exportRepository) ListDailyPlayers(ctx context.Context, runID uint64) ([]*model.DailyPlayerRow, error) {
	var rows []*model.DailyPlayerRow
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("date").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListLabels labels of one date of a run ordered by node id; dateIndex < 0 lists every date
func (r *exportRepository) ListLabels(ctx context.Context, runID uint64, dateIndex int) ([]*model.LabelRow, error) {
	q := r.db.WithContext(ctx).Where("run_id = ?", runID)
	if dateIndex >= 0 {
		q = q.Where("date_index = ?", dateIndex)
	}
	var rows []*model.LabelRow
	if err := q.Order("date_index").Order("node_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
