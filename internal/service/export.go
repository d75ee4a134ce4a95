package service

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"TennisGraph/internal/interfaces"
	"TennisGraph/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const summaryFile = "summary.json"

// ExportReport what an export wrote
type ExportReport struct {
	Dir     string
	Files   []string
	RunUUID string // empty without a sink
}

// ExportService writes handler outputs to disk and, when a sink is configured, persists them
type ExportService struct {
	handler *Handler
	sink    interfaces.ExportSink
	logger  *logrus.Logger
}

// NewExportService sink may be nil
func NewExportService(handler *Handler, sink interfaces.ExportSink, logger *logrus.Logger) *ExportService {
	return &ExportService{handler: handler, sink: sink, logger: logger}
}

// LabelsFile name of the label file of the i-th valid date
func LabelsFile(i int) string { return fmt.Sprintf("labels_%d.csv", i) }

// ExportRelevanceLabels summary.json plus one labels_<i>.csv per valid date with
// "<account id> <label>" lines sorted by id. onlyPositive keeps labels above zero.
func (s *ExportService) ExportRelevanceLabels(ctx context.Context, dir string, binary, onlyPositive bool) (*ExportReport, error) {
	if err := s.prepareDir(dir); err != nil {
		return nil, err
	}
	report := &ExportReport{Dir: dir, Files: []string{summaryFile}}

	labels := s.handler.GetDailyRelevanceLabels(binary)
	var rows []*model.LabelRow
	for i, date := range s.handler.Window().Dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ids := sortedIDs(labels[date])
		name := LabelsFile(i)
		written := 0
		err := writeLines(filepath.Join(dir, name), func(w *bufio.Writer) error {
			for _, id := range ids {
				label := labels[date][id]
				if onlyPositive && label <= 0 {
					continue
				}
				if _, err := fmt.Fprintf(w, "%d %s\n", id, label); err != nil {
					return err
				}
				written++
				if s.sink != nil {
					rows = append(rows, &model.LabelRow{DateIndex: i, Date: date, NodeID: int64(id), Label: float64(label)})
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, name)
		s.logger.WithFields(logrus.Fields{"date": date, "file": name, "labels": written}).Debug("label file written")
	}

	scale := "ternary"
	if binary {
		scale = "binary"
	}
	runUUID, err := s.persist(ctx, scale, rows)
	if err != nil {
		return nil, err
	}
	report.RunUUID = runUUID

	s.logger.WithFields(logrus.Fields{
		"dir":           dir,
		"files":         len(report.Files),
		"binary":        binary,
		"only_positive": onlyPositive,
	}).Info("relevance labels exported")
	return report, nil
}

// ExportEdges summary.json plus edges.csv with "epoch<sep>src<sep>trg" per in-window mention
func (s *ExportService) ExportEdges(ctx context.Context, dir, sep string) (*ExportReport, error) {
	if sep == "" {
		sep = "|"
	}
	if err := s.prepareDir(dir); err != nil {
		return nil, err
	}
	mentions := s.handler.Mentions()
	err := writeLines(filepath.Join(dir, "edges.csv"), func(w *bufio.Writer) error {
		for _, m := range mentions {
			line := strconv.FormatInt(m.Epoch, 10) + sep + m.Source.String() + sep + m.Target.String() + "\n"
			if _, err := w.WriteString(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	runUUID, err := s.persist(ctx, "edges", nil)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"dir": dir, "edges": len(mentions)}).Info("edges exported")
	return &ExportReport{Dir: dir, Files: []string{summaryFile, "edges.csv"}, RunUUID: runUUID}, nil
}

// ExportSnapshots writes the dataset JSON to path
func (s *ExportService) ExportSnapshots(ctx context.Context, path string, opts SnapshotOptions) (*model.Dataset, error) {
	ds, err := s.handler.BuildDataset(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := json.NewEncoder(w).Encode(ds); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("encode snapshots: %w", err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", path, err)
	}
	s.logger.WithFields(logrus.Fields{
		"path":         path,
		"time_periods": ds.TimePeriods,
		"nodes":        ds.NodeIDs.Len(),
	}).Info("snapshots exported")
	return ds, nil
}

// WriteSummary summary.json indented with three spaces
func (s *ExportService) WriteSummary(dir string) error {
	data, err := json.MarshalIndent(s.handler.Summary(), "", "   ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, summaryFile), data, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func (s *ExportService) prepareDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		s.logger.WithField("dir", dir).Info("output folder created")
	}
	return s.WriteSummary(dir)
}

// persist stores the run in the sink; no-op without one
func (s *ExportService) persist(ctx context.Context, scale string, labels []*model.LabelRow) (string, error) {
	if s.sink == nil {
		return "", nil
	}
	sum := s.handler.Summary()
	dates, err := json.Marshal(sum.Dates)
	if err != nil {
		return "", err
	}
	noGame, err := json.Marshal(sum.DatesWithNoGame)
	if err != nil {
		return "", err
	}
	run := &model.ExportRun{
		RunUUID:           uuid.NewString(),
		TournamentID:      sum.DataID,
		IncludeQualifiers: sum.IncludeQualifiers,
		LabelScale:        scale,
		Dates:             datatypes.JSON(dates),
		NoGameDates:       datatypes.JSON(noGame),
		StartTime:         sum.StartTime,
		EndTime:           sum.EndTime,
		NumberOfEdges:     sum.NumberOfEdges,
		NumberOfNodes:     sum.NumberOfNodes,
	}

	records := s.handler.ShowDailyPlayers()
	players := make([]*model.DailyPlayerRow, 0, len(records))
	for _, rec := range records {
		row, err := dailyPlayerRow(rec)
		if err != nil {
			return "", err
		}
		players = append(players, row)
	}

	if err := s.sink.SaveExport(ctx, run, players, labels); err != nil {
		return "", fmt.Errorf("persist export run: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"run_uuid": run.RunUUID,
		"players":  len(players),
		"labels":   len(labels),
	}).Info("export run persisted")
	return run.RunUUID, nil
}

func dailyPlayerRow(rec model.DailyPlayerRecord) (*model.DailyPlayerRow, error) {
	all, err := json.Marshal(rec.Players)
	if err != nil {
		return nil, err
	}
	found, err := json.Marshal(rec.FoundPlayers)
	if err != nil {
		return nil, err
	}
	missing, err := json.Marshal(rec.MissingPlayers)
	if err != nil {
		return nil, err
	}
	return &model.DailyPlayerRow{
		Date:               rec.Date,
		Players:            datatypes.JSON(all),
		FoundPlayers:       datatypes.JSON(found),
		MissingPlayers:     datatypes.JSON(missing),
		NumPlayers:         rec.NumPlayers,
		NumFoundPlayers:    rec.NumFoundPlayers,
		NumMissingPlayers:  rec.NumMissingPlayers,
		FracMissingPlayers: rec.FracMissingPlayers,
	}, nil
}

func sortedIDs(labels map[model.AccountID]model.Label) []model.AccountID {
	ids := make([]model.AccountID, 0, len(labels))
	for id := range labels {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func writeLines(path string, write func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
