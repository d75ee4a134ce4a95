package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"TennisGraph/internal/model"
	"TennisGraph/internal/service"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

type command struct {
	summary string
	run     func(ctx context.Context, args []string, out io.Writer) error
}

var commands = map[string]command{
	"summary":   {"print the corpus summary", runSummary},
	"players":   {"daily players and their account coverage", runPlayers},
	"labels":    {"export per-date relevance labels", runLabels},
	"edges":     {"export the in-window mention edges", runEdges},
	"snapshots": {"export per-date graph snapshots as JSON", runSnapshots},
	"visualize": {"terminal charts of activity or player coverage", runVisualize},
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func newFlagSet(name string, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// outputDir --out, or <export.output_dir>/<tournament>/<kind>
func (a *app) outputDir(flag, kind string) string {
	if flag != "" {
		return flag
	}
	return filepath.Join(a.cfg.Export.OutputDir, a.handler.Tournament().ID, kind)
}

// binaryScale --scale, or export.binary
func (a *app) binaryScale(scale string) (bool, error) {
	switch strings.ToLower(scale) {
	case "":
		return a.cfg.Export.Binary, nil
	case "binary":
		return true, nil
	case "ternary":
		return false, nil
	}
	return false, fmt.Errorf("%w: label scale %q, choose from [binary ternary]", model.ErrUnknownMode, scale)
}

func runSummary(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("summary", out)
	g := addGlobalFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := setup(ctx, g, out)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(a.handler.Summary(), "", "   ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func runPlayers(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("players", out)
	g := addGlobalFlags(fs)
	date := fs.String("date", "", "list the players of one date with their representative match")
	suggest := fs.Int("suggest", -1, "suggest account map aliases for missing players within this edit distance")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := setup(ctx, g, out)
	if err != nil {
		return err
	}

	switch {
	case *date != "":
		players, err := a.handler.GetDailyPlayers(*date)
		if err != nil {
			return err
		}
		names := make([]model.PlayerName, 0, len(players))
		for p := range players {
			names = append(names, p)
		}
		slices.Sort(names)
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Player", "Match"})
		for _, p := range names {
			table.Append([]string{string(p), string(players[p])})
		}
		table.Render()
	case *suggest >= 0:
		suggestions := a.handler.SuggestAliases(*suggest)
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Missing", "Candidate", "Distance"})
		for _, s := range suggestions {
			table.Append([]string{string(s.Missing), string(s.Candidate), strconv.Itoa(s.Distance)})
		}
		table.Render()
		a.logger.WithField("suggestions", len(suggestions)).Info("alias suggestions computed")
	default:
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Date", "Players", "Found", "Missing", "Missing players"})
		for _, rec := range a.handler.ShowDailyPlayers() {
			missing := make([]string, len(rec.MissingPlayers))
			for i, p := range rec.MissingPlayers {
				missing[i] = string(p)
			}
			table.Append([]string{
				rec.Date,
				strconv.Itoa(rec.NumPlayers),
				strconv.Itoa(rec.NumFoundPlayers),
				strconv.Itoa(rec.NumMissingPlayers),
				strings.Join(missing, ", "),
			})
		}
		table.Render()
	}
	return nil
}

func runLabels(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("labels", out)
	g := addGlobalFlags(fs)
	dir := fs.StringP("out", "o", "", "output directory (default <export.output_dir>/<tournament>/labels)")
	scale := fs.String("scale", "", "binary or ternary (default export.binary)")
	onlyPositive := fs.Bool("only-positive", false, "write only labels above zero")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := setup(ctx, g, out)
	if err != nil {
		return err
	}
	binary, err := a.binaryScale(*scale)
	if err != nil {
		return err
	}
	svc, closeSink, err := a.exportService()
	if err != nil {
		return err
	}
	defer closeSink()

	report, err := svc.ExportRelevanceLabels(ctx, a.outputDir(*dir, "labels"), binary, *onlyPositive)
	if err != nil {
		return err
	}
	return printReport(out, report)
}

func runEdges(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("edges", out)
	g := addGlobalFlags(fs)
	dir := fs.StringP("out", "o", "", "output directory (default <export.output_dir>/<tournament>/edges)")
	sep := fs.String("sep", "", "field separator (default export.edge_separator)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := setup(ctx, g, out)
	if err != nil {
		return err
	}
	if *sep == "" {
		*sep = a.cfg.Export.EdgeSeparator
	}
	svc, closeSink, err := a.exportService()
	if err != nil {
		return err
	}
	defer closeSink()

	report, err := svc.ExportEdges(ctx, a.outputDir(*dir, "edges"), *sep)
	if err != nil {
		return err
	}
	return printReport(out, report)
}

func runSnapshots(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("snapshots", out)
	g := addGlobalFlags(fs)
	path := fs.StringP("out", "o", "", "output file (default <export.output_dir>/<tournament>/snapshots.json)")
	mode := fs.String("mode", string(model.EdgeWeighted), "edge mode: temporal, weighted or unweighted")
	scale := fs.String("scale", "", "binary or ternary (default export.binary)")
	topK := fs.Int("top-k", 0, "keep the K most active accounts, 0 keeps all")
	allowlist := fs.StringSlice("allowlist", nil, "restrict nodes to these screen names")
	maxSnapshots := fs.Int("max-snapshots", 0, "keep the first N dates, 0 keeps all")
	features := fs.Bool("features", false, "attach degree and clustering node features")
	if err := fs.Parse(args); err != nil {
		return err
	}
	edgeMode, err := model.ParseEdgeMode(*mode)
	if err != nil {
		return err
	}
	a, err := setup(ctx, g, out)
	if err != nil {
		return err
	}
	binary, err := a.binaryScale(*scale)
	if err != nil {
		return err
	}
	if *path == "" {
		*path = filepath.Join(a.cfg.Export.OutputDir, a.handler.Tournament().ID, "snapshots.json")
	}
	names := make([]model.ScreenName, len(*allowlist))
	for i, n := range *allowlist {
		names[i] = model.ScreenName(n)
	}

	svc := service.NewExportService(a.handler, nil, a.logger)
	ds, err := svc.ExportSnapshots(ctx, *path, service.SnapshotOptions{
		Mode:         edgeMode,
		Binary:       binary,
		TopK:         *topK,
		Allowlist:    names,
		MaxSnapshots: *maxSnapshots,
		Features:     *features,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s: %d snapshots, %d nodes\n", *path, ds.TimePeriods, ds.NodeIDs.Len())
	return err
}

func runVisualize(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("visualize", out)
	g := addGlobalFlags(fs)
	kind := fs.StringP("kind", "k", service.KindGraph, "graph or players")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := setup(ctx, g, out)
	if err != nil {
		return err
	}
	a.logger.WithFields(logrus.Fields{"kind": *kind}).Debug("rendering")
	return service.NewVisualizer(a.handler, out).Render(*kind)
}

func printReport(out io.Writer, report *service.ExportReport) error {
	if _, err := fmt.Fprintf(out, "%s: %d files\n", report.Dir, len(report.Files)); err != nil {
		return err
	}
	if report.RunUUID != "" {
		_, err := fmt.Fprintf(out, "run %s\n", report.RunUUID)
		return err
	}
	return nil
}
