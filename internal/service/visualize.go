package service

import (
	"fmt"
	"io"
	"strconv"

	"TennisGraph/internal/model"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
)

// Visualization kinds
const (
	KindGraph   = "graph"
	KindPlayers = "players"
)

// VisualizationKinds accepted kinds
var VisualizationKinds = []string{KindGraph, KindPlayers}

// Visualizer renders per-date terminal charts and tables
type Visualizer struct {
	handler *Handler
	out     io.Writer
	height  int
}

func NewVisualizer(handler *Handler, out io.Writer) *Visualizer {
	return &Visualizer{handler: handler, out: out, height: 12}
}

// Render graph: mentions and accounts per date; players: total vs found players per date
func (v *Visualizer) Render(kind string) error {
	switch kind {
	case KindGraph:
		return v.renderGraph()
	case KindPlayers:
		return v.renderPlayers()
	}
	return fmt.Errorf("%w: visualization kind %q, choose from %v", model.ErrUnknownMode, kind, VisualizationKinds)
}

func (v *Visualizer) renderGraph() error {
	dates := v.handler.Window().Dates
	edges, nodes := v.handler.DailyActivity()
	if err := v.plot(toFloats(edges), "Number of edges (mentions)"); err != nil {
		return err
	}
	if err := v.plot(toFloats(nodes), "Number of nodes (accounts)"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(v.out)
	table.SetHeader([]string{"Date", "Edges", "Nodes"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i, d := range dates {
		table.Append([]string{d, strconv.Itoa(edges[i]), strconv.Itoa(nodes[i])})
	}
	table.Render()
	return nil
}

func (v *Visualizer) renderPlayers() error {
	records := v.handler.ShowDailyPlayers()
	found := make([]float64, len(records))
	for i, rec := range records {
		found[i] = float64(rec.NumFoundPlayers)
	}
	if err := v.plot(found, "Number of players with assigned account"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(v.out)
	table.SetHeader([]string{"Date", "Players", "Found", "Missing", "Missing %"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, rec := range records {
		table.Append([]string{
			rec.Date,
			strconv.Itoa(rec.NumPlayers),
			strconv.Itoa(rec.NumFoundPlayers),
			strconv.Itoa(rec.NumMissingPlayers),
			strconv.FormatFloat(100*rec.FracMissingPlayers, 'f', 1, 64),
		})
	}
	table.Render()

	st := v.handler.PlayerStats()
	_, err := fmt.Fprintf(v.out, "days=%d mean_players=%.1f mean_found=%.1f missing=%.1f%%±%.1f worst=%s\n",
		st.Days, st.MeanPlayers, st.MeanFound, 100*st.MeanMissingFrac, 100*st.StdMissingFrac, st.MaxMissingDate)
	return err
}

func (v *Visualizer) plot(series []float64, caption string) error {
	if len(series) == 0 {
		return nil
	}
	chart := asciigraph.Plot(series, asciigraph.Height(v.height), asciigraph.Caption(caption))
	_, err := fmt.Fprintf(v.out, "%s\n\n", chart)
	return err
}

func toFloats(in []int) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = float64(x)
	}
	return out
}
