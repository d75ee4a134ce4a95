package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	_ "TennisGraph/internal/adapter/local"
	_ "TennisGraph/internal/adapter/remote"

	"TennisGraph/internal/adapter"
	"TennisGraph/internal/config"
	"TennisGraph/internal/service"
	"TennisGraph/internal/tournament"
	"TennisGraph/internal/utils/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, pflag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run dispatches the subcommand named by args[0]
func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		printUsage(out)
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		printUsage(out)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd.run(ctx, args[1:], out)
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "usage: tennisgraph <command> [flags]")
	fmt.Fprintln(out)
	for _, name := range commandNames() {
		fmt.Fprintf(out, "  %-10s %s\n", name, commands[name].summary)
	}
}

// globalOptions flags shared by every command
type globalOptions struct {
	config       string
	tournament   string
	noQualifiers bool
	dataDir      string
	source       string
	logLevel     string
}

func addGlobalFlags(fs *pflag.FlagSet) *globalOptions {
	g := &globalOptions{}
	fs.StringVarP(&g.config, "config", "c", "", "config file (default config/config.yaml)")
	fs.StringVarP(&g.tournament, "tournament", "t", "", "tournament id (default data.tournament)")
	fs.BoolVar(&g.noQualifiers, "no-qualifiers", false, "restrict the window to the main draw")
	fs.StringVar(&g.dataDir, "data-dir", "", "corpus root directory (default data.dir)")
	fs.StringVar(&g.source, "source", "", "data source: local or remote (default data.source)")
	fs.StringVar(&g.logLevel, "log-level", "", "log level (default log.level)")
	return g
}

// app everything a command needs once flags are parsed
type app struct {
	cfg     *config.Config
	logger  *logrus.Logger
	handler *service.Handler
	out     io.Writer
}

// setup loads the config, applies flag overrides and prepares the tournament handler
func setup(ctx context.Context, g *globalOptions, out io.Writer) (*app, error) {
	// 1. config
	cfg, err := config.LoadConfig(g.config)
	if err != nil {
		return nil, err
	}
	if g.dataDir != "" {
		cfg.Data.Dir = g.dataDir
	}
	if g.source != "" {
		cfg.Data.Source = g.source
	}
	if g.tournament != "" {
		cfg.Data.Tournament = g.tournament
	}
	if g.noQualifiers {
		cfg.Data.IncludeQualifiers = false
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}

	// 2. logger
	log := logger.NewLogger(cfg.Log)
	log.WithField("tournament", cfg.Data.Tournament).Debug("config loaded")

	// 3. tournaments declared in the config file
	if err := tournament.RegisterConfigured(cfg.Tournaments); err != nil {
		return nil, err
	}

	var headerFilter *regexp.Regexp
	if p := cfg.Schedule.MatchHeaderPattern; p != "" {
		if headerFilter, err = regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("schedule.match_header_pattern: %w", err)
		}
	}

	// 4. data source and handler
	src, err := adapter.NewDataSource(&cfg.Data, log)
	if err != nil {
		return nil, err
	}
	h, err := service.NewHandler(ctx, src, cfg.Data.Tournament, cfg.Data.IncludeQualifiers, service.HandlerOptions{
		HeaderFilter: headerFilter,
		Workers:      cfg.Export.Workers,
	}, log)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: log, handler: h, out: out}, nil
}

// exportService export service with the database sink when one is configured
func (a *app) exportService() (*service.ExportService, func(), error) {
	sink, closeSink, err := openSink(a.cfg.Database, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open export database: %w", err)
	}
	if sink == nil {
		return service.NewExportService(a.handler, nil, a.logger), closeSink, nil
	}
	return service.NewExportService(a.handler, sink, a.logger), closeSink, nil
}
