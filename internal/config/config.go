package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config global configuration (matches config/config.yaml)
type Config struct {
	Data        DataConfig                  `mapstructure:"data"`        // corpus location
	Log         LogConfig                   `mapstructure:"log"`         // logging
	Export      ExportConfig                `mapstructure:"export"`      // export defaults
	Database    DatabaseConfig              `mapstructure:"database"`    // optional export sink
	Schedule    ScheduleConfig              `mapstructure:"schedule"`    // schedule filtering
	Tournaments map[string]TournamentConfig `mapstructure:"tournaments"` // extra tournaments
}

// DataConfig where the corpus comes from
type DataConfig struct {
	Dir               string `mapstructure:"dir"`                // local data root, <dir>/<id>/...
	Source            string `mapstructure:"source"`             // local/remote
	ArchiveURL        string `mapstructure:"archive_url"`        // remote: <archive_url>/<id>.zip
	Timeout           int    `mapstructure:"timeout"`            // remote download timeout (seconds)
	Proxy             string `mapstructure:"proxy"`              // remote download proxy
	Tournament        string `mapstructure:"tournament"`         // default tournament id
	IncludeQualifiers bool   `mapstructure:"include_qualifiers"` // default qualifier mode
}

// LogConfig logging
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug/info/warn/error
	Format string `mapstructure:"format"` // text/json
}

// ExportConfig export defaults
type ExportConfig struct {
	OutputDir     string `mapstructure:"output_dir"`
	Binary        bool   `mapstructure:"binary"`         // binary or ternary label scale
	EdgeSeparator string `mapstructure:"edge_separator"` // edges.csv separator
	Workers       int    `mapstructure:"workers"`        // parallel per-date snapshot workers
}

// DatabaseConfig export sink, disabled when DSN is empty
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	BatchSize       int           `mapstructure:"batch_size"`
}

// ScheduleConfig schedule filtering
type ScheduleConfig struct {
	MatchHeaderPattern string `mapstructure:"match_header_pattern"` // regexp on matchHeader, empty keeps every match
}

// TournamentConfig static tables of a tournament not built into the binary
type TournamentConfig struct {
	Timezone          string       `mapstructure:"timezone"` // IANA zone, e.g. Europe/Paris
	QualifierStart    int64        `mapstructure:"qualifier_start"`
	MainDrawStart     int64        `mapstructure:"main_draw_start"`
	QualifierDates    DateSpan     `mapstructure:"qualifier_dates"`
	MainDrawDates     DateSpan     `mapstructure:"main_draw_dates"`
	NoGameDates       []string     `mapstructure:"no_game_dates"`
	Aliases           []AliasEntry `mapstructure:"aliases"` // a list: viper lowercases map keys
	ScheduleSeparator string       `mapstructure:"schedule_separator"`
}

// DateSpan inclusive date range
type DateSpan struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

// AliasEntry account map spelling → schedule spelling
type AliasEntry struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

// LoadConfig reads path, or config/config.yaml when path is empty; .env values override sensitive fields
func LoadConfig(path string) (*Config, error) {
	// 1. .env is optional
	_ = godotenv.Load()

	// 2. defaults, then the yaml file
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	// 3. env > yaml
	overrideFromEnv(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.source", "local")
	v.SetDefault("data.archive_url", "https://dms.sztaki.hu/~fberes/tennis")
	v.SetDefault("data.timeout", 300)
	v.SetDefault("data.tournament", "rg17")
	v.SetDefault("data.include_qualifiers", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("export.output_dir", "./exports")
	v.SetDefault("export.binary", true)
	v.SetDefault("export.edge_separator", "|")
	v.SetDefault("export.workers", 4)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.batch_size", 1000)
}

// overrideFromEnv deploy-specific and sensitive values from the environment
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("TENNISGRAPH_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("TENNISGRAPH_ARCHIVE_URL"); v != "" {
		cfg.Data.ArchiveURL = v
	}
	if v := os.Getenv("TENNISGRAPH_PROXY"); v != "" {
		cfg.Data.Proxy = v
	}
	if v := os.Getenv("TENNISGRAPH_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
