package model

import (
	"time"

	"gorm.io/datatypes"
)

// ExportRun one export invocation, the parent row of everything persisted by the sink
type ExportRun struct {
	ID                uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:auto increment id"`
	RunUUID           string         `gorm:"column:run_uuid;type:varchar(64);uniqueIndex;not null;comment:export run id"`
	TournamentID      string         `gorm:"column:tournament_id;type:varchar(16);not null;comment:tournament id"`
	IncludeQualifiers bool           `gorm:"column:include_qualifiers;type:boolean;default:true;comment:qualifier days included"`
	LabelScale        string         `gorm:"column:label_scale;type:varchar(16);not null;comment:binary/ternary"`
	Dates             datatypes.JSON `gorm:"column:dates;not null;comment:valid dates"`
	NoGameDates       datatypes.JSON `gorm:"column:no_game_dates;not null;comment:dates without matches"`
	StartTime         int64          `gorm:"column:start_time;not null;comment:window start epoch"`
	EndTime           int64          `gorm:"column:end_time;not null;comment:window end epoch"`
	NumberOfEdges     int            `gorm:"column:number_of_edges;default:0;comment:mentions in window"`
	NumberOfNodes     int            `gorm:"column:number_of_nodes;default:0;comment:accounts in window"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime;comment:created at"`
}

// DailyPlayerRow persisted DailyPlayerRecord
type DailyPlayerRow struct {
	ID                 uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	RunID              uint64         `gorm:"column:run_id;not null;uniqueIndex:uq_run_date"`
	Date               string         `gorm:"column:date;type:varchar(10);not null;uniqueIndex:uq_run_date"`
	Players            datatypes.JSON `gorm:"column:players;not null"`
	FoundPlayers       datatypes.JSON `gorm:"column:found_players;not null"`
	MissingPlayers     datatypes.JSON `gorm:"column:missing_players;not null"`
	NumPlayers         int            `gorm:"column:num_players;default:0"`
	NumFoundPlayers    int            `gorm:"column:num_found_players;default:0"`
	NumMissingPlayers  int            `gorm:"column:num_missing_players;default:0"`
	FracMissingPlayers float64        `gorm:"column:frac_missing_players;default:0"`
}

// LabelRow one (date, node) label of an export run
type LabelRow struct {
	ID        uint64  `gorm:"column:id;primaryKey;autoIncrement"`
	RunID     uint64  `gorm:"column:run_id;not null;uniqueIndex:uq_run_date_node"`
	DateIndex int     `gorm:"column:date_index;not null;uniqueIndex:uq_run_date_node"`
	Date      string  `gorm:"column:date;type:varchar(10);not null"`
	NodeID    int64   `gorm:"column:node_id;not null;uniqueIndex:uq_run_date_node"`
	Label     float64 `gorm:"column:label;not null"`
}

func (ExportRun) TableName() string      { return "export_runs" }
func (DailyPlayerRow) TableName() string { return "daily_player_rows" }
func (LabelRow) TableName() string       { return "label_rows" }
