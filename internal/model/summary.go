package model

// Summary corpus overview written next to every export
type Summary struct {
	DataID            string   `json:"data_id"`
	IncludeQualifiers bool     `json:"include_qualifiers"`
	Dates             []string `json:"dates"`
	DatesWithNoGame   []string `json:"dates_with_no_game"`
	StartTime         int64    `json:"start_time"`
	EndTime           int64    `json:"end_time"`
	NumberOfEdges     int      `json:"number_of_edges"`
	NumberOfNodes     int      `json:"number_of_nodes"`
}
