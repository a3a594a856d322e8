package models

import "time"

// Generation is one recorded write of a workflow document.
type Generation struct {
	ID            int64
	CreatedAt     time.Time
	OutputPath    string
	CatalogSource string
	Digest        string
	NodeCount     int
	EdgeCount     int
	AgentCount    int
	Passed        bool
}
