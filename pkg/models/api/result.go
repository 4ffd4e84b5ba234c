package api

import "time"

// RunResult is the wire shape returned to the trigger collaborator and by
// the manual-run endpoint.
type RunResult struct {
	Status      string    `json:"status"`
	StartedAt   time.Time `json:"started_at"`
	ElapsedSecs float64   `json:"elapsed_seconds"`
	Counts      RunCounts `json:"counts"`
	Summary     string    `json:"summary,omitempty"`
	Error       *RunError `json:"error,omitempty"`
}

type RunCounts struct {
	RegionsScanned int `json:"regions_scanned"`
	ResourcesFound int `json:"resources_found"`
	CostLineItems  int `json:"cost_line_items"`
}

type RunError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
