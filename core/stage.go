package core

import "time"

// Stage identifies one step of the daily pipeline.
type Stage string

const (
	StageFetch    Stage = "fetch"
	StageClassify Stage = "classify"
	StageNotify   Stage = "notify"
)

// Stages lists the pipeline stages in execution order.
var Stages = []Stage{StageFetch, StageClassify, StageNotify}

// StageStatus is the lifecycle state of a stage for one run.
type StageStatus string

const (
	StatusPending    StageStatus = "pending"
	StatusInProgress StageStatus = "in_progress"
	StatusDone       StageStatus = "done"
	StatusFailed     StageStatus = "failed"
)

// Counts reports item-level outcomes for one stage execution.
type Counts struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// StageMarker is the durable record of a stage's state for a given date.
// Markers may move pending -> in_progress -> done, or to failed from any
// non-done state; they never regress from done.
type StageMarker struct {
	Status    StageStatus `json:"status"`
	Counts    Counts      `json:"counts"`
	Timestamp time.Time   `json:"timestamp"`
	Reason    string      `json:"reason,omitempty"`
}

// Done reports whether the marker records a completed stage.
func (m StageMarker) Done() bool {
	return m.Status == StatusDone
}

// RunStatus is the terminal status of one pipeline run.
type RunStatus string

const (
	RunCompleted          RunStatus = "completed"
	RunFailed             RunStatus = "failed"
	RunSkipped            RunStatus = "skipped"
	RunSkippedAlreadyDone RunStatus = "skipped-already-done"
)

// RunSummary is the compact result of one pipeline run. It always carries
// per-stage counts; failure information is never dropped when the summary
// is slimmed for external callers.
type RunSummary struct {
	Status RunStatus        `json:"status"`
	Date   string           `json:"date"`
	Stages map[Stage]Counts `json:"stages,omitempty"`
	Note   string           `json:"note,omitempty"`
}
