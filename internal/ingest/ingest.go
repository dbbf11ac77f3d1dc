package ingest

import (
	"time"
)

// Status is the terminal (or in-flight) state of one sync invocation.
type Status string

const (
	StatusRunning  Status = "RUNNING"
	StatusNoUpdate Status = "NO_UPDATE"
	StatusSynced   Status = "COMPLETED"
	StatusPartial  Status = "PARTIAL"
	StatusFailed   Status = "FAILED"
)

// Run is the audit record of one sync invocation.
type Run struct {
	ID              string
	StartedAt       time.Time
	FinishedAt      *time.Time
	Status          Status
	Forced          bool
	TermID          string
	TermName        string
	RecordsFetched  int
	SubjectsWritten int
	SubjectsFailed  []string
	Error           string
}
