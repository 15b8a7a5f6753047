package models

import "time"

type QueryOutcome string

const (
	QueryOutcomeOK    QueryOutcome = "ok"
	QueryOutcomeError QueryOutcome = "error"
)

// QueryRecord is one executed statement in the local query history.
type QueryRecord struct {
	ID        string
	SQL       string
	Outcome   QueryOutcome
	RowCount  int
	Duration  time.Duration
	Error     string
	CreatedAt time.Time
}
