package models

import (
	"time"

	"github.com/google/uuid"
)

// Result is what a driver or runner call reports back.
type Result struct {
	Outcome  Outcome
	ExitCode int
	LogPath  string
}

// Run is the persisted record of one invocation.
type Run struct {
	ID            uuid.UUID
	Operation     Operation
	Host          string
	Username      string
	Trust         bool
	Force         bool
	ExpectFailure bool
	Outcome       Outcome
	ExitCode      int
	LogPath       string
	Error         string
	StartedAt     time.Time
	FinishedAt    time.Time
}

func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Passed reports whether the run ended the way the caller asked for.
func (r Run) Passed() bool {
	if r.Error != "" {
		return false
	}
	if r.ExpectFailure {
		return r.Outcome == OutcomeExpectedFailure
	}
	return r.Outcome == OutcomeSuccess
}
