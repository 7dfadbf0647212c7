// Package events defines the event payloads published on the bus during a
// generation run. Subscribers (tracing, logging) consume them without the
// pipeline knowing about either.
package events

import "time"

// GenerateStart is published once per run, before any phase executes.
type GenerateStart struct {
	RunID  string
	Schema string // schema file name
	Docs   []string
}

// GenerateFinish is published once per run after the output is written or
// the run failed.
type GenerateFinish struct {
	RunID    string
	Err      error
	Duration time.Duration
}

// PhaseStart marks the beginning of a pipeline phase (collect, generate,
// render).
type PhaseStart struct {
	Phase string
}

// PhaseFinish marks the end of a pipeline phase.
type PhaseFinish struct {
	Phase    string
	Err      error
	Duration time.Duration
}
