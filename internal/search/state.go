// Package search drives a city weather search through its states
package search

import (
	"fmt"

	"github.com/harshitrajsinha/city-weather-go/internal/models"
)

// Status is the phase of the search screen
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// State is one immutable value of the search state machine.
// Record is set only when Loaded, Message only when Error.
type State struct {
	Status  Status
	Record  *models.WeatherRecord
	Message string
}

// Idle is the initial state
func Idle() State {
	return State{Status: StatusIdle}
}

// Loading is the state while a fetch is in flight
func Loading() State {
	return State{Status: StatusLoading}
}

// Loaded carries the record of a successful fetch
func Loaded(record models.WeatherRecord) State {
	return State{Status: StatusLoaded, Record: &record}
}

// Failed carries the user-facing message of a failed search
func Failed(message string) State {
	return State{Status: StatusError, Message: message}
}

func (s State) String() string {
	switch s.Status {
	case StatusLoaded:
		return fmt.Sprintf("loaded(%s)", s.Record.Location())
	case StatusError:
		return fmt.Sprintf("error(%s)", s.Message)
	}
	return s.Status.String()
}
