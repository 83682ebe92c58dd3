package domain

import (
	"fmt"
)

// State is the session state derived from the active record. A session with
// no active record is idle; ending a session returns it to idle for the next
// invocation, so idle and ended are the same durable state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Session holds the current open record plus the chronological history of
// completed records. The session exclusively owns its records.
type Session struct {
	ActiveRecord *TimeRecord
	History      []TimeRecord
}

// NewSession creates an empty idle session.
func NewSession() *Session {
	return &Session{}
}

// State derives the session state from the active record.
func (s *Session) State() State {
	if s.ActiveRecord == nil {
		return StateIdle
	}
	if s.ActiveRecord.Status == StatusPaused {
		return StatePaused
	}
	return StateRunning
}

// AllRecords returns history plus the active record, oldest first.
func (s *Session) AllRecords() []TimeRecord {
	records := make([]TimeRecord, 0, len(s.History)+1)
	records = append(records, s.History...)
	if s.ActiveRecord != nil {
		records = append(records, *s.ActiveRecord)
	}
	return records
}

// Validate checks the session's invariants: history contains only completed
// records in chronological order, and the active record (if any) is open.
func (s *Session) Validate() error {
	for i := range s.History {
		record := &s.History[i]
		if err := record.Validate(); err != nil {
			return err
		}
		if record.Status != StatusCompleted {
			return fmt.Errorf("history record %s is not completed", record.ID)
		}
		if i > 0 && record.StartTime.Before(s.History[i-1].StartTime) {
			return fmt.Errorf("history record %s is out of chronological order", record.ID)
		}
	}
	if s.ActiveRecord != nil {
		if err := s.ActiveRecord.Validate(); err != nil {
			return err
		}
		if !s.ActiveRecord.IsOpen() {
			return fmt.Errorf("active record %s is already completed", s.ActiveRecord.ID)
		}
	}
	return nil
}
