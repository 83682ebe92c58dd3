// Package session enforces the valid transitions between the idle, running
// and paused states of a tracking session. All transitions validate before
// they mutate: a rejected transition returns an invalid-transition error and
// leaves the session untouched.
package session

import (
	"time"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
)

// timeNow is a variable so tests can substitute a fixed clock. Times are
// truncated to whole seconds to match the store's encoding precision.
var timeNow = func() time.Time {
	return time.Now().Truncate(time.Second)
}

// Machine applies validated state transitions to a session.
type Machine struct {
	now func() time.Time
}

// NewMachine creates a state machine using the package clock.
func NewMachine() *Machine {
	return &Machine{now: timeNow}
}

// NewMachineWithClock creates a state machine with an explicit clock.
func NewMachineWithClock(now func() time.Time) *Machine {
	return &Machine{now: now}
}

// allowedActions lists the transitions permitted from each state, used to
// build actionable invalid-transition messages.
func allowedActions(state domain.State) []string {
	switch state {
	case domain.StateIdle:
		return []string{"start"}
	case domain.StateRunning:
		return []string{"switch", "pause", "end"}
	case domain.StatePaused:
		return []string{"switch", "resume", "end"}
	default:
		return nil
	}
}

func invalidTransition(action string, state domain.State) error {
	return errors.NewInvalidTransitionError(action, string(state), allowedActions(state))
}

// Start opens a new running record for label. Valid only while idle.
func (m *Machine) Start(s *domain.Session, label string) (*domain.TimeRecord, error) {
	if state := s.State(); state != domain.StateIdle {
		return nil, invalidTransition("start", state)
	}
	record := domain.NewTimeRecord(label, m.now())
	s.ActiveRecord = record
	return record, nil
}

// Switch seals the active record and opens a new running record for label in
// one step. Valid while running or paused.
func (m *Machine) Switch(s *domain.Session, label string) (sealed *domain.TimeRecord, opened *domain.TimeRecord, err error) {
	if state := s.State(); state == domain.StateIdle {
		return nil, nil, invalidTransition("switch", state)
	}
	now := m.now()
	sealed = m.sealActive(s, now)
	opened = domain.NewTimeRecord(label, now)
	s.ActiveRecord = opened
	return sealed, opened, nil
}

// Pause closes the active record's open span and marks it paused. Valid only
// while running. The record's end time stays unset.
func (m *Machine) Pause(s *domain.Session) (*domain.TimeRecord, error) {
	if state := s.State(); state != domain.StateRunning {
		return nil, invalidTransition("pause", state)
	}
	s.ActiveRecord.CloseSpan(m.now())
	s.ActiveRecord.Status = domain.StatusPaused
	return s.ActiveRecord, nil
}

// Resume opens a fresh span on the paused active record and marks it running.
// Valid only while paused.
func (m *Machine) Resume(s *domain.Session) (*domain.TimeRecord, error) {
	if state := s.State(); state != domain.StatePaused {
		return nil, invalidTransition("resume", state)
	}
	s.ActiveRecord.OpenSpan(m.now())
	s.ActiveRecord.Status = domain.StatusRunning
	return s.ActiveRecord, nil
}

// End seals the active record and returns the session to idle. Valid while
// running or paused.
func (m *Machine) End(s *domain.Session) (*domain.TimeRecord, error) {
	if state := s.State(); state == domain.StateIdle {
		return nil, invalidTransition("end", state)
	}
	return m.sealActive(s, m.now()), nil
}

// sealActive completes the active record at t, appends it to history and
// clears the active pointer.
func (m *Machine) sealActive(s *domain.Session, t time.Time) *domain.TimeRecord {
	record := s.ActiveRecord
	record.Seal(t)
	s.History = append(s.History, *record)
	s.ActiveRecord = nil
	return record
}
