package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
)

var t0 = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

// testClock returns a machine whose clock can be advanced by the test.
func testClock() (*Machine, func(d time.Duration)) {
	current := t0
	machine := NewMachineWithClock(func() time.Time { return current })
	advance := func(d time.Duration) { current = current.Add(d) }
	return machine, advance
}

func assertInvalidTransition(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.IsType(errors.ErrorTypeInvalidTransition))
}

func TestMachine_StartEnd(t *testing.T) {
	machine, advance := testClock()
	session := domain.NewSession()

	record, err := machine.Start(session, "writing")
	require.NoError(t, err)
	assert.Equal(t, domain.StateRunning, session.State())
	assert.Equal(t, "writing", record.TaskLabel)
	assert.Equal(t, t0, record.StartTime)

	advance(30 * time.Minute)
	sealed, err := machine.End(session)
	require.NoError(t, err)

	assert.Equal(t, domain.StateIdle, session.State())
	require.Len(t, session.History, 1)
	assert.Equal(t, domain.StatusCompleted, sealed.Status)
	require.NotNil(t, sealed.EndTime)
	assert.True(t, sealed.EndTime.After(sealed.StartTime))
	assert.Equal(t, 30*time.Minute, sealed.ActiveDuration(*sealed.EndTime))
}

func TestMachine_Switch(t *testing.T) {
	machine, advance := testClock()
	session := domain.NewSession()

	_, err := machine.Start(session, "writing")
	require.NoError(t, err)

	advance(20 * time.Minute)
	sealed, opened, err := machine.Switch(session, "email")
	require.NoError(t, err)

	// Exactly one record sealed, exactly one opened.
	require.Len(t, session.History, 1)
	assert.Equal(t, "writing", sealed.TaskLabel)
	assert.Equal(t, domain.StatusCompleted, sealed.Status)
	assert.Equal(t, "email", opened.TaskLabel)
	assert.Same(t, opened, session.ActiveRecord)
	assert.Equal(t, domain.StateRunning, session.State())

	// The new record starts exactly when the old one ends.
	assert.Equal(t, *sealed.EndTime, opened.StartTime)
}

func TestMachine_SwitchWhilePaused(t *testing.T) {
	machine, advance := testClock()
	session := domain.NewSession()

	_, err := machine.Start(session, "writing")
	require.NoError(t, err)
	advance(10 * time.Minute)
	_, err = machine.Pause(session)
	require.NoError(t, err)
	advance(5 * time.Minute)

	sealed, _, err := machine.Switch(session, "email")
	require.NoError(t, err)

	// The paused stretch is not part of the counted duration.
	assert.Equal(t, 10*time.Minute, sealed.ActiveDuration(*sealed.EndTime))
	assert.Equal(t, domain.StateRunning, session.State())
}

func TestMachine_PauseResumeEnd(t *testing.T) {
	// start at T0, pause at T0+10m, resume at T0+25m, end at T0+30m:
	// the counted duration is 15m.
	machine, advance := testClock()
	session := domain.NewSession()

	_, err := machine.Start(session, "writing")
	require.NoError(t, err)

	advance(10 * time.Minute)
	record, err := machine.Pause(session)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, record.Status)
	assert.Nil(t, record.EndTime)

	advance(15 * time.Minute)
	record, err = machine.Resume(session)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, record.Status)

	advance(5 * time.Minute)
	sealed, err := machine.End(session)
	require.NoError(t, err)

	assert.Equal(t, "writing", sealed.TaskLabel)
	assert.Equal(t, 15*time.Minute, sealed.ActiveDuration(*sealed.EndTime))
	require.Len(t, sealed.Timeline, 2)
}

func TestMachine_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(m *Machine, s *domain.Session)
		action  func(m *Machine, s *domain.Session) error
	}{
		{
			name:    "start while running",
			prepare: func(m *Machine, s *domain.Session) { m.Start(s, "writing") },
			action: func(m *Machine, s *domain.Session) error {
				_, err := m.Start(s, "email")
				return err
			},
		},
		{
			name: "start while paused",
			prepare: func(m *Machine, s *domain.Session) {
				m.Start(s, "writing")
				m.Pause(s)
			},
			action: func(m *Machine, s *domain.Session) error {
				_, err := m.Start(s, "email")
				return err
			},
		},
		{
			name:    "switch while idle",
			prepare: func(m *Machine, s *domain.Session) {},
			action: func(m *Machine, s *domain.Session) error {
				_, _, err := m.Switch(s, "email")
				return err
			},
		},
		{
			name:    "pause while idle",
			prepare: func(m *Machine, s *domain.Session) {},
			action: func(m *Machine, s *domain.Session) error {
				_, err := m.Pause(s)
				return err
			},
		},
		{
			name: "pause while paused",
			prepare: func(m *Machine, s *domain.Session) {
				m.Start(s, "writing")
				m.Pause(s)
			},
			action: func(m *Machine, s *domain.Session) error {
				_, err := m.Pause(s)
				return err
			},
		},
		{
			name:    "resume while idle",
			prepare: func(m *Machine, s *domain.Session) {},
			action: func(m *Machine, s *domain.Session) error {
				_, err := m.Resume(s)
				return err
			},
		},
		{
			name:    "resume while running",
			prepare: func(m *Machine, s *domain.Session) { m.Start(s, "writing") },
			action: func(m *Machine, s *domain.Session) error {
				_, err := m.Resume(s)
				return err
			},
		},
		{
			name:    "end while idle",
			prepare: func(m *Machine, s *domain.Session) {},
			action: func(m *Machine, s *domain.Session) error {
				_, err := m.End(s)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine, _ := testClock()
			session := domain.NewSession()
			tt.prepare(machine, session)

			// Snapshot the session, attempt the transition, and verify the
			// rejection left everything untouched.
			before := snapshot(t, session)

			err := tt.action(machine, session)
			assertInvalidTransition(t, err)

			assert.Equal(t, before, snapshot(t, session))
		})
	}
}

func TestMachine_EndAfterPause(t *testing.T) {
	machine, advance := testClock()
	session := domain.NewSession()

	_, err := machine.Start(session, "writing")
	require.NoError(t, err)
	advance(10 * time.Minute)
	_, err = machine.Pause(session)
	require.NoError(t, err)
	advance(5 * time.Minute)

	sealed, err := machine.End(session)
	require.NoError(t, err)

	assert.Equal(t, domain.StateIdle, session.State())
	assert.Equal(t, 10*time.Minute, sealed.ActiveDuration(*sealed.EndTime))
	assert.NoError(t, session.Validate())
}

func TestMachine_RestartAfterEnd(t *testing.T) {
	machine, advance := testClock()
	session := domain.NewSession()

	_, err := machine.Start(session, "writing")
	require.NoError(t, err)
	advance(time.Minute)
	_, err = machine.End(session)
	require.NoError(t, err)

	// A new start is allowed once the previous session ended.
	_, err = machine.Start(session, "email")
	require.NoError(t, err)
	assert.Equal(t, domain.StateRunning, session.State())
	assert.Len(t, session.History, 1)
}

func TestMachine_SingleOpenRecordInvariant(t *testing.T) {
	machine, advance := testClock()
	session := domain.NewSession()

	steps := []func() error{
		func() error { _, err := machine.Start(session, "a"); return err },
		func() error { _, err := machine.Pause(session); return err },
		func() error { _, err := machine.Resume(session); return err },
		func() error { _, _, err := machine.Switch(session, "b"); return err },
		func() error { _, err := machine.Pause(session); return err },
		func() error { _, _, err := machine.Switch(session, "c"); return err },
		func() error { _, err := machine.End(session); return err },
		func() error { _, err := machine.Start(session, "d"); return err },
	}

	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		advance(time.Minute)

		openCount := 0
		for _, record := range session.AllRecords() {
			if record.IsOpen() {
				openCount++
			}
		}
		assert.LessOrEqual(t, openCount, 1, "step %d", i)
		assert.NoError(t, session.Validate(), "step %d", i)
	}
}

// snapshot serializes the session state for byte-for-byte comparison.
func snapshot(t *testing.T, session *domain.Session) string {
	t.Helper()
	out := ""
	for _, record := range session.AllRecords() {
		out += record.ID + "|" + record.TaskLabel + "|" + string(record.Status) + "|" + record.StartTime.String()
		if record.EndTime != nil {
			out += "|" + record.EndTime.String()
		}
		for _, span := range record.Timeline {
			out += "#" + span.Start.String()
			if span.End != nil {
				out += "-" + span.End.String()
			}
		}
		out += "\n"
	}
	out += string(session.State())
	return out
}
