// Package api is the seam between the CLI and the core: every operation is
// one load, at most one state transition, one save. Validation happens
// before any mutation, and a failed save leaves the previous file intact.
package api

import (
	"context"
	"time"

	"timetrack/internal/config"
	"timetrack/internal/domain"
	"timetrack/internal/logging"
	"timetrack/internal/report"
	"timetrack/internal/session"
	"timetrack/internal/store"
	"timetrack/internal/store/archive"
	"timetrack/internal/validation"
)

// Status describes the current session for display.
type Status struct {
	State       domain.State
	Record      *domain.TimeRecord // nil when idle
	Active      time.Duration      // counted duration of the current record
	ActiveToday time.Duration      // counted duration across records started today
}

// ReportOptions controls which records a report covers.
type ReportOptions struct {
	Since          *time.Time
	Until          *time.Time
	PerRecord      bool
	IncludeArchive bool
}

// API defines the interface for all session and reporting operations.
type API interface {
	// Session transitions
	Start(ctx context.Context, label string) (*domain.TimeRecord, error)
	Switch(ctx context.Context, label string) (sealed *domain.TimeRecord, opened *domain.TimeRecord, err error)
	Pause(ctx context.Context) (*domain.TimeRecord, error)
	Resume(ctx context.Context) (*domain.TimeRecord, error)
	End(ctx context.Context) (*domain.TimeRecord, error)

	// Queries
	Status(ctx context.Context) (*Status, error)
	Report(ctx context.Context, opts ReportOptions) ([]report.Row, error)

	// Maintenance
	ArchiveBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// ArchiveOpener lazily opens the archive database; status and transition
// commands never touch it.
type ArchiveOpener func() (archive.Repository, error)

type apiImpl struct {
	store          store.Store
	machine        *session.Machine
	labelValidator *validation.LabelValidator
	openArchive    ArchiveOpener
	cfg            *config.Config
	now            func() time.Time
}

// New creates a new API instance.
func New(st store.Store, openArchive ArchiveOpener, cfg *config.Config) API {
	return &apiImpl{
		store:          st,
		machine:        session.NewMachine(),
		labelValidator: validation.NewLabelValidator(),
		openArchive:    openArchive,
		cfg:            cfg,
		now:            time.Now,
	}
}

func (a *apiImpl) Start(ctx context.Context, label string) (*domain.TimeRecord, error) {
	resolved, err := a.labelValidator.ResolveLabel(label, a.cfg.Task.DefaultLabel)
	if err != nil {
		return nil, err
	}

	sess, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	record, err := a.machine.Start(sess, resolved)
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	logging.Debugf("api: started record %s (%s)\n", record.ID, record.TaskLabel)
	return record, nil
}

func (a *apiImpl) Switch(ctx context.Context, label string) (*domain.TimeRecord, *domain.TimeRecord, error) {
	resolved, err := a.labelValidator.ResolveLabel(label, a.cfg.Task.DefaultLabel)
	if err != nil {
		return nil, nil, err
	}

	sess, err := a.store.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	sealed, opened, err := a.machine.Switch(sess, resolved)
	if err != nil {
		return nil, nil, err
	}
	if err := a.store.Save(ctx, sess); err != nil {
		return nil, nil, err
	}
	logging.Debugf("api: switched %s -> %s\n", sealed.TaskLabel, opened.TaskLabel)
	return sealed, opened, nil
}

func (a *apiImpl) Pause(ctx context.Context) (*domain.TimeRecord, error) {
	return a.transition(ctx, a.machine.Pause)
}

func (a *apiImpl) Resume(ctx context.Context) (*domain.TimeRecord, error) {
	return a.transition(ctx, a.machine.Resume)
}

func (a *apiImpl) End(ctx context.Context) (*domain.TimeRecord, error) {
	return a.transition(ctx, a.machine.End)
}

// transition runs one label-free load/mutate/save cycle.
func (a *apiImpl) transition(ctx context.Context, op func(*domain.Session) (*domain.TimeRecord, error)) (*domain.TimeRecord, error) {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	record, err := op(sess)
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return record, nil
}

func (a *apiImpl) Status(ctx context.Context) (*Status, error) {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := a.now()
	status := &Status{State: sess.State()}
	if sess.ActiveRecord != nil {
		status.Record = sess.ActiveRecord
		status.Active = sess.ActiveRecord.ActiveDuration(now)
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, record := range sess.AllRecords() {
		if record.StartTime.Before(startOfDay) {
			continue
		}
		status.ActiveToday += record.ActiveDuration(now)
	}
	return status, nil
}

func (a *apiImpl) Report(ctx context.Context, opts ReportOptions) ([]report.Row, error) {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := a.now()
	entries := report.EntriesFromSession(sess, now)

	if opts.IncludeArchive {
		repo, err := a.openArchive()
		if err != nil {
			return nil, err
		}
		defer repo.Close()

		archived, err := repo.ListRecordsBetween(ctx, opts.Since, opts.Until)
		if err != nil {
			return nil, err
		}
		entries = append(report.EntriesFromArchive(archived), entries...)
	}

	rows := report.Aggregate(entries, report.Options{
		Since:     opts.Since,
		Until:     opts.Until,
		PerRecord: opts.PerRecord,
	})
	return rows, nil
}

// ArchiveBefore moves completed records that ended before cutoff out of the
// session file and into the archive database. It returns how many records
// moved. The archive insert happens first and is idempotent, so a failure
// while rewriting the session file is safe to retry.
func (a *apiImpl) ArchiveBefore(ctx context.Context, cutoff time.Time) (int, error) {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return 0, err
	}

	var toArchive []domain.TimeRecord
	var remaining []domain.TimeRecord
	for _, record := range sess.History {
		if record.EndTime != nil && record.EndTime.Before(cutoff) {
			toArchive = append(toArchive, record)
		} else {
			remaining = append(remaining, record)
		}
	}
	if len(toArchive) == 0 {
		return 0, nil
	}

	repo, err := a.openArchive()
	if err != nil {
		return 0, err
	}
	defer repo.Close()

	if err := repo.InsertRecords(ctx, toArchive); err != nil {
		return 0, err
	}

	sess.History = remaining
	if err := a.store.Save(ctx, sess); err != nil {
		return 0, err
	}
	logging.Debugf("api: archived %d records before %s\n", len(toArchive), cutoff.Format(time.RFC3339))
	return len(toArchive), nil
}
