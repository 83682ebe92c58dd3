// Package archive moves sealed time records out of the live session file and
// into a local SQLite database. Archived records keep their identity, label,
// interval and counted active duration; the fine-grained pause timeline is
// collapsed on the way in.
package archive

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
	"timetrack/internal/logging"
)

// Record is an archived time record. ActiveSeconds preserves the counted
// duration that was computed from the record's timeline before archiving.
type Record struct {
	ID            string
	TaskLabel     string
	StartTime     time.Time
	EndTime       time.Time
	ActiveSeconds int64
}

// ActiveDuration returns the counted active duration of the archived record.
func (r *Record) ActiveDuration() time.Duration {
	return time.Duration(r.ActiveSeconds) * time.Second
}

// Repository defines the interface for archive database operations
type Repository interface {
	// InsertRecords stores sealed records in one transaction.
	InsertRecords(ctx context.Context, records []domain.TimeRecord) error

	// GetRecord returns one archived record by id, or a not-found error.
	GetRecord(ctx context.Context, id string) (*Record, error)

	// ListRecords returns all archived records ordered by start time.
	ListRecords(ctx context.Context) ([]*Record, error)

	// ListRecordsBetween returns archived records whose start time falls in
	// the half-open interval [since, until). A nil bound is unbounded.
	ListRecordsBetween(ctx context.Context, since, until *time.Time) ([]*Record, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates an archive repository backed by the SQLite database at path,
// applying any pending schema migrations.
func Open(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewArchiveError("open database", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewArchiveError("run migrations", err)
	}
	logging.Debugln("archive: database ready at", path)
	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// InsertRecords stores sealed records in one transaction. Only completed
// records may be archived; an open record is rejected up front so a partial
// batch is never written.
func (r *SQLiteRepository) InsertRecords(ctx context.Context, records []domain.TimeRecord) error {
	for i := range records {
		if records[i].IsOpen() {
			return errors.NewValidationError("cannot archive an open record", nil).
				WithContext("record_id", records[i].ID)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewArchiveError("begin transaction", err)
	}
	defer tx.Rollback()

	// INSERT OR REPLACE keyed on the record id makes a retried archive run
	// idempotent when the previous run archived but failed to rewrite the
	// session file.
	query := `
	INSERT OR REPLACE INTO archived_records (id, task_label, start_time, end_time, active_seconds)
	VALUES (?, ?, ?, ?, ?)`

	for i := range records {
		record := &records[i]
		_, err := tx.ExecContext(ctx, query,
			record.ID,
			record.TaskLabel,
			FormatTimeForDB(record.StartTime),
			FormatTimeForDB(*record.EndTime),
			int64(record.ActiveDuration(*record.EndTime)/time.Second),
		)
		if err != nil {
			return errors.NewArchiveError("insert record", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewArchiveError("commit transaction", err)
	}
	return nil
}

// GetRecord returns one archived record by id.
func (r *SQLiteRepository) GetRecord(ctx context.Context, id string) (*Record, error) {
	query := `
	SELECT id, task_label, start_time, end_time, active_seconds
	FROM archived_records
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanRecord, "archived record", id, id)
}

// ListRecords returns all archived records ordered by start time.
func (r *SQLiteRepository) ListRecords(ctx context.Context) ([]*Record, error) {
	query := `
	SELECT id, task_label, start_time, end_time, active_seconds
	FROM archived_records
	ORDER BY start_time`

	return QueryMultiple(ctx, r.db, query, ScanRecords, "archived records")
}

// ListRecordsBetween returns archived records whose start time falls in the
// half-open interval [since, until).
func (r *SQLiteRepository) ListRecordsBetween(ctx context.Context, since, until *time.Time) ([]*Record, error) {
	query := `
	SELECT id, task_label, start_time, end_time, active_seconds
	FROM archived_records
	WHERE 1=1`
	args := []interface{}{}

	if since != nil {
		query += " AND start_time >= ?"
		args = append(args, FormatTimeForDB(*since))
	}
	if until != nil {
		query += " AND start_time < ?"
		args = append(args, FormatTimeForDB(*until))
	}
	query += " ORDER BY start_time"

	return QueryMultiple(ctx, r.db, query, ScanRecords, "archived records", args...)
}
