package archive

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanRecord scans a single archived record from a database row
func ScanRecord(scanner Scanner) (*Record, error) {
	record := &Record{}
	var startTime, endTime string

	err := scanner.Scan(
		&record.ID,
		&record.TaskLabel,
		&startTime,
		&endTime,
		&record.ActiveSeconds,
	)
	if err != nil {
		return nil, err
	}

	if record.StartTime, err = ParseTimeFromDB(startTime); err != nil {
		return nil, err
	}
	if record.EndTime, err = ParseTimeFromDB(endTime); err != nil {
		return nil, err
	}

	return record, nil
}

// ScanRecords scans multiple archived records from database rows
func ScanRecords(rows Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		record, err := ScanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
