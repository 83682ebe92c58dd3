package store

import (
	"fmt"

	"timetrack/internal/domain"
)

// toDoc converts a domain session to its on-disk shape.
func toDoc(session *domain.Session) sessionDoc {
	doc := sessionDoc{
		History: make([]recordDoc, len(session.History)),
	}
	for i := range session.History {
		doc.History[i] = recordToDoc(&session.History[i])
	}
	if session.ActiveRecord != nil {
		active := recordToDoc(session.ActiveRecord)
		doc.ActiveRecord = &active
	}
	return doc
}

func recordToDoc(record *domain.TimeRecord) recordDoc {
	doc := recordDoc{
		ID:        record.ID,
		TaskLabel: record.TaskLabel,
		StartTime: FormatTime(record.StartTime),
		EndTime:   FormatTimePtr(record.EndTime),
		Status:    string(record.Status),
		Timeline:  make([]spanDoc, len(record.Timeline)),
	}
	for i, span := range record.Timeline {
		doc.Timeline[i] = spanDoc{
			Start: FormatTime(span.Start),
			End:   FormatTimePtr(span.End),
		}
	}
	return doc
}

// fromDoc converts the on-disk shape back into a domain session. Malformed
// fields produce plain errors; the caller wraps them as corrupt-store.
func fromDoc(doc sessionDoc) (*domain.Session, error) {
	session := domain.NewSession()
	if len(doc.History) > 0 {
		session.History = make([]domain.TimeRecord, len(doc.History))
	}
	for i, recDoc := range doc.History {
		record, err := recordFromDoc(recDoc)
		if err != nil {
			return nil, err
		}
		session.History[i] = *record
	}
	if doc.ActiveRecord != nil {
		record, err := recordFromDoc(*doc.ActiveRecord)
		if err != nil {
			return nil, err
		}
		session.ActiveRecord = record
	}
	return session, nil
}

func recordFromDoc(doc recordDoc) (*domain.TimeRecord, error) {
	start, err := ParseTime(doc.StartTime)
	if err != nil {
		return nil, fmt.Errorf("record %s: bad start_time %q: %w", doc.ID, doc.StartTime, err)
	}
	end, err := ParseTimePtr(doc.EndTime)
	if err != nil {
		return nil, fmt.Errorf("record %s: bad end_time %q: %w", doc.ID, doc.EndTime, err)
	}
	record := &domain.TimeRecord{
		ID:        doc.ID,
		TaskLabel: doc.TaskLabel,
		StartTime: start,
		EndTime:   end,
		Status:    domain.RecordStatus(doc.Status),
		Timeline:  make([]domain.Span, len(doc.Timeline)),
	}
	for i, spanDoc := range doc.Timeline {
		spanStart, err := ParseTime(spanDoc.Start)
		if err != nil {
			return nil, fmt.Errorf("record %s: bad span start %q: %w", doc.ID, spanDoc.Start, err)
		}
		spanEnd, err := ParseTimePtr(spanDoc.End)
		if err != nil {
			return nil, fmt.Errorf("record %s: bad span end %q: %w", doc.ID, spanDoc.End, err)
		}
		record.Timeline[i] = domain.Span{Start: spanStart, End: spanEnd}
	}
	return record, nil
}
