package postgres

import (
	"database/sql"

	"github.com/zanclinic/pulse/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanEvent scans a single row into a model.ConversationEvent.
// The row must contain columns in the order defined by eventColumns.
func scanEvent(row scannable) (*model.ConversationEvent, error) {
	var ev model.ConversationEvent
	var (
		patientID sql.NullString
		score     sql.NullFloat64
		source    string
	)

	err := row.Scan(
		&ev.ID,
		&ev.ConversationID,
		&patientID,
		&ev.Question,
		&ev.Response,
		&ev.ResponseTime,
		&score,
		&ev.Language,
		&source,
		&ev.Resolved,
		&ev.BookingConversion,
		&ev.ClientID,
		&ev.CreatedAt,
		&ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	ev.PatientID = patientID.String
	ev.Source = model.Source(source)
	if score.Valid {
		v := score.Float64
		ev.SatisfactionScore = &v
	}

	return &ev, nil
}

// scanEvents scans multiple rows into a slice of event pointers.
func scanEvents(rows *sql.Rows) ([]*model.ConversationEvent, error) {
	var events []*model.ConversationEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullFloatPtr converts a *float64 to a sql.NullFloat64.
func nullFloatPtr(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
