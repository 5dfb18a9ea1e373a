package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/zanclinic/pulse/internal/model"
)

// eventColumns is the column list used for SELECT statements on the
// conversation_events table.
const eventColumns = `id, conversation_id, patient_id, question, response,
	response_time, satisfaction_score, language, source, resolved,
	booking_conversion, client_id, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryInsertEvent(ctx context.Context, db executor, ev *model.ConversationEvent) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO conversation_events (
			id, conversation_id, patient_id, question, response,
			response_time, satisfaction_score, language, source, resolved,
			booking_conversion, client_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13, $14
		)`,
		ev.ID,
		ev.ConversationID,
		nullString(ev.PatientID),
		ev.Question,
		ev.Response,
		ev.ResponseTime,
		nullFloatPtr(ev.SatisfactionScore),
		ev.Language,
		string(ev.Source),
		ev.Resolved,
		ev.BookingConversion,
		ev.ClientID,
		ev.CreatedAt,
		ev.UpdatedAt,
	)
	return err
}

func queryListEvents(ctx context.Context, db executor, filter model.EventFilter) ([]*model.ConversationEvent, error) {
	var whereClauses []string
	var args []any
	argIdx := 0

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	// An empty client id lists events across all tenants (used by the
	// export scheduler); API handlers always scope to one tenant.
	if filter.ClientID != "" {
		whereClauses = append(whereClauses, "client_id = "+nextArg())
		args = append(args, filter.ClientID)
	}

	// Range bounds are inclusive on both ends.
	if filter.Start != nil {
		whereClauses = append(whereClauses, "created_at >= "+nextArg())
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		whereClauses = append(whereClauses, "created_at <= "+nextArg())
		args = append(args, *filter.End)
	}

	query := `SELECT ` + eventColumns + ` FROM conversation_events`
	if len(whereClauses) > 0 {
		query += ` WHERE ` + strings.Join(whereClauses, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}
