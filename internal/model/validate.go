package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// requiredFieldsMessage is the exact message the automation tool has been
// receiving for incomplete payloads; kept stable for wire compatibility.
const requiredFieldsMessage = "Missing required fields: conversation_id, question, response, response_time"

// ValidationError indicates one or more required payload fields are missing
// or empty. The caller must fix the payload; retrying is pointless.
type ValidationError struct {
	Fields []string
}

// Error returns the stable wire message regardless of which fields failed.
func (e *ValidationError) Error() string {
	return requiredFieldsMessage
}

// CoercionError indicates a field that should hold a number could not be
// parsed as one.
type CoercionError struct {
	Field string
	Value any
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("field %s: cannot coerce %v to a number", e.Field, e.Value)
}

// EventPayload is the raw webhook body as sent by the automation tool.
// Numeric and boolean fields are loosely typed: the tool is known to send
// numbers as JSON strings and flags as 0/1, so coercion happens in
// Normalize rather than at decode time.
type EventPayload struct {
	ConversationID    string `json:"conversation_id"`
	PatientID         string `json:"patient_id"`
	Question          string `json:"question"`
	Response          string `json:"response"`
	ResponseTime      any    `json:"response_time"`
	SatisfactionScore any    `json:"satisfaction_score"`
	Language          string `json:"language"`
	Source            string `json:"source"`
	Resolved          any    `json:"resolved"`
	BookingConversion any    `json:"booking_conversion"`
}

// Normalize validates the payload and produces a fully-populated event.
// The tenant comes from the request path, never from the body. A zero
// response_time is valid; only an absent one fails validation. Unparseable
// numerics fail with a *CoercionError instead of persisting NaN.
func (p *EventPayload) Normalize(clientID, id string, now time.Time) (*ConversationEvent, error) {
	var missing []string
	if p.ConversationID == "" {
		missing = append(missing, "conversation_id")
	}
	if p.Question == "" {
		missing = append(missing, "question")
	}
	if p.Response == "" {
		missing = append(missing, "response")
	}
	if p.ResponseTime == nil {
		missing = append(missing, "response_time")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	responseTime, err := coerceNumber("response_time", p.ResponseTime)
	if err != nil {
		return nil, err
	}

	var score *float64
	if p.SatisfactionScore != nil {
		v, err := coerceNumber("satisfaction_score", p.SatisfactionScore)
		if err != nil {
			return nil, err
		}
		score = &v
	}

	language := p.Language
	if language == "" {
		language = DefaultLanguage
	}
	source := Source(p.Source)
	if source == "" {
		source = SourceWhatsApp
	}

	ts := now.UTC()
	return &ConversationEvent{
		ID:                id,
		ConversationID:    p.ConversationID,
		PatientID:         p.PatientID,
		Question:          p.Question,
		Response:          p.Response,
		ResponseTime:      responseTime,
		SatisfactionScore: score,
		Language:          language,
		Source:            source,
		Resolved:          truthy(p.Resolved),
		BookingConversion: truthy(p.BookingConversion),
		ClientID:          clientID,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}, nil
}

// coerceNumber converts a loosely-typed JSON value to a float64, mirroring
// the coercion the automation tool relies on: numbers pass through, numeric
// strings are parsed, booleans map to 0/1. Anything else, or a value that
// parses to NaN/Inf, is rejected.
func coerceNumber(field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, &CoercionError{Field: field, Value: v}
		}
		return n, nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, &CoercionError{Field: field, Value: v}
		}
		return f, nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, &CoercionError{Field: field, Value: v}
	}
}

// truthy coerces a loosely-typed JSON value to a boolean: null, false, 0,
// and "" are false; everything else is true.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		return b != ""
	default:
		return true
	}
}
