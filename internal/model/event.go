package model

import "time"

// Source identifies the channel a conversation arrived through.
// Well-known constants are provided below, but sources are not a closed set;
// the ingestion endpoint stores whatever value the automation tool sends.
type Source string

const (
	SourceWhatsApp Source = "whatsapp"
	SourceWebsite  Source = "website"
	SourcePhone    Source = "phone"
)

// String returns the string representation of the source.
func (s Source) String() string {
	return string(s)
}

// DefaultLanguage is assumed when the automation payload omits a language.
const DefaultLanguage = "English"

// ConversationEvent is one logged AI-assisted conversation interaction.
// Events are append-only: they are created by the ingestion endpoint and
// never updated or deleted afterwards. Each event belongs to exactly one
// tenant identified by ClientID. ConversationID is not unique; the same
// conversation may produce multiple events and no deduplication happens.
type ConversationEvent struct {
	ID                string    `json:"id"`
	ConversationID    string    `json:"conversation_id"`
	PatientID         string    `json:"patient_id,omitempty"`
	Question          string    `json:"question"`
	Response          string    `json:"response"`
	ResponseTime      float64   `json:"response_time"` // seconds; zero is a valid measurement
	SatisfactionScore *float64  `json:"satisfaction_score,omitempty"` // 0-5; nil = unscored
	Language          string    `json:"language"`
	Source            Source    `json:"source"`
	Resolved          bool      `json:"resolved"`
	BookingConversion bool      `json:"booking_conversion"`
	ClientID          string    `json:"client_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
