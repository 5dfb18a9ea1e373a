package model

import "time"

// EventFilter holds criteria for querying conversation events.
// An empty ClientID matches every tenant; API handlers always set it,
// only the export scheduler lists across tenants. Start and End bound
// created_at and are inclusive on both ends.
type EventFilter struct {
	ClientID string     `json:"client_id"`
	Start    *time.Time `json:"start,omitempty"`
	End      *time.Time `json:"end,omitempty"`
	Limit    int        `json:"limit,omitempty"`
}
