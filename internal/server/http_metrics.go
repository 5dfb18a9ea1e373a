package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zanclinic/pulse/internal/metrics"
	"github.com/zanclinic/pulse/internal/model"
)

// defaultEventListLimit bounds the raw-event listing for the dashboard table.
const defaultEventListLimit = 100

// handleGetMetrics handles GET /v1/clients/{clientId}/metrics.
// Aggregation happens server-side so the dashboard receives the summary,
// not raw rows. Query parameters: start, end (RFC 3339 or YYYY-MM-DD,
// inclusive), tz (IANA name), scored_only (bool).
func (s *PulseServer) handleGetMetrics(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "client id is required")
		return
	}

	filter, err := eventFilterFromQuery(clientID, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := metrics.Options{Location: s.opts.MetricsTZ}
	if tz := r.URL.Query().Get("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid tz: "+tz)
			return
		}
		opts.Location = loc
	}
	if v := r.URL.Query().Get("scored_only"); v != "" {
		scored, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid scored_only: "+v)
			return
		}
		opts.ScoredOnly = scored
	}

	events, err := s.store.ListEvents(r.Context(), filter)
	if err != nil {
		// Surfaced unmodified, no retries, no partial results.
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, metrics.Compute(events, opts))
}

// handleListEvents handles GET /v1/clients/{clientId}/events.
func (s *PulseServer) handleListEvents(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "client id is required")
		return
	}

	filter, err := eventFilterFromQuery(clientID, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter.Limit = defaultEventListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	events, err := s.store.ListEvents(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Ensure events is never null in JSON output.
	if events == nil {
		events = []*model.ConversationEvent{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"total":  len(events),
	})
}

// eventFilterFromQuery builds a tenant-scoped filter from start/end query
// parameters. Both bounds are inclusive; a date-only end expands to the end
// of that day so "end=2025-06-30" includes the whole of June 30.
func eventFilterFromQuery(clientID string, r *http.Request) (model.EventFilter, error) {
	filter := model.EventFilter{ClientID: clientID}
	q := r.URL.Query()

	if v := q.Get("start"); v != "" {
		t, err := parseTimeParam(v, false)
		if err != nil {
			return filter, err
		}
		filter.Start = &t
	}
	if v := q.Get("end"); v != "" {
		t, err := parseTimeParam(v, true)
		if err != nil {
			return filter, err
		}
		filter.End = &t
	}
	return filter, nil
}

func parseTimeParam(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &timeParamError{value: value}
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

type timeParamError struct {
	value string
}

func (e *timeParamError) Error() string {
	return "invalid time value " + strconv.Quote(e.value) + ": use RFC 3339 or YYYY-MM-DD"
}
