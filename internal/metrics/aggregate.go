// Package metrics computes dashboard summary statistics from a tenant's
// conversation events. Aggregation is a pure function over the record set:
// no state is kept between calls and concurrent use needs no coordination.
package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/zanclinic/pulse/internal/model"
)

// Options control aggregation behavior.
type Options struct {
	// Location is the timezone used for hourly activity bucketing.
	// Nil means UTC. The dashboard historically bucketed in whatever
	// timezone the browser happened to run in; an explicit location keeps
	// results deterministic.
	Location *time.Location

	// ScoredOnly averages satisfaction over scored conversations only.
	// The default (false) replicates the dashboard's historical behavior:
	// unscored conversations count as zero in both the numerator and the
	// denominator, dragging the average down.
	ScoredOnly bool
}

// TopQuestion is one entry in the ranked question list.
type TopQuestion struct {
	Question     string  `json:"question"`
	Count        int     `json:"count"`
	ResolvedRate float64 `json:"resolved_rate"` // percent of occurrences marked resolved
}

// HourlyBucket counts conversations created within one hour of the day.
type HourlyBucket struct {
	Hour          string `json:"hour"` // "HH:00"
	Conversations int    `json:"conversations"`
}

// Summary is the fixed set of statistics rendered on the dashboard cards.
type Summary struct {
	TotalConversations    int            `json:"total_conversations"`
	AvgResponseTime       float64        `json:"avg_response_time"`
	SatisfactionScore     float64        `json:"satisfaction_score"`
	BookingConversionRate float64        `json:"booking_conversion_rate"`
	LanguageDistribution  map[string]int `json:"language_distribution"`
	TopQuestions          []TopQuestion  `json:"top_questions"`
	HourlyActivity        []HourlyBucket `json:"hourly_activity"`
}

// maxTopQuestions caps the ranked question list.
const maxTopQuestions = 5

// Compute aggregates a set of events (all belonging to one tenant, already
// range-filtered by the caller) into a Summary. An empty set yields a zeroed
// summary with empty, non-nil collections; it is a valid state, not an error.
func Compute(events []*model.ConversationEvent, opts Options) *Summary {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	s := &Summary{
		TotalConversations:   len(events),
		LanguageDistribution: make(map[string]int),
		TopQuestions:         []TopQuestion{},
		HourlyActivity:       []HourlyBucket{},
	}
	if len(events) == 0 {
		return s
	}

	var responseTimeSum, scoreSum float64
	var scored, conversions int
	for _, ev := range events {
		responseTimeSum += ev.ResponseTime
		if ev.SatisfactionScore != nil {
			scoreSum += *ev.SatisfactionScore
			scored++
		}
		if ev.BookingConversion {
			conversions++
		}
		s.LanguageDistribution[ev.Language]++
	}

	total := float64(len(events))
	s.AvgResponseTime = responseTimeSum / total
	if opts.ScoredOnly {
		if scored > 0 {
			s.SatisfactionScore = scoreSum / float64(scored)
		}
	} else {
		s.SatisfactionScore = scoreSum / total
	}
	s.BookingConversionRate = float64(conversions) / total * 100

	s.TopQuestions = topQuestions(events)
	s.HourlyActivity = hourlyActivity(events, loc)
	return s
}

// topQuestions ranks distinct questions by occurrence count, ties broken by
// first-encounter order, truncated to maxTopQuestions.
func topQuestions(events []*model.ConversationEvent) []TopQuestion {
	type tally struct {
		count    int
		resolved int
	}
	counts := make(map[string]*tally)
	var order []string
	for _, ev := range events {
		t, ok := counts[ev.Question]
		if !ok {
			t = &tally{}
			counts[ev.Question] = t
			order = append(order, ev.Question)
		}
		t.count++
		if ev.Resolved {
			t.resolved++
		}
	}

	// order preserves first encounter; a stable sort keeps it for ties.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]].count > counts[order[j]].count
	})
	if len(order) > maxTopQuestions {
		order = order[:maxTopQuestions]
	}

	top := make([]TopQuestion, 0, len(order))
	for _, q := range order {
		t := counts[q]
		top = append(top, TopQuestion{
			Question:     q,
			Count:        t.count,
			ResolvedRate: float64(t.resolved) / float64(t.count) * 100,
		})
	}
	return top
}

// hourlyActivity buckets events by hour of day in the given location and
// returns buckets sorted ascending by label. Empty hours are omitted.
func hourlyActivity(events []*model.ConversationEvent, loc *time.Location) []HourlyBucket {
	byHour := make(map[string]int)
	for _, ev := range events {
		label := fmt.Sprintf("%02d:00", ev.CreatedAt.In(loc).Hour())
		byHour[label]++
	}

	labels := make([]string, 0, len(byHour))
	for label := range byHour {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	buckets := make([]HourlyBucket, 0, len(labels))
	for _, label := range labels {
		buckets = append(buckets, HourlyBucket{Hour: label, Conversations: byHour[label]})
	}
	return buckets
}
