package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/zanclinic/pulse/internal/model"
)

func ptr(f float64) *float64 { return &f }

func eventAt(hour int, mutate func(*model.ConversationEvent)) *model.ConversationEvent {
	ev := &model.ConversationEvent{
		ID:             "evt-1",
		ConversationID: "conv-1",
		Question:       "What are your operating hours?",
		Response:       "9 to 6.",
		ResponseTime:   1.0,
		Language:       "English",
		Source:         model.SourceWhatsApp,
		ClientID:       "demo_clinic",
		CreatedAt:      time.Date(2025, 6, 12, hour, 15, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(ev)
	}
	return ev
}

func approx(got, want float64) bool {
	return math.Abs(got-want) < 0.01
}

func TestCompute_EmptySet(t *testing.T) {
	s := Compute(nil, Options{})

	if s.TotalConversations != 0 {
		t.Errorf("TotalConversations = %d", s.TotalConversations)
	}
	if s.AvgResponseTime != 0 || s.SatisfactionScore != 0 || s.BookingConversionRate != 0 {
		t.Errorf("empty set must yield zeroes, got avg=%v sat=%v conv=%v",
			s.AvgResponseTime, s.SatisfactionScore, s.BookingConversionRate)
	}
	if s.LanguageDistribution == nil || s.TopQuestions == nil || s.HourlyActivity == nil {
		t.Error("collections must be non-nil for JSON rendering")
	}
	if math.IsNaN(s.BookingConversionRate) {
		t.Error("conversion rate must never be NaN")
	}
}

// Mirrors the canonical three-record fixture used by the dashboard team:
// response_time {1.2, 1.8, 2.1}, satisfaction {4.5, 4.0, unscored},
// booking_conversion {false, true, false}.
func TestCompute_DemoClinicFixture(t *testing.T) {
	events := []*model.ConversationEvent{
		eventAt(9, func(ev *model.ConversationEvent) {
			ev.ResponseTime = 1.2
			ev.SatisfactionScore = ptr(4.5)
		}),
		eventAt(10, func(ev *model.ConversationEvent) {
			ev.ResponseTime = 1.8
			ev.SatisfactionScore = ptr(4.0)
			ev.BookingConversion = true
		}),
		eventAt(10, func(ev *model.ConversationEvent) {
			ev.ResponseTime = 2.1
		}),
	}

	s := Compute(events, Options{})

	if s.TotalConversations != 3 {
		t.Errorf("TotalConversations = %d, want 3", s.TotalConversations)
	}
	if !approx(s.AvgResponseTime, 1.7) {
		t.Errorf("AvgResponseTime = %v, want ~1.7", s.AvgResponseTime)
	}
	// Zero-fill average: (4.5 + 4.0 + 0) / 3.
	if !approx(s.SatisfactionScore, 2.8333) {
		t.Errorf("SatisfactionScore = %v, want ~2.83", s.SatisfactionScore)
	}
	if !approx(s.BookingConversionRate, 33.3333) {
		t.Errorf("BookingConversionRate = %v, want ~33.33", s.BookingConversionRate)
	}
}

func TestCompute_ScoredOnlyOption(t *testing.T) {
	events := []*model.ConversationEvent{
		eventAt(9, func(ev *model.ConversationEvent) { ev.SatisfactionScore = ptr(4.5) }),
		eventAt(9, func(ev *model.ConversationEvent) { ev.SatisfactionScore = ptr(4.0) }),
		eventAt(9, nil),
	}

	s := Compute(events, Options{ScoredOnly: true})
	if !approx(s.SatisfactionScore, 4.25) {
		t.Errorf("ScoredOnly SatisfactionScore = %v, want 4.25", s.SatisfactionScore)
	}

	// No scored events at all: still zero, never NaN.
	s = Compute([]*model.ConversationEvent{eventAt(9, nil)}, Options{ScoredOnly: true})
	if s.SatisfactionScore != 0 {
		t.Errorf("SatisfactionScore = %v, want 0 with no scored events", s.SatisfactionScore)
	}
}

func TestCompute_LanguageDistributionSumsToTotal(t *testing.T) {
	events := []*model.ConversationEvent{
		eventAt(9, func(ev *model.ConversationEvent) { ev.Language = "English" }),
		eventAt(9, func(ev *model.ConversationEvent) { ev.Language = "Spanish" }),
		eventAt(9, func(ev *model.ConversationEvent) { ev.Language = "english" }), // case-sensitive, distinct bucket
		eventAt(9, func(ev *model.ConversationEvent) { ev.Language = "English" }),
	}

	s := Compute(events, Options{})

	sum := 0
	for _, n := range s.LanguageDistribution {
		sum += n
	}
	if sum != s.TotalConversations {
		t.Errorf("distribution sum = %d, total = %d", sum, s.TotalConversations)
	}
	if s.LanguageDistribution["English"] != 2 || s.LanguageDistribution["english"] != 1 {
		t.Errorf("case-sensitive buckets wrong: %v", s.LanguageDistribution)
	}
}

func TestCompute_TopQuestions(t *testing.T) {
	q := func(question string, resolved bool) *model.ConversationEvent {
		return eventAt(9, func(ev *model.ConversationEvent) {
			ev.Question = question
			ev.Resolved = resolved
		})
	}
	events := []*model.ConversationEvent{
		q("opening hours", true),
		q("parking", false),
		q("opening hours", false),
		q("insurance", false),
		q("prices", false),
		q("vaccines", false),
		q("directions", false),
		q("parking", true),
	}

	s := Compute(events, Options{})

	if len(s.TopQuestions) != 5 {
		t.Fatalf("len(TopQuestions) = %d, want 5", len(s.TopQuestions))
	}
	for i := 1; i < len(s.TopQuestions); i++ {
		if s.TopQuestions[i].Count > s.TopQuestions[i-1].Count {
			t.Errorf("not sorted by descending count at %d: %+v", i, s.TopQuestions)
		}
	}
	// Two occurrences each for "opening hours" and "parking"; first-encounter
	// order breaks the tie.
	if s.TopQuestions[0].Question != "opening hours" || s.TopQuestions[1].Question != "parking" {
		t.Errorf("tie order wrong: %q, %q", s.TopQuestions[0].Question, s.TopQuestions[1].Question)
	}
	if s.TopQuestions[0].Count != 2 || !approx(s.TopQuestions[0].ResolvedRate, 50) {
		t.Errorf("opening hours = %+v, want count=2 resolved_rate=50", s.TopQuestions[0])
	}
	for _, tq := range s.TopQuestions {
		if tq.ResolvedRate < 0 || tq.ResolvedRate > 100 {
			t.Errorf("resolved_rate out of range: %+v", tq)
		}
	}
}

func TestCompute_HourlyActivity(t *testing.T) {
	events := []*model.ConversationEvent{
		eventAt(14, nil),
		eventAt(9, nil),
		eventAt(14, nil),
	}

	s := Compute(events, Options{})

	want := []HourlyBucket{{Hour: "09:00", Conversations: 1}, {Hour: "14:00", Conversations: 2}}
	if len(s.HourlyActivity) != len(want) {
		t.Fatalf("HourlyActivity = %+v", s.HourlyActivity)
	}
	for i := range want {
		if s.HourlyActivity[i] != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, s.HourlyActivity[i], want[i])
		}
	}
}

func TestCompute_HourlyActivityRespectsLocation(t *testing.T) {
	// 23:15 UTC on June 12 is 01:15 on June 13 in UTC+2.
	events := []*model.ConversationEvent{eventAt(23, nil)}

	s := Compute(events, Options{Location: time.FixedZone("UTC+2", 2*60*60)})

	if len(s.HourlyActivity) != 1 || s.HourlyActivity[0].Hour != "01:00" {
		t.Errorf("HourlyActivity = %+v, want single 01:00 bucket", s.HourlyActivity)
	}
}

func TestCompute_ConversionRateWithinRange(t *testing.T) {
	events := []*model.ConversationEvent{
		eventAt(9, func(ev *model.ConversationEvent) { ev.BookingConversion = true }),
		eventAt(9, func(ev *model.ConversationEvent) { ev.BookingConversion = true }),
	}
	s := Compute(events, Options{})
	if s.BookingConversionRate != 100 {
		t.Errorf("BookingConversionRate = %v, want 100", s.BookingConversionRate)
	}
}
