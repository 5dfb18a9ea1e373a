package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/zanclinic/pulse/internal/client"
	"github.com/zanclinic/pulse/internal/metrics"
	"github.com/zanclinic/pulse/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printSummaryTable(clientID string, s *metrics.Summary) {
	fmt.Printf("%s\n\n", ui.RenderAccent("Metrics for "+clientID))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "conversations:\t%d\n", s.TotalConversations)
	fmt.Fprintf(w, "avg response time:\t%.2fs\n", s.AvgResponseTime)
	fmt.Fprintf(w, "satisfaction:\t%.2f / 5\n", s.SatisfactionScore)
	fmt.Fprintf(w, "booking conversion:\t%.1f%%\n", s.BookingConversionRate)
	w.Flush()

	if len(s.LanguageDistribution) > 0 {
		fmt.Printf("\n%s\n", ui.RenderAccent("Languages"))
		langs := make([]string, 0, len(s.LanguageDistribution))
		for lang := range s.LanguageDistribution {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		lw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, lang := range langs {
			fmt.Fprintf(lw, "%s\t%d\n", lang, s.LanguageDistribution[lang])
		}
		lw.Flush()
	}

	if len(s.TopQuestions) > 0 {
		fmt.Printf("\n%s\n", ui.RenderAccent("Top questions"))
		qw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(qw, "COUNT\tRESOLVED\tQUESTION")
		for _, q := range s.TopQuestions {
			question := q.Question
			if len(question) > 60 {
				question = question[:57] + "..."
			}
			fmt.Fprintf(qw, "%d\t%.0f%%\t%s\n", q.Count, q.ResolvedRate, question)
		}
		qw.Flush()
	}

	if len(s.HourlyActivity) > 0 {
		fmt.Printf("\n%s\n", ui.RenderAccent("Hourly activity"))
		hw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, b := range s.HourlyActivity {
			fmt.Fprintf(hw, "%s\t%d\t%s\n", b.Hour, b.Conversations, ui.RenderMuted(strings.Repeat("■", b.Conversations)))
		}
		hw.Flush()
	}
}

func printEventListTable(resp *client.ListEventsResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCONVERSATION\tSOURCE\tRESOLVED\tTIME\tQUESTION")
	for _, ev := range resp.Events {
		question := ev.Question
		if len(question) > 40 {
			question = question[:37] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\t%s\n",
			ev.ID,
			ev.ConversationID,
			ev.Source,
			ev.Resolved,
			ev.CreatedAt.Format("2006-01-02 15:04"),
			question,
		)
	}
	w.Flush()
	fmt.Printf("\n%d events\n", resp.Total)
}
