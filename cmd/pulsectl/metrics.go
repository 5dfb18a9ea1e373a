package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/zanclinic/pulse/internal/client"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <client-id>",
	Short: "Show the dashboard summary for a clinic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := args[0]

		req := &client.MetricsRequest{}
		if v, _ := cmd.Flags().GetString("start"); v != "" {
			t, err := parseDateFlag(v, false)
			if err != nil {
				return err
			}
			req.Start = &t
		}
		if v, _ := cmd.Flags().GetString("end"); v != "" {
			t, err := parseDateFlag(v, true)
			if err != nil {
				return err
			}
			req.End = &t
		}
		req.TZ, _ = cmd.Flags().GetString("tz")
		req.ScoredOnly, _ = cmd.Flags().GetBool("scored-only")

		summary, err := pulseClient.GetMetrics(cmd.Context(), clientID, req)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(summary)
			return nil
		}
		printSummaryTable(clientID, summary)
		return nil
	},
}

// parseDateFlag accepts RFC 3339 or YYYY-MM-DD; a date-only end expands to
// the end of that day, matching the server's inclusive range semantics.
func parseDateFlag(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use RFC 3339 or YYYY-MM-DD", value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func init() {
	metricsCmd.Flags().String("start", "", "start of the range (RFC 3339 or YYYY-MM-DD, inclusive)")
	metricsCmd.Flags().String("end", "", "end of the range (RFC 3339 or YYYY-MM-DD, inclusive)")
	metricsCmd.Flags().String("tz", "", "IANA timezone for hourly buckets (default: server setting)")
	metricsCmd.Flags().Bool("scored-only", false, "average satisfaction over scored conversations only")
}
