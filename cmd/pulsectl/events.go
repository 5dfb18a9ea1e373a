package main

import (
	"github.com/spf13/cobra"
	"github.com/zanclinic/pulse/internal/client"
)

var eventsCmd = &cobra.Command{
	Use:   "events <client-id>",
	Short: "List recent conversation events for a clinic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := args[0]

		req := &client.ListEventsRequest{}
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
		req.Limit, _ = cmd.Flags().GetInt("limit")

		resp, err := pulseClient.ListEvents(cmd.Context(), clientID, req)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(resp)
			return nil
		}
		printEventListTable(resp)
		return nil
	},
}

func init() {
	eventsCmd.Flags().String("start", "", "start of the range (RFC 3339 or YYYY-MM-DD, inclusive)")
	eventsCmd.Flags().String("end", "", "end of the range (RFC 3339 or YYYY-MM-DD, inclusive)")
	eventsCmd.Flags().Int("limit", 0, "maximum number of events (default: server setting)")
}
