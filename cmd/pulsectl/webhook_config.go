package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zanclinic/pulse/internal/ui"
)

var webhookConfigCmd = &cobra.Command{
	Use:   "webhook-config <client-id>",
	Short: "Show the webhook wiring instructions for a clinic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pulseClient.GetWebhookConfig(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(cfg)
			return nil
		}

		fmt.Printf("%s %s %s\n\n", ui.RenderAccent("endpoint:"), cfg.Method, cfg.WebhookURL)

		fmt.Println(ui.RenderAccent("payload fields:"))
		fields := make([]string, 0, len(cfg.ExpectedPayload))
		for f := range cfg.ExpectedPayload {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, f := range fields {
			fmt.Fprintf(w, "%s\t%s\n", f, ui.RenderMuted(cfg.ExpectedPayload[f]))
		}
		return w.Flush()
	},
}
