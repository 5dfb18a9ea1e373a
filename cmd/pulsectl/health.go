package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zanclinic/pulse/internal/ui"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := pulseClient.Health(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(map[string]string{"status": status})
			return nil
		}

		if status == "healthy" {
			fmt.Println(ui.RenderGood(status))
		} else {
			fmt.Println(ui.RenderBad(status))
		}
		return nil
	},
}
