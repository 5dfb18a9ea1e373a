package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zanclinic/pulse/internal/model"
	"github.com/zanclinic/pulse/internal/ui"
)

// ingestCmd sends a single event through the webhook path, signing it when a
// secret is configured. Useful for verifying a deployment end to end.
var ingestCmd = &cobra.Command{
	Use:   "ingest <client-id>",
	Short: "Send a test conversation event through the webhook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := args[0]

		payload := &model.EventPayload{}
		payload.ConversationID, _ = cmd.Flags().GetString("conversation-id")
		payload.PatientID, _ = cmd.Flags().GetString("patient-id")
		payload.Question, _ = cmd.Flags().GetString("question")
		payload.Response, _ = cmd.Flags().GetString("response")
		payload.Language, _ = cmd.Flags().GetString("language")
		payload.Source, _ = cmd.Flags().GetString("source")

		rt, _ := cmd.Flags().GetFloat64("response-time")
		payload.ResponseTime = rt
		if cmd.Flags().Changed("satisfaction-score") {
			score, _ := cmd.Flags().GetFloat64("satisfaction-score")
			payload.SatisfactionScore = score
		}
		resolved, _ := cmd.Flags().GetBool("resolved")
		payload.Resolved = resolved
		conversion, _ := cmd.Flags().GetBool("booking-conversion")
		payload.BookingConversion = conversion

		ack, err := pulseClient.IngestEvent(cmd.Context(), clientID, payload)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(ack)
			return nil
		}
		fmt.Printf("%s %s\n", ui.RenderGood("accepted"), ack.Data.ID)
		return nil
	},
}

func init() {
	ingestCmd.Flags().String("conversation-id", "", "conversation identifier (required)")
	ingestCmd.Flags().String("patient-id", "", "patient identifier")
	ingestCmd.Flags().String("question", "", "patient question (required)")
	ingestCmd.Flags().String("response", "", "assistant response (required)")
	ingestCmd.Flags().Float64("response-time", 0, "response time in seconds (required)")
	ingestCmd.Flags().Float64("satisfaction-score", 0, "satisfaction score (1-5)")
	ingestCmd.Flags().String("language", "", "conversation language")
	ingestCmd.Flags().String("source", "", "channel: whatsapp, website, or phone")
	ingestCmd.Flags().Bool("resolved", false, "whether the question was resolved")
	ingestCmd.Flags().Bool("booking-conversion", false, "whether the conversation led to a booking")

	_ = ingestCmd.MarkFlagRequired("conversation-id")
	_ = ingestCmd.MarkFlagRequired("question")
	_ = ingestCmd.MarkFlagRequired("response")
	_ = ingestCmd.MarkFlagRequired("response-time")
}
