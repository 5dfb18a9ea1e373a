package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"github.com/zanclinic/pulse/internal/events"
	"github.com/zanclinic/pulse/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch [<client-id>]",
	Short: "Stream conversation events live from the bus",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var clientID string
		if len(args) == 1 {
			clientID = args[0]
		}

		natsURL, _ := cmd.Flags().GetString("nats")
		if natsURL == "" {
			natsURL = os.Getenv("PULSE_NATS_URL")
		}
		if natsURL == "" {
			return fmt.Errorf("no NATS URL; set PULSE_NATS_URL or pass --nats")
		}

		sub, err := events.NewNATSSubscriber(natsURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				log.Printf("nats: disconnected: %v", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				log.Printf("nats: reconnected")
			}),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(events.TopicConversationRecorded)
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		fmt.Fprintln(os.Stderr, ui.RenderMuted("watching "+events.TopicConversationRecorded+" (ctrl-c to stop)"))

		for {
			select {
			case <-ctx.Done():
				return nil
			case data, ok := <-ch:
				if !ok {
					return nil
				}
				var rec events.ConversationRecorded
				if err := json.Unmarshal(data, &rec); err != nil || rec.Event == nil {
					continue
				}
				if clientID != "" && rec.Event.ClientID != clientID {
					continue
				}
				if jsonOutput {
					printJSON(rec.Event)
					continue
				}
				fmt.Printf("%s  %s  %s  %s\n",
					rec.Event.CreatedAt.Format("15:04:05"),
					ui.RenderAccent(rec.Event.ClientID),
					rec.Event.ConversationID,
					rec.Event.Question,
				)
			}
		}
	},
}

func init() {
	watchCmd.Flags().String("nats", "", "NATS server URL")
	rootCmd.AddCommand(watchCmd)
}
