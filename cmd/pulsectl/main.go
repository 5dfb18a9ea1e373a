package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/zanclinic/pulse/internal/client"
	"github.com/zanclinic/pulse/internal/ui"
)

var (
	serverURL     string
	authToken     string
	webhookSecret string
	jsonOutput    bool

	pulseClient client.PulseClient
)

func defaultServer() string {
	if s := os.Getenv("PULSE_SERVER"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultToken() string {
	if s := os.Getenv("PULSE_AUTH_TOKEN"); s != "" {
		return s
	}
	return activeRemoteToken()
}

func defaultSecret() string {
	if s := os.Getenv("PULSE_WEBHOOK_SECRET"); s != "" {
		return s
	}
	return activeRemoteSecret()
}

var rootCmd = &cobra.Command{
	Use:   "pulsectl <command>",
	Short: "CLI client for the pulse clinic dashboard service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		pulseClient = client.NewHTTPClient(serverURL, authToken, webhookSecret)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if pulseClient != nil {
			pulseClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer(), "pulse server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", defaultToken(), "bearer token for the dashboard API")
	rootCmd.PersistentFlags().StringVar(&webhookSecret, "webhook-secret", defaultSecret(), "secret for signing test ingestions")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(webhookConfigCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
