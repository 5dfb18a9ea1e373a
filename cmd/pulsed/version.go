package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zanclinic/pulse/internal/server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", server.ServiceName, server.Version)
	},
}
