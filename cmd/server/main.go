// Package main is the entry point for the knight API
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/knight-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:          "knight-api",
	Short:        "Knight API server",
	Long:         `Knight API stores knights and serves them with their derived age, attack and experience.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
