// Package main provides the entry point for the Beacon mentor-matching CLI
// and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "beacon",
	Short: "Beacon mentor-matching engine",
	Long:  "Beacon scores mentor-mentee pairs bilaterally and builds ranked candidate feeds, combining deterministic profile factors with goal alignment judgments.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
