package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Best effort; a missing .env file is not an error
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "archboard",
	Short: "Archboard - system architecture diagram and simulation engine",
	Long: `Archboard is the engine behind a system-architecture diagram studio:
a canonical diagram graph with a mutation API, auto-layout and alignment,
a mock simulation engine that animates status and metrics over a timeline,
and versioned design documents persisted to an embedded store.

The browser canvas talks to this process over REST and websocket.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Archboard version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.AddCommand(serveCmd)
}
