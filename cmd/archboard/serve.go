package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/archboard/archboard/pkg/api"
	"github.com/archboard/archboard/pkg/events"
	"github.com/archboard/archboard/pkg/graph"
	"github.com/archboard/archboard/pkg/log"
	"github.com/archboard/archboard/pkg/metrics"
	"github.com/archboard/archboard/pkg/project"
	"github.com/archboard/archboard/pkg/simulator"
	"github.com/archboard/archboard/pkg/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ServeConfig is the optional YAML configuration for the serve command.
// Flags override file values.
type ServeConfig struct {
	Listen   string  `yaml:"listen"`
	DataDir  string  `yaml:"dataDir"`
	LogLevel string  `yaml:"logLevel"`
	LogJSON  bool    `yaml:"logJSON"`
	Speed    float64 `yaml:"speed"`
	Duration float64 `yaml:"duration"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Archboard engine",
	Long: `Start the diagram engine and serve its REST and websocket API.

Examples:
  # Serve on the default address with a local data directory
  archboard serve --data-dir ~/.archboard

  # Load settings from a config file
  archboard serve -c archboard.yaml`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "API listen address")
	serveCmd.Flags().String("data-dir", "./data", "Directory for the embedded database")
	serveCmd.Flags().String("log-level", "info", "Log level (debug|info|warn|error)")
	serveCmd.Flags().Bool("log-json", false, "Emit JSON logs")
	serveCmd.Flags().StringP("config", "c", "", "YAML config file")
}

func loadConfig(cmd *cobra.Command) (*ServeConfig, error) {
	cfg := &ServeConfig{
		Listen:   ":8080",
		DataDir:  "./data",
		LogLevel: "info",
		Speed:    simulator.DefaultSpeed,
		Duration: simulator.DefaultDuration,
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if cmd.Flags().Changed("listen") {
		cfg.Listen, _ = cmd.Flags().GetString("listen")
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-json") {
		cfg.LogJSON, _ = cmd.Flags().GetBool("log-json")
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log.Init(log.Config{Level: log.Level(cfg.LogLevel), JSONOutput: cfg.LogJSON})
	logger := log.WithComponent("main")

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := storage.NewBoltStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	g := graph.NewStore(broker)
	engine := simulator.NewEngine(g, broker, nil)
	engine.SetSpeed(cfg.Speed)
	engine.SetDuration(cfg.Duration)
	defer engine.Stop()

	projects := project.NewManager(store, g, engine, broker)

	collector := metrics.NewCollector(g)
	collector.Start()
	defer collector.Stop()

	server := api.NewServer(g, engine, projects, broker)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Listen)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Stop(ctx)
}
