package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"blendmcp/internal/blender"
	"blendmcp/internal/config"
	"blendmcp/internal/logging"
	"blendmcp/internal/mcp"
	"blendmcp/internal/tools"
)

// Version is the server version reported to MCP clients.
const Version = "1.0.0"

var (
	// Global flags
	verbose     bool
	configPath  string
	blenderPath string
	timeout     time.Duration
	testMode    bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "blendmcp",
	Short: "blendmcp - MCP server for 3D modeling with Blender",
	Long: `blendmcp exposes Blender modeling operations as MCP tools.

Each tool call renders its parameters into a Blender Python script, runs
Blender headless as a subprocess, and relays the captured output back as a
structured response. The protocol stream runs on stdin/stdout; all logging
goes to stderr or files.

Run without arguments to start serving on stdin/stdout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger. Output goes to stderr; stdout is the
		// protocol stream.
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if testMode {
			return runDoctor(cmd, args)
		}
		return runServe(cmd, args)
	},
}

// serveCmd runs the MCP server on stdin/stdout (same as the bare command).
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP on stdin/stdout (default)",
	RunE:  runServe,
}

// doctorCmd verifies the configuration without serving.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify configuration and Blender installation",
	RunE:  runDoctor,
}

// toolsCmd prints the catalog for humans.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the modeling tool catalog",
	RunE:  runTools,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default blendmcp.json)")
	rootCmd.PersistentFlags().StringVar(&blenderPath, "blender", "", "path to the Blender executable")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-invocation Blender timeout (e.g. 45s)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&testMode, "test", false, "verify configuration and exit")

	rootCmd.AddCommand(serveCmd, doctorCmd, toolsCmd)
}

// loadConfig reads the config file and layers the CLI flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if blenderPath != "" {
		cfg.BlenderPath = blenderPath
	}
	if timeout > 0 {
		cfg.TimeoutSeconds = int(timeout.Seconds())
	}
	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Initialize(cfg.StateDir, cfg.Logging); err != nil {
		return err
	}
	defer logging.CloseAll()

	executor, err := blender.NewExecutor(blender.Config{
		BlenderPath:    cfg.BlenderPath,
		Timeout:        time.Duration(cfg.TimeoutSeconds) * time.Second,
		MaxOutputBytes: cfg.MaxOutputBytes,
		MaxConcurrent:  cfg.MaxConcurrent,
		TempDir:        cfg.TempDir,
	})
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	defer executor.Close()

	logger.Info("blendmcp starting",
		zap.String("version", Version),
		zap.String("blender", executor.BlenderPath()),
		zap.Duration("timeout", executor.Timeout()))

	registry := tools.NewRegistry()
	tools.RegisterAll(registry)
	deps := &tools.Deps{Runner: executor, Version: Version}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transport := mcp.NewStdioTransport(os.Stdin, os.Stdout)
	srv := mcp.NewServer("blendmcp", Version, registry, deps, transport, logger)

	if err := srv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("blendmcp stopped")
	return nil
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := blender.Locate(cfg.BlenderPath)
	if err != nil {
		return fmt.Errorf("configuration test failed: %w", err)
	}

	registry := tools.NewRegistry()
	tools.RegisterAll(registry)

	fmt.Fprintf(cmd.OutOrStdout(), "blendmcp %s\n", Version)
	fmt.Fprintf(cmd.OutOrStdout(), "  blender:  %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "  timeout:  %ds\n", cfg.TimeoutSeconds)
	fmt.Fprintf(cmd.OutOrStdout(), "  tools:    %d\n", registry.Count())
	fmt.Fprintln(cmd.OutOrStdout(), "configuration OK")
	return nil
}

func runTools(cmd *cobra.Command, args []string) error {
	registry := tools.NewRegistry()
	tools.RegisterAll(registry)

	for _, tool := range registry.All() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-34s %-10s %s\n", tool.Name, tool.Category, tool.Description)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
