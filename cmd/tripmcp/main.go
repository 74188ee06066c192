package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/wayplan/tripmcp/pkg/chargers"
	"github.com/wayplan/tripmcp/pkg/config"
	"github.com/wayplan/tripmcp/pkg/httpapi"
	"github.com/wayplan/tripmcp/pkg/server"
	"github.com/wayplan/tripmcp/pkg/services"
	"github.com/wayplan/tripmcp/pkg/version"
)

var (
	showVersion    bool
	debug          bool
	configPath     string
	httpAddr       string
	generateConfig string
	mergeConfig    bool
)

func init() {
	flag.BoolVar(&showVersion, "version", false, "Display version information")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	flag.StringVar(&httpAddr, "http", "", "Serve the HTTP API on this address, e.g. :8080")
	flag.StringVar(&generateConfig, "generate-config", "", "Generate an MCP client config file at the specified path")
	flag.BoolVar(&mergeConfig, "merge", false, "Merge into an existing client config instead of overwriting")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg = config.ApplyEnv(cfg)
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if generateConfig != "" {
		if err := generateClientConfig(generateConfig, mergeConfig); err != nil {
			logger.Error("failed to generate config", "error", err)
			os.Exit(1)
		}
		logger.Info("generated MCP client config", "path", generateConfig)
		return
	}

	cfg.Apply()

	logger.Info("starting trip planning server",
		"version", version.BuildVersion,
		"log_level", logLevel.String())

	dir, err := chargers.Load()
	if err != nil {
		logger.Error("failed to load charging station dataset", "error", err)
		os.Exit(1)
	}
	logger.Info("charging station dataset loaded", "stations", dir.Len())

	svc := services.New(services.Config{
		NominatimURL: cfg.NominatimURL,
		OverpassURL:  cfg.OverpassURL,
		ORSURL:       cfg.ORSURL,
		ORSAPIKey:    cfg.ORSAPIKey,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.HTTPAddr != "" {
		api := httpapi.New(logger, svc, dir)
		go func() {
			if err := api.Run(ctx, cfg.HTTPAddr); err != nil {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	srv, err := server.NewServer(logger, svc, dir)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	logger.Info("server initialized, waiting for requests")
	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// generateClientConfig creates or updates an MCP client config file that
// launches this binary over stdio.
func generateClientConfig(outputPath string, mergeOnly bool) error {
	if outputPath == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if filepath.Ext(outputPath) != ".json" {
		return fmt.Errorf("output path must have a .json extension")
	}
	if strings.Contains(outputPath, "..") {
		return fmt.Errorf("output path must not contain '..'")
	}

	execPath, err := os.Executable()
	if err != nil {
		execPath = os.Args[0]
	}
	absExecPath, err := filepath.Abs(execPath)
	if err != nil {
		absExecPath = execPath
	}

	serverConfig := map[string]any{
		"command": absExecPath,
		"args":    []string{},
	}

	clientConfig := make(map[string]any)
	if data, err := os.ReadFile(outputPath); err == nil {
		if err := json.Unmarshal(data, &clientConfig); err != nil {
			if mergeOnly {
				return fmt.Errorf("existing config is not valid JSON: %w", err)
			}
			clientConfig = make(map[string]any)
		}
	} else if mergeOnly && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read existing config: %w", err)
	}

	mcpServers, ok := clientConfig["mcpServers"].(map[string]any)
	if !ok {
		mcpServers = make(map[string]any)
		clientConfig["mcpServers"] = mcpServers
	}
	mcpServers["tripmcp"] = serverConfig

	data, err := json.MarshalIndent(clientConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	// The config can carry API keys, so keep it private.
	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
