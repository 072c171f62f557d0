package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/reviewnexus/reviewnexus/internal/api"
	"github.com/reviewnexus/reviewnexus/internal/gateway"
	"github.com/reviewnexus/reviewnexus/internal/store"
	"github.com/reviewnexus/reviewnexus/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for ReviewNexus state data
	DefaultStateDir = "/var/lib/reviewnexus"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "reviewnexus.db"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	storeOpts := buildStoreOptions(flags)
	gatewayOpts := buildGatewayOptions(flags)
	apiOpts := buildAPIOptions(flags)

	slog.Info("Bootstrapping ReviewNexus with configured modules")
	slog.Debug("Final configuration", "state_dir", *flags.stateDir, "dsn_set", *flags.dbDSN != "", "api_addr", *flags.apiAddr)
	if err := api.Run(storeOpts, gatewayOpts, apiOpts); err != nil {
		slog.Error("ReviewNexus failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("ReviewNexus exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL string
	StateDir    string
	GatewayKey  string
	GatewayURL  string
	TextModel   string
	ImageModel  string
	APIAddr     string
	AdminToken  string
}

// Flags holds command line flag values
type Flags struct {
	stateDir   *string
	dbDSN      *string
	gatewayKey *string
	gatewayURL *string
	textModel  *string
	imageModel *string
	apiAddr    *string
	adminToken *string
}

// initializeLogger sets up structured logging. The level is bumped to debug
// when $DEBUG is truthy.
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StateDir:    os.Getenv("REVIEWNEXUS_STATE_DIR"),
		GatewayKey:  os.Getenv("AI_GATEWAY_API_KEY"),
		GatewayURL:  os.Getenv("AI_GATEWAY_BASE_URL"),
		TextModel:   os.Getenv("AI_GATEWAY_TEXT_MODEL"),
		ImageModel:  os.Getenv("AI_GATEWAY_IMAGE_MODEL"),
		APIAddr:     os.Getenv("API_ADDR"),
		AdminToken:  os.Getenv("ADMIN_TOKEN"),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No REVIEWNEXUS_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}

	// If no database URL is provided, default to SQLite in the state directory
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"REVIEWNEXUS_STATE_DIR", config.StateDir,
		"AI_GATEWAY_API_KEY_SET", config.GatewayKey != "",
		"AI_GATEWAY_BASE_URL", config.GatewayURL,
		"API_ADDR", config.APIAddr,
		"ADMIN_TOKEN_SET", config.AdminToken != "")

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:   flag.String("state-dir", config.StateDir, "state directory for ReviewNexus data (overrides $REVIEWNEXUS_STATE_DIR)"),
		dbDSN:      flag.String("db-dsn", config.DatabaseURL, "database DSN, PostgreSQL URL or SQLite path (overrides $DATABASE_URL)"),
		gatewayKey: flag.String("gateway-api-key", config.GatewayKey, "AI gateway API key (overrides $AI_GATEWAY_API_KEY)"),
		gatewayURL: flag.String("gateway-base-url", config.GatewayURL, "AI gateway base URL (overrides $AI_GATEWAY_BASE_URL)"),
		textModel:  flag.String("text-model", config.TextModel, "article generation model (overrides $AI_GATEWAY_TEXT_MODEL)"),
		imageModel: flag.String("image-model", config.ImageModel, "thumbnail generation model (overrides $AI_GATEWAY_IMAGE_MODEL)"),
		apiAddr:    flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		adminToken: flag.String("admin-token", config.AdminToken, "bearer token required on mutating content endpoints (overrides $ADMIN_TOKEN)"),
	}

	flag.Parse()

	// Follow the state directory when it was overridden but the DSN was not.
	if *flags.dbDSN == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "new_state_dir", *flags.stateDir)
	}

	return flags
}

// buildStoreOptions constructs store configuration options
func buildStoreOptions(flags Flags) []store.Option {
	var storeOpts []store.Option
	if *flags.dbDSN != "" {
		if store.DetectDSNType(*flags.dbDSN) == "postgres" {
			slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store")
			storeOpts = append(storeOpts, store.WithPostgresDSN(*flags.dbDSN))
		} else {
			slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", *flags.dbDSN)
			storeOpts = append(storeOpts, store.WithSQLiteDSN(*flags.dbDSN))
		}
	} else {
		slog.Debug("No database DSN provided, will use in-memory store")
	}
	return storeOpts
}

// buildGatewayOptions constructs AI gateway configuration options
func buildGatewayOptions(flags Flags) []gateway.Option {
	var gatewayOpts []gateway.Option
	if *flags.gatewayKey != "" {
		gatewayOpts = append(gatewayOpts, gateway.WithAPIKey(*flags.gatewayKey))
	}
	if *flags.gatewayURL != "" {
		gatewayOpts = append(gatewayOpts, gateway.WithBaseURL(*flags.gatewayURL))
	}
	if *flags.textModel != "" {
		gatewayOpts = append(gatewayOpts, gateway.WithTextModel(*flags.textModel))
	}
	if *flags.imageModel != "" {
		gatewayOpts = append(gatewayOpts, gateway.WithImageModel(*flags.imageModel))
	}
	return gatewayOpts
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(flags Flags) []api.Option {
	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	if *flags.adminToken != "" {
		apiOpts = append(apiOpts, api.WithAdminToken(*flags.adminToken))
	}
	return apiOpts
}
