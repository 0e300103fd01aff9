// filepath: internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/the-momentum/open-wearables-sub001/internal/api"
	"github.com/the-momentum/open-wearables-sub001/internal/api/handlers"
	"github.com/the-momentum/open-wearables-sub001/internal/config"
	"github.com/the-momentum/open-wearables-sub001/internal/logging"
	"github.com/the-momentum/open-wearables-sub001/internal/metrics"
	"github.com/the-momentum/open-wearables-sub001/internal/repository"
	"github.com/the-momentum/open-wearables-sub001/internal/services"
	"github.com/the-momentum/open-wearables-sub001/internal/services/auth"
)

var (
	// Version info
	Version   = "0.3.0"
	StartTime time.Time

	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags
	cfgFile       string
	password      string
	port          int
	logLevel      string
	resetPassword bool
	jwtSecret     string
	dbPath        string
	maxBatchSize  string
	checkInterval string
)

// RootCmd represents the base command when called without any subcommands.
// It starts the HTTP server.
var RootCmd = &cobra.Command{
	Use:   "wearables",
	Short: "Open Wearables API",
	Long:  `A REST API for ingesting wearable sensor data with tiered storage, archival and retention policies.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	StartTime = time.Now()

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config_path", "config.toml", "Path to the base configuration file. (Env: OW_CONFIG_PATH)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: OW_LOG_LEVEL)")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "Path to the SQLite database file. (Env: OW_DATABASE_PATH)")

	// Server-specific flags
	RootCmd.Flags().StringVar(&password, "password", "", "Password for the 'admin' user. (Env: OW_PASSWORD)")
	RootCmd.Flags().IntVar(&port, "port", 0, "Port for the HTTP server. (Env: OW_PORT)")
	RootCmd.Flags().BoolVar(&resetPassword, "reset_pw", false, "If true, reset admin password on startup. (Env: OW_RESET_PW=true)")
	RootCmd.Flags().StringVar(&jwtSecret, "jwt-secret", "", "Secret key for signing JWTs. (Env: OW_JWT_SECRET)")
	RootCmd.Flags().StringVar(&maxBatchSize, "max-batch-size", "", "Max size for a single ingest batch (e.g. '1MB'). (Env: OW_MAX_BATCH_SIZE)")
	RootCmd.Flags().StringVar(&checkInterval, "check-interval", "", "Interval between lifecycle runs (e.g. '1h'). (Env: OW_CHECK_INTERVAL)")
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	if envPath := os.Getenv("OW_CONFIG_PATH"); envPath != "" && cfgFile == "config.toml" {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config if not found, rely on defaults/flags
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	applyOverrides(cfg)

	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logging.Init(cfg.Logging.Level)

	return nil
}

func applyOverrides(c *config.Config) {
	// --- 1. Environment Variables ---
	if v := os.Getenv("OW_PASSWORD"); v != "" {
		c.AdminPassword = v
	}
	if v := os.Getenv("OW_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("OW_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("OW_RESET_PW"); v == "true" {
		c.ResetAdminPassword = true
	}
	if v := os.Getenv("OW_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("OW_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("OW_MAX_BATCH_SIZE"); v != "" {
		c.Server.MaxBatchSize = v
	}
	if v := os.Getenv("OW_CHECK_INTERVAL"); v != "" {
		c.Lifecycle.CheckInterval = v
	}

	// --- 2. CLI Flags (Take precedence) ---
	if password != "" {
		c.AdminPassword = password
	}
	if port != 0 {
		c.Server.Port = port
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if resetPassword {
		c.ResetAdminPassword = true
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}
	if jwtSecret != "" {
		c.JWTSecret = jwtSecret
	}
	if maxBatchSize != "" {
		c.Server.MaxBatchSize = maxBatchSize
	}
	if checkInterval != "" {
		c.Lifecycle.CheckInterval = checkInterval
	}

	// --- 3. Defaults ---
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Path == "" {
		c.Database.Path = "wearables.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.JWT.AccessDurationMin == 0 {
		c.JWT.AccessDurationMin = 15
	}
}

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer() error {
	// Handle JWT Secret
	if cfg.JWTSecret == "" {
		if cfg.JWT.Secret != "" {
			logging.Log.Info("Using JWT secret loaded from config.toml.")
			cfg.JWTSecret = cfg.JWT.Secret
		} else {
			logging.Log.Info("Generating new random JWT secret...")
			newSecret, err := auth.GenerateSecret()
			if err != nil {
				return fmt.Errorf("failed to generate JWT secret: %w", err)
			}
			cfg.JWT.Secret = newSecret
			cfg.JWTSecret = newSecret
			if err := config.SaveConfig(cfgFile, cfg); err != nil {
				logging.Log.Warnf("Failed to save new JWT secret to %s: %v", cfgFile, err)
			} else {
				logging.Log.Infof("New JWT secret saved to %s.", cfgFile)
			}
		}
	}

	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	// Auto-migrate on startup
	if err := repo.MigrateUp(); err != nil {
		logging.Log.Errorf("Failed to migrate database: %v", err)
		return err
	}

	metrics.Register()

	// Service Initialization
	infoService := services.NewInfoService(Version, StartTime)
	userService := services.NewUserService(repo)
	tokenService := auth.NewTokenService(cfg, userService)
	settingsService := services.NewSettingsService(repo)
	ingestService := services.NewIngestService(repo, cfg, settingsService)
	lifecycleService := services.NewLifecycleService(repo, cfg.LifecycleTickInterval)

	authMiddleware := auth.NewMiddleware(userService, tokenService)

	if err := userService.InitializeAdminUser(cfg); err != nil {
		return fmt.Errorf("failed to handle admin user: %w", err)
	}

	if cfg.LifecycleTickInterval > 0 {
		lifecycleService.Start()
		// No defer stop here, we stop explicitly during graceful shutdown
	} else {
		logging.Log.Info("Background lifecycle worker disabled (check_interval = 0).")
	}

	h := handlers.NewHandlers(
		infoService,
		userService,
		settingsService,
		ingestService,
		lifecycleService,
		tokenService,
		cfg,
	)

	r := api.SetupRouter(h, authMiddleware)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logging.Log.Infof("Server starting on %s (Max Batch Size: %s)", serverAddr, cfg.Server.MaxBatchSize)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-stop
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop background services
	if cfg.LifecycleTickInterval > 0 {
		lifecycleService.Stop()
	}

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
