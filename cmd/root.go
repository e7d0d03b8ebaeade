// Package cmd implements the command line interface of the backend.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/towerledger/backend/internal/auth"
	"github.com/towerledger/backend/internal/config"
	"github.com/towerledger/backend/internal/models"
)

// cfg is resolved before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "backend",
	Short: "Tower Ledger backend",
	Long: `The backend for Tower Ledger, the books of a residential building.

Configuration is read from the environment and from a .env file in the
working directory. The database is sqlite at DB_PATH unless DB_HOST is
set, in which case postgres is used.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the command line interface.
func Execute() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute runs the root command and closes the database, whether or not
// the command failed.
func execute() error {
	err := rootCmd.Execute()

	if cerr := models.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("closing database")
	}

	return err
}

// setup configures logging, loads the configuration and connects to the database.
func setup(cmd *cobra.Command, _ []string) error {
	setupLogging()

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	if dsn := cfg.PostgresDSN(); dsn != "" {
		err = models.ConnectPostgres(dsn)
	} else {
		err = os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
		if err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		err = models.Connect(cfg.DBPath)
	}
	if err != nil {
		return err
	}

	return auth.EnsureAdmin(cmd.Context(), models.DB, cfg.AdminUsername, cfg.AdminPassword)
}

func setupLogging() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stderr)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// printJSON writes v to the command's output as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
