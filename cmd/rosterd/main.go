package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rosterd/rosterd/cmd/rosterd/commands"
	"github.com/rosterd/rosterd/internal/config"
	"github.com/rosterd/rosterd/pkg/postgres"
	"github.com/rosterd/rosterd/pkg/utils/logging"
)

var (
	configPath string
	verbose    bool
	app        = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rosterd",
		Short: "rosterd - Generate and manage retail shift schedules",
		Long:  `A scheduling engine that generates versioned shift schedules from coverage requirements, shift templates and employee availability.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to rosterd.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.GenerateScheduleCmd(app))
	rootCmd.AddCommand(commands.ViewScheduleCmd(app))
	rootCmd.AddCommand(commands.ListVersionsCmd(app))
	rootCmd.AddCommand(commands.SetVersionStatusCmd(app))
	rootCmd.AddCommand(commands.SetVersionNotesCmd(app))
	rootCmd.AddCommand(commands.DuplicateVersionCmd(app))
	rootCmd.AddCommand(commands.DeleteVersionCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Loading configuration")
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger.Debug("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Logger.Debug("Database connected")

	return nil
}
