package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cfmeyers/tenzing/internal/basecamp"
	"github.com/cfmeyers/tenzing/internal/config"
	"github.com/cfmeyers/tenzing/internal/logger"
	"github.com/cfmeyers/tenzing/internal/store"
)

var (
	cfg *config.Config

	logLevel   string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "tenzing",
	Short: "Tenzing - Basecamp todos from the terminal",
	Long: `Tenzing mirrors your Basecamp projects, people, and todos into a
local cache so you can query them offline, and creates new todos from
your editor.

Configure tracked projects and your user id in ~/.config/tenzing/config.toml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}

		logCfg := logger.Config{
			Level:    cfg.LogLevel,
			FilePath: cfg.LogFile,
			Console:  cfg.LogConsole,
		}
		if err := logger.Init(logCfg); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Also log to stderr")

	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(peopleCmd)
	rootCmd.AddCommand(todosCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(newCmd)
}

// openStore opens the local cache at the default path.
func openStore() (*store.Store, error) {
	st, err := store.OpenDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache: %w", err)
	}
	return st, nil
}

// newClient builds a Basecamp client from the loaded config.
func newClient() (*basecamp.Client, error) {
	if cfg.AccountID == "" || cfg.AccessToken == "" {
		return nil, fmt.Errorf("missing Basecamp credentials: set account_id and access_token in the config file or BASECAMP_ACCOUNT_ID / BASECAMP_ACCESS_TOKEN")
	}
	return basecamp.New(cfg.AccountID, cfg.AccessToken), nil
}
