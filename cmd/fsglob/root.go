package main

import (
	"github.com/spf13/cobra"

	"github.com/php-toolkit/fsutil/internal/config"
	"github.com/php-toolkit/fsutil/internal/logger"
)

var (
	configPath string
	logLevel   string

	cfg *config.Config
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fsglob",
		Short:         "Find files and detect directory changes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded

			level := cfg.Logging.Level
			if logLevel != "" {
				level = logLevel
			}

			return logger.Init(logger.Config{
				Level:  logger.ParseLevel(level),
				Format: logger.ParseFormat(cfg.Logging.Format),
				File: logger.FileConfig{
					Enabled:    cfg.Logging.File != "",
					Path:       cfg.Logging.File,
					MaxSizeMB:  10,
					MaxBackups: 3,
				},
			})
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Shutdown()
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: fsglob.yaml in standard locations)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newFindCmd())
	root.AddCommand(newWatchCmd())

	return root
}
