package main

import (
	"fmt"
	"os"

	"github.com/fentz26/taskboard/internal/config"
	"github.com/fentz26/taskboard/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// cli holds the state shared by every subcommand of one invocation.
type cli struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "taskboard",
		Short: "Taskboard - terminal task dashboard",
		Long: `Taskboard keeps a list of tasks with due dates for the length of a session.
Filter, search, reorder and complete them in the dashboard, or print and export
a view of a seed file from the command line.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		// No RunE - defaults to showing help when no subcommand is provided
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default ./taskboard.yaml or <user config dir>/taskboard/taskboard.yaml)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "log file path")
	flags.String("seed", "", "YAML file of tasks to load at startup")

	_ = c.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("log.file", flags.Lookup("log-file"))
	_ = c.v.BindPFlag("seed", flags.Lookup("seed"))

	rootCmd.AddCommand(
		newTUICmd(c),
		newListCmd(c),
		newExportCmd(c),
	)
	return rootCmd
}

// setup loads the configuration and installs the file logger.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.v, c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if err := logger.Init(&logger.Config{
		Level:      cfg.Log.Level,
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     7,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	logger.Named("cli").Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("config", c.v.ConfigFileUsed()),
		zap.String("seed", cfg.Seed),
	)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
