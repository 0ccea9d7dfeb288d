package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"papercut/internal/config"
	"papercut/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "papercut",
	Short: "Turn artwork into a paper cutting plan and plotter toolpath",
	Long: `papercut traces the outlines of an image, plans the cuts inside-out,
emits an SVG drawing and drives a GRBL pen plotter over a serial port.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides config")
	rootCmd.PersistentFlags().String("port", "", "Serial port of the plotter; overrides config")
}

// setup loads the configuration and builds the logger for a command.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Machine.Port = port
	}
	return cfg, logging.New(logging.ParseLevel(cfg.LogLevel)), nil
}
