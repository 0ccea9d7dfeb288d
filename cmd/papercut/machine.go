package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"papercut/internal/analysis"
	"papercut/internal/config"
	"papercut/internal/machine"
	"papercut/internal/vector"
)

func newSession(cfg config.Config, logger *slog.Logger) *machine.Session {
	return machine.NewSession(cfg.Machine, machine.WithLogger(logger))
}

var sendCmd = &cobra.Command{
	Use:   "send <file>",
	Short: "Plot an image, or an SVG drawing with --drawing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		var d *vector.Drawing
		if isDrawing, _ := cmd.Flags().GetBool("drawing"); isDrawing {
			if d, err = readDrawing(args[0]); err != nil {
				return err
			}
		} else {
			res, err := analyzeFile(args[0], analysis.NewAnalyzer(cfg.Analysis, logger))
			if err != nil {
				return err
			}
			d = res.Drawing
		}

		s := newSession(cfg, logger)
		defer s.Disconnect()
		if err := s.SendDrawing(d); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sent %d paths to %s\n", len(d.Paths), cfg.Machine.Port)
		return nil
	},
}

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Home the plotter",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		s := newSession(cfg, logger)
		defer s.Disconnect()
		if err := s.Calibrate(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "machine calibrated")
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the plotter answers on its serial port",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := newSession(cfg, logger).TestConnection(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "machine on %s is reachable\n", cfg.Machine.Port)
		return nil
	},
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := machine.Ports()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no serial ports found")
		}
		for _, p := range ports {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd, calibrateCmd, pingCmd, portsCmd)
	sendCmd.Flags().Bool("drawing", false, "Treat the file as an SVG cutting drawing instead of an image")
}
