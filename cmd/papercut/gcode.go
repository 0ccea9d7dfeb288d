package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"papercut/internal/analysis"
	"papercut/internal/toolpath"
	"papercut/internal/vector"
)

var gcodeCmd = &cobra.Command{
	Use:   "gcode",
	Short: "Write an offline G-code program for an image",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		width, _ := cmd.Flags().GetFloat64("width")
		height, _ := cmd.Flags().GetFloat64("height")
		offset, _ := cmd.Flags().GetFloat64("offset")
		collapse, _ := cmd.Flags().GetBool("collapse-pen")

		res, err := analyzeFile(input, analysis.NewAnalyzer(cfg.Analysis, logger))
		if err != nil {
			return err
		}

		prog := toolpath.Program{
			Feeds:       cfg.Machine.Feeds,
			Pen:         cfg.Machine.Pen,
			PenDwell:    cfg.Machine.PenDwell,
			Transform:   fitTransform(res.Drawing, width, height, offset),
			CollapsePen: collapse || cfg.Machine.CollapsePen,
		}
		gcode, err := prog.Generate(res.Drawing)
		if err != nil {
			return fmt.Errorf("convert drawing to G-code: %w", err)
		}

		if err = os.WriteFile(output, []byte(gcode), 0o644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		logger.Info("G-code written", "path", output, "paths", len(res.Drawing.Paths))
		fmt.Fprintf(cmd.OutOrStdout(), "G-code successfully written to %s\n", output)
		return nil
	},
}

// fitTransform maps the drawing canvas onto a width x height mm area at
// offset, keeping proportions.
func fitTransform(d *vector.Drawing, width, height, offset float64) toolpath.Transform {
	scale := 1.0
	if d.Width > 0 && d.Height > 0 {
		scale = min(width/d.Width, height/d.Height)
	}
	return toolpath.Transform{Scale: scale, OffsetX: offset, OffsetY: offset}
}

func init() {
	rootCmd.AddCommand(gcodeCmd)
	gcodeCmd.Flags().String("input", "", "Path to the input image (PNG, JPEG, GIF, BMP, TIFF, WebP or SVG)")
	gcodeCmd.Flags().String("output", "output.gcode", "Path to output G-code file")
	gcodeCmd.Flags().Float64("width", 100.0, "Target cutting width (mm)")
	gcodeCmd.Flags().Float64("height", 100.0, "Target cutting height (mm)")
	gcodeCmd.Flags().Float64("offset", 0.0, "Offset (mm) to apply to both X and Y")
	gcodeCmd.Flags().Bool("collapse-pen", false, "Skip pen commands that repeat the current pen state")
	gcodeCmd.MarkFlagRequired("input")
}
