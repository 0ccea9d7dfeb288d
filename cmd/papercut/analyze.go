package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"papercut/internal/analysis"
	"papercut/internal/imaging"
)

var errUnusable = errors.New("no cutting steps could be planned for this image")

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Plan the cutting steps for an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		res, err := analyzeFile(args[0], analysis.NewAnalyzer(cfg.Analysis, logger))
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		if out, _ := cmd.Flags().GetString("svg"); out != "" {
			if err := os.WriteFile(out, []byte(res.SVG), 0o644); err != nil {
				return fmt.Errorf("write svg: %w", err)
			}
		}
		if out, _ := cmd.Flags().GetString("preview"); out != "" && len(res.Preview) > 0 {
			if err := os.WriteFile(out, res.Preview, 0o644); err != nil {
				return fmt.Errorf("write preview: %w", err)
			}
		}
		printSteps(cmd.OutOrStdout(), termenv.ColorProfile(), res)
		return nil
	},
}

func analyzeFile(path string, a *analysis.Analyzer) (*analysis.Result, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}
	res, ok := a.AnalyzeImage(img)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, errUnusable)
	}
	return res, nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("svg", "", "Write the cutting drawing to this SVG file")
	analyzeCmd.Flags().String("preview", "", "Write the annotated preview to this PNG file")
	analyzeCmd.Flags().Bool("json", false, "Print the full result as JSON")
}
