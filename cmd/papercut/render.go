package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"papercut/internal/vector"
)

var renderCmd = &cobra.Command{
	Use:   "render <drawing.svg> <out.png>",
	Short: "Rasterize a cutting drawing to PNG",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("size")

		d, err := readDrawing(args[0])
		if err != nil {
			return err
		}
		img, err := vector.Rasterize(d, size, size)
		if err != nil {
			return err
		}

		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("encode png: %w", err)
		}
		return f.Close()
	},
}

func readDrawing(path string) (*vector.Drawing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := vector.ParseSVG(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().Int("size", 800, "Output width and height in pixels")
}
