package contour

import (
	"image"
	"log/slog"

	"papercut/internal/imaging"
	"papercut/internal/logging"
)

// Options tunes the extractor.
type Options struct {
	// LowRatio and HighRatio place the Canny thresholds around the median intensity.
	LowRatio  float64 `yaml:"low_ratio" mapstructure:"low_ratio"`
	HighRatio float64 `yaml:"high_ratio" mapstructure:"high_ratio"`
	// CollapseTwins drops the inner twin border of one pixel wide edges.
	CollapseTwins bool `yaml:"collapse_twins" mapstructure:"collapse_twins"`
}

// DefaultOptions returns the thresholds used for cut-paper artwork.
func DefaultOptions() Options {
	return Options{LowRatio: 0.15, HighRatio: 0.25, CollapseTwins: true}
}

// Extractor converts images into boundary forests. It holds no mutable
// state and is safe for concurrent use.
type Extractor struct {
	opts   Options
	logger *slog.Logger
}

// NewExtractor creates an extractor; a nil logger discards output.
func NewExtractor(opts Options, logger *slog.Logger) *Extractor {
	return &Extractor{opts: opts, logger: logging.OrNop(logger)}
}

// Extract traces every boundary of img. An image without edges yields an
// empty forest, never an error.
func (e *Extractor) Extract(img image.Image) *Forest {
	gray := imaging.Gray(img)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w == 0 || h == 0 {
		return &Forest{Width: w, Height: h}
	}

	smooth := blur(gray)
	v := median(smooth)
	low, high := thresholds(v, e.opts.LowRatio, e.opts.HighRatio)
	e.logger.Debug("canny thresholds", "median", v, "low", low, "high", high)

	edges := canny(smooth, low, high)
	borders := traceBorders(edges, w, h)
	f := newForest(borders, w, h, e.opts.CollapseTwins)

	e.logger.Info("boundaries extracted", "traced", len(borders), "kept", f.Len())
	return f
}
