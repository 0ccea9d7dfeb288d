// Package analysis runs the whole image-to-plan pipeline for callers: decode,
// extract boundaries, plan strokes, emit the drawing and render a preview.
package analysis

import (
	"image"
	"log/slog"

	"papercut/internal/contour"
	"papercut/internal/imaging"
	"papercut/internal/logging"
	"papercut/internal/plan"
	"papercut/internal/vector"
)

// Options configure every pipeline stage.
type Options struct {
	// TargetSize bounds the longer image side before extraction.
	TargetSize int             `yaml:"target_size" mapstructure:"target_size"`
	Contour    contour.Options `yaml:"contour" mapstructure:"contour"`
	Plan       plan.Options    `yaml:"plan" mapstructure:"plan"`
	Canvas     vector.Canvas   `yaml:"canvas" mapstructure:"canvas"`
}

// DefaultOptions returns the stage defaults with an 800 pixel target size.
func DefaultOptions() Options {
	return Options{
		TargetSize: 800,
		Contour:    contour.DefaultOptions(),
		Plan:       plan.DefaultOptions(),
		Canvas:     vector.DefaultCanvas(),
	}
}

// Result is the outcome of one analysis.
type Result struct {
	Steps   []plan.Step     `json:"steps"`
	Summary plan.Summary    `json:"summary"`
	Drawing *vector.Drawing `json:"-"`
	// SVG is the marshalled drawing.
	SVG string `json:"svg_data"`
	// Preview is a PNG of the source image with the plan drawn over it.
	Preview []byte `json:"visualization"`
}

// Analyzer is safe for concurrent use.
type Analyzer struct {
	opts      Options
	logger    *slog.Logger
	extractor *contour.Extractor
	planner   *plan.Planner
	emitter   *vector.Emitter
}

// NewAnalyzer wires the pipeline stages.
func NewAnalyzer(opts Options, logger *slog.Logger) *Analyzer {
	logger = logging.OrNop(logger)
	return &Analyzer{
		opts:      opts,
		logger:    logger,
		extractor: contour.NewExtractor(opts.Contour, logger),
		planner:   plan.NewPlanner(opts.Plan, logger),
		emitter:   vector.NewEmitter(opts.Canvas, logger),
	}
}

// Analyze accepts encoded image bytes, or the same as base64 text with an
// optional data URL prefix. ok is false when the input is unusable: it cannot
// be decoded or yields no boundaries or steps.
func (a *Analyzer) Analyze(data []byte) (*Result, bool) {
	img, err := imaging.Decode(data)
	if err != nil {
		raw, b64err := imaging.DecodeBase64(string(data))
		if b64err != nil {
			a.logger.Warn("input unusable", "error", err)
			return nil, false
		}
		if img, err = imaging.Decode(raw); err != nil {
			a.logger.Warn("input unusable", "error", err)
			return nil, false
		}
	}
	return a.AnalyzeImage(img)
}

// AnalyzeImage runs the pipeline on a decoded image.
func (a *Analyzer) AnalyzeImage(img image.Image) (*Result, bool) {
	thumb := imaging.Thumbnail(img, a.opts.TargetSize)
	a.logger.Info("analyzing image", "width", thumb.Bounds().Dx(), "height", thumb.Bounds().Dy())

	forest := a.extractor.Extract(thumb)
	if forest.Len() == 0 {
		a.logger.Warn("input unusable", "reason", "no boundaries found")
		return nil, false
	}

	steps := a.planner.Plan(forest)
	if len(steps) == 0 {
		a.logger.Warn("input unusable", "reason", "no steps planned", "boundaries", forest.Len())
		return nil, false
	}

	drawing := a.emitter.Emit(forest)
	svg, err := vector.MarshalSVG(drawing)
	if err != nil {
		a.logger.Error("marshal drawing", "error", err)
		return nil, false
	}

	res := &Result{
		Steps:   steps,
		Summary: plan.Summarize(steps),
		Drawing: drawing,
		SVG:     string(svg),
	}
	if res.Preview, err = Preview(thumb, steps); err != nil {
		// the plan is still usable without a preview
		a.logger.Error("render preview", "error", err)
	}

	a.logger.Info("analysis done", "boundaries", forest.Len(), "steps", len(steps), "strokes", res.Summary.Strokes)
	return res, true
}
