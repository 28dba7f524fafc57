// Package extract runs the text-extraction pipeline for one image: normalise
// the geometry, detect edges, extract contours, classify glyphs and binarize
// each glyph box onto a white canvas.
package extract

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/textract/internal/binarize"
	"github.com/ironsheep/textract/internal/config"
	"github.com/ironsheep/textract/internal/contour"
	"github.com/ironsheep/textract/internal/detection"
	"github.com/ironsheep/textract/internal/imaging"
	"github.com/ironsheep/textract/internal/vision"
)

// Result summarises one run.
type Result struct {
	// Input describes the source file. Nil for in-memory runs.
	Input *imaging.ImageInfo `json:"input,omitempty"`

	// Output is the path the binarized image was written to.
	Output string `json:"output,omitempty"`

	// Backend names the vision backend that produced the contours.
	Backend string `json:"backend"`

	// Width and Height are the dimensions of the normalised, padded canvas.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Contours is the number of contours extracted from the edge map.
	Contours int `json:"contours"`

	// Kept lists the glyph contour indices in ascending order.
	Kept []int `json:"kept"`

	// Rejected counts rejected contours by reason.
	Rejected map[string]int `json:"rejected"`

	// Regions holds one estimate per kept glyph, in the order of Kept.
	Regions []binarize.Estimate `json:"regions"`

	Elapsed time.Duration `json:"elapsed"`
}

// Pipeline carries the parameters and collaborators of a run. It holds no
// per-image state, so one Pipeline may process many images in sequence.
type Pipeline struct {
	cfg     config.Config
	backend vision.Backend
	logger  zerolog.Logger
}

// New returns a pipeline. A nil backend selects vision.Default().
func New(cfg config.Config, backend vision.Backend, logger zerolog.Logger) *Pipeline {
	if backend == nil {
		backend = vision.Default()
	}
	return &Pipeline{cfg: cfg, backend: backend, logger: logger}
}

// Run reads inPath, processes it and writes the binarized image to outPath.
//
// Decoding failures are returned as *imaging.InputError and nothing is
// written. Encoding and write failures, including those of debug images, are
// returned as *imaging.OutputError.
func (p *Pipeline) Run(inPath, outPath string) (*Result, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	img, err := imaging.Load(inPath)
	if err != nil {
		return nil, err
	}

	out, res, err := p.Process(img)
	if err != nil {
		return nil, err
	}

	if info, err := imaging.Describe(inPath, img); err == nil {
		res.Input = info
	} else {
		p.logger.Debug().Err(err).Str("path", inPath).Msg("describe input")
	}

	if err := imaging.Save(out, outPath); err != nil {
		return nil, err
	}
	res.Output = outPath

	p.logger.Info().
		Str("input", inPath).
		Str("output", outPath).
		Str("backend", res.Backend).
		Int("width", res.Width).
		Int("height", res.Height).
		Int("contours", res.Contours).
		Int("kept", len(res.Kept)).
		Dur("elapsed", res.Elapsed).
		Msg("text extracted")
	return res, nil
}

// Process runs the pipeline on a decoded image and returns the smoothed
// binarized canvas without writing it anywhere. Debug images are still
// written when the configuration asks for them.
func (p *Pipeline) Process(img image.Image) (image.Image, *Result, error) {
	start := time.Now()
	cfg := p.cfg

	prepared, err := p.backend.Prepare(img, cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Border)
	if err != nil {
		return nil, nil, fmt.Errorf("prepare: %w", err)
	}
	edges, err := p.backend.EdgeMap(prepared, cfg.Canny.Low, cfg.Canny.High)
	if err != nil {
		return nil, nil, fmt.Errorf("edge map: %w", err)
	}
	set, err := p.backend.Contours(edges)
	if err != nil {
		return nil, nil, fmt.Errorf("contours: %w", err)
	}

	b := prepared.Bounds()
	classifier := detection.NewClassifier(set, b.Dx()*b.Dy(), cfg.Classifier)
	res := &Result{
		Backend:  p.backend.Name(),
		Width:    b.Dx(),
		Height:   b.Dy(),
		Contours: set.Len(),
		Rejected: make(map[string]int),
	}

	var rejected []int
	for i := 0; i < classifier.Len(); i++ {
		reason := classifier.Classify(i)
		if reason == detection.Kept {
			res.Kept = append(res.Kept, i)
			continue
		}
		rejected = append(rejected, i)
		res.Rejected[reason.String()]++
		p.logger.Debug().Int("region", i).Stringer("reason", reason).Msg("contour rejected")
	}

	bin := binarize.New(prepared, p.logger.With().Str("component", "binarize").Logger())
	canvas := bin.NewCanvas()
	res.Regions = bin.Apply(canvas, set, res.Kept)

	out := imaging.Smooth(canvas, cfg.BlurRadius)

	if cfg.Debug.Dir != "" {
		if err := p.writeDebug(edges, set, res.Kept, rejected); err != nil {
			return nil, nil, err
		}
	}

	res.Elapsed = time.Since(start)
	return out, res, nil
}

// writeDebug saves the edge map and the kept/rejected box overlays.
func (p *Pipeline) writeDebug(edges *image.Gray, set *contour.Set, kept, rejected []int) error {
	dir := p.cfg.Debug.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &imaging.OutputError{Path: dir, Err: err}
	}

	boxes := func(indices []int) []imaging.LabeledBox {
		out := make([]imaging.LabeledBox, 0, len(indices))
		for _, i := range indices {
			out = append(out, imaging.LabeledBox{Bounds: set.Contours[i].Bounds(), Label: i})
		}
		return out
	}

	artefacts := []struct {
		name string
		img  image.Image
	}{
		{"edges.png", edges},
		{"processed.png", imaging.Overlay(edges, boxes(kept), p.cfg.Debug.OutlineColor, p.cfg.Debug.LabelColor)},
		{"rejected.png", imaging.Overlay(edges, boxes(rejected), p.cfg.Debug.OutlineColor, p.cfg.Debug.LabelColor)},
	}
	for _, a := range artefacts {
		path := filepath.Join(dir, a.name)
		if err := imaging.Save(a.img, path); err != nil {
			return err
		}
		p.logger.Debug().Str("path", path).Msg("debug image written")
	}
	return nil
}
