// Package config holds the tunable parameters of a textract run.
//
// A YAML file may override any subset of the defaults; fields absent from the
// file keep their default values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/ironsheep/textract/internal/detection"
)

// Canvas describes the canonical geometry every input is normalised to.
type Canvas struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
	// Border is the width of the black frame added on every side.
	Border int `yaml:"border" json:"border"`
}

// Canny holds the hysteresis thresholds of the edge detector.
type Canny struct {
	Low  float64 `yaml:"low" json:"low"`
	High float64 `yaml:"high" json:"high"`
}

// Debug controls the optional diagnostic images.
type Debug struct {
	// Dir receives edges.png, processed.png and rejected.png when set.
	Dir          string `yaml:"dir" json:"dir"`
	OutlineColor string `yaml:"outlineColor" json:"outlineColor"`
	LabelColor   string `yaml:"labelColor" json:"labelColor"`
}

// Config is the complete parameter set for one run.
type Config struct {
	Canvas     Canvas           `yaml:"canvas" json:"canvas"`
	Canny      Canny            `yaml:"canny" json:"canny"`
	Classifier detection.Params `yaml:"classifier" json:"classifier"`
	// BlurRadius is the box-blur radius applied to the binarized canvas.
	// Zero disables smoothing.
	BlurRadius float64 `yaml:"blurRadius" json:"blurRadius"`
	Debug      Debug   `yaml:"debug" json:"debug"`
}

// Default returns the reference parameters.
func Default() Config {
	return Config{
		Canvas: Canvas{Width: 640, Height: 480, Border: 50},
		Canny:  Canny{Low: 200, High: 250},

		Classifier: detection.DefaultParams(),
		BlurRadius: 1,
		Debug: Debug{
			OutlineColor: "#646464",
			LabelColor:   "#ffffff",
		},
	}
}

// Load reads a YAML document from r over the defaults. Unknown keys are an
// error so that a misspelt parameter does not silently fall back.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// LoadFile is Load on the contents of path.
func LoadFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	cfg, err := Load(bytes.NewReader(b))
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects parameter combinations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("config: canvas must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.Border < 0 {
		return fmt.Errorf("config: negative border %d", c.Canvas.Border)
	}
	if c.Canny.Low < 0 || c.Canny.High < 0 {
		return errors.New("config: negative canny threshold")
	}
	if c.Canny.Low > c.Canny.High {
		return fmt.Errorf("config: canny low %g above high %g", c.Canny.Low, c.Canny.High)
	}

	p := c.Classifier
	if p.MinAspect <= 0 || p.MinAspect >= p.MaxAspect {
		return fmt.Errorf("config: aspect bounds [%g, %g] are empty", p.MinAspect, p.MaxAspect)
	}
	if p.MinArea < 0 {
		return fmt.Errorf("config: negative minArea %d", p.MinArea)
	}
	if p.MaxAreaDivisor <= 0 {
		return fmt.Errorf("config: maxAreaDivisor must be positive, got %d", p.MaxAreaDivisor)
	}
	if p.MaxGlyphChildren < 0 {
		return fmt.Errorf("config: negative maxGlyphChildren %d", p.MaxGlyphChildren)
	}

	if c.BlurRadius < 0 {
		return fmt.Errorf("config: negative blurRadius %g", c.BlurRadius)
	}
	return nil
}
