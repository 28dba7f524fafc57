package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/textract/internal/detection"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, Canvas{Width: 640, Height: 480, Border: 50}, cfg.Canvas)
	assert.Equal(t, Canny{Low: 200, High: 250}, cfg.Canny)
	assert.Equal(t, detection.DefaultParams(), cfg.Classifier)
	assert.Equal(t, 1.0, cfg.BlurRadius)
	assert.Empty(t, cfg.Debug.Dir)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	cfg, err := Load(strings.NewReader(`
canny:
  low: 100
classifier:
  minArea: 30
debug:
  dir: /tmp/dbg
`))
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.Canny.Low)
	assert.Equal(t, 250.0, cfg.Canny.High)
	assert.Equal(t, 30, cfg.Classifier.MinArea)
	assert.Equal(t, 10.0, cfg.Classifier.MaxAspect)
	assert.Equal(t, "/tmp/dbg", cfg.Debug.Dir)
	assert.Equal(t, "#646464", cfg.Debug.OutlineColor)
	assert.Equal(t, 640, cfg.Canvas.Width)
}

func TestLoadEmptyDocument(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("canny:\n  lo: 10\n"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textract.yaml")
	require.NoError(t, os.WriteFile(path, []byte("canvas:\n  border: 0\nblurRadius: 0\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Canvas.Border)
	assert.Equal(t, 0.0, cfg.BlurRadius)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }, "canvas"},
		{"negative border", func(c *Config) { c.Canvas.Border = -1 }, "border"},
		{"negative threshold", func(c *Config) { c.Canny.Low = -5 }, "negative canny"},
		{"low above high", func(c *Config) { c.Canny.Low = 300 }, "above high"},
		{"empty aspect range", func(c *Config) { c.Classifier.MinAspect = 10 }, "aspect"},
		{"zero min aspect", func(c *Config) { c.Classifier.MinAspect = 0 }, "aspect"},
		{"negative min area", func(c *Config) { c.Classifier.MinArea = -1 }, "minArea"},
		{"zero divisor", func(c *Config) { c.Classifier.MaxAreaDivisor = 0 }, "maxAreaDivisor"},
		{"negative children", func(c *Config) { c.Classifier.MaxGlyphChildren = -1 }, "maxGlyphChildren"},
		{"negative blur", func(c *Config) { c.BlurRadius = -1 }, "blurRadius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}
