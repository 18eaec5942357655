// Package config describes a single analysis run: what to read, where the
// markers are and which reports to write.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/xaionaro-go/avlatency/marker"
	"github.com/xaionaro-go/avlatency/report"
	"github.com/xaionaro-go/avlatency/source"
	"github.com/xaionaro-go/avlatency/types"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Video  string             `yaml:"video,omitempty"`
	Source source.Kind        `yaml:"source,omitempty"`
	LibAV  source.LibAVConfig `yaml:"libav,omitempty"`

	// FPS overrides the frame rate reported by the container.
	FPS *types.Rational `yaml:"fps,omitempty"`

	// Deltas are computed as the marker value of RegionB minus the one of
	// RegionA.
	RegionA types.Region `yaml:"region_a"`
	RegionB types.Region `yaml:"region_b"`

	Decoder        marker.Kind       `yaml:"decoder,omitempty"`
	Preprocess     marker.Preprocess `yaml:"preprocess,omitempty"`
	ParallelDecode bool              `yaml:"parallel_decode,omitempty"`

	Outputs report.Paths `yaml:"outputs,omitempty"`
}

const (
	DefaultStatsPath = "stats.txt"
	DefaultCSVPath   = "delta.csv"
)

func Default() Config {
	return Config{
		Source:  source.KindLibAV,
		Decoder: marker.KindZXing,
		Outputs: report.Paths{
			Stats: DefaultStatsPath,
			CSV:   DefaultCSVPath,
		},
	}
}

// Parse reads a YAML document on top of Default(). Unknown keys are
// rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("unable to parse the config: %w", err)
	}
	return cfg, nil
}

func LoadFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read the config file '%s': %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(b))
	if err != nil {
		return Config{}, fmt.Errorf("'%s': %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) Bytes() ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate checks everything that is known before the video is opened;
// a nil FPS is allowed and is resolved from the container later.
func (cfg Config) Validate() error {
	if cfg.Video == "" {
		return fmt.Errorf("the video is not set")
	}
	if cfg.RegionA.IsEmpty() {
		return fmt.Errorf("region A is not set or is empty: '%s'", cfg.RegionA)
	}
	if cfg.RegionB.IsEmpty() {
		return fmt.Errorf("region B is not set or is empty: '%s'", cfg.RegionB)
	}
	if cfg.FPS != nil && !cfg.FPS.IsPositive() {
		return fmt.Errorf("fps must be positive, got %s", *cfg.FPS)
	}
	if cfg.Preprocess.Upscale < 0 {
		return fmt.Errorf("upscale factor must not be negative, got %d", cfg.Preprocess.Upscale)
	}
	if cfg.Outputs.Plot != "" {
		if _, err := report.PlotFormat(cfg.Outputs.Plot); err != nil {
			return err
		}
	}
	return nil
}
