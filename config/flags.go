package config

import (
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/avlatency/types"
)

// Flags binds command-line flags to a Config. Only flags that were set
// explicitly override a config file, see ApplyTo.
type Flags struct {
	FlagSet *pflag.FlagSet
	Values  Config
	fps     types.Rational
}

const FlagConfig = "config"

func NewFlags(flags *pflag.FlagSet) *Flags {
	f := &Flags{
		FlagSet: flags,
		Values:  Default(),
	}
	v := &f.Values
	flags.String(FlagConfig, "", "path to a YAML config file; explicitly set flags take precedence over it")
	flags.Var(&f.fps, "fps", "frame rate of the video, e.g. 60 or 30000/1001 (default: taken from the container)")
	flags.Var(&v.RegionA, "region-a", "region of the reference marker: x0,y0,x1,y1")
	flags.Var(&v.RegionB, "region-b", "region of the delayed marker: x0,y0,x1,y1")
	flags.StringVar((*string)(&v.Source), "source", string(v.Source), "video backend: libav|opencv")
	flags.StringVar(&v.LibAV.InputFormat, "input-format", "", "force the libav demuxer")
	flags.StringVar((*string)(&v.Decoder), "decoder", string(v.Decoder), "marker decoder: zxing|opencv")
	flags.BoolVar(&v.Preprocess.Grayscale, "grayscale", false, "convert regions to grayscale before decoding")
	flags.BoolVar(&v.Preprocess.Invert, "invert", false, "invert regions before decoding (light-on-dark markers)")
	flags.IntVar(&v.Preprocess.Upscale, "upscale", 0, "enlarge regions by this integer factor before decoding")
	flags.BoolVar(&v.ParallelDecode, "parallel-decode", false, "decode the two regions of a frame concurrently")
	flags.StringVar(&v.Outputs.Stats, "stats", v.Outputs.Stats, "output file for the statistics (empty to disable)")
	flags.StringVar(&v.Outputs.CSV, "csv", v.Outputs.CSV, "output CSV file with time and frame difference (empty to disable)")
	flags.StringVar(&v.Outputs.JSON, "json", "", "output JSON file with the full result")
	flags.StringVar(&v.Outputs.Plot, "plot", "", "output chart of frame difference vs time (.png, .svg, .pdf, ...)")
	return f
}

func (f *Flags) ConfigPath() string {
	path, _ := f.FlagSet.GetString(FlagConfig)
	return path
}

// ApplyTo copies every explicitly set flag into cfg.
func (f *Flags) ApplyTo(cfg *Config) {
	v := &f.Values
	f.FlagSet.Visit(func(flag *pflag.Flag) {
		switch flag.Name {
		case "fps":
			fps := f.fps
			cfg.FPS = &fps
		case "region-a":
			cfg.RegionA = v.RegionA
		case "region-b":
			cfg.RegionB = v.RegionB
		case "source":
			cfg.Source = v.Source
		case "input-format":
			cfg.LibAV.InputFormat = v.LibAV.InputFormat
		case "decoder":
			cfg.Decoder = v.Decoder
		case "grayscale":
			cfg.Preprocess.Grayscale = v.Preprocess.Grayscale
		case "invert":
			cfg.Preprocess.Invert = v.Preprocess.Invert
		case "upscale":
			cfg.Preprocess.Upscale = v.Preprocess.Upscale
		case "parallel-decode":
			cfg.ParallelDecode = v.ParallelDecode
		case "stats":
			cfg.Outputs.Stats = v.Outputs.Stats
		case "csv":
			cfg.Outputs.CSV = v.Outputs.CSV
		case "json":
			cfg.Outputs.JSON = v.Outputs.JSON
		case "plot":
			cfg.Outputs.Plot = v.Outputs.Plot
		}
	})
}

// Resolve returns the effective config: the config file if one is given
// (or the defaults otherwise) with explicitly set flags applied on top.
func (f *Flags) Resolve(video string) (Config, error) {
	cfg := Default()
	if path := f.ConfigPath(); path != "" {
		var err error
		cfg, err = LoadFile(path)
		if err != nil {
			return Config{}, err
		}
	}
	f.ApplyTo(&cfg)
	if video != "" {
		cfg.Video = video
	}
	return cfg, cfg.Validate()
}
