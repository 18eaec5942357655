package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xaionaro-go/avlatency/analyzer"
	"github.com/xaionaro-go/avlatency/logger"
)

// Paths lists the output files; an empty path disables that output.
type Paths struct {
	Stats string `yaml:"stats,omitempty"`
	CSV   string `yaml:"csv,omitempty"`
	JSON  string `yaml:"json,omitempty"`
	Plot  string `yaml:"plot,omitempty"`
}

func (p Paths) IsEmpty() bool {
	return p == Paths{}
}

func writeFile(path string, fn func(io.Writer) error) (_err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			_err = errors.Join(_err, err)
		}
	}()
	return fn(f)
}

// WriteFiles writes every configured output. The statistics file is
// skipped when the result has no statistics. All outputs are attempted
// even if some of them fail.
func WriteFiles(
	ctx context.Context,
	result *analyzer.Result,
	paths Paths,
) (_err error) {
	logger.Debugf(ctx, "WriteFiles(%+v)", paths)
	defer func() { logger.Debugf(ctx, "/WriteFiles(%+v): %v", paths, _err) }()

	if result == nil {
		return fmt.Errorf("no result to write")
	}

	var errs []error
	write := func(kind, path string, fn func(io.Writer) error) {
		if path == "" {
			return
		}
		if err := writeFile(path, fn); err != nil {
			errs = append(errs, fmt.Errorf("unable to write the %s to '%s': %w", kind, path, err))
			return
		}
		logger.Infof(ctx, "wrote the %s to '%s'", kind, path)
	}

	if result.Statistics != nil {
		write("statistics", paths.Stats, func(w io.Writer) error {
			return WriteStats(w, *result.Statistics)
		})
	} else if paths.Stats != "" {
		logger.Warnf(ctx, "no statistics to write to '%s'", paths.Stats)
	}
	write("series", paths.CSV, func(w io.Writer) error {
		return WriteCSV(w, result.Samples)
	})
	write("summary", paths.JSON, func(w io.Writer) error {
		return WriteJSON(w, result)
	})
	if paths.Plot != "" {
		format, err := PlotFormat(paths.Plot)
		if err != nil {
			errs = append(errs, err)
		} else {
			write("plot", paths.Plot, func(w io.Writer) error {
				return WritePlot(w, result.Samples, format)
			})
		}
	}
	return errors.Join(errs...)
}
