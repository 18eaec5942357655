package report

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/xaionaro-go/avlatency/indicator"
	"github.com/xaionaro-go/avlatency/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 4 * vg.Inch

	// TrendWindow is the number of samples the trend line is averaged over;
	// shorter series are plotted without it.
	TrendWindow = 30
)

func NewPlot(samples []types.SamplePoint) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Frame difference vs time"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "frame difference"
	p.Add(plotter.NewGrid())

	if len(samples) == 0 {
		return p, nil
	}

	xys := make(plotter.XYs, 0, len(samples))
	for _, s := range samples {
		xys = append(xys, plotter.XY{X: s.Time, Y: float64(s.Delta)})
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("unable to build the line: %w", err)
	}
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Color = color.RGBA{B: 200, A: 255}
	p.Add(line)

	if len(samples) <= TrendWindow {
		return p, nil
	}
	deltas := make([]int64, 0, len(samples))
	for _, s := range samples {
		deltas = append(deltas, s.Delta)
	}
	trendXYs := make(plotter.XYs, 0, len(samples)-TrendWindow+1)
	for idx, v := range indicator.Smooth(deltas, TrendWindow) {
		if idx < TrendWindow-1 {
			continue
		}
		trendXYs = append(trendXYs, plotter.XY{X: samples[idx].Time, Y: v})
	}
	trend, err := plotter.NewLine(trendXYs)
	if err != nil {
		return nil, fmt.Errorf("unable to build the trend line: %w", err)
	}
	trend.LineStyle.Width = vg.Points(1.5)
	trend.LineStyle.Color = color.RGBA{R: 220, A: 255}
	trend.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(trend)
	p.Legend.Add("frame difference", line)
	p.Legend.Add(fmt.Sprintf("trend (MAMA, %d samples)", TrendWindow), trend)
	p.Legend.Top = true
	return p, nil
}

// WritePlot renders the chart in the given format ("png", "svg", "pdf", ...).
func WritePlot(w io.Writer, samples []types.SamplePoint, format string) error {
	p, err := NewPlot(samples)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return fmt.Errorf("unable to render the plot as %q: %w", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// PlotFormat returns the chart format implied by the extension of path.
func PlotFormat(path string) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch format {
	case "png", "jpg", "jpeg", "svg", "pdf", "eps", "tif", "tiff":
		return format, nil
	case "":
		return "", fmt.Errorf("no file extension in %q to choose the plot format", path)
	default:
		return "", fmt.Errorf("unsupported plot format %q", format)
	}
}
