package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avlatency/analyzer"
	"github.com/xaionaro-go/avlatency/types"
)

func exampleResult() *analyzer.Result {
	return &analyzer.Result{
		Samples: []types.SamplePoint{
			{FrameIndex: 0, Time: 0, Delta: 0},
			{FrameIndex: 1, Time: 0.5, Delta: 0},
			{FrameIndex: 3, Time: 1.5, Delta: 0},
			{FrameIndex: 4, Time: 2, Delta: 1},
		},
		Statistics: &types.Statistics{
			Count:  4,
			Mean:   0.25,
			Min:    0,
			Max:    1,
			StdDev: 0.5,
			Median: 0,
		},
		FramesRead:    5,
		DecodeMissesB: 1,
		FinalState:    analyzer.StateExhausted,
	}
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStats(&buf, *exampleResult().Statistics))
	require.Equal(t, "average: 0.25\nmin: 0\nmax: 1\nstd: 0.5\ncount: 4\nmedian: 0\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exampleResult().Samples))
	require.Equal(t, "time,frame_difference\n0,0\n0.5,0\n1.5,0\n2,1\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteCSV(&buf, nil))
	require.Equal(t, "time,frame_difference\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, exampleResult()))

	var doc struct {
		Samples    []types.SamplePoint
		Statistics types.Statistics
		FramesRead uint64
		FinalState string
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, exampleResult().Samples, doc.Samples)
	require.Equal(t, 0.25, doc.Statistics.Mean)
	require.Equal(t, uint64(5), doc.FramesRead)
	require.Equal(t, "exhausted", doc.FinalState)
	require.Contains(t, buf.String(), `"std": 0.5`)
}

func TestWritePlot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlot(&buf, exampleResult().Samples, "png"))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	buf.Reset()
	require.NoError(t, WritePlot(&buf, exampleResult().Samples, "svg"))
	require.Contains(t, buf.String(), "<svg")

	buf.Reset()
	require.NoError(t, WritePlot(&buf, nil, "png"), "an empty series still renders the axes")

	require.Error(t, WritePlot(&buf, nil, "bmp"))
}

func TestPlotFormat(t *testing.T) {
	for path, want := range map[string]string{
		"out.png":     "png",
		"dir/out.SVG": "svg",
		"x.pdf":       "pdf",
	} {
		got, err := PlotFormat(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}
	for _, path := range []string{"noext", "out.bmp"} {
		_, err := PlotFormat(path)
		require.Error(t, err, path)
	}
}

func TestWriteFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	paths := Paths{
		Stats: filepath.Join(dir, "stats.txt"),
		CSV:   filepath.Join(dir, "delta.csv"),
		JSON:  filepath.Join(dir, "result.json"),
		Plot:  filepath.Join(dir, "plot.png"),
	}
	require.NoError(t, WriteFiles(ctx, exampleResult(), paths))

	stats, err := os.ReadFile(paths.Stats)
	require.NoError(t, err)
	require.Contains(t, string(stats), "average: 0.25\n")

	csv, err := os.ReadFile(paths.CSV)
	require.NoError(t, err)
	require.Contains(t, string(csv), "2,1\n")

	for _, path := range []string{paths.JSON, paths.Plot} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.NotZero(t, info.Size())
	}
}

func TestWriteFilesPartial(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	result := exampleResult()
	result.Samples = nil
	result.Statistics = nil

	paths := Paths{
		Stats: filepath.Join(dir, "stats.txt"),
		CSV:   filepath.Join(dir, "delta.csv"),
		Plot:  filepath.Join(dir, "plot.bmp"),
	}
	err := WriteFiles(ctx, result, paths)
	require.Error(t, err)

	_, err = os.Stat(paths.Stats)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(paths.Plot)
	require.True(t, os.IsNotExist(err))

	csv, err := os.ReadFile(paths.CSV)
	require.NoError(t, err)
	require.Equal(t, "time,frame_difference\n", string(csv))

	require.Error(t, WriteFiles(ctx, nil, paths))
	require.True(t, Paths{}.IsEmpty())
	require.False(t, paths.IsEmpty())
}

func TestNewPlotTrend(t *testing.T) {
	var samples []types.SamplePoint
	for i := range 2 * TrendWindow {
		samples = append(samples, types.SamplePoint{
			FrameIndex: uint64(i),
			Time:       float64(i) / 60,
			Delta:      int64(5 + i%3),
		})
	}

	var buf bytes.Buffer
	require.NoError(t, WritePlot(&buf, samples, "svg"))
	require.Contains(t, buf.String(), "trend")

	buf.Reset()
	require.NoError(t, WritePlot(&buf, samples[:TrendWindow], "svg"))
	require.NotContains(t, buf.String(), "trend")
}
