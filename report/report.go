// Package report renders the outcome of an analysis run: a plain text
// statistics summary, a CSV series, a JSON document and a chart.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/xaionaro-go/avlatency/analyzer"
	"github.com/xaionaro-go/avlatency/types"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteStats writes one "key: value" line per statistic.
func WriteStats(w io.Writer, stats types.Statistics) error {
	_, err := fmt.Fprintf(w,
		"average: %s\nmin: %d\nmax: %d\nstd: %s\ncount: %d\nmedian: %s\n",
		formatFloat(stats.Mean),
		stats.Min,
		stats.Max,
		formatFloat(stats.StdDev),
		stats.Count,
		formatFloat(stats.Median),
	)
	return err
}

// WriteCSV writes a "time,frame_difference" header followed by one row per
// sample.
func WriteCSV(w io.Writer, samples []types.SamplePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "frame_difference"}); err != nil {
		return err
	}
	for _, s := range samples {
		if err := cw.Write([]string{
			formatFloat(s.Time),
			strconv.FormatInt(s.Delta, 10),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, result *analyzer.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	return enc.Encode(result)
}
