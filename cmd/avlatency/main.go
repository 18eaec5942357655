package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/avlatency"
	"github.com/xaionaro-go/avlatency/analyzer"
	"github.com/xaionaro-go/avlatency/config"
	"github.com/xaionaro-go/avlatency/logger"
	"github.com/xaionaro-go/avlatency/metrics"
	"github.com/xaionaro-go/avlatency/report"
	"github.com/xaionaro-go/observability"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags] <video>\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	metricsAddr := pflag.String("metrics-listen-addr", "", "an address to serve Prometheus metrics at (/metrics)")
	flags := config.NewFlags(pflag.CommandLine)
	pflag.Parse()
	if len(pflag.Args()) > 1 || (len(pflag.Args()) == 0 && flags.ConfigPath() == "") {
		pflag.Usage()
		os.Exit(1)
	}

	l := logger.New(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	ctx, cancelFn := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancelFn()
	logger.SetDefault(func() logger.Logger {
		return l
	})
	defer belt.Flush(ctx)

	if *netPprofAddr != "" {
		observability.Go(ctx, func(ctx context.Context) { l.Error(http.ListenAndServe(*netPprofAddr, nil)) })
	}

	logger.RouteAstiav(l)

	err := run(ctx, flags, *metricsAddr)
	if err != nil {
		l.Error(err)
		belt.Flush(ctx)
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	flags *config.Flags,
	metricsAddr string,
) error {
	cfg, err := flags.Resolve(pflag.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debugf(ctx, "config: %+v", cfg)

	analysis, err := avlatency.Open(ctx, cfg, nil)
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		m := metrics.New(analysis.Analyzer)
		analysis.Analyzer.OnSample = m.ObserveSample
		if _, err := m.Serve(ctx, metricsAddr); err != nil {
			if err := analysis.Close(ctx); err != nil {
				logger.Warnf(ctx, "unable to close %s: %v", analysis.Source, err)
			}
			return err
		}
	}

	progressCtx, stopProgress := context.WithCancel(ctx)
	observability.Go(progressCtx, func(ctx context.Context) {
		reportProgress(ctx, analysis.Analyzer)
	})

	startedAt := time.Now()
	result, err := analysis.Run(ctx)
	stopProgress()
	switch {
	case err == nil:
	case errors.Is(err, analyzer.ErrSourceUnreadable{}),
		errors.Is(err, analyzer.ErrEmptyResult{}):
		return err
	case result == nil || result.Statistics == nil:
		return err
	default:
		logger.Warnf(ctx, "the analysis stopped early, the reports cover %d frames only: %v", result.FramesRead, err)
	}

	logger.Infof(ctx, "analyzed %s frames in %s, %s samples, decode misses: A:%s B:%s",
		humanize.Comma(int64(result.FramesRead)),
		time.Since(startedAt).Round(time.Millisecond),
		humanize.Comma(int64(len(result.Samples))),
		humanize.Comma(int64(result.DecodeMissesA)),
		humanize.Comma(int64(result.DecodeMissesB)),
	)

	if err := report.WriteStats(os.Stdout, *result.Statistics); err != nil {
		return fmt.Errorf("unable to print the statistics: %w", err)
	}
	return report.WriteFiles(ctx, result, cfg.Outputs)
}

func reportProgress(ctx context.Context, a *analyzer.Analyzer) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			stats := a.Stats()
			logger.Infof(ctx, "%s: %s frames read, %s samples",
				stats.State,
				humanize.Comma(int64(stats.FramesRead)),
				humanize.Comma(int64(stats.Samples)),
			)
		}
	}
}
