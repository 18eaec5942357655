// Package metrics exposes the progress of an analysis run as Prometheus
// metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xaionaro-go/avlatency/analyzer"
	"github.com/xaionaro-go/avlatency/logger"
	"github.com/xaionaro-go/avlatency/types"
	"github.com/xaionaro-go/observability"
)

const namespace = "avlatency"

type StatsProvider interface {
	Stats() analyzer.Stats
}

type Metrics struct {
	Registry  *prometheus.Registry
	LastDelta prometheus.Gauge
}

// New registers collectors reading the counters of the given provider on
// every scrape.
func New(provider StatsProvider) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_read_total",
		Help:      "Total number of frames read from the source",
	}, func() float64 {
		return float64(provider.Stats().FramesRead)
	})
	for _, region := range []struct {
		Name string
		Get  func(analyzer.Stats) uint64
	}{
		{"A", func(s analyzer.Stats) uint64 { return s.DecodeMissesA }},
		{"B", func(s analyzer.Stats) uint64 { return s.DecodeMissesB }},
	} {
		factory.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "decode_misses_total",
			Help:        "Total number of frames where the marker of the region was not decodable",
			ConstLabels: prometheus.Labels{"region": region.Name},
		}, func() float64 {
			return float64(region.Get(provider.Stats()))
		})
	}
	factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "samples_total",
		Help:      "Total number of frames with both markers decoded",
	}, func() float64 {
		return float64(provider.Stats().Samples)
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "state",
		Help:      "Current state of the analyzer (see analyzer.State)",
	}, func() float64 {
		return float64(provider.Stats().State)
	})

	return &Metrics{
		Registry: reg,
		LastDelta: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_delta_frames",
			Help:      "Frame difference (B minus A) of the latest sample",
		}),
	}
}

// ObserveSample matches the signature of analyzer.Config.OnSample.
func (m *Metrics) ObserveSample(_ context.Context, sample types.SamplePoint) {
	m.LastDelta.Set(float64(sample.Delta))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve listens on addr and serves /metrics until ctx is done. It returns
// once the listener is up.
func (m *Metrics) Serve(ctx context.Context, addr string) (net.Addr, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("unable to listen at %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	observability.Go(ctx, func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnf(ctx, "unable to shutdown the metrics server: %v", err)
		}
	})
	observability.Go(ctx, func(ctx context.Context) {
		logger.Infof(ctx, "serving metrics at http://%s/metrics", listener.Addr())
		err := srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "metrics server: %v", err)
		}
	})
	return listener.Addr(), nil
}
