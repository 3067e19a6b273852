// Package metrics exposes relay and scanner counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

const namespace = "govrelay"

// Recorder implements the relay and scan observers over its own registry
type Recorder struct {
	registry *prometheus.Registry

	relayTotal    *prometheus.CounterVec
	relayDuration prometheus.Histogram
	scanTicks     prometheus.Counter
	scanDuration  prometheus.Histogram
	scanBound     prometheus.Gauge
	executed      prometheus.Counter
	scanFailures  *prometheus.CounterVec
	lastScan      prometheus.Gauge
}

// NewRecorder creates a recorder with Go runtime and process collectors registered
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		relayTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_requests_total",
			Help:      "Forward requests handled, by outcome",
		}, []string{"outcome"}),
		relayDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "relay_duration_seconds",
			Help:      "Time from receipt of a forward request to its outcome",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		scanTicks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_ticks_total",
			Help:      "Completed scanner ticks",
		}),
		scanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Duration of scanner ticks",
			Buckets:   prometheus.DefBuckets,
		}),
		scanBound: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scan_bound",
			Help:      "Highest proposal id examined by the last tick",
		}),
		executed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_executed_total",
			Help:      "Proposals executed by the scanner",
		}),
		scanFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_failures_total",
			Help:      "Per-proposal scanner failures, by stage",
		}, []string{"stage"}),
		lastScan: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scan_last_completed_timestamp_seconds",
			Help:      "Unix time of the last completed tick",
		}),
	}
}

// ObserveRelay records one relay outcome
func (r *Recorder) ObserveRelay(outcome string, elapsed time.Duration) {
	r.relayTotal.WithLabelValues(outcome).Inc()
	r.relayDuration.Observe(elapsed.Seconds())
}

// ObserveScan records one tick
func (r *Recorder) ObserveScan(result *usecase.ScanResult, elapsed time.Duration) {
	r.scanTicks.Inc()
	r.scanDuration.Observe(elapsed.Seconds())
	r.lastScan.SetToCurrentTime()
	if result == nil {
		return
	}
	r.scanBound.Set(float64(result.Bound))
	r.executed.Add(float64(len(result.Processed)))
	for _, f := range result.Failures {
		r.scanFailures.WithLabelValues(f.Stage).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

var (
	_ usecase.RelayObserver = (*Recorder)(nil)
	_ usecase.ScanObserver  = (*Recorder)(nil)
)
