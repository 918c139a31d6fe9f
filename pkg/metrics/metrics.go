// Package metrics exposes gateway counters on a dedicated listener.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"
)

var (
	CommitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_commits_total",
		Help: "Commit attempts by outcome.",
	}, []string{"outcome"})

	ReviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_reviews_total",
		Help: "Submitted reviews by verdict.",
	}, []string{"verdict"})

	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_exports_total",
		Help: "Export attempts by outcome.",
	}, []string{"outcome"})

	CommitBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gateway_commit_bytes",
		Help:    "New content bytes per commit.",
		Buckets: prometheus.ExponentialBuckets(256, 4, 10),
	})
)

var readHeaderTimeout = 10 * time.Second

// Serve starts the metrics listener. Blocking; run in a goroutine.
func Serve(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		klog.Errorf("metrics listener: %v", err)
	}
}
