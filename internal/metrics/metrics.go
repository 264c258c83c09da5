package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SwapsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "swaps_total", Help: "Swap attempts by token and outcome"},
		[]string{"token", "outcome"},
	)
	UpstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "upstream_errors_total", Help: "Failures talking to external services"},
		[]string{"service"},
	)
)

func init() {
	prometheus.MustRegister(SwapsTotal, UpstreamErrors)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
