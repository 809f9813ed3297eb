package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg             *prometheus.Registry
	Refreshes       prometheus.Counter
	RefreshFailures *prometheus.CounterVec
	RowsDropped     *prometheus.CounterVec
	RefreshSec      prometheus.Histogram
	Products        prometheus.Gauge
	Cities          prometheus.Gauge
	LastSuccess     prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	refreshes := prometheus.NewCounter(prometheus.CounterOpts{Name: "salesreport_refresh_total"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "salesreport_refresh_failures_total"}, []string{"kind"})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "salesreport_rows_dropped_total"}, []string{"table"})
	refreshSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "salesreport_refresh_seconds",
		Buckets: prometheus.DefBuckets,
	})
	products := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salesreport_products"})
	cities := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salesreport_cities"})
	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salesreport_last_success_timestamp_seconds"})

	r.MustRegister(refreshes, failures, dropped, refreshSec, products, cities, lastSuccess)
	return &Registry{
		reg:             r,
		Refreshes:       refreshes,
		RefreshFailures: failures,
		RowsDropped:     dropped,
		RefreshSec:      refreshSec,
		Products:        products,
		Cities:          cities,
		LastSuccess:     lastSuccess,
	}
}

// ObserveSuccess records a refresh that produced a snapshot.
func (r *Registry) ObserveSuccess(elapsed time.Duration, products, cities int, dropped map[string]int) {
	r.Refreshes.Inc()
	r.RefreshSec.Observe(elapsed.Seconds())
	r.Products.Set(float64(products))
	r.Cities.Set(float64(cities))
	r.LastSuccess.SetToCurrentTime()
	for table, n := range dropped {
		if n > 0 {
			r.RowsDropped.WithLabelValues(table).Add(float64(n))
		}
	}
}

// ObserveFailure records a refresh aborted with an error of the given kind.
func (r *Registry) ObserveFailure(elapsed time.Duration, kind string) {
	r.Refreshes.Inc()
	r.RefreshSec.Observe(elapsed.Seconds())
	r.RefreshFailures.WithLabelValues(kind).Inc()
}

func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
