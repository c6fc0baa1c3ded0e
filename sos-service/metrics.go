package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ContactUpdates  *prometheus.CounterVec
	Alerts          *prometheus.CounterVec
	ProviderSeconds *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ContactUpdates: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "sos_contact_updates_total",
			Help: "Total number of set-contact requests by outcome.",
		}, []string{"status"}),
		Alerts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "sos_alerts_total",
			Help: "Total number of send-sos requests by outcome.",
		}, []string{"status"}),
		ProviderSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sos_provider_request_duration_seconds",
			Help:    "Duration of requests to the SMS provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}
}
