package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PunchesTotal counts recorded punches by kind and outcome.
	PunchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tempo",
		Name:      "punches_total",
		Help:      "Number of punch registrations by kind and outcome.",
	}, []string{"kind", "outcome"})

	// OCRExtractionsTotal counts OCR calls by outcome.
	OCRExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tempo",
		Name:      "ocr_extractions_total",
		Help:      "Number of OCR extraction calls by outcome.",
	}, []string{"outcome"})
)
