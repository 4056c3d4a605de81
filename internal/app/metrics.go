package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricFramesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_frames_processed_total",
		Help: "Total camera frames run through the detector",
	})

	metricDetections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_detections_total",
		Help: "Total decoded detections above the confidence threshold",
	})

	metricVerified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_verified_events_total",
		Help: "Total detections that passed the stability window",
	})

	metricPrompts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_prompts_spoken_total",
		Help: "Total prompts sent to the speaker",
	})

	metricListenSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_listen_sessions_total",
		Help: "Total speech listening sessions started",
	})

	metricEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_events_total",
		Help: "Events processed by the serializer, by source kind",
	}, []string{"kind"})
)
