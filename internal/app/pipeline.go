package app

import (
	"log"
	"time"

	"github.com/lo7ol3/SmartShopping/internal/detector"
)

// runPipeline drives the detection loop at the configured frame rate.
// Frames are skipped entirely while a prompt speaks or a dialog is open, so
// the stability streak cannot advance behind the shopper's back.
func (a *App) runPipeline() {
	interval := time.Second / time.Duration(a.config.CameraFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	decodeCfg := detector.DecodeConfig{
		Labels:        a.model.Labels(),
		ConfThreshold: a.config.ConfThreshold,
	}

	log.Printf("Detection pipeline started at %d fps", a.config.CameraFPS)

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			if !a.detectionAllowed() {
				continue
			}
			a.processFrame(decodeCfg)
		}
	}
}

func (a *App) processFrame(decodeCfg detector.DecodeConfig) {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		log.Printf("Frame capture failed: %v", err)
		return
	}
	imgW, imgH := frame.Cols(), frame.Rows()

	out, err := a.model.Infer(frame)
	frame.Close()
	if err != nil {
		log.Printf("Inference failed: %v", err)
		return
	}

	metricFramesProcessed.Inc()

	dets := detector.Decode(out, decodeCfg, imgW, imgH)
	metricDetections.Add(float64(len(dets)))

	label := ""
	if top, ok := detector.Top(dets, a.config.Selection); ok {
		label = top.Label
	}

	v, streak := a.stability.Observe(label, time.Now())
	switch streak {
	case detector.StreakStarted:
		// Speaking happens on the event loop so the verifying prompt
		// cannot overlap one already in flight.
		a.post(event{kind: eventStreakStarted, item: label})
	case detector.StreakVerified:
		a.post(event{kind: eventVerified, item: v.Item, price: v.Price})
	}
}
