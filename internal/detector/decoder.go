package detector

// DefaultConfThreshold is the minimum per-anchor confidence for a
// detection to be kept.
const DefaultConfThreshold = 0.4

// DecodeConfig holds the parameters for decoding raw model output.
type DecodeConfig struct {
	// Labels maps class indices to item names. Must have exactly
	// NumClasses entries.
	Labels []string

	// ConfThreshold is the minimum best-class score for an anchor to
	// produce a detection.
	ConfThreshold float32
}

// Decode turns one raw output tensor into a list of scored, labeled boxes.
//
// Per anchor: the class with the maximum score becomes the anchor's label
// and confidence (argmax selection); anchors below the confidence threshold
// are discarded; the normalized (cx, cy, w, h) box parameters are converted
// to a pixel-space rectangle using the original image dimensions.
//
// No overlap suppression is performed, so multiple overlapping boxes for
// the same object may be returned. Callers pick a single candidate with Top.
// Decode is a pure function with no shared state.
func Decode(out *RawOutput, cfg DecodeConfig, imgW, imgH int) []Detection {
	if out == nil || out.NumAnchors <= 0 || out.NumClasses <= 0 {
		return nil
	}

	stride := 4 + out.NumClasses
	if len(out.Data) < out.NumAnchors*stride {
		return nil
	}

	threshold := cfg.ConfThreshold
	if threshold <= 0 {
		threshold = DefaultConfThreshold
	}

	var results []Detection

	for i := 0; i < out.NumAnchors; i++ {
		row := out.Data[i*stride : (i+1)*stride]

		cx, cy := row[0], row[1]
		w, h := row[2], row[3]

		bestClass := -1
		var bestScore float32
		for c := 0; c < out.NumClasses; c++ {
			if score := row[4+c]; score > bestScore {
				bestScore = score
				bestClass = c
			}
		}

		if bestScore < threshold || bestClass >= len(cfg.Labels) {
			continue
		}

		results = append(results, Detection{
			Box: Rect{
				Left:   (cx - w/2) * float32(imgW),
				Top:    (cy - h/2) * float32(imgH),
				Right:  (cx + w/2) * float32(imgW),
				Bottom: (cy + h/2) * float32(imgH),
			},
			Label:      cfg.Labels[bestClass],
			Confidence: bestScore,
		})
	}

	return results
}
