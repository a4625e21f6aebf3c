package app

import "leak-watch/internal/domain/entity"

const classUnknown = "unknown"

// Classify разбирает сырые рамки модели и считает протечки и исправное оборудование.
// Класс с "leak" считается протечкой, иначе с "normal" исправным, остальные
// попадают только в список рамок.
func Classify(predictions []entity.RawPrediction) entity.DetectionCounts {
	counts := entity.DetectionCounts{
		Detections: make([]entity.Detection, 0, len(predictions)),
	}

	for _, p := range predictions {
		d := entity.Detection{
			Class:      p.String("class", classUnknown),
			Confidence: p.Float("confidence", 0),
			BBox: entity.BoundingBox{
				X:      p.Float("x", 0),
				Y:      p.Float("y", 0),
				Width:  p.Float("width", 0),
				Height: p.Float("height", 0),
			},
		}
		counts.Detections = append(counts.Detections, d)

		switch {
		case d.IsLeak():
			counts.Leaked++
		case d.IsNormal():
			counts.Normal++
		}
	}

	return counts
}
