package entity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageResult_FailureHasOnlyImageAndError(t *testing.T) {
	r := NewImageFailure("pump.jpg", errors.New("413 Payload Too Large"))
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	require.Len(t, fields, 2)
	require.Equal(t, "pump.jpg", fields["image"])
	require.Equal(t, "413 Payload Too Large", fields["error"])
}

func TestImageResult_SuccessFields(t *testing.T) {
	r := NewImageSuccess("pump.jpg", DetectionCounts{
		Leaked: 1,
		Detections: []Detection{
			{Class: "leak", Confidence: 0.9},
			{Class: "valve", Confidence: 0.5},
		},
	})
	require.False(t, r.Failed())

	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"image": "pump.jpg",
		"leaked_pumps": 1,
		"normal_pumps": 0,
		"total_detections": 2,
		"detections": [
			{"class": "leak", "confidence": 0.9, "bbox": {"x": 0, "y": 0, "width": 0, "height": 0}},
			{"class": "valve", "confidence": 0.5, "bbox": {"x": 0, "y": 0, "width": 0, "height": 0}}
		]
	}`, string(data))
}

func TestImageName(t *testing.T) {
	require.Equal(t, "images-check.jpg", ImageName(`C:\Users\onlin\Downloads\images-check.jpg`))
	require.Equal(t, "b.png", ImageName("/tmp/a/b.png"))
	require.Equal(t, "c.jpg", ImageName("c.jpg"))
}
