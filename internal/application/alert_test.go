package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"leak-watch/internal/domain/entity"
)

var testFacility = entity.Facility{ID: "water-treatment-1", Name: "Primary Water Treatment Plant"}

func TestBuildAlert_NoLeaks(t *testing.T) {
	_, ok := BuildAlert("a.jpg", 0, testFacility)
	require.False(t, ok)
}

func TestBuildAlert_SingleLeak(t *testing.T) {
	alert, ok := BuildAlert("a.jpg", 1, testFacility)
	require.True(t, ok)
	require.Equal(t, entity.SeverityMedium, alert.Severity)
	require.Equal(t, 7, alert.RiskScore)
	require.Equal(t, "1 pump leak(s) detected in a.jpg", alert.Message)
	require.Equal(t, "water-treatment-1", alert.FacilityID)
}

func TestBuildAlert_TwoLeakingPumps(t *testing.T) {
	counts := Classify([]entity.RawPrediction{
		{"class": "Leaking_Pump", "confidence": 0.85},
		{"class": "Leaking_Pump", "confidence": 0.85},
	})
	require.Equal(t, 2, counts.Leaked)

	alert, ok := BuildAlert("a.jpg", counts.Leaked, testFacility)
	require.True(t, ok)
	require.Equal(t, entity.SeverityHigh, alert.Severity)
	require.Equal(t, 9, alert.RiskScore)
}

func TestAlertRiskScore_Capped(t *testing.T) {
	require.Equal(t, 10, AlertRiskScore(3))
	require.Equal(t, 10, AlertRiskScore(50))
}
