package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"leak-watch/internal/domain/entity"
)

func summaryInput() SummaryInput {
	return SummaryInput{
		RunID:    "run-1",
		Model:    entity.ModelRef{Workspace: "ws", Project: "proj", Version: 3},
		Facility: testFacility,
		Now:      time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestSummarize_ZeroDetections(t *testing.T) {
	results := []entity.ImageResult{
		entity.NewImageSuccess("a.jpg", entity.DetectionCounts{}),
		entity.NewImageSuccess("b.jpg", entity.DetectionCounts{}),
	}
	s := Summarize(results, summaryInput())

	require.Zero(t, s.TotalLeaks)
	require.Zero(t, s.TotalNormal)
	require.False(t, s.HasEquipment())
	require.Equal(t, entity.SeverityNormal, s.Facility.OverallSeverity)
	require.Equal(t, "2/10", s.Facility.RiskScore)
	require.Equal(t, "STANDBY", s.Coordination.MaintenanceDispatch)
	require.Equal(t, "ROUTINE", s.Coordination.ResponseCoordination)
}

func TestSummarize_ThreeLeaksIsCritical(t *testing.T) {
	results := []entity.ImageResult{
		entity.NewImageSuccess("a.jpg", entity.DetectionCounts{Leaked: 2, Normal: 1}),
		entity.NewImageSuccess("b.jpg", entity.DetectionCounts{Leaked: 1}),
	}
	s := Summarize(results, summaryInput())

	require.Equal(t, 3, s.TotalLeaks)
	require.Equal(t, 4, s.TotalEquipment())
	require.Equal(t, entity.SeverityCritical, s.Facility.OverallSeverity)
	require.Equal(t, "9/10", s.Facility.RiskScore)
	require.Equal(t, "15000 gallons/hour", s.BusinessImpact.EstimatedWaterSaved)
	require.Equal(t, "$75000 per major leak prevented", s.BusinessImpact.EstimatedCostSavings)
	require.Equal(t, "TRIGGERED", s.Coordination.MaintenanceDispatch)
	require.Equal(t, "MULTI-AGENCY", s.Coordination.ResponseCoordination)
}

func TestSummarize_SkipsFailures(t *testing.T) {
	results := []entity.ImageResult{
		entity.NewImageFailure("a.jpg", errors.New("unauthorized")),
		entity.NewImageSuccess("b.jpg", entity.DetectionCounts{Leaked: 1}),
	}
	s := Summarize(results, summaryInput())

	require.Equal(t, 1, s.ImagesAnalyzed)
	require.Equal(t, 1, s.ImagesFailed)
	require.Equal(t, 1, s.Facility.ImagesAnalyzed)
	require.Equal(t, entity.SeverityHigh, s.Facility.OverallSeverity)
	require.Equal(t, "5/10", s.Facility.RiskScore)
}

func TestSummarize_StaticFields(t *testing.T) {
	s := Summarize(nil, summaryInput())
	require.Equal(t, "run-1", s.RunID)
	require.Equal(t, "2025-06-01T12:30:00.000000", s.Facility.Timestamp)
	require.Equal(t, "ws", s.Integration.Workspace)
	require.Equal(t, 3, s.Integration.ModelVersion)
	require.Equal(t, "Primary Water Treatment Plant", s.Facility.FacilityName)
}

func TestOverallRiskScore(t *testing.T) {
	require.Equal(t, 2, OverallRiskScore(0))
	require.Equal(t, 5, OverallRiskScore(1))
	require.Equal(t, 10, OverallRiskScore(4))
}
