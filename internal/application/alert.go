package app

import (
	"fmt"

	"leak-watch/internal/domain/entity"
)

const (
	alertAction       = "Emergency maintenance dispatch required"
	alertResponseTime = "15 minutes"
)

// AlertSeverity уровень оповещения по числу протечек на одном изображении
func AlertSeverity(leaks int) entity.Severity {
	switch {
	case leaks > 1:
		return entity.SeverityHigh
	case leaks == 1:
		return entity.SeverityMedium
	default:
		return entity.SeverityNormal
	}
}

// AlertRiskScore оценка риска по шкале до 10
func AlertRiskScore(leaks int) int {
	return min(10, 5+leaks*2)
}

// BuildAlert собирает оповещение. ok == false, если протечек нет.
func BuildAlert(imageName string, leaks int, facility entity.Facility) (entity.Alert, bool) {
	if leaks <= 0 {
		return entity.Alert{}, false
	}

	return entity.Alert{
		Image:        imageName,
		Leaks:        leaks,
		Severity:     AlertSeverity(leaks),
		FacilityID:   facility.ID,
		Message:      fmt.Sprintf("%d pump leak(s) detected in %s", leaks, imageName),
		RiskScore:    AlertRiskScore(leaks),
		Action:       alertAction,
		ResponseTime: alertResponseTime,
	}, true
}
