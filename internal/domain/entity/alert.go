package entity

// Severity уровень важности оповещения
type Severity string

const (
	SeverityNormal   Severity = "NORMAL"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Alert имитация оповещения внешней платформы о протечках на одном изображении
type Alert struct {
	Image        string   `json:"image"`
	Leaks        int      `json:"leaks"`
	Severity     Severity `json:"severity"`
	FacilityID   string   `json:"facility"`
	Message      string   `json:"message"`
	RiskScore    int      `json:"riskScore"`
	Action       string   `json:"action"`
	ResponseTime string   `json:"responseTime"`
}
