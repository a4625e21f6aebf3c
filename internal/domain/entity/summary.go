package entity

// Facility объект, за которым ведётся наблюдение
type Facility struct {
	ID   string
	Name string
}

// ModelRef координаты модели в сервисе инференса
type ModelRef struct {
	Workspace string
	Project   string
	Version   int
}

// RunSummary итог всего запуска. Сериализуется в JSON-блок отчёта.
type RunSummary struct {
	RunID          string             `json:"runId"`
	DemoStatus     string             `json:"demoStatus"`
	Facility       FacilityMonitoring `json:"facilityMonitoring"`
	Integration    ModelIntegration   `json:"roboflowIntegration"`
	Coordination   Coordination       `json:"chainSyncCoordination"`
	BusinessImpact BusinessImpact     `json:"businessImpact"`
	Highlights     Highlights         `json:"roboflowApplicationHighlights"`

	TotalLeaks     int `json:"-"`
	TotalNormal    int `json:"-"`
	ImagesAnalyzed int `json:"-"`
	ImagesFailed   int `json:"-"`
}

// TotalEquipment количество оборудования, попавшего в один из двух классов
func (s *RunSummary) TotalEquipment() int {
	return s.TotalLeaks + s.TotalNormal
}

// HasEquipment сообщает, было ли посчитано хоть что-то
func (s *RunSummary) HasEquipment() bool {
	return s.TotalLeaks > 0 || s.TotalNormal > 0
}

type FacilityMonitoring struct {
	FacilityID       string   `json:"facilityId"`
	FacilityName     string   `json:"facilityName"`
	MonitoringMethod string   `json:"monitoringMethod"`
	ImagesAnalyzed   int      `json:"imagesAnalyzed"`
	LeaksDetected    int      `json:"leaksDetected"`
	NormalEquipment  int      `json:"normalEquipment"`
	OverallSeverity  Severity `json:"overallSeverity"`
	RiskScore        string   `json:"riskScore"`
	Timestamp        string   `json:"timestamp"`
}

type ModelIntegration struct {
	Workspace           string `json:"workspace"`
	Project             string `json:"project"`
	ModelVersion        int    `json:"modelVersion"`
	DetectionAccuracy   string `json:"detectionAccuracy"`
	APIStatus           string `json:"apiStatus"`
	AverageResponseTime string `json:"averageResponseTime"`
}

type Coordination struct {
	AlertSystem          string `json:"alertSystem"`
	EmergencyProtocols   string `json:"emergencyProtocols"`
	MaintenanceDispatch  string `json:"maintenanceDispatch"`
	RegulatoryReporting  string `json:"regulatoryReporting"`
	ResponseCoordination string `json:"responseCoordination"`
}

type BusinessImpact struct {
	LeaksDetected           int    `json:"leaksDetected"`
	EstimatedWaterSaved     string `json:"estimatedWaterSaved"`
	EstimatedCostSavings    string `json:"estimatedCostSavings"`
	ResponseTimeImprovement string `json:"responseTimeImprovement"`
	ScalabilityPotential    string `json:"scalabilityPotential"`
}

type Highlights struct {
	TechnicalAchievement   string `json:"technicalAchievement"`
	EnterpriseIntegration  string `json:"enterpriseIntegration"`
	BusinessValue          string `json:"businessValue"`
	ScalableArchitecture   string `json:"scalableArchitecture"`
	FormerFounderExecution string `json:"formerFounderExecution"`
}

// AiDescription текстовое описание итогов запуска от ИИ
type AiDescription struct {
	Text string
}
