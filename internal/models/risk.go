package models

import "time"

// Ключи обязательных факторов риска.
const (
	FactorCaseComplexity    = "case_complexity"
	FactorEvidenceStrength  = "evidence_strength"
	FactorOpponentResources = "opponent_resources"
	FactorTimeConstraints   = "time_constraints"
	FactorFinancialImpact   = "financial_impact"
)

// Уровни риска, вычисляемые из агрегированной оценки.
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// FactorScore — разбор одного фактора: выбранное значение,
// числовой вес и пояснение из статической таблицы.
type FactorScore struct {
	Value       string  `json:"value"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// RiskAssessment — результат оценки рисков. Создаётся заново при каждом
// вызове движка и далее не изменяется.
type RiskAssessment struct {
	RiskScore       float64                `json:"riskScore"`
	RiskLevel       string                 `json:"riskLevel"`
	Factors         map[string]FactorScore `json:"factors"`
	Recommendations []string               `json:"recommendations"`
}

// StoredRiskAssessment — сохранённая оценка, привязанная к делу.
type StoredRiskAssessment struct {
	ID        int
	CaseID    int
	UserUID   string
	RiskScore float64
	RiskLevel string
	CreatedAt time.Time
}
