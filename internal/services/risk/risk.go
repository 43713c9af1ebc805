// Package risk реализует движок оценки рисков по делу: пять обязательных
// категориальных факторов взвешиваются по статической таблице, итог —
// средний балл, уровень и набор рекомендаций. Движок — чистая функция,
// внешних зависимостей и скрытого состояния у него нет.
package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

type factorLabel struct {
	Weight      float64
	Description string
}

// Статическая таблица весов: (фактор, значение) -> вес в [0,1] и пояснение.
var weightTable = map[string]map[string]factorLabel{
	models.FactorCaseComplexity: {
		"low":    {0.2, "Straightforward case with well-established legal precedent"},
		"medium": {0.5, "Case involves several interacting legal issues"},
		"high":   {0.8, "Complex case with novel or contested legal questions"},
	},
	models.FactorEvidenceStrength: {
		"strong":   {0.1, "Evidence strongly supports your position"},
		"moderate": {0.4, "Evidence is mixed and open to interpretation"},
		"weak":     {0.7, "Evidence is thin and may not hold up to scrutiny"},
	},
	models.FactorOpponentResources: {
		"limited":   {0.2, "Opposing party has limited means to litigate"},
		"moderate":  {0.4, "Opposing party has average resources"},
		"extensive": {0.7, "Opposing party is well-funded and well-represented"},
	},
	models.FactorTimeConstraints: {
		"adequate": {0.1, "Sufficient time to prepare thoroughly"},
		"tight":    {0.4, "Schedule leaves little room for delays"},
		"urgent":   {0.8, "Imminent deadlines leave minimal preparation time"},
	},
	models.FactorFinancialImpact: {
		"low":    {0.2, "Financial exposure is limited"},
		"medium": {0.5, "Financial exposure is significant but manageable"},
		"high":   {0.8, "Financial exposure could be severe"},
	},
}

// Фиксированные наборы рекомендаций. Каждое правило срабатывает
// независимо от остальных.
var (
	escalationRecs = []string{
		"Consult a licensed attorney before making further decisions",
		"Prepare a detailed timeline of all relevant events",
		"Consider negotiated settlement options to reduce exposure",
	}
	evidenceRecs = []string{
		"Gather additional documentation supporting your position",
		"Identify witnesses who can corroborate key facts",
	}
	deadlineRecs = []string{
		"Map all filing deadlines and set reminders well in advance",
		"Prioritize the most time-sensitive actions first",
	}
	preparationRecs = []string{
		"Anticipate a prolonged process given the opposing party's resources",
		"Budget for extended legal proceedings",
	}
)

// requiredFactors — пять обязательных ключей в стабильном порядке вывода ошибок.
var requiredFactors = []string{
	models.FactorCaseComplexity,
	models.FactorEvidenceStrength,
	models.FactorOpponentResources,
	models.FactorTimeConstraints,
	models.FactorFinancialImpact,
}

// Engine выполняет оценку рисков. Strict управляет реакцией на
// неизвестные ключи факторов: в строгом режиме они отклоняются,
// в мягком — молча пропускаются и не участвуют в среднем.
type Engine struct {
	strict bool
}

// NewEngine создаёт движок оценки рисков.
func NewEngine(strict bool) *Engine {
	return &Engine{strict: strict}
}

// Assess оценивает набор факторов. Все пять обязательных ключей должны
// присутствовать, и каждое значение должно входить в перечень своего
// фактора, иначе возвращается ошибка валидации.
//
// Итоговый балл — среднее арифметическое весов распознанных факторов,
// округлённое до двух знаков. Уровень: high при балле >= 0.7,
// medium при >= 0.4, иначе low.
func (e *Engine) Assess(factors map[string]string) (*models.RiskAssessment, error) {
	const op = "risk.Assess"

	for _, key := range requiredFactors {
		value, ok := factors[key]
		if !ok {
			return nil, fmt.Errorf("%s: missing required factor %q", op, key)
		}
		if _, ok := weightTable[key][value]; !ok {
			return nil, fmt.Errorf("%s: invalid value %q for factor %q", op, value, key)
		}
	}

	breakdown := make(map[string]models.FactorScore, len(factors))
	var sum float64
	var counted int

	// Стабильный порядок обхода, чтобы ошибки и логика не зависели
	// от порядка итерации по карте.
	keys := make([]string, 0, len(factors))
	for key := range factors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := factors[key]
		labels, ok := weightTable[key]
		if !ok {
			if e.strict {
				return nil, fmt.Errorf("%s: unknown factor %q", op, key)
			}
			continue
		}
		label := labels[value]
		breakdown[key] = models.FactorScore{
			Value:       value,
			Score:       label.Weight,
			Description: label.Description,
		}
		sum += label.Weight
		counted++
	}

	score := math.Round(sum/float64(counted)*100) / 100

	level := models.RiskLevelLow
	switch {
	case score >= 0.7:
		level = models.RiskLevelHigh
	case score >= 0.4:
		level = models.RiskLevelMedium
	}

	var recs []string
	if score >= 0.6 {
		recs = append(recs, escalationRecs...)
	}
	if factors[models.FactorEvidenceStrength] == "weak" {
		recs = append(recs, evidenceRecs...)
	}
	if factors[models.FactorTimeConstraints] == "urgent" {
		recs = append(recs, deadlineRecs...)
	}
	if factors[models.FactorOpponentResources] == "extensive" {
		recs = append(recs, preparationRecs...)
	}
	if recs == nil {
		recs = []string{}
	}

	return &models.RiskAssessment{
		RiskScore:       score,
		RiskLevel:       level,
		Factors:         breakdown,
		Recommendations: recs,
	}, nil
}
