package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

func allHighFactors() map[string]string {
	return map[string]string{
		models.FactorCaseComplexity:    "high",
		models.FactorEvidenceStrength:  "weak",
		models.FactorOpponentResources: "extensive",
		models.FactorTimeConstraints:   "urgent",
		models.FactorFinancialImpact:   "high",
	}
}

func allLowFactors() map[string]string {
	return map[string]string{
		models.FactorCaseComplexity:    "low",
		models.FactorEvidenceStrength:  "strong",
		models.FactorOpponentResources: "limited",
		models.FactorTimeConstraints:   "adequate",
		models.FactorFinancialImpact:   "low",
	}
}

func TestAssess_HighRisk(t *testing.T) {
	engine := NewEngine(false)

	got, err := engine.Assess(allHighFactors())
	require.NoError(t, err)

	assert.InDelta(t, 0.76, got.RiskScore, 1e-9)
	assert.Equal(t, models.RiskLevelHigh, got.RiskLevel)
	assert.Len(t, got.Factors, 5)
	assert.Equal(t, 0.7, got.Factors[models.FactorEvidenceStrength].Score)

	// Срабатывают все четыре группы правил: 3 + 2 + 2 + 2 рекомендаций.
	assert.Len(t, got.Recommendations, 9)
	assert.Contains(t, got.Recommendations, escalationRecs[0])
	assert.Contains(t, got.Recommendations, evidenceRecs[0])
	assert.Contains(t, got.Recommendations, deadlineRecs[0])
	assert.Contains(t, got.Recommendations, preparationRecs[0])
}

func TestAssess_LowRisk(t *testing.T) {
	engine := NewEngine(false)

	got, err := engine.Assess(allLowFactors())
	require.NoError(t, err)

	assert.InDelta(t, 0.16, got.RiskScore, 1e-9)
	assert.Equal(t, models.RiskLevelLow, got.RiskLevel)
	assert.NotNil(t, got.Recommendations)
	assert.Empty(t, got.Recommendations)
}

func TestAssess_MediumRisk(t *testing.T) {
	engine := NewEngine(false)

	got, err := engine.Assess(map[string]string{
		models.FactorCaseComplexity:    "medium",
		models.FactorEvidenceStrength:  "moderate",
		models.FactorOpponentResources: "moderate",
		models.FactorTimeConstraints:   "tight",
		models.FactorFinancialImpact:   "medium",
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.44, got.RiskScore, 1e-9)
	assert.Equal(t, models.RiskLevelMedium, got.RiskLevel)
	assert.Empty(t, got.Recommendations)
}

func TestAssess_MissingFactor(t *testing.T) {
	engine := NewEngine(false)

	factors := allLowFactors()
	delete(factors, models.FactorFinancialImpact)

	_, err := engine.Assess(factors)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "financial_impact")
}

func TestAssess_InvalidValue(t *testing.T) {
	engine := NewEngine(false)

	factors := allLowFactors()
	factors[models.FactorCaseComplexity] = "catastrophic"

	_, err := engine.Assess(factors)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "case_complexity")
}

func TestAssess_UnknownKeyLenient(t *testing.T) {
	engine := NewEngine(false)

	factors := allLowFactors()
	factors["jurisdiction"] = "federal"

	got, err := engine.Assess(factors)
	require.NoError(t, err)

	// Неизвестный ключ пропущен и в среднее не попал.
	assert.InDelta(t, 0.16, got.RiskScore, 1e-9)
	assert.Len(t, got.Factors, 5)
	assert.NotContains(t, got.Factors, "jurisdiction")
}

func TestAssess_UnknownKeyStrict(t *testing.T) {
	engine := NewEngine(true)

	factors := allLowFactors()
	factors["jurisdiction"] = "federal"

	_, err := engine.Assess(factors)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jurisdiction")
}

func TestAssess_Deterministic(t *testing.T) {
	engine := NewEngine(false)
	factors := allHighFactors()

	first, err := engine.Assess(factors)
	require.NoError(t, err)

	for range 10 {
		next, err := engine.Assess(factors)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}
