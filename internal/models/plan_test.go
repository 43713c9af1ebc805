package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlan_Ordinal(t *testing.T) {
	assert.Equal(t, 1, PlanFree.Ordinal())
	assert.Equal(t, 2, PlanPremium.Ordinal())
	assert.Equal(t, 3, PlanEnterprise.Ordinal())

	// Неизвестный план получает минимальный ранг.
	assert.Equal(t, 1, Plan("platinum").Ordinal())
	assert.Equal(t, 1, Plan("").Ordinal())
}

func TestPlan_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		plan     Plan
		required Plan
		want     bool
	}{
		{"free до free", PlanFree, PlanFree, true},
		{"free до premium", PlanFree, PlanPremium, false},
		{"free до enterprise", PlanFree, PlanEnterprise, false},
		{"premium до free", PlanPremium, PlanFree, true},
		{"premium до premium", PlanPremium, PlanPremium, true},
		{"premium до enterprise", PlanPremium, PlanEnterprise, false},
		{"enterprise до premium", PlanEnterprise, PlanPremium, true},
		{"enterprise до enterprise", PlanEnterprise, PlanEnterprise, true},
		{"неизвестный план равен free", Plan("platinum"), PlanFree, true},
		{"неизвестный план ниже premium", Plan("platinum"), PlanPremium, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.plan.AtLeast(tt.required))
		})
	}
}

func TestParsePlan(t *testing.T) {
	assert.Equal(t, PlanPremium, ParsePlan("premium"))
	assert.Equal(t, PlanEnterprise, ParsePlan("enterprise"))
	assert.Equal(t, PlanFree, ParsePlan("free"))
	assert.Equal(t, PlanFree, ParsePlan("platinum"))
	assert.Equal(t, PlanFree, ParsePlan(""))
}
