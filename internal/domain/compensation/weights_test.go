package compensation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDefaultWeightPolicyInvariants(t *testing.T) {
	policy := DefaultWeightPolicy()
	for category := MinCategory; category <= MaxCategory; category++ {
		w, ok := policy.Weights(category)
		require.True(t, ok, "category %d", category)
		assert.InDelta(t, w.Company, w.Billing+w.NPS, 1e-9, "category %d", category)
		assert.InDelta(t, w.Area, w.Area1+w.Area2, 1e-9, "category %d", category)
		assert.InDelta(t, 100, w.Company+w.Area, 1e-9, "category %d", category)
	}
}

func TestDefaultWeightPolicyShiftsTowardPersonal(t *testing.T) {
	policy := DefaultWeightPolicy()
	prev, _ := policy.Weights(MinCategory)
	for category := MinCategory + 1; category <= MaxCategory; category++ {
		w, _ := policy.Weights(category)
		assert.Greater(t, w.Area, prev.Area, "category %d", category)
		prev = w
	}
}

func TestResolve(t *testing.T) {
	policy := DefaultWeightPolicy()
	cat1, _ := policy.Weights(1)
	cat3, _ := policy.Weights(3)

	tests := []struct {
		name      string
		level     *string
		category  int
		defaulted bool
		warning   string
		weights   WeightDistribution
	}{
		{name: "dotted code", level: strPtr("3.2"), category: 3, weights: cat3},
		{name: "bare category", level: strPtr("3"), category: 3, weights: cat3},
		{name: "padded", level: strPtr(" 3.1 "), category: 3, weights: cat3},
		{name: "missing", level: nil, category: 1, defaulted: true, warning: WarningSeniorityMissing, weights: cat1},
		{name: "blank", level: strPtr(""), category: 1, defaulted: true, warning: WarningSeniorityMissing, weights: cat1},
		{name: "not a number", level: strPtr("senior"), category: 1, defaulted: true, warning: WarningSeniorityMalformed, weights: cat1},
		{name: "out of range", level: strPtr("7.1"), category: 1, defaulted: true, warning: WarningSeniorityMalformed, weights: cat1},
		{name: "zero", level: strPtr("0.4"), category: 1, defaulted: true, warning: WarningSeniorityMalformed, weights: cat1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Resolve(tt.level)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.defaulted, got.Defaulted)
			assert.Equal(t, tt.warning, got.Warning)
			assert.Equal(t, tt.weights, got.Weights)
		})
	}
}

func TestParseCategoryReturnsConfigurationError(t *testing.T) {
	_, err := ParseCategory("x.1")
	require.ErrorIs(t, err, ErrInvalidSeniority)
}

func TestParseWeightPolicy(t *testing.T) {
	data := []byte(`
bands:
  - {category: 1, company: 80, billing: 50, nps: 30, area: 20, area1: 10, area2: 10}
  - {category: 2, company: 60, billing: 30, nps: 30, area: 40, area1: 20, area2: 20}
  - {category: 3, company: 50, billing: 25, nps: 25, area: 50, area1: 25, area2: 25}
  - {category: 4, company: 40, billing: 20, nps: 20, area: 60, area1: 30, area2: 30}
  - {category: 5, company: 20, billing: 10, nps: 10, area: 80, area1: 40, area2: 40}
`)
	policy, err := ParseWeightPolicy(data)
	require.NoError(t, err)
	w, ok := policy.Weights(1)
	require.True(t, ok)
	assert.Equal(t, 80.0, w.Company)
	assert.Len(t, policy.Bands(), 5)
	assert.Equal(t, 1, policy.Bands()[0].Category)
}

func TestParseWeightPolicyRejectsBrokenInvariants(t *testing.T) {
	tests := map[string]string{
		"company mismatch": `
bands:
  - {category: 1, company: 70, billing: 40, nps: 20, area: 30, area1: 15, area2: 15}`,
		"missing categories": `
bands:
  - {category: 1, company: 70, billing: 40, nps: 30, area: 30, area1: 15, area2: 15}`,
		"not yaml": `bands: [`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseWeightPolicy([]byte(data))
			require.ErrorIs(t, err, ErrInvalidPolicy)
		})
	}
}

func TestLoadWeightPolicyEmptyPathUsesDefault(t *testing.T) {
	policy, err := LoadWeightPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultWeightPolicy().Bands(), policy.Bands())
}
