package compensation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullYearCorporate() []CorporateObjective {
	return []CorporateObjective{
		billing(1_000_000, 1_000_000),
		NPSObjective{Year: 2025, Quarter: Q1, Target: f64(40), Actual: f64(40)},
		NPSObjective{Year: 2025, Quarter: Q2, Target: f64(40), Actual: f64(44)},
		NPSObjective{Year: 2025, Quarter: Q3, Target: f64(40), Actual: f64(40)},
		NPSObjective{Year: 2025, Quarter: Q4, Target: f64(40), Actual: f64(40)},
	}
}

func TestEngineCalculateEndToEnd(t *testing.T) {
	engine := NewEngine()
	result, err := engine.Calculate(Input{
		Employee:  Employee{ID: "e1", FirstName: "Ada", LastName: "Ng", SeniorityLevel: strPtr("3.2"), HireDate: datePtr(2025, time.July, 1)},
		Year:      2025,
		Corporate: fullYearCorporate(),
		Objectives: []Objective{
			{ID: "o1", Periodicity: PeriodicityAnnual, AchievementPercentage: f64(60), IsLocked: true},
			{ID: "o2", Periodicity: PeriodicityAnnual, AchievementPercentage: f64(60), IsLocked: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Ng", result.EmployeeName)
	assert.Equal(t, 3, result.Weights.Category)
	assert.False(t, result.Weights.Defaulted)
	assert.Empty(t, result.Warnings)
	assert.InDelta(t, 100, result.Corporate.TotalCompletion, 1e-9)
	// company 100*50/100 + personal 60*50/100 = 80, halved by pro-rata
	require.NotNil(t, result.Final)
	assert.InDelta(t, 80, *result.Base, 1e-9)
	assert.InDelta(t, 40, *result.Final, 1e-9)
}

func TestEngineCalculateDefaultsSeniority(t *testing.T) {
	result, err := NewEngine().Calculate(Input{
		Employee: Employee{ID: "e1", SeniorityLevel: strPtr("lead")},
		Year:     2025,
	})
	require.NoError(t, err)
	assert.True(t, result.Weights.Defaulted)
	assert.Equal(t, DefaultCategory, result.Weights.Category)
	assert.Equal(t, []string{WarningSeniorityMalformed}, result.Warnings)
	assert.Equal(t, BonusStatusNoObjectives, result.Status)
	assert.Equal(t, ScoreStatusNotConfigured, result.Corporate.Status)
}

func TestEngineCalculateRejectsInvalidYear(t *testing.T) {
	_, err := NewEngine().Calculate(Input{Employee: Employee{ID: "e1"}})
	require.ErrorIs(t, err, ErrInvalidYear)
}

func TestEngineOptions(t *testing.T) {
	engine := NewEngine(
		WithProRataPolicy(NextFullMonth{}),
		WithCorporateWeighting(CorporateWeightingEqual),
		WithWeightPolicy(nil),
	)
	assert.Equal(t, ProRataNextFullMonth, engine.ProRataPolicy().Name())
	assert.NotNil(t, engine.WeightPolicy())

	result, err := engine.Calculate(Input{
		Employee:  Employee{ID: "e1", SeniorityLevel: strPtr("1.1")},
		Year:      2025,
		Corporate: []CorporateObjective{billing(100, 100)},
	})
	require.NoError(t, err)
	assert.InDelta(t, 50, result.Corporate.TotalCompletion, 1e-9)
}

func TestParseCorporateWeighting(t *testing.T) {
	w, err := ParseCorporateWeighting("")
	require.NoError(t, err)
	assert.Equal(t, CorporateWeightingWeighted, w)
	w, err = ParseCorporateWeighting("equal")
	require.NoError(t, err)
	assert.Equal(t, CorporateWeightingEqual, w)
	_, err = ParseCorporateWeighting("median")
	require.ErrorIs(t, err, ErrUnknownWeighting)
}

func TestSummarizeSkipsNonNumericResults(t *testing.T) {
	a, b := 40.0, 60.0
	summary := Summarize(2025, []BonusResult{
		{Status: BonusStatusCalculated, Final: &a, Corporate: CorporateScore{GateMet: true}},
		{Status: BonusStatusCalculated, Final: &b, Weights: ResolvedWeights{Defaulted: true}},
		{Status: BonusStatusPendingEvaluation},
		{Status: BonusStatusNoObjectives},
	})
	assert.Equal(t, 4, summary.Employees)
	assert.Equal(t, 2, summary.Calculated)
	assert.Equal(t, 1, summary.PendingEvaluation)
	assert.Equal(t, 1, summary.NoObjectives)
	assert.Equal(t, 1, summary.DefaultedSeniority)
	assert.True(t, summary.BillingGateMet)
	require.NotNil(t, summary.AverageFinal)
	assert.Equal(t, 50.0, *summary.AverageFinal)

	empty := Summarize(2025, []BonusResult{{Status: BonusStatusPendingEvaluation}})
	assert.Nil(t, empty.AverageFinal)
}
