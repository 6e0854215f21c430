package compensation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestComputeProRataScenarioD(t *testing.T) {
	profile := ComputeProRata(datePtr(2025, time.July, 1), 2025, HireMonthInclusive{})
	assert.True(t, profile.Applies)
	assert.Equal(t, 6, profile.Months)
	assert.InDelta(t, 0.5, profile.Factor, 1e-9)
	assert.InDelta(t, 50, profile.Percentage, 1e-9)
}

func TestComputeProRataDoesNotApply(t *testing.T) {
	cases := map[string]*time.Time{
		"no hire date":     nil,
		"hired before":     datePtr(2019, time.March, 3),
		"hired after year": datePtr(2026, time.January, 5),
	}
	for name, hire := range cases {
		t.Run(name, func(t *testing.T) {
			profile := ComputeProRata(hire, 2025, nil)
			assert.False(t, profile.Applies)
			assert.Equal(t, 1.0, profile.Factor)
			assert.Equal(t, 100.0, profile.Percentage)
		})
	}
	assert.True(t, ComputeProRata(datePtr(2026, time.January, 5), 2025, nil).HiredAfterYear)
}

func TestHireMonthInclusiveFactorBounds(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		profile := ComputeProRata(datePtr(2025, month, 20), 2025, HireMonthInclusive{})
		require.True(t, profile.Applies)
		assert.Equal(t, 13-int(month), profile.Months)
		assert.GreaterOrEqual(t, profile.Factor, 1.0/12)
		assert.LessOrEqual(t, profile.Factor, 1.0)
	}
}

func TestNextFullMonth(t *testing.T) {
	months, factor := NextFullMonth{}.Entitlement(*datePtr(2025, time.July, 1), 2025)
	assert.Equal(t, 6, months)
	assert.InDelta(t, 0.5, factor, 1e-9)

	months, _ = NextFullMonth{}.Entitlement(*datePtr(2025, time.July, 2), 2025)
	assert.Equal(t, 5, months)

	months, factor = NextFullMonth{}.Entitlement(*datePtr(2025, time.December, 15), 2025)
	assert.Equal(t, 1, months)
	assert.InDelta(t, 1.0/12, factor, 1e-9)
}

func TestDailyProRata(t *testing.T) {
	months, factor := DailyProRata{}.Entitlement(*datePtr(2025, time.July, 2), 2025)
	assert.Equal(t, 6, months)
	assert.InDelta(t, 183.0/365.0, factor, 1e-9)

	_, factor = DailyProRata{}.Entitlement(*datePtr(2024, time.January, 1), 2024)
	assert.InDelta(t, 1.0, factor, 1e-9)

	_, factor = DailyProRata{}.Entitlement(*datePtr(2025, time.December, 31), 2025)
	assert.InDelta(t, 1.0/12, factor, 1e-9)
}

func TestEveryPolicyFactorBounds(t *testing.T) {
	for _, policy := range []ProRataPolicy{HireMonthInclusive{}, NextFullMonth{}, DailyProRata{}} {
		t.Run(policy.Name(), func(t *testing.T) {
			for month := time.January; month <= time.December; month++ {
				last := time.Date(2025, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
				for _, day := range []int{1, 15, last} {
					profile := ComputeProRata(datePtr(2025, month, day), 2025, policy)
					require.True(t, profile.Applies)
					assert.GreaterOrEqual(t, profile.Factor, 1.0/12, "%s %d", month, day)
					assert.LessOrEqual(t, profile.Factor, 1.0, "%s %d", month, day)
				}
			}
		})
	}
}

func TestProRataPolicyByName(t *testing.T) {
	for name, want := range map[string]string{
		"":                     ProRataHireMonthInclusive,
		"hire_month_inclusive": ProRataHireMonthInclusive,
		"NEXT_FULL_MONTH":      ProRataNextFullMonth,
		"daily":                ProRataDaily,
	} {
		policy, err := ProRataPolicyByName(name)
		require.NoError(t, err)
		assert.Equal(t, want, policy.Name())
	}
	_, err := ProRataPolicyByName("weekly")
	require.ErrorIs(t, err, ErrUnknownProRata)
}
