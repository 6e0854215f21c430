package compensation

import (
	"fmt"
	"strings"
	"time"
)

const (
	ProRataHireMonthInclusive = "hire_month_inclusive"
	ProRataNextFullMonth      = "next_full_month"
	ProRataDaily              = "daily"
)

// ProRataPolicy decides how much of the year a mid-year hire is entitled to.
// Entitlement is only called for hire dates inside the target year.
type ProRataPolicy interface {
	Name() string
	Entitlement(hire time.Time, year int) (months int, factor float64)
}

func ProRataPolicyByName(name string) (ProRataPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProRataHireMonthInclusive:
		return HireMonthInclusive{}, nil
	case ProRataNextFullMonth:
		return NextFullMonth{}, nil
	case ProRataDaily:
		return DailyProRata{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProRata, name)
}

// HireMonthInclusive counts the hire month as a full month regardless of the hire day.
type HireMonthInclusive struct{}

func (HireMonthInclusive) Name() string { return ProRataHireMonthInclusive }

func (HireMonthInclusive) Entitlement(hire time.Time, _ int) (int, float64) {
	months := inclusiveMonths(hire)
	return months, float64(months) / 12
}

// NextFullMonth only counts the hire month when the employee started on its first day.
// December hires after the 1st still get one month.
type NextFullMonth struct{}

func (NextFullMonth) Name() string { return ProRataNextFullMonth }

func (NextFullMonth) Entitlement(hire time.Time, _ int) (int, float64) {
	months := inclusiveMonths(hire)
	if hire.Day() > 1 {
		months--
	}
	months = max(months, 1)
	return months, float64(months) / 12
}

// DailyProRata prorates by calendar day, hire day included, never below one month.
// Months is reported with the hire month counted, for display only.
type DailyProRata struct{}

func (DailyProRata) Name() string { return ProRataDaily }

func (DailyProRata) Entitlement(hire time.Time, year int) (int, float64) {
	start := time.Date(year, hire.Month(), hire.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := end.Sub(start).Hours() / 24
	daysInYear := end.Sub(first).Hours() / 24
	return inclusiveMonths(hire), max(days/daysInYear, 1.0/12)
}

func inclusiveMonths(hire time.Time) int {
	return 12 - int(hire.Month()) + 1
}

// ComputeProRata builds the proration profile of an employee for the target year.
// Only hires inside the target year are prorated; everyone else keeps a factor of 1.
func ComputeProRata(hireDate *time.Time, year int, policy ProRataPolicy) ProRataProfile {
	if policy == nil {
		policy = HireMonthInclusive{}
	}
	profile := ProRataProfile{Policy: policy.Name(), Months: 12, Factor: 1, Percentage: 100}
	if hireDate == nil {
		return profile
	}
	switch {
	case hireDate.Year() > year:
		profile.HiredAfterYear = true
	case hireDate.Year() == year:
		months, factor := policy.Entitlement(*hireDate, year)
		profile.Applies = true
		profile.Months = months
		profile.Factor = factor
		profile.Percentage = factor * 100
	}
	return profile
}
