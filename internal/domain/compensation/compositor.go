package compensation

import "math"

// Compose combines the corporate and personal scores into the payable bonus
// percentage. No numeric final is produced while personal objectives are
// missing or not fully evaluated.
func Compose(corporate CorporateScore, personal PersonalScore, weights WeightDistribution, proRata ProRataProfile) BonusResult {
	result := BonusResult{
		Corporate:        corporate,
		Personal:         personal,
		ProRata:          proRata,
		CompanyComponent: corporate.TotalCompletion * weights.Company / 100,
	}

	switch {
	case proRata.HiredAfterYear:
		result.Status = BonusStatusNotEmployed
		return result
	case personal.TotalCount == 0:
		result.Status = BonusStatusNoObjectives
		return result
	case personal.EvaluatedCount < personal.TotalCount:
		result.Status = BonusStatusPendingEvaluation
		return result
	}

	personalComponent := clampPercent(personal.AverageCompletion) * weights.Area / 100
	base := result.CompanyComponent + personalComponent
	final := base * proRata.Factor
	result.Status = BonusStatusCalculated
	result.PersonalComponent = &personalComponent
	result.Base = &base
	result.Final = &final
	return result
}

// Rounded returns a copy with the composed figures rounded to two decimals for display.
func (r BonusResult) Rounded() BonusResult {
	r.CompanyComponent = round2(r.CompanyComponent)
	r.PersonalComponent = round2Ptr(r.PersonalComponent)
	r.Base = round2Ptr(r.Base)
	r.Final = round2Ptr(r.Final)
	r.Corporate.TotalCompletion = round2(r.Corporate.TotalCompletion)
	r.Corporate.Billing.RawCompletion = round2(r.Corporate.Billing.RawCompletion)
	r.Corporate.Billing.Completion = round2(r.Corporate.Billing.Completion)
	r.Corporate.NPS.AverageCompletion = round2(r.Corporate.NPS.AverageCompletion)
	r.Personal.AverageCompletion = round2(r.Personal.AverageCompletion)
	r.ProRata.Factor = math.Round(r.ProRata.Factor*10000) / 10000
	r.ProRata.Percentage = round2(r.ProRata.Percentage)
	return r
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round2Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	rounded := round2(*v)
	return &rounded
}
