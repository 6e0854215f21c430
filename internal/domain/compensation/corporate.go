package compensation

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// EvaluateCorporate scores the company-wide billing and NPS targets for one year.
// The first billing row and the first row per quarter win when duplicates are supplied.
func EvaluateCorporate(objectives []CorporateObjective, weights WeightDistribution, weighting CorporateWeighting) CorporateScore {
	var billing *BillingObjective
	nps := make(map[Quarter]NPSObjective, len(Quarters))
	for _, objective := range objectives {
		switch o := objective.(type) {
		case BillingObjective:
			if billing == nil {
				b := o
				billing = &b
			}
		case *BillingObjective:
			if billing == nil && o != nil {
				b := *o
				billing = &b
			}
		case NPSObjective:
			if _, seen := nps[o.Quarter]; !seen {
				nps[o.Quarter] = o
			}
		case *NPSObjective:
			if o == nil {
				continue
			}
			if _, seen := nps[o.Quarter]; !seen {
				nps[o.Quarter] = *o
			}
		}
	}

	score := CorporateScore{
		Billing: EvaluateBilling(billing),
		NPS:     EvaluateNPS(nps),
	}
	score.GateMet = score.Billing.GateMet
	if score.Billing.Status == ScoreStatusNotConfigured && score.NPS.Status == ScoreStatusNotConfigured {
		score.Status = ScoreStatusNotConfigured
		return score
	}
	score.Status = ScoreStatusOK
	score.TotalCompletion = corporateTotal(score.Billing.Completion, score.NPS.AverageCompletion, weights, weighting)
	return score
}

func corporateTotal(billing, nps float64, weights WeightDistribution, weighting CorporateWeighting) float64 {
	if weighting == CorporateWeightingEqual {
		return (billing + nps) / 2
	}
	share := weights.Billing + weights.NPS
	if share <= 0 {
		return 0
	}
	return (billing*weights.Billing + nps*weights.NPS) / share
}

// EvaluateBilling applies the gate as a hard cliff: any raw completion below the
// gate zeroes the billing contribution.
func EvaluateBilling(objective *BillingObjective) BillingScore {
	score := BillingScore{
		Status:         ScoreStatusNotConfigured,
		GatePercentage: DefaultGatePercentage,
		CapPercentage:  DefaultCapPercentage,
	}
	if objective == nil {
		return score
	}
	score.Target = objective.Target
	score.Actual = objective.Actual
	if objective.GatePercentage != nil {
		score.GatePercentage = *objective.GatePercentage
	}
	if objective.CapPercentage != nil {
		score.CapPercentage = *objective.CapPercentage
	}
	if objective.Target == nil || objective.Actual == nil || !objective.Target.IsPositive() {
		return score
	}

	score.Status = ScoreStatusOK
	score.RawCompletion = objective.Actual.Div(*objective.Target).Mul(hundred).InexactFloat64()
	score.GateMet = score.RawCompletion >= score.GatePercentage
	if score.GateMet {
		score.Completion = math.Max(0, math.Min(score.RawCompletion, score.CapPercentage))
	}
	return score
}

// EvaluateNPS averages quarter completions over the quarters that carry both a
// target and an actual value. Quarters without data are left out of the mean.
func EvaluateNPS(byQuarter map[Quarter]NPSObjective) NPSScore {
	score := NPSScore{
		Status:   ScoreStatusNotConfigured,
		Quarters: make([]QuarterScore, 0, len(Quarters)),
	}
	var sum float64
	for _, quarter := range Quarters {
		qs := QuarterScore{Quarter: quarter}
		if objective, ok := byQuarter[quarter]; ok {
			qs.Target = objective.Target
			qs.Actual = objective.Actual
			if objective.Target != nil && objective.Actual != nil && *objective.Target > 0 {
				qs.HasData = true
				qs.Completion = clampPercent(*objective.Actual / *objective.Target * 100)
				qs.Met = *objective.Actual >= *objective.Target
				sum += qs.Completion
				score.QuartersWithData++
			}
		}
		score.Quarters = append(score.Quarters, qs)
	}
	if score.QuartersWithData > 0 {
		score.Status = ScoreStatusOK
		score.AverageCompletion = sum / float64(score.QuartersWithData)
	}
	return score
}

func clampPercent(value float64) float64 {
	return math.Max(0, math.Min(value, 100))
}
