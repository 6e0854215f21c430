package compensation

// WorkforceSummary is the presentation-level reduction over independently
// computed results. Only calculated bonuses enter the average.
type WorkforceSummary struct {
	Year               int      `json:"year"`
	Employees          int      `json:"employees"`
	Calculated         int      `json:"calculated"`
	PendingEvaluation  int      `json:"pendingEvaluation"`
	NoObjectives       int      `json:"noObjectives"`
	NotEmployed        int      `json:"notEmployed"`
	DefaultedSeniority int      `json:"defaultedSeniority"`
	BillingGateMet     bool     `json:"billingGateMet"`
	AverageFinal       *float64 `json:"averageFinal"`
}

func Summarize(year int, results []BonusResult) WorkforceSummary {
	summary := WorkforceSummary{Year: year, Employees: len(results)}
	var sum float64
	for i, result := range results {
		if i == 0 {
			summary.BillingGateMet = result.Corporate.GateMet
		}
		if result.Weights.Defaulted {
			summary.DefaultedSeniority++
		}
		switch result.Status {
		case BonusStatusCalculated:
			summary.Calculated++
			if result.Final != nil {
				sum += *result.Final
			}
		case BonusStatusPendingEvaluation:
			summary.PendingEvaluation++
		case BonusStatusNoObjectives:
			summary.NoObjectives++
		case BonusStatusNotEmployed:
			summary.NotEmployed++
		}
	}
	if summary.Calculated > 0 {
		avg := round2(sum / float64(summary.Calculated))
		summary.AverageFinal = &avg
	}
	return summary
}
