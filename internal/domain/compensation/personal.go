package compensation

import "math"

// EffectiveValue prefers a formal evaluation over self-reported progress. An
// evaluated objective is clamped to [0, 100]; running progress is reported as is.
func EffectiveValue(o Objective) float64 {
	if !o.Evaluated() {
		return o.ProgressPercentage
	}
	if o.AchievementPercentage == nil {
		return 0
	}
	return clampPercent(*o.AchievementPercentage)
}

// AggregatePersonal rolls an employee's objectives for one year up to a single
// completion figure. Sub-objectives of semestral and trimestral objectives are
// averaged into their parent; annual objectives are scored directly.
func AggregatePersonal(objectives []Objective) PersonalScore {
	children := make(map[string][]Objective)
	var mains []Objective
	for _, o := range objectives {
		if o.IsMain() {
			mains = append(mains, o)
			continue
		}
		children[*o.ParentObjectiveID] = append(children[*o.ParentObjectiveID], o)
	}

	score := PersonalScore{
		Status:     ScoreStatusNoObjectives,
		Objectives: make([]ObjectiveScore, 0, len(mains)),
		TotalCount: len(mains),
	}
	if len(mains) == 0 {
		return score
	}

	var sum float64
	for _, main := range mains {
		entry := scoreObjective(main, children[main.ID])
		if entry.Evaluated {
			score.EvaluatedCount++
		}
		sum += entry.Progress
		score.Objectives = append(score.Objectives, entry)
	}
	score.Status = ScoreStatusOK
	score.AverageCompletion = sum / float64(len(mains))
	return score
}

func scoreObjective(main Objective, subs []Objective) ObjectiveScore {
	entry := ObjectiveScore{
		ID:             main.ID,
		Title:          main.Title,
		Periodicity:    main.Periodicity,
		WeightPct:      main.WeightPct,
		Evaluated:      main.Evaluated(),
		EffectiveValue: EffectiveValue(main),
	}
	entry.Progress = entry.EffectiveValue

	if len(subs) == 0 {
		return entry
	}
	entry.SubObjectives = make([]SubObjectiveScore, 0, len(subs))
	allEvaluated := true
	var sum float64
	for _, sub := range subs {
		value := EffectiveValue(sub)
		evaluated := sub.Evaluated()
		allEvaluated = allEvaluated && evaluated
		sum += value
		entry.SubObjectives = append(entry.SubObjectives, SubObjectiveScore{
			ID:             sub.ID,
			Title:          sub.Title,
			Evaluated:      evaluated,
			EffectiveValue: value,
		})
	}
	if main.Periodicity == PeriodicityAnnual {
		return entry
	}
	entry.RolledUp = true
	entry.Progress = math.Round(sum / float64(len(subs)))
	// closed periods do not close the main objective; it stays pending until locked or scored.
	entry.SubObjectivesEvaluated = allEvaluated
	return entry
}
