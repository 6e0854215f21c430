package performance

import (
	"context"
	"fmt"

	"hrcomp/internal/domain/compensation"
)

type ObjectiveSource interface {
	ListObjectives(ctx context.Context, tenantID, employeeID string, year int) ([]compensation.Objective, error)
}

type Service struct {
	source ObjectiveSource
}

func NewService(source ObjectiveSource) *Service {
	return &Service{source: source}
}

// Dashboard reports objective progress with the same effective values the bonus table uses.
func (s *Service) Dashboard(ctx context.Context, tenantID, employeeID string, year int) (ObjectiveDashboard, error) {
	if year <= 0 {
		return ObjectiveDashboard{}, fmt.Errorf("%w: %d", compensation.ErrInvalidYear, year)
	}
	objectives, err := s.source.ListObjectives(ctx, tenantID, employeeID, year)
	if err != nil {
		return ObjectiveDashboard{}, err
	}
	dashboard := buildObjectiveDashboard(compensation.AggregatePersonal(objectives))
	dashboard.EmployeeID = employeeID
	dashboard.Year = year
	return dashboard, nil
}

func buildObjectiveDashboard(score compensation.PersonalScore) ObjectiveDashboard {
	dashboard := ObjectiveDashboard{
		Objectives:           score.Objectives,
		AverageCompletion:    score.AverageCompletion,
		EvaluatedCount:       score.EvaluatedCount,
		TotalCount:           score.TotalCount,
		ProgressDistribution: map[string]int{},
	}
	for _, objective := range score.Objectives {
		dashboard.ProgressDistribution[progressBucket(objective.Progress)]++
	}
	switch {
	case score.TotalCount == 0:
		dashboard.Status = DashboardStatusNoObjectives
	case score.Complete():
		dashboard.Status = DashboardStatusEvaluated
	default:
		dashboard.Status = DashboardStatusInProgress
	}
	if score.TotalCount > 0 {
		dashboard.EvaluationRate = float64(score.EvaluatedCount) / float64(score.TotalCount)
	}
	return dashboard
}

func progressBucket(progress float64) string {
	switch {
	case progress >= 100:
		return "100+"
	case progress >= 75:
		return "75-99"
	case progress >= 50:
		return "50-74"
	}
	return "0-49"
}
