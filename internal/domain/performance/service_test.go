package performance

import (
	"context"
	"errors"
	"testing"

	"hrcomp/internal/domain/compensation"
)

type stubSource struct {
	objectives []compensation.Objective
	err        error
}

func (s stubSource) ListObjectives(context.Context, string, string, int) ([]compensation.Objective, error) {
	return s.objectives, s.err
}

func ptr(v float64) *float64 { return &v }

func TestDashboardUsesEffectiveValues(t *testing.T) {
	parent := "m2"
	svc := NewService(stubSource{objectives: []compensation.Objective{
		{ID: "m1", Periodicity: compensation.PeriodicityAnnual, ProgressPercentage: 95, AchievementPercentage: ptr(60), IsLocked: true},
		{ID: "m2", Periodicity: compensation.PeriodicitySemestral},
		{ID: "s1", ParentObjectiveID: &parent, ProgressPercentage: 80},
		{ID: "s2", ParentObjectiveID: &parent, ProgressPercentage: 100},
	}})

	dashboard, err := svc.Dashboard(context.Background(), "t1", "e1", 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.EmployeeID != "e1" || dashboard.Year != 2025 {
		t.Fatalf("unexpected dashboard identity: %+v", dashboard)
	}
	if len(dashboard.Objectives) != 2 {
		t.Fatalf("expected 2 main objectives, got %d", len(dashboard.Objectives))
	}
	if dashboard.Objectives[0].Progress != 60 {
		t.Fatalf("expected evaluated objective at 60, got %v", dashboard.Objectives[0].Progress)
	}
	if dashboard.Objectives[1].Progress != 90 {
		t.Fatalf("expected rolled-up objective at 90, got %v", dashboard.Objectives[1].Progress)
	}
	if dashboard.Status != DashboardStatusInProgress {
		t.Fatalf("expected in_progress, got %s", dashboard.Status)
	}
	if dashboard.EvaluationRate != 0.5 {
		t.Fatalf("expected evaluation rate 0.5, got %v", dashboard.EvaluationRate)
	}
	if dashboard.ProgressDistribution["50-74"] != 1 || dashboard.ProgressDistribution["75-99"] != 1 {
		t.Fatalf("unexpected distribution: %+v", dashboard.ProgressDistribution)
	}
}

func TestDashboardHandlesNoObjectives(t *testing.T) {
	dashboard, err := NewService(stubSource{}).Dashboard(context.Background(), "t1", "e1", 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.Status != DashboardStatusNoObjectives {
		t.Fatalf("expected no_objectives, got %s", dashboard.Status)
	}
	if dashboard.EvaluationRate != 0 {
		t.Fatalf("expected zero evaluation rate, got %v", dashboard.EvaluationRate)
	}
	if len(dashboard.ProgressDistribution) != 0 {
		t.Fatalf("expected empty distribution, got %+v", dashboard.ProgressDistribution)
	}
}

func TestDashboardErrors(t *testing.T) {
	if _, err := NewService(stubSource{}).Dashboard(context.Background(), "t1", "e1", 0); !errors.Is(err, compensation.ErrInvalidYear) {
		t.Fatalf("expected invalid year, got %v", err)
	}
	boom := errors.New("boom")
	if _, err := NewService(stubSource{err: boom}).Dashboard(context.Background(), "t1", "e1", 2025); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestProgressBucket(t *testing.T) {
	cases := map[float64]string{0: "0-49", 49.9: "0-49", 50: "50-74", 75: "75-99", 100: "100+", 120: "100+"}
	for progress, want := range cases {
		if got := progressBucket(progress); got != want {
			t.Fatalf("progress %v: expected %s, got %s", progress, want, got)
		}
	}
}
