package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"hrcomp/internal/domain/compensation"
)

const fixtureTenant = "fixture"

type fixtureFile struct {
	Corporate []fixtureCorporate `yaml:"corporate"`
	Employees []fixtureEmployee  `yaml:"employees"`
}

type fixtureCorporate struct {
	Year    int      `yaml:"year"`
	Type    string   `yaml:"type"`
	Quarter string   `yaml:"quarter"`
	Target  *string  `yaml:"target"`
	Actual  *string  `yaml:"actual"`
	Gate    *float64 `yaml:"gate"`
	Cap     *float64 `yaml:"cap"`
}

type fixtureEmployee struct {
	ID             string             `yaml:"id"`
	FirstName      string             `yaml:"firstName"`
	LastName       string             `yaml:"lastName"`
	SeniorityLevel *string            `yaml:"seniorityLevel"`
	HireDate       string             `yaml:"hireDate"`
	Inactive       bool               `yaml:"inactive"`
	Objectives     []fixtureObjective `yaml:"objectives"`
}

type fixtureObjective struct {
	ID          string   `yaml:"id"`
	Parent      *string  `yaml:"parent"`
	Year        int      `yaml:"year"`
	Title       string   `yaml:"title"`
	Periodicity string   `yaml:"periodicity"`
	Progress    float64  `yaml:"progress"`
	Achievement *float64 `yaml:"achievement"`
	Locked      bool     `yaml:"locked"`
	Weight      float64  `yaml:"weight"`
}

// fixtureStore serves a YAML snapshot through the same store contract as Postgres.
type fixtureStore struct {
	employees  []compensation.Employee
	inactive   map[string]bool
	corporate  map[int][]compensation.CorporateObjective
	objectives map[string]map[int][]compensation.Objective
}

func loadFixture(path string) (*fixtureStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return parseFixture(data)
}

func parseFixture(data []byte) (*fixtureStore, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	store := &fixtureStore{
		inactive:   map[string]bool{},
		corporate:  map[int][]compensation.CorporateObjective{},
		objectives: map[string]map[int][]compensation.Objective{},
	}
	for i, row := range file.Corporate {
		objective, err := row.toObjective()
		if err != nil {
			return nil, fmt.Errorf("corporate row %d: %w", i, err)
		}
		store.corporate[row.Year] = append(store.corporate[row.Year], objective)
	}
	for _, e := range file.Employees {
		employee := compensation.Employee{ID: e.ID, FirstName: e.FirstName, LastName: e.LastName, SeniorityLevel: e.SeniorityLevel}
		if e.HireDate != "" {
			hired, err := time.Parse(time.DateOnly, e.HireDate)
			if err != nil {
				return nil, fmt.Errorf("employee %s hire date: %w", e.ID, err)
			}
			employee.HireDate = &hired
		}
		store.employees = append(store.employees, employee)
		store.inactive[e.ID] = e.Inactive
		byYear := map[int][]compensation.Objective{}
		for _, o := range e.Objectives {
			byYear[o.Year] = append(byYear[o.Year], compensation.Objective{
				ID:                    o.ID,
				ParentObjectiveID:     o.Parent,
				Title:                 o.Title,
				Periodicity:           o.Periodicity,
				ProgressPercentage:    o.Progress,
				AchievementPercentage: o.Achievement,
				IsLocked:              o.Locked,
				WeightPct:             o.Weight,
			})
		}
		store.objectives[e.ID] = byYear
	}
	return store, nil
}

func (row fixtureCorporate) toObjective() (compensation.CorporateObjective, error) {
	switch row.Type {
	case compensation.ObjectiveTypeBilling:
		target, err := parseOptionalDecimal(row.Target)
		if err != nil {
			return nil, err
		}
		actual, err := parseOptionalDecimal(row.Actual)
		if err != nil {
			return nil, err
		}
		return compensation.BillingObjective{Year: row.Year, Target: target, Actual: actual, GatePercentage: row.Gate, CapPercentage: row.Cap}, nil
	case compensation.ObjectiveTypeNPS:
		target, err := parseOptionalDecimal(row.Target)
		if err != nil {
			return nil, err
		}
		actual, err := parseOptionalDecimal(row.Actual)
		if err != nil {
			return nil, err
		}
		return compensation.NPSObjective{Year: row.Year, Quarter: compensation.Quarter(row.Quarter), Target: toFloat(target), Actual: toFloat(actual)}, nil
	}
	return nil, fmt.Errorf("%w: %q", compensation.ErrUnknownObjective, row.Type)
}

func parseOptionalDecimal(value *string) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func toFloat(value *decimal.Decimal) *float64 {
	if value == nil {
		return nil
	}
	f := value.InexactFloat64()
	return &f
}

func (s *fixtureStore) GetEmployee(_ context.Context, _, employeeID string) (compensation.Employee, error) {
	for _, e := range s.employees {
		if e.ID == employeeID {
			return e, nil
		}
	}
	return compensation.Employee{}, fmt.Errorf("%w: %s", compensation.ErrEmployeeNotFound, employeeID)
}

func (s *fixtureStore) ListActiveEmployees(_ context.Context, _ string, year int) ([]compensation.Employee, error) {
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	out := make([]compensation.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if s.inactive[e.ID] {
			continue
		}
		if e.HireDate != nil && e.HireDate.After(yearEnd) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *fixtureStore) ListCorporateObjectives(_ context.Context, _ string, year int) ([]compensation.CorporateObjective, error) {
	return s.corporate[year], nil
}

func (s *fixtureStore) ListObjectives(_ context.Context, _, employeeID string, year int) ([]compensation.Objective, error) {
	return s.objectives[employeeID][year], nil
}

var _ compensation.StoreAPI = (*fixtureStore)(nil)
