package compensation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func (s *Store) GetEmployee(ctx context.Context, tenantID, employeeID string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, seniority_level, hire_date
    FROM employees
    WHERE tenant_id = $1 AND id::text = $2
  `, tenantID, employeeID).Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.SeniorityLevel, &emp.HireDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) ListActiveEmployees(ctx context.Context, tenantID string, year int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, seniority_level, hire_date
    FROM employees
    WHERE tenant_id = $1
      AND status = 'active'
      AND (hire_date IS NULL OR hire_date <= make_date($2, 12, 31))
    ORDER BY last_name, first_name, id
  `, tenantID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.SeniorityLevel, &emp.HireDate); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) ListCorporateObjectives(ctx context.Context, tenantID string, year int) ([]CorporateObjective, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT objective_type, quarter, target_value::text, actual_value::text, gate_percentage, cap_percentage
    FROM corporate_objectives
    WHERE tenant_id = $1 AND year = $2
    ORDER BY objective_type, quarter NULLS FIRST, created_at
  `, tenantID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CorporateObjective
	for rows.Next() {
		var objectiveType string
		var quarter, target, actual *string
		var gate, capPct *float64
		if err := rows.Scan(&objectiveType, &quarter, &target, &actual, &gate, &capPct); err != nil {
			return nil, err
		}
		objective, err := corporateObjectiveFromRow(year, objectiveType, quarter, target, actual, gate, capPct)
		if err != nil {
			return nil, err
		}
		out = append(out, objective)
	}
	return out, rows.Err()
}

func corporateObjectiveFromRow(year int, objectiveType string, quarter, target, actual *string, gate, capPct *float64) (CorporateObjective, error) {
	targetValue, err := parseNullableDecimal(target)
	if err != nil {
		return nil, fmt.Errorf("corporate objective target: %w", err)
	}
	actualValue, err := parseNullableDecimal(actual)
	if err != nil {
		return nil, fmt.Errorf("corporate objective actual: %w", err)
	}

	switch objectiveType {
	case ObjectiveTypeBilling:
		return BillingObjective{
			Year:           year,
			Target:         targetValue,
			Actual:         actualValue,
			GatePercentage: gate,
			CapPercentage:  capPct,
		}, nil
	case ObjectiveTypeNPS:
		if quarter == nil {
			return nil, fmt.Errorf("%w: nps objective without quarter", ErrUnknownObjective)
		}
		return NPSObjective{
			Year:    year,
			Quarter: Quarter(*quarter),
			Target:  decimalToFloat(targetValue),
			Actual:  decimalToFloat(actualValue),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownObjective, objectiveType)
}

func (s *Store) ListObjectives(ctx context.Context, tenantID, employeeID string, year int) ([]Objective, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, parent_objective_id, title, periodicity, progress_percentage,
           achievement_percentage, is_locked, weight_pct
    FROM objectives
    WHERE tenant_id = $1 AND employee_id::text = $2 AND year = $3
    ORDER BY parent_objective_id NULLS FIRST, start_date NULLS FIRST, created_at
  `, tenantID, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objectives []Objective
	for rows.Next() {
		var o Objective
		if err := rows.Scan(&o.ID, &o.ParentObjectiveID, &o.Title, &o.Periodicity, &o.ProgressPercentage, &o.AchievementPercentage, &o.IsLocked, &o.WeightPct); err != nil {
			return nil, err
		}
		objectives = append(objectives, o)
	}
	return objectives, rows.Err()
}

func parseNullableDecimal(value *string) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func decimalToFloat(value *decimal.Decimal) *float64 {
	if value == nil {
		return nil
	}
	f := value.InexactFloat64()
	return &f
}

var _ StoreAPI = (*Store)(nil)
