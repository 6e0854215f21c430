package compensation

import "context"

type StoreAPI interface {
	GetEmployee(ctx context.Context, tenantID, employeeID string) (Employee, error)
	ListActiveEmployees(ctx context.Context, tenantID string, year int) ([]Employee, error)
	ListCorporateObjectives(ctx context.Context, tenantID string, year int) ([]CorporateObjective, error)
	ListObjectives(ctx context.Context, tenantID, employeeID string, year int) ([]Objective, error)
}
