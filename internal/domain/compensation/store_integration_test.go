package compensation_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrcomp/internal/domain/compensation"
	"hrcomp/internal/platform/db"
)

func TestStoreAgainstPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.MigrateFS(ctx, pool, os.DirFS("../../../migrations")))

	var tenantID string
	require.NoError(t, pool.QueryRow(ctx, "INSERT INTO tenants (name) VALUES ('store-test-' || gen_random_uuid()) RETURNING id").Scan(&tenantID))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), "DELETE FROM tenants WHERE id = $1", tenantID) })

	var senior, recent, future string
	require.NoError(t, pool.QueryRow(ctx, `
    INSERT INTO employees (tenant_id, first_name, last_name, seniority_level, hire_date)
    VALUES ($1, 'Ana', 'Ruiz', '4.1', '2015-03-02') RETURNING id`, tenantID).Scan(&senior))
	require.NoError(t, pool.QueryRow(ctx, `
    INSERT INTO employees (tenant_id, first_name, last_name, hire_date)
    VALUES ($1, 'Ben', 'Soto', '2025-07-15') RETURNING id`, tenantID).Scan(&recent))
	require.NoError(t, pool.QueryRow(ctx, `
    INSERT INTO employees (tenant_id, first_name, last_name, hire_date)
    VALUES ($1, 'Cleo', 'Vega', '2026-02-01') RETURNING id`, tenantID).Scan(&future))

	_, err = pool.Exec(ctx, `
    INSERT INTO corporate_objectives (tenant_id, year, objective_type, quarter, target_value, actual_value)
    VALUES ($1, 2025, 'billing', NULL, 1000000.00, 930000.50),
           ($1, 2025, 'nps', 'q1', 40, 44)`, tenantID)
	require.NoError(t, err)

	var parent string
	require.NoError(t, pool.QueryRow(ctx, `
    INSERT INTO objectives (tenant_id, employee_id, year, title, periodicity, is_locked)
    VALUES ($1, $2, 2025, 'Platform', 'semestral', true) RETURNING id`, tenantID, senior).Scan(&parent))
	_, err = pool.Exec(ctx, `
    INSERT INTO objectives (tenant_id, employee_id, parent_objective_id, year, title, periodicity, achievement_percentage, is_locked)
    VALUES ($1, $2, $3, 2025, 'H1', 'semestral', 70, true),
           ($1, $2, $3, 2025, 'H2', 'semestral', 90, true)`, tenantID, senior, parent)
	require.NoError(t, err)

	store := compensation.NewStore(pool)

	employees, err := store.ListActiveEmployees(ctx, tenantID, 2025)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, senior, employees[0].ID)
	assert.Equal(t, recent, employees[1].ID)

	_, err = store.GetEmployee(ctx, tenantID, "not-a-uuid")
	assert.ErrorIs(t, err, compensation.ErrEmployeeNotFound)

	corporate, err := store.ListCorporateObjectives(ctx, tenantID, 2025)
	require.NoError(t, err)
	require.Len(t, corporate, 2)
	billing, ok := corporate[0].(compensation.BillingObjective)
	require.True(t, ok)
	assert.Equal(t, "930000.5", billing.Actual.String())

	objectives, err := store.ListObjectives(ctx, tenantID, senior, 2025)
	require.NoError(t, err)
	require.Len(t, objectives, 3)
	assert.True(t, objectives[0].IsMain())

	report, err := compensation.NewService(store, nil, compensation.ServiceOptions{}).WorkforceBonuses(ctx, tenantID, 2025)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, compensation.BonusStatusCalculated, report.Results[0].Status)
	assert.Equal(t, 4, report.Results[0].Weights.Category)
	assert.Equal(t, compensation.BonusStatusNoObjectives, report.Results[1].Status)
	assert.NotContains(t, []string{report.Results[0].EmployeeID, report.Results[1].EmployeeID}, future)
}
