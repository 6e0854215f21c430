package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrcomp/internal/domain/compensation"
	"hrcomp/internal/platform/config"
)

type seedCorporateRow struct {
	objectiveType string
	quarter       *string
	target        float64
	actual        float64
	gate          *float64
	capPct        *float64
}

// Seed makes a development database render a bonus table out of the box.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	tenantID, err := ensureTenant(ctx, pool, cfg.SeedTenantName)
	if err != nil {
		return fmt.Errorf("seed tenant: %w", err)
	}
	if err := ensureCorporateObjectives(ctx, pool, tenantID, cfg.SeedYear); err != nil {
		return fmt.Errorf("seed corporate objectives: %w", err)
	}
	return nil
}

func ensureTenant(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM tenants WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx, "INSERT INTO tenants (name) VALUES ($1) RETURNING id", name).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensureCorporateObjectives(ctx context.Context, pool *pgxpool.Pool, tenantID string, year int) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM corporate_objectives WHERE tenant_id = $1 AND year = $2", tenantID, year).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, row := range demoCorporateRows() {
		_, err := pool.Exec(ctx, `
    INSERT INTO corporate_objectives (tenant_id, year, objective_type, quarter, target_value, actual_value, gate_percentage, cap_percentage)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, tenantID, year, row.objectiveType, row.quarter, row.target, row.actual, row.gate, row.capPct)
		if err != nil {
			return err
		}
	}
	slog.Info("seeded corporate objectives", "tenantId", tenantID, "year", year)
	return nil
}

func demoCorporateRows() []seedCorporateRow {
	gate, capPct := compensation.DefaultGatePercentage, compensation.DefaultCapPercentage
	rows := []seedCorporateRow{{
		objectiveType: compensation.ObjectiveTypeBilling,
		target:        1_000_000,
		actual:        1_040_000,
		gate:          &gate,
		capPct:        &capPct,
	}}
	actuals := []float64{38, 41, 44, 40}
	for i, quarter := range compensation.Quarters {
		q := string(quarter)
		rows = append(rows, seedCorporateRow{
			objectiveType: compensation.ObjectiveTypeNPS,
			quarter:       &q,
			target:        40,
			actual:        actuals[i],
		})
	}
	return rows
}
