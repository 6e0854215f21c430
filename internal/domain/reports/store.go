package reports

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrcomp/internal/domain/compensation"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListSummaryRuns(ctx context.Context, tenantID string, filter SummaryRunFilter, limit, offset int) ([]SummaryRun, error) {
	query, args := buildSummaryRunsQuery(tenantID, filter)
	query += " ORDER BY started_at DESC LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []SummaryRun{}
	for rows.Next() {
		var run SummaryRun
		var detailsRaw []byte
		if err := rows.Scan(&run.ID, &run.Status, &detailsRaw, &run.StartedAt, &run.CompletedAt); err != nil {
			return nil, err
		}
		run.Summary, run.Error = decodeDetails(detailsRaw)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) CountSummaryRuns(ctx context.Context, tenantID string, filter SummaryRunFilter) (int, error) {
	query, args := buildSummaryRunsQuery(tenantID, filter)
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM ("+query+") runs", args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func buildSummaryRunsQuery(tenantID string, filter SummaryRunFilter) (string, []any) {
	query := `
    SELECT id, status, COALESCE(details_json, '{}'::jsonb), started_at, completed_at
    FROM job_runs
    WHERE tenant_id = $1 AND job_type = $2
  `
	args := []any{tenantID, JobTypeBonusSummary}

	if filter.Year > 0 {
		query += " AND (details_json->>'year')::int = $" + strconv.Itoa(len(args)+1)
		args = append(args, filter.Year)
	}
	if value := strings.TrimSpace(filter.Status); value != "" {
		query += " AND status = $" + strconv.Itoa(len(args)+1)
		args = append(args, value)
	}
	return query, args
}

// decodeDetails splits a run's details into the stored summary or the failure message.
func decodeDetails(raw []byte) (*compensation.WorkforceSummary, string) {
	if len(raw) == 0 {
		return nil, ""
	}
	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, "unreadable details: " + string(raw)
	}
	if probe.Error != "" {
		return nil, probe.Error
	}
	var summary compensation.WorkforceSummary
	if err := json.Unmarshal(raw, &summary); err != nil || summary.Year == 0 {
		return nil, ""
	}
	return &summary, ""
}
