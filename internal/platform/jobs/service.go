package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrcomp/internal/domain/compensation"
	"hrcomp/internal/domain/reports"
	"hrcomp/internal/platform/config"
)

const JobBonusSummary = reports.JobTypeBonusSummary

type WorkforceCalculator interface {
	WorkforceBonuses(ctx context.Context, tenantID string, year int) (compensation.WorkforceReport, error)
	InvalidateCorporate(tenantID string, year int)
}

type Service struct {
	DB      *pgxpool.Pool
	Cfg     config.Config
	Bonuses WorkforceCalculator
	now     func() time.Time
	queue   chan job
}

type job struct {
	Type     string
	TenantID string
	Run      func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, bonuses WorkforceCalculator) *Service {
	return &Service{
		DB:      db,
		Cfg:     cfg,
		Bonuses: bonuses,
		now:     time.Now,
		queue:   make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.BonusSummaryInterval > 0 {
		go s.scheduleBonusSummaries(ctx, s.Cfg.BonusSummaryInterval)
	}
}

func (s *Service) Enqueue(jobType, tenantID string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, TenantID: tenantID, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType, "tenantId", tenantID)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType, tenantID string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, TenantID: tenantID, Run: run})
}

// BonusSummaryJob computes the workforce bonus table and keeps only the summary.
// Corporate results are re-read so the recorded run reflects the latest targets.
func (s *Service) BonusSummaryJob(tenantID string, year int) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		s.Bonuses.InvalidateCorporate(tenantID, year)
		report, err := s.Bonuses.WorkforceBonuses(ctx, tenantID, year)
		if err != nil {
			return map[string]any{"year": year, "error": err.Error()}, err
		}
		return report.Summary, nil
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "tenantId", j.TenantID, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (tenant_id, job_type, status)
    VALUES ($1,$2,$3)
    RETURNING id
  `, j.TenantID, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleBonusSummaries(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tenants, err := s.listTenants(ctx)
			if err != nil {
				slog.Warn("bonus summary tenant lookup failed", "err", err)
				continue
			}
			year := SettlementYear(s.now())
			for _, tenantID := range tenants {
				s.Enqueue(JobBonusSummary, tenantID, s.BonusSummaryJob(tenantID, year))
			}
		}
	}
}

// SettlementYear is the year whose bonuses are settled at now: the previous calendar year.
func SettlementYear(now time.Time) int {
	return now.Year() - 1
}

func (s *Service) listTenants(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `SELECT id FROM tenants`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RunSummary computes and records a bonus summary synchronously.
func (s *Service) RunSummary(ctx context.Context, tenantID string, year int) (any, error) {
	return s.RunNow(ctx, JobBonusSummary, tenantID, s.BonusSummaryJob(tenantID, year))
}
