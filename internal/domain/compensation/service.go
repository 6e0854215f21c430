package compensation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers   = 8
	defaultCacheSize = 128
	defaultCacheTTL  = time.Minute
)

// Recorder receives one observation per computed bonus.
type Recorder interface {
	ObserveBonus(status string, defaulted bool, duration time.Duration)
}

type ServiceOptions struct {
	Workers   int
	CacheSize int
	CacheTTL  time.Duration
	Recorder  Recorder
}

type WorkforceReport struct {
	Summary WorkforceSummary `json:"summary"`
	Results []BonusResult    `json:"results"`
}

type Service struct {
	store     StoreAPI
	engine    *Engine
	workers   int
	corporate *expirable.LRU[string, []CorporateObjective]
	recorder  Recorder
}

func NewService(store StoreAPI, engine *Engine, opts ServiceOptions) *Service {
	if engine == nil {
		engine = NewEngine()
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	return &Service{
		store:     store,
		engine:    engine,
		workers:   opts.Workers,
		corporate: expirable.NewLRU[string, []CorporateObjective](opts.CacheSize, nil, opts.CacheTTL),
		recorder:  opts.Recorder,
	}
}

func (s *Service) Engine() *Engine {
	return s.engine
}

// CorporateObjectives returns the year's corporate snapshot, read once and shared.
func (s *Service) CorporateObjectives(ctx context.Context, tenantID string, year int) ([]CorporateObjective, error) {
	key := corporateKey(tenantID, year)
	if cached, ok := s.corporate.Get(key); ok {
		return cached, nil
	}
	objectives, err := s.store.ListCorporateObjectives(ctx, tenantID, year)
	if err != nil {
		return nil, fmt.Errorf("list corporate objectives: %w", err)
	}
	s.corporate.Add(key, objectives)
	return objectives, nil
}

// InvalidateCorporate drops the cached snapshot so the next read sees fresh corporate results.
func (s *Service) InvalidateCorporate(tenantID string, year int) {
	s.corporate.Remove(corporateKey(tenantID, year))
}

func (s *Service) EmployeeBonus(ctx context.Context, tenantID, employeeID string, year int) (BonusResult, error) {
	if year <= 0 {
		return BonusResult{}, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	employee, err := s.store.GetEmployee(ctx, tenantID, employeeID)
	if err != nil {
		return BonusResult{}, err
	}
	corporate, err := s.CorporateObjectives(ctx, tenantID, year)
	if err != nil {
		return BonusResult{}, err
	}
	return s.calculate(ctx, tenantID, employee, year, corporate)
}

// WorkforceBonuses computes every active employee's bonus for the year. Each
// employee is independent, so the calculations fan out over a bounded pool.
func (s *Service) WorkforceBonuses(ctx context.Context, tenantID string, year int) (WorkforceReport, error) {
	if year <= 0 {
		return WorkforceReport{}, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	employees, err := s.store.ListActiveEmployees(ctx, tenantID, year)
	if err != nil {
		return WorkforceReport{}, fmt.Errorf("list active employees: %w", err)
	}
	corporate, err := s.CorporateObjectives(ctx, tenantID, year)
	if err != nil {
		return WorkforceReport{}, err
	}

	results := make([]BonusResult, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, employee := range employees {
		i, employee := i, employee
		g.Go(func() error {
			result, err := s.calculate(gctx, tenantID, employee, year, corporate)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return WorkforceReport{}, err
	}
	return WorkforceReport{Summary: Summarize(year, results), Results: results}, nil
}

func (s *Service) calculate(ctx context.Context, tenantID string, employee Employee, year int, corporate []CorporateObjective) (BonusResult, error) {
	start := time.Now()
	objectives, err := s.store.ListObjectives(ctx, tenantID, employee.ID, year)
	if err != nil {
		return BonusResult{}, fmt.Errorf("list objectives for employee %s: %w", employee.ID, err)
	}
	result, err := s.engine.Calculate(Input{
		Employee:   employee,
		Year:       year,
		Corporate:  corporate,
		Objectives: objectives,
	})
	if err != nil {
		return BonusResult{}, err
	}
	if result.Weights.Warning == WarningSeniorityMalformed {
		slog.Warn("seniority level malformed, using default category",
			"employeeId", employee.ID, "seniorityLevel", *employee.SeniorityLevel, "category", result.Weights.Category)
	}
	if s.recorder != nil {
		s.recorder.ObserveBonus(string(result.Status), result.Weights.Defaulted, time.Since(start))
	}
	return result, nil
}

func corporateKey(tenantID string, year int) string {
	return tenantID + ":" + strconv.Itoa(year)
}
