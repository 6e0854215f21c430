package reports

import "context"

type StoreAPI interface {
	ListSummaryRuns(ctx context.Context, tenantID string, filter SummaryRunFilter, limit, offset int) ([]SummaryRun, error)
	CountSummaryRuns(ctx context.Context, tenantID string, filter SummaryRunFilter) (int, error)
}

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// SummaryHistory returns one page of bonus summary runs, newest first, and the total.
func (s *Service) SummaryHistory(ctx context.Context, tenantID string, filter SummaryRunFilter, limit, offset int) ([]SummaryRun, int, error) {
	total, err := s.Store.CountSummaryRuns(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []SummaryRun{}, 0, nil
	}
	runs, err := s.Store.ListSummaryRuns(ctx, tenantID, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}
