package reports

import (
	"time"

	"hrcomp/internal/domain/compensation"
)

const JobTypeBonusSummary = "bonus_summary"

// SummaryRun is one persisted bonus summary job. Summary is nil when the run
// failed or is still running.
type SummaryRun struct {
	ID          string                         `json:"id"`
	Status      string                         `json:"status"`
	Summary     *compensation.WorkforceSummary `json:"summary,omitempty"`
	Error       string                         `json:"error,omitempty"`
	StartedAt   time.Time                      `json:"startedAt"`
	CompletedAt *time.Time                     `json:"completedAt"`
}

type SummaryRunFilter struct {
	Year   int
	Status string
}
