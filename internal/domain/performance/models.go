package performance

import "hrcomp/internal/domain/compensation"

type ObjectiveDashboard struct {
	EmployeeID           string                        `json:"employeeId"`
	Year                 int                           `json:"year"`
	Status               string                        `json:"status"`
	Objectives           []compensation.ObjectiveScore `json:"objectives"`
	AverageCompletion    float64                       `json:"averageCompletion"`
	EvaluatedCount       int                           `json:"evaluatedCount"`
	TotalCount           int                           `json:"totalCount"`
	EvaluationRate       float64                       `json:"evaluationRate"`
	ProgressDistribution map[string]int                `json:"progressDistribution"`
}
