package performance

const (
	DashboardStatusNoObjectives = "no_objectives"
	DashboardStatusInProgress   = "in_progress"
	DashboardStatusEvaluated    = "evaluated"
)
