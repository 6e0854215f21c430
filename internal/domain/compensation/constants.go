package compensation

const (
	ObjectiveTypeBilling = "billing"
	ObjectiveTypeNPS     = "nps"

	PeriodicityAnnual     = "annual"
	PeriodicitySemestral  = "semestral"
	PeriodicityTrimestral = "trimestral"

	DefaultGatePercentage = 90.0
	DefaultCapPercentage  = 150.0

	DefaultCategory = 1
	MinCategory     = 1
	MaxCategory     = 5

	WarningSeniorityMissing   = "seniority_missing"
	WarningSeniorityMalformed = "seniority_malformed"
)

type Quarter string

const (
	Q1 Quarter = "q1"
	Q2 Quarter = "q2"
	Q3 Quarter = "q3"
	Q4 Quarter = "q4"
)

var Quarters = []Quarter{Q1, Q2, Q3, Q4}

type ScoreStatus string

const (
	ScoreStatusOK            ScoreStatus = "ok"
	ScoreStatusNotConfigured ScoreStatus = "not_configured"
	ScoreStatusNoObjectives  ScoreStatus = "no_objectives"
)

type BonusStatus string

const (
	BonusStatusCalculated        BonusStatus = "calculated"
	BonusStatusPendingEvaluation BonusStatus = "pending_evaluation"
	BonusStatusNoObjectives      BonusStatus = "no_objectives"
	BonusStatusNotEmployed       BonusStatus = "not_employed"
)

type CorporateWeighting string

const (
	CorporateWeightingWeighted CorporateWeighting = "weighted"
	CorporateWeightingEqual    CorporateWeighting = "equal"
)
