package compensation

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	SeniorityLevel *string    `json:"seniorityLevel"`
	HireDate       *time.Time `json:"hireDate"`
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// CorporateObjective is either a BillingObjective or an NPSObjective.
type CorporateObjective interface {
	objectiveType() string
}

// BillingObjective is the annual, organization-wide billing target.
type BillingObjective struct {
	Year           int              `json:"year"`
	Target         *decimal.Decimal `json:"targetValue"`
	Actual         *decimal.Decimal `json:"actualValue"`
	GatePercentage *float64         `json:"gatePercentage"`
	CapPercentage  *float64         `json:"capPercentage"`
}

func (BillingObjective) objectiveType() string { return ObjectiveTypeBilling }

// NPSObjective is one quarterly satisfaction-index target.
type NPSObjective struct {
	Year    int      `json:"year"`
	Quarter Quarter  `json:"quarter"`
	Target  *float64 `json:"targetValue"`
	Actual  *float64 `json:"actualValue"`
}

func (NPSObjective) objectiveType() string { return ObjectiveTypeNPS }

type Objective struct {
	ID                    string   `json:"id"`
	ParentObjectiveID     *string  `json:"parentObjectiveId"`
	Title                 string   `json:"title"`
	Periodicity           string   `json:"periodicity"`
	ProgressPercentage    float64  `json:"progressPercentage"`
	AchievementPercentage *float64 `json:"achievementPercentage"`
	IsLocked              bool     `json:"isLocked"`
	WeightPct             float64  `json:"weightPct"`
}

func (o Objective) IsMain() bool {
	return o.ParentObjectiveID == nil
}

// Evaluated reports whether the objective carries a formal evaluation.
func (o Objective) Evaluated() bool {
	return o.IsLocked || o.AchievementPercentage != nil
}

type WeightDistribution struct {
	Company float64 `json:"company" yaml:"company"`
	Area    float64 `json:"area" yaml:"area"`
	Billing float64 `json:"billing" yaml:"billing"`
	NPS     float64 `json:"nps" yaml:"nps"`
	Area1   float64 `json:"area1" yaml:"area1"`
	Area2   float64 `json:"area2" yaml:"area2"`
}

type ResolvedWeights struct {
	Category  int                `json:"category"`
	Defaulted bool               `json:"defaulted"`
	Warning   string             `json:"warning,omitempty"`
	Weights   WeightDistribution `json:"weights"`
}

type BillingScore struct {
	Status         ScoreStatus      `json:"status"`
	Target         *decimal.Decimal `json:"targetValue"`
	Actual         *decimal.Decimal `json:"actualValue"`
	GatePercentage float64          `json:"gatePercentage"`
	CapPercentage  float64          `json:"capPercentage"`
	RawCompletion  float64          `json:"rawCompletion"`
	GateMet        bool             `json:"gateMet"`
	Completion     float64          `json:"completion"`
}

type QuarterScore struct {
	Quarter    Quarter  `json:"quarter"`
	HasData    bool     `json:"hasData"`
	Target     *float64 `json:"targetValue"`
	Actual     *float64 `json:"actualValue"`
	Completion float64  `json:"completion"`
	Met        bool     `json:"met"`
}

type NPSScore struct {
	Status            ScoreStatus    `json:"status"`
	Quarters          []QuarterScore `json:"quarters"`
	QuartersWithData  int            `json:"quartersWithData"`
	AverageCompletion float64        `json:"averageCompletion"`
}

type CorporateScore struct {
	Status          ScoreStatus  `json:"status"`
	Billing         BillingScore `json:"billing"`
	NPS             NPSScore     `json:"nps"`
	GateMet         bool         `json:"gateMet"`
	TotalCompletion float64      `json:"totalCompletion"`
}

type SubObjectiveScore struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Evaluated      bool    `json:"evaluated"`
	EffectiveValue float64 `json:"effectiveValue"`
}

type ObjectiveScore struct {
	ID                     string              `json:"id"`
	Title                  string              `json:"title"`
	Periodicity            string              `json:"periodicity"`
	WeightPct              float64             `json:"weightPct"`
	Evaluated              bool                `json:"evaluated"`
	EffectiveValue         float64             `json:"effectiveValue"`
	Progress               float64             `json:"progress"`
	RolledUp               bool                `json:"rolledUp"`
	SubObjectivesEvaluated bool                `json:"subObjectivesEvaluated,omitempty"`
	SubObjectives          []SubObjectiveScore `json:"subObjectives,omitempty"`
}

type PersonalScore struct {
	Status            ScoreStatus      `json:"status"`
	Objectives        []ObjectiveScore `json:"objectives"`
	AverageCompletion float64          `json:"averageCompletion"`
	EvaluatedCount    int              `json:"evaluatedCount"`
	TotalCount        int              `json:"totalCount"`
}

// Complete reports whether every main objective has been evaluated.
func (p PersonalScore) Complete() bool {
	return p.TotalCount > 0 && p.EvaluatedCount >= p.TotalCount
}

type ProRataProfile struct {
	Policy         string  `json:"policy"`
	Applies        bool    `json:"applies"`
	HiredAfterYear bool    `json:"hiredAfterYear,omitempty"`
	Months         int     `json:"months"`
	Factor         float64 `json:"factor"`
	Percentage     float64 `json:"percentage"`
}

type BonusResult struct {
	EmployeeID        string          `json:"employeeId"`
	EmployeeName      string          `json:"employeeName,omitempty"`
	Year              int             `json:"year"`
	Status            BonusStatus     `json:"status"`
	Weights           ResolvedWeights `json:"weights"`
	Corporate         CorporateScore  `json:"corporate"`
	Personal          PersonalScore   `json:"personal"`
	ProRata           ProRataProfile  `json:"proRata"`
	CompanyComponent  float64         `json:"companyComponent"`
	PersonalComponent *float64        `json:"personalComponent"`
	Base              *float64        `json:"base"`
	Final             *float64        `json:"final"`
	Warnings          []string        `json:"warnings,omitempty"`
}

// Payable reports whether Final holds a numeric bonus percentage.
func (r BonusResult) Payable() bool {
	return r.Status == BonusStatusCalculated && r.Final != nil
}
