package compensation

import "fmt"

// Input is everything the engine needs for one employee and one year.
// Corporate objectives are shared read-only between employees of the same year.
type Input struct {
	Employee   Employee
	Year       int
	Corporate  []CorporateObjective
	Objectives []Objective
}

type Engine struct {
	weights   *WeightPolicy
	proRata   ProRataPolicy
	weighting CorporateWeighting
}

type Option func(*Engine)

func WithWeightPolicy(policy *WeightPolicy) Option {
	return func(e *Engine) {
		if policy != nil {
			e.weights = policy
		}
	}
}

func WithProRataPolicy(policy ProRataPolicy) Option {
	return func(e *Engine) {
		if policy != nil {
			e.proRata = policy
		}
	}
}

func WithCorporateWeighting(weighting CorporateWeighting) Option {
	return func(e *Engine) {
		if weighting != "" {
			e.weighting = weighting
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights:   DefaultWeightPolicy(),
		proRata:   HireMonthInclusive{},
		weighting: CorporateWeightingWeighted,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func ParseCorporateWeighting(value string) (CorporateWeighting, error) {
	switch CorporateWeighting(value) {
	case "", CorporateWeightingWeighted:
		return CorporateWeightingWeighted, nil
	case CorporateWeightingEqual:
		return CorporateWeightingEqual, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWeighting, value)
}

func (e *Engine) WeightPolicy() *WeightPolicy {
	return e.weights
}

func (e *Engine) ProRataPolicy() ProRataPolicy {
	return e.proRata
}

func (e *Engine) CorporateWeighting() CorporateWeighting {
	return e.weighting
}

// Calculate runs the whole pipeline for one employee. It only fails on an
// invalid year; data-quality problems are reported as statuses and warnings.
func (e *Engine) Calculate(in Input) (BonusResult, error) {
	if in.Year <= 0 {
		return BonusResult{}, fmt.Errorf("%w: %d", ErrInvalidYear, in.Year)
	}

	resolved := e.weights.Resolve(in.Employee.SeniorityLevel)
	corporate := EvaluateCorporate(in.Corporate, resolved.Weights, e.weighting)
	personal := AggregatePersonal(in.Objectives)
	proRata := ComputeProRata(in.Employee.HireDate, in.Year, e.proRata)

	result := Compose(corporate, personal, resolved.Weights, proRata)
	result.EmployeeID = in.Employee.ID
	result.EmployeeName = in.Employee.FullName()
	result.Year = in.Year
	result.Weights = resolved
	if resolved.Warning != "" {
		result.Warnings = append(result.Warnings, resolved.Warning)
	}
	return result, nil
}
