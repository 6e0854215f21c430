package compensation

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const weightTolerance = 1e-6

type WeightBand struct {
	Category           int `yaml:"category" json:"category"`
	WeightDistribution `yaml:",inline"`
}

// WeightPolicy maps seniority categories to their compensation split.
type WeightPolicy struct {
	bands map[int]WeightDistribution
}

var defaultBands = []WeightBand{
	{Category: 1, WeightDistribution: WeightDistribution{Company: 70, Billing: 40, NPS: 30, Area: 30, Area1: 15, Area2: 15}},
	{Category: 2, WeightDistribution: WeightDistribution{Company: 60, Billing: 35, NPS: 25, Area: 40, Area1: 20, Area2: 20}},
	{Category: 3, WeightDistribution: WeightDistribution{Company: 50, Billing: 30, NPS: 20, Area: 50, Area1: 25, Area2: 25}},
	{Category: 4, WeightDistribution: WeightDistribution{Company: 40, Billing: 25, NPS: 15, Area: 60, Area1: 30, Area2: 30}},
	{Category: 5, WeightDistribution: WeightDistribution{Company: 30, Billing: 20, NPS: 10, Area: 70, Area1: 35, Area2: 35}},
}

func DefaultWeightPolicy() *WeightPolicy {
	policy, err := NewWeightPolicy(defaultBands)
	if err != nil {
		panic(err)
	}
	return policy
}

func NewWeightPolicy(bands []WeightBand) (*WeightPolicy, error) {
	out := &WeightPolicy{bands: make(map[int]WeightDistribution, len(bands))}
	for _, band := range bands {
		if band.Category < MinCategory || band.Category > MaxCategory {
			return nil, fmt.Errorf("%w: category %d out of range", ErrInvalidPolicy, band.Category)
		}
		if _, dup := out.bands[band.Category]; dup {
			return nil, fmt.Errorf("%w: category %d defined twice", ErrInvalidPolicy, band.Category)
		}
		if err := band.Validate(); err != nil {
			return nil, fmt.Errorf("%w: category %d: %v", ErrInvalidPolicy, band.Category, err)
		}
		out.bands[band.Category] = band.WeightDistribution
	}
	for category := MinCategory; category <= MaxCategory; category++ {
		if _, ok := out.bands[category]; !ok {
			return nil, fmt.Errorf("%w: category %d missing", ErrInvalidPolicy, category)
		}
	}
	return out, nil
}

type weightPolicyFile struct {
	Bands []WeightBand `yaml:"bands"`
}

func ParseWeightPolicy(data []byte) (*WeightPolicy, error) {
	var file weightPolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	return NewWeightPolicy(file.Bands)
}

// LoadWeightPolicy reads a YAML band table. An empty path yields the built-in table.
func LoadWeightPolicy(path string) (*WeightPolicy, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultWeightPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weight policy: %w", err)
	}
	return ParseWeightPolicy(data)
}

func (d WeightDistribution) Validate() error {
	for _, v := range []float64{d.Company, d.Area, d.Billing, d.NPS, d.Area1, d.Area2} {
		if v < 0 {
			return fmt.Errorf("negative weight %v", v)
		}
	}
	if !approxEqual(d.Billing+d.NPS, d.Company) {
		return fmt.Errorf("billing+nps (%v) must equal company (%v)", d.Billing+d.NPS, d.Company)
	}
	if !approxEqual(d.Area1+d.Area2, d.Area) {
		return fmt.Errorf("area1+area2 (%v) must equal area (%v)", d.Area1+d.Area2, d.Area)
	}
	if !approxEqual(d.Company+d.Area, 100) {
		return fmt.Errorf("company+area (%v) must equal 100", d.Company+d.Area)
	}
	return nil
}

func (p *WeightPolicy) Bands() []WeightBand {
	out := make([]WeightBand, 0, len(p.bands))
	for category, weights := range p.bands {
		out = append(out, WeightBand{Category: category, WeightDistribution: weights})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func (p *WeightPolicy) Weights(category int) (WeightDistribution, bool) {
	weights, ok := p.bands[category]
	return weights, ok
}

// Resolve never fails: a missing or malformed seniority level degrades to the
// default category and the result says so.
func (p *WeightPolicy) Resolve(seniorityLevel *string) ResolvedWeights {
	if seniorityLevel == nil || strings.TrimSpace(*seniorityLevel) == "" {
		return ResolvedWeights{
			Category:  DefaultCategory,
			Defaulted: true,
			Warning:   WarningSeniorityMissing,
			Weights:   p.bands[DefaultCategory],
		}
	}
	category, err := ParseCategory(*seniorityLevel)
	if err != nil {
		return ResolvedWeights{
			Category:  DefaultCategory,
			Defaulted: true,
			Warning:   WarningSeniorityMalformed,
			Weights:   p.bands[DefaultCategory],
		}
	}
	return ResolvedWeights{Category: category, Weights: p.bands[category]}
}

// ParseCategory extracts the leading category from a "category.sub-level" code.
func ParseCategory(level string) (int, error) {
	level = strings.TrimSpace(level)
	head, _, _ := strings.Cut(level, ".")
	category, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeniority, level)
	}
	if category < MinCategory || category > MaxCategory {
		return 0, fmt.Errorf("%w: category %d out of range in %q", ErrInvalidSeniority, category, level)
	}
	return category, nil
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < weightTolerance
}
