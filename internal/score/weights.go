package score

import "github.com/domuslabs/domus/internal/model"

// Weights holds every tunable table used by the scorers. The values
// are versioned alongside model.Version: changing any of them is a
// pipeline version bump, since cached results key on that string.
type Weights struct {
	SeverityMultipliers map[model.Severity]float64
	CategoryWeights     map[model.Category]float64
	CostImpactTiers     []CostImpactTier
	CostFloors          map[model.Category]map[model.Severity]CostRange
	MaxCategoryCost     float64 // Global cap per category, catches inflated estimates

	CriticalCategoryFloor  float64 // Min category score when it holds a critical finding
	CriticalCompositeFloor float64 // Min composite when any category holds a critical finding
}

// CostImpactTier multiplies a category score when its repair estimate
// is large relative to the asking price. Tiers are checked from the
// largest ratio down.
type CostImpactTier struct {
	Ratio  float64 // Cost-high / asking price threshold
	Factor float64
}

// CostRange is an injected minimum repair estimate.
type CostRange struct {
	Low  float64
	High float64
}

// DefaultWeights returns the fixed scoring tables for model.Version.
func DefaultWeights() *Weights {
	return &Weights{
		SeverityMultipliers: map[model.Severity]float64{
			model.SeverityCritical:      45,
			model.SeverityMajor:         28,
			model.SeverityModerate:      15,
			model.SeverityMinor:         5,
			model.SeverityInformational: 0,
		},
		CategoryWeights: map[model.Category]float64{
			model.CategoryFoundation:    1.5,
			model.CategoryLegal:         1.5,
			model.CategoryElectrical:    1.4,
			model.CategoryEnvironmental: 1.3,
			model.CategoryRoof:          1.2,
			model.CategoryPlumbing:      1.1,
			model.CategoryInsurance:     1.1,
			model.CategoryHVAC:          1.0,
		},
		CostImpactTiers: []CostImpactTier{
			{Ratio: 0.10, Factor: 1.8},
			{Ratio: 0.05, Factor: 1.5},
			{Ratio: 0.03, Factor: 1.2},
			{Ratio: 0.01, Factor: 1.1},
		},
		CostFloors: map[model.Category]map[model.Severity]CostRange{
			model.CategoryFoundation: {
				model.SeverityCritical: {25000, 55000},
				model.SeverityMajor:    {10000, 30000},
				model.SeverityModerate: {5000, 15000},
				model.SeverityMinor:    {1000, 5000},
			},
			model.CategoryRoof: {
				model.SeverityCritical: {15000, 35000},
				model.SeverityMajor:    {8000, 20000},
				model.SeverityModerate: {3000, 10000},
				model.SeverityMinor:    {500, 3000},
			},
			model.CategoryPlumbing: {
				model.SeverityCritical: {15000, 30000},
				model.SeverityMajor:    {10000, 20000},
				model.SeverityModerate: {3000, 8000},
				model.SeverityMinor:    {500, 2500},
			},
			model.CategoryElectrical: {
				model.SeverityCritical: {12000, 30000},
				model.SeverityMajor:    {6000, 15000},
				model.SeverityModerate: {2000, 8000},
				model.SeverityMinor:    {400, 2000},
			},
			model.CategoryHVAC: {
				model.SeverityCritical: {10000, 25000},
				model.SeverityMajor:    {6000, 15000},
				model.SeverityModerate: {2000, 6000},
				model.SeverityMinor:    {300, 1500},
			},
			model.CategoryEnvironmental: {
				model.SeverityCritical: {15000, 40000},
				model.SeverityMajor:    {8000, 20000},
				model.SeverityModerate: {3000, 10000},
				model.SeverityMinor:    {500, 3000},
			},
			model.CategoryLegal: {
				model.SeverityCritical: {20000, 50000},
				model.SeverityMajor:    {10000, 25000},
				model.SeverityModerate: {5000, 15000},
				model.SeverityMinor:    {1000, 5000},
			},
			model.CategoryInsurance: {
				model.SeverityCritical: {10000, 30000},
				model.SeverityMajor:    {5000, 15000},
				model.SeverityModerate: {2000, 8000},
				model.SeverityMinor:    {500, 2500},
			},
		},
		MaxCategoryCost:        250000,
		CriticalCategoryFloor:  75,
		CriticalCompositeFloor: 40,
	}
}

// CostImpactFactor returns the multiplier for a repair estimate
// relative to the asking price.
func (w *Weights) CostImpactFactor(costHigh, price float64) float64 {
	if price <= 0 || costHigh <= 0 {
		return 1.0
	}
	ratio := costHigh / price
	for _, tier := range w.CostImpactTiers {
		if ratio > tier.Ratio {
			return tier.Factor
		}
	}
	return 1.0
}

// CostFloor returns the injected minimum range for a category and
// severity, if one exists.
func (w *Weights) CostFloor(cat model.Category, sev model.Severity) (CostRange, bool) {
	floors, ok := w.CostFloors[cat]
	if !ok {
		return CostRange{}, false
	}
	r, ok := floors[sev]
	return r, ok
}
