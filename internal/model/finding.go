package model

// Category is the closed set of property risk categories.
// Every weight table in the scorer and encoder enumerates all of these;
// adding a category requires updating each of them.
type Category string

const (
	CategoryFoundation    Category = "foundation_structure" // Foundation, framing, structural movement
	CategoryRoof          Category = "roof_exterior"        // Roof, siding, drainage, exterior envelope
	CategoryPlumbing      Category = "plumbing"             // Supply, drain, water heater, sewer
	CategoryElectrical    Category = "electrical"           // Panel, wiring, grounding
	CategoryHVAC          Category = "hvac"                 // Heating, cooling, ventilation
	CategoryEnvironmental Category = "environmental"        // Mold, radon, asbestos, lead, pests
	CategoryLegal         Category = "legal_title"          // Permits, easements, liens, boundaries
	CategoryInsurance     Category = "insurance_hoa"        // Insurability, claims history, HOA
)

// AllCategories lists every category in fixed display order.
var AllCategories = []Category{
	CategoryFoundation,
	CategoryRoof,
	CategoryPlumbing,
	CategoryElectrical,
	CategoryHVAC,
	CategoryEnvironmental,
	CategoryLegal,
	CategoryInsurance,
}

func (c Category) String() string {
	switch c {
	case CategoryFoundation:
		return "Foundation & Structure"
	case CategoryRoof:
		return "Roof & Exterior"
	case CategoryPlumbing:
		return "Plumbing"
	case CategoryElectrical:
		return "Electrical"
	case CategoryHVAC:
		return "HVAC"
	case CategoryEnvironmental:
		return "Environmental"
	case CategoryLegal:
		return "Legal & Title"
	case CategoryInsurance:
		return "Insurance & HOA"
	default:
		return string(c)
	}
}

// Severity classifies how serious a finding is.
type Severity string

const (
	SeverityCritical      Severity = "critical"
	SeverityMajor         Severity = "major"
	SeverityModerate      Severity = "moderate"
	SeverityMinor         Severity = "minor"
	SeverityInformational Severity = "informational"
)

// Rank returns a numeric ordering for severities (higher = more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityMajor:
		return 3
	case SeverityModerate:
		return 2
	case SeverityMinor:
		return 1
	default:
		return 0
	}
}

// Finding represents a single extracted property defect.
// Findings are immutable after extraction and never merged across
// categories; duplicates are removed by Fingerprint().
type Finding struct {
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Location    string   `json:"location,omitempty"`     // e.g., "basement", "master bathroom"
	Description string   `json:"description"`            // Normalized problem statement
	CostLow     *float64 `json:"cost_low,omitempty"`     // Document-sourced low estimate
	CostHigh    *float64 `json:"cost_high,omitempty"`    // Document-sourced high estimate
	Safety      bool     `json:"safety_concern"`         // Immediate safety hazard
	Specialist  bool     `json:"specialist_required"`    // Needs licensed specialist evaluation
	SourcePage  int      `json:"source_page"`            // Page in the inspection report (1-based)
	SourceQuote string   `json:"source_quote,omitempty"` // Verbatim sentence the finding came from
}

// HasCost reports whether both cost bounds were extracted from the document.
func (f *Finding) HasCost() bool {
	return f.CostLow != nil && f.CostHigh != nil
}

// Fingerprint is the dedup key: category plus the first 50 characters
// of the description.
func (f *Finding) Fingerprint() string {
	desc := f.Description
	if len(desc) > 50 {
		desc = desc[:50]
	}
	return string(f.Category) + ":" + desc
}
