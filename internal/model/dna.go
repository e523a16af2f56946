package model

// Risk DNA sub-vector layout. The 64 components are partitioned into
// five named domains at fixed offsets; the layout is part of the
// pipeline version contract.
const (
	DNAStructuralDims   = 16
	DNASystemsDims      = 12
	DNATransparencyDims = 12
	DNATemporalDims     = 12
	DNAFinancialDims    = 12
	DNADims             = DNAStructuralDims + DNASystemsDims + DNATransparencyDims + DNATemporalDims + DNAFinancialDims
)

// RiskDNA is a fixed 64-dimensional numeric signature of a property's
// risk profile, comparable across properties via cosine similarity.
// Immutable once computed.
type RiskDNA struct {
	ID        string             `json:"id"`        // Assigned when appended to an index
	Signature []float64          `json:"signature"` // Exactly DNADims components, each in [0,1]
	Composite float64            `json:"composite"` // 0..100
	Label     string             `json:"label"`     // minimal/low/moderate/elevated/high/critical
	Domains   map[string]float64 `json:"domains"`   // Per-domain display scores, 0..100
}

// Structural returns the structural sub-vector (shared backing array).
func (d *RiskDNA) Structural() []float64 {
	return d.Signature[0:DNAStructuralDims]
}

// Systems returns the systems sub-vector.
func (d *RiskDNA) Systems() []float64 {
	return d.Signature[DNAStructuralDims : DNAStructuralDims+DNASystemsDims]
}

// Transparency returns the transparency sub-vector.
func (d *RiskDNA) Transparency() []float64 {
	off := DNAStructuralDims + DNASystemsDims
	return d.Signature[off : off+DNATransparencyDims]
}

// Temporal returns the temporal sub-vector.
func (d *RiskDNA) Temporal() []float64 {
	off := DNAStructuralDims + DNASystemsDims + DNATransparencyDims
	return d.Signature[off : off+DNATemporalDims]
}

// Financial returns the financial sub-vector.
func (d *RiskDNA) Financial() []float64 {
	off := DNAStructuralDims + DNASystemsDims + DNATransparencyDims + DNATemporalDims
	return d.Signature[off : off+DNAFinancialDims]
}

// DNALabelForScore maps a composite score onto its fixed band.
func DNALabelForScore(score float64) string {
	switch {
	case score >= 90:
		return "critical"
	case score >= 75:
		return "high"
	case score >= 60:
		return "elevated"
	case score >= 40:
		return "moderate"
	case score >= 20:
		return "low"
	default:
		return "minimal"
	}
}
