package offer

import "github.com/domuslabs/domus/internal/model"

// Tier rates for the risk premium. This is a fixed step function:
// crossing a tier boundary jumps the premium by design, it is not a
// continuous curve.
const (
	criticalRate = 0.10
	highRate     = 0.05
	moderateRate = 0.02

	// transparencyDiscountRate applies when the detailed transparency
	// score falls below 50.
	transparencyDiscountRate = 0.03
	transparencyThreshold    = 50
)

// Calculator derives the recommended purchase offer.
type Calculator struct{}

// NewCalculator creates a new offer calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate combines repair cost, risk premium and transparency
// discount into a bounded recommended offer:
//
//	offer = price - (repair + premium + discount), clamped to [0, price]
//
// Repair cost is the midpoint of the aggregate range.
func (c *Calculator) Calculate(price float64, risk model.PropertyRiskScore, transparencyScore float64) model.OfferBreakdown {
	repair := (risk.TotalCostLow + risk.TotalCostHigh) / 2

	premium := price * PremiumRate(risk.BuyerAdjustedScore)

	discount := 0.0
	if transparencyScore < transparencyThreshold {
		discount = price * transparencyDiscountRate
	}

	total := repair + premium + discount
	recommended := price - total
	if recommended < 0 {
		recommended = 0
	}
	if recommended > price {
		recommended = price
	}

	pct := 0.0
	if price > 0 {
		pct = total / price * 100
	}

	return model.OfferBreakdown{
		AskingPrice:          price,
		RepairCost:           repair,
		RiskPremium:          premium,
		TransparencyDiscount: discount,
		TotalDiscount:        total,
		RecommendedOffer:     recommended,
		DiscountPct:          pct,
	}
}

// PremiumRate returns the tier rate for a buyer-adjusted risk score.
func PremiumRate(score float64) float64 {
	switch {
	case score >= 70:
		return criticalRate
	case score >= 50:
		return highRate
	case score >= 30:
		return moderateRate
	default:
		return 0
	}
}
