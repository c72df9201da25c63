package utils

import (
	"fmt"
	"math"
)

// RoundMoney rounds to 2 decimals, half away from zero. One rounding rule
// for every money figure in the portal.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// SplitCommission derives the agency-facing total and the commission kept
// from a public price. The commission is rounded first and the agency total
// is the exact remainder, so agencyTotal + commission == publicPrice always
// holds.
func SplitCommission(publicPrice, ratePercent float64) (agencyTotal, commission float64) {
	commission = RoundMoney(publicPrice * ratePercent / 100)
	agencyTotal = RoundMoney(publicPrice - commission)
	return agencyTotal, commission
}

// PerPersonDisplay is the display-only per-occupant figure. The persisted
// total stays authoritative.
func PerPersonDisplay(agencyTotal float64, occupants int) float64 {
	if occupants <= 0 {
		return 0
	}
	return RoundMoney(agencyTotal / float64(occupants))
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}
