package entity

import "time"

// Known plan codes. The storefront sells monthly family plans plus one annual
// plan; anything else falls back to the monthly rule.
const (
	PlanBasic   = "basic"
	PlanPremium = "premium"
	PlanAnnual  = "annual"
)

// PlanPeriodEnd computes the subscription end timestamp for a plan code.
// Monthly plans (and any unmapped code, as an explicit fallback rather than a
// silent bug) run one calendar month; the annual plan runs one calendar year.
// The second return value reports whether the code was recognized so callers
// can log the fallback.
func PlanPeriodEnd(planCode string, start time.Time) (time.Time, bool) {
	switch planCode {
	case PlanBasic, PlanPremium:
		return start.AddDate(0, 1, 0), true
	case PlanAnnual:
		return start.AddDate(1, 0, 0), true
	default:
		return start.AddDate(0, 1, 0), false
	}
}
