package domain

import "math"

// min2YUSD is the two-year minimum-wage floor used by the Mixto Externo
// formula, expressed in USD. It is a constant precisely because the spec
// gives it as one: (8364 * 12 * 2) / 18.30.
const min2YUSD = (8364 * 12 * 2) / 18.30

// CTCForScheme computes the USD cost-to-company for a base annual
// compensation and hiring scheme, per the table in spec.md §4.3.6. The
// result is rounded to 2 decimal places. ok is false for a scheme outside
// the table; callers should still apply the "any other" row (base
// unchanged) but log a warning, since the spec explicitly allows unknown
// schemes to pass through rather than error.
func CTCForScheme(base float64, scheme HiringScheme) (ctc float64, ok bool) {
	switch scheme {
	case SchemeNomina, SchemeMixtoInterno:
		return round2(base * 1.40), true
	case SchemeMixtoExterno:
		return round2(base + 0.40*min2YUSD + 0.02*(base-min2YUSD)), true
	case SchemeOntop:
		return round2(base + 720), true
	case SchemeVoiz:
		return round2(base + 240), true
	default:
		return round2(base), false
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
