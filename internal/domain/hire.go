package domain

import "time"

// HireEvent is the ATS entity driving the hire reconciliation flow
// (§4.3.7). JobTitle and the offer start date are used only to populate
// the HRIS import row; the ATS application itself is never mutated by this
// flow.
type HireEvent struct {
	ApplicationID   string
	Status          string // must be "hired" for the flow to proceed
	CandidateFirst  string
	CandidateLast   string
	CandidateEmail  string // personal email, from the ATS candidate record
	JobTitle        string
	HiredAt         *time.Time
	OfferStartDate  *time.Time // preferred source for start date
	AttributeStart  *time.Time // fallback source for start date
}

// StartDate resolves the hire's start date by the precedence in §4.3.7:
// offer start date, then an attribute-derived date, then the date portion
// of hired-at.
func (h HireEvent) StartDate() (time.Time, bool) {
	if h.OfferStartDate != nil {
		return *h.OfferStartDate, true
	}
	if h.AttributeStart != nil {
		return *h.AttributeStart, true
	}
	if h.HiredAt != nil {
		return time.Date(h.HiredAt.Year(), h.HiredAt.Month(), h.HiredAt.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// IsHired reports whether this event should drive a downstream hire,
// per §4.3.7: status must be "hired" or a hired-at timestamp must be set.
func (h HireEvent) IsHired() bool {
	return h.Status == "hired" || h.HiredAt != nil
}
