package domain

import "strings"

// TimeOffCategory is the downstream planner category a time-off entry is
// classified into (§4.3.1 step 5). It also selects which of the planner's
// three time-off endpoints is used (§4.1 "Planner" contract).
type TimeOffCategory string

const (
	CategoryLeave       TimeOffCategory = "leave"
	CategoryHolidays    TimeOffCategory = "holidays"
	CategoryRosteredOff TimeOffCategory = "rostered-off"
)

// ClassifyCategory implements the precedence order in §4.3.1 step 5:
// holiday/feriado/public beats roster/rostered/floating/lieu beats the
// leave default. Matching is substring, case-insensitive, against the
// time-off's reason/type string.
func ClassifyCategory(reasonOrType string) TimeOffCategory {
	s := strings.ToLower(reasonOrType)
	for _, kw := range []string{"holiday", "feriado", "public"} {
		if strings.Contains(s, kw) {
			return CategoryHolidays
		}
	}
	for _, kw := range []string{"roster", "rostered", "floating", "lieu"} {
		if strings.Contains(s, kw) {
			return CategoryRosteredOff
		}
	}
	return CategoryLeave
}

// TimeOffStatus is the HRIS status string on a time-off entry. Only a
// closed set of values ever blocks a downstream write (invariant 4); any
// other value (including ones this system has never seen) is treated as
// eligible, since the spec enumerates the skip-set exhaustively rather
// than an allow-set.
type TimeOffStatus string

// skipStatuses is invariant 4 of spec.md §3: a TimeOff in any of these
// statuses never produces a downstream create.
var skipStatuses = map[TimeOffStatus]struct{}{
	"denied":    {},
	"rejected":  {},
	"cancelled": {},
	"draft":     {},
	"pending":   {},
	"withdrawn": {},
}

// ShouldSkip reports whether a time-off in this status must never reach
// the planner, matched case-insensitively.
func (s TimeOffStatus) ShouldSkip() bool {
	_, skip := skipStatuses[TimeOffStatus(strings.ToLower(string(s)))]
	return skip
}

// TimeOff is the HRIS time-off entity (§3).
type TimeOff struct {
	ID        string
	PersonID  string
	StartDate string // YYYY-MM-DD, normalized by the reconciler before use
	EndDate   string // YYYY-MM-DD; may be empty until the leave is closed
	Status    TimeOffStatus
	Reason    string

	// Embedded person context the HRIS sometimes inlines on the time-off
	// payload, consulted in order before falling back to a separate person
	// lookup (§4.3.1 step 2).
	PersonEmail         string
	PersonWorkEmail     string
	PersonPersonalEmail string
}

// Note composes the downstream audit note (§4.3.1 step 6).
func (t TimeOff) Note() string {
	return "ChartHop:" + t.ID + " • " + t.Reason
}
