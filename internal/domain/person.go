package domain

import "time"

// HiringScheme parameterizes the CTC formula (§4.3.6) and is also used as
// the planner "role" on person upsert. Values are exactly the enum named in
// the spec; they are Spanish/mixed-language on purpose — they come from the
// HRIS's own "esquema_contratacion" field.
type HiringScheme string

const (
	SchemeNomina       HiringScheme = "Nómina"
	SchemeMixtoInterno HiringScheme = "Mixto Interno"
	SchemeMixtoExterno HiringScheme = "Mixto Externo"
	SchemeOntop        HiringScheme = "Ontop"
	SchemeVoiz         HiringScheme = "Voiz"
)

// Person is the HRIS source-of-truth entity. It is created and mutated only
// by the upstream HRIS; this system caches it in memory for the duration of
// a single sync run and never writes it back (the one exception is CTC,
// which is written to the associated Job, not the Person).
type Person struct {
	ID             string
	WorkEmail      string
	PersonalEmail  string
	LegalName      string
	PreferredName  string
	Country        string
	City           string
	Title          string
	Seniority      string
	ManagerEmail   string
	StartDate      time.Time
	EndDate        *time.Time
	EmploymentType string
	JobID          string
	Department     string
	Gender         string

	// Compensation, as reported by HRIS. CostToCompany is annualized in
	// Currency (not necessarily USD — CTCForScheme always computes in USD
	// regardless of this field's currency, per §4.3.6).
	CostToCompany float64
	Currency      string
	HiringScheme  HiringScheme

	// Active is true while EndDate is unset or in the future; the snapshot
	// builder only visits active people (§4.5.1).
	Active bool
}

// DisplayName composes the planner display name: preferred name if present,
// legal name otherwise (§4.3.3).
func (p Person) DisplayName() string {
	if p.PreferredName != "" {
		return p.PreferredName
	}
	return p.LegalName
}

// PrimaryEmail resolves the email used to identify this person downstream:
// work email preferred over personal (§4.3.3, §4.3.1 step 2).
func (p Person) PrimaryEmail() string {
	if p.WorkEmail != "" {
		return p.WorkEmail
	}
	return p.PersonalEmail
}

// Job is the HRIS job record. CTC is the one HRIS field this system writes
// back (§3, §4.3.6); everything else is read-only context for compensation
// sync.
type Job struct {
	ID       string
	Title    string
	Open     bool
	BaseComp float64
	Currency string
	CTC      float64

	// Employment is the job-level employment-type fallback the snapshot
	// builder visits when Person.EmploymentType is blank (§4.5.1, §9
	// REDESIGN FLAGS: "the exact HRIS employment-type field path differs
	// between person.employmentType and the containing job's employment").
	Employment string
}
