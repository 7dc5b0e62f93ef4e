package domain

// SnapshotColumns is the exact, ordered column list for the delta CSV
// export (§3, §4.5.1). Order matters: it is the literal header row.
var SnapshotColumns = []string{
	"Employee Id",
	"Email",
	"Name",
	"Preferred Name",
	"Manager Email",
	"Manager",
	"Location",
	"Job Title",
	"Seniority",
	"Start Date",
	"End Date",
	"Department",
	"Country",
	"Employment Type",
	"Gender",
}

// SnapshotRow is the fifteen-column flattened CSV record derived from a
// Person (plus one Job lookup for Employment Type, per the §9 Open
// Question fallback order). EmployeeID is the map key used everywhere else
// (manifest, mapping lookups).
type SnapshotRow struct {
	EmployeeID     string
	Email          string
	Name           string
	PreferredName  string
	ManagerEmail   string
	Manager        string
	Location       string
	JobTitle       string
	Seniority      string
	StartDate      string
	EndDate        string
	Department     string
	Country        string
	EmploymentType string
	Gender         string
}

// Fields returns the row as an ordered slice matching SnapshotColumns,
// serializing a missing value as "" (§4.5.1 CSV format). This is the
// "small reflective serializer" the spec's Design Notes call for in place
// of a dynamic field dict — a fixed struct plus one explicit mapping
// function, not a map[string]string threaded through the whole pipeline.
func (r SnapshotRow) Fields() []string {
	return []string{
		r.EmployeeID,
		r.Email,
		r.Name,
		r.PreferredName,
		r.ManagerEmail,
		r.Manager,
		r.Location,
		r.JobTitle,
		r.Seniority,
		r.StartDate,
		r.EndDate,
		r.Department,
		r.Country,
		r.EmploymentType,
		r.Gender,
	}
}

// AsMap returns the row as a field-name -> value map, used only to compute
// the canonical-JSON content hash (§3). The CSV path uses Fields(), not
// this, to keep column order explicit rather than map-iteration-derived.
func (r SnapshotRow) AsMap() map[string]string {
	cols := SnapshotColumns
	vals := r.Fields()
	m := make(map[string]string, len(cols))
	for i, c := range cols {
		m[c] = vals[i]
	}
	return m
}
