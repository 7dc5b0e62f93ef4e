package domain

// FlattenSnapshotRow derives the flattened CSV row for a person (§4.5.1).
//
// Two fields need a second lookup beyond the Person itself, resolved by
// the caller ahead of time so this stays a pure function:
//
//   - Manager: the original source never carried a manager *name* column,
//     only "Manager Email" (confirmed against the upstream client's row
//     builder). The distilled spec's column list adds "Manager" as a
//     separate display-name column, so it is resolved here from
//     managerNames, a one-time email->DisplayName() map the builder
//     derives from its own people listing before flattening any row. A
//     manager who left the HRIS (or whose email doesn't resolve) leaves
//     this column blank rather than falling back to the email address.
//   - EmploymentType: Person.EmploymentType is trusted when set; HRIS
//     records it on the Person directly on ingest for most schemes, so the
//     Job-level lookup the builder performs is a fallback for the records
//     where it isn't (§9 Open Question fallback order), not the primary
//     source.
func FlattenSnapshotRow(p Person, managerNames map[string]string, jobEmploymentType string) SnapshotRow {
	employmentType := p.EmploymentType
	if employmentType == "" {
		employmentType = jobEmploymentType
	}

	location := p.City
	if location == "" {
		location = p.Country
	}

	endDate := ""
	if p.EndDate != nil {
		endDate = p.EndDate.Format("2006-01-02")
	}

	return SnapshotRow{
		EmployeeID:     p.ID,
		Email:          p.PrimaryEmail(),
		Name:           p.LegalName,
		PreferredName:  p.PreferredName,
		ManagerEmail:   p.ManagerEmail,
		Manager:        managerNames[p.ManagerEmail],
		Location:       location,
		JobTitle:       p.Title,
		Seniority:      p.Seniority,
		StartDate:      p.StartDate.Format("2006-01-02"),
		EndDate:        endDate,
		Department:     p.Department,
		Country:        p.Country,
		EmploymentType: employmentType,
		Gender:         p.Gender,
	}
}
