package hris

import (
	"time"

	"github.com/nimbushr/syncengine/internal/domain"
)

// personDTO is the v2 API's person projection (§4.1: "list people
// (projected field set)").
type personDTO struct {
	ID             string  `json:"id"`
	WorkEmail      string  `json:"workEmail"`
	PersonalEmail  string  `json:"personalEmail"`
	LegalName      string  `json:"legalName"`
	PreferredName  string  `json:"preferredName"`
	Country        string  `json:"country"`
	City           string  `json:"city"`
	Title          string  `json:"title"`
	Seniority      string  `json:"seniority"`
	ManagerEmail   string  `json:"managerEmail"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	EndDateOrg     string  `json:"endDateOrg"`
	EmploymentType string  `json:"employmentType"`
	JobID          string  `json:"jobId"`
	Department     string  `json:"department"`
	Gender         string  `json:"gender"`
	CostToCompany  float64 `json:"costToCompany"`
	Currency       string  `json:"currency"`
	HiringScheme   string  `json:"esquemaContratacion"`
	Active         bool    `json:"active"`
}

func (p personDTO) toDomain() domain.Person {
	person := domain.Person{
		ID:             p.ID,
		WorkEmail:      p.WorkEmail,
		PersonalEmail:  p.PersonalEmail,
		LegalName:      p.LegalName,
		PreferredName:  p.PreferredName,
		Country:        p.Country,
		City:           p.City,
		Title:          p.Title,
		Seniority:      p.Seniority,
		ManagerEmail:   p.ManagerEmail,
		EmploymentType: p.EmploymentType,
		JobID:          p.JobID,
		Department:     p.Department,
		Gender:         p.Gender,
		CostToCompany:  p.CostToCompany,
		Currency:       p.Currency,
		HiringScheme:   domain.HiringScheme(p.HiringScheme),
		Active:         p.Active,
	}
	if t, err := time.Parse("2006-01-02", p.StartDate); err == nil {
		person.StartDate = t
	}
	if t, err := time.Parse("2006-01-02", p.EndDate); err == nil {
		person.EndDate = &t
	}
	return person
}

// jobDTO is the v2 API's job representation.
type jobDTO struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Open       bool    `json:"open"`
	BaseComp   float64 `json:"baseComp"`
	Currency   string  `json:"currency"`
	CTC        float64 `json:"ctc"`
	Employment string  `json:"employment"`
}

func (j jobDTO) toDomain() domain.Job {
	return domain.Job{
		ID:         j.ID,
		Title:      j.Title,
		Open:       j.Open,
		BaseComp:   j.BaseComp,
		Currency:   j.Currency,
		CTC:        j.CTC,
		Employment: j.Employment,
	}
}

// timeOffDTO is the v2 API's time-off representation, optionally embedding
// the owning person's identity when the listing endpoint enriches it
// inline (§4.1: "enriched with person email").
type timeOffDTO struct {
	ID                  string `json:"id"`
	PersonID            string `json:"personId"`
	StartDate           string `json:"startDate"`
	EndDate             string `json:"endDate"`
	Status              string `json:"status"`
	Reason              string `json:"reason"`
	PersonEmail         string `json:"personEmail"`
	PersonWorkEmail     string `json:"personWorkEmail"`
	PersonPersonalEmail string `json:"personPersonalEmail"`
}

func (t timeOffDTO) toDomain() domain.TimeOff {
	return domain.TimeOff{
		ID:                  t.ID,
		PersonID:            t.PersonID,
		StartDate:           t.StartDate,
		EndDate:             t.EndDate,
		Status:              domain.TimeOffStatus(t.Status),
		Reason:              t.Reason,
		PersonEmail:         t.PersonEmail,
		PersonWorkEmail:     t.PersonWorkEmail,
		PersonPersonalEmail: t.PersonPersonalEmail,
	}
}

// batchPersonDTO is the v1 API's minimal person shape returned by the
// batched ids= lookup.
type batchPersonDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
