package ats

import (
	"context"
	"fmt"
	"time"

	"github.com/nimbushr/syncengine/internal/domain"
)

type applicationDTO struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	HiredAt   string `json:"hiredAt"`
	Candidate struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
	} `json:"candidate"`
	Job struct {
		Title string `json:"title"`
	} `json:"job"`
	Offers []struct {
		StartDate     string `json:"startDate"`
		AttributeDate string `json:"attributeStartDate"`
	} `json:"offers"`
}

func (a applicationDTO) toDomain() domain.HireEvent {
	event := domain.HireEvent{
		ApplicationID:  a.ID,
		Status:         a.Status,
		CandidateFirst: a.Candidate.FirstName,
		CandidateLast:  a.Candidate.LastName,
		CandidateEmail: a.Candidate.Email,
		JobTitle:       a.Job.Title,
	}
	if t, err := time.Parse(time.RFC3339, a.HiredAt); err == nil {
		event.HiredAt = &t
	}
	if len(a.Offers) > 0 {
		offer := a.Offers[0]
		if t, err := time.Parse("2006-01-02", offer.StartDate); err == nil {
			event.OfferStartDate = &t
		}
		if t, err := time.Parse("2006-01-02", offer.AttributeDate); err == nil {
			event.AttributeStart = &t
		}
	}
	return event
}

// GetApplication fetches an application with candidate, job, and offer
// data inlined (§4.1: "get application by id with
// include=candidate,job,offers").
func (c *Client) GetApplication(ctx context.Context, id string) (domain.HireEvent, error) {
	var dto applicationDTO
	url := c.baseURL + "/applications/" + id + "?include=candidate,job,offers"
	if err := c.doJSON(ctx, "GET", url, nil, &dto); err != nil {
		return domain.HireEvent{}, fmt.Errorf("ats: get application %s: %w", id, err)
	}
	return dto.toDomain(), nil
}
