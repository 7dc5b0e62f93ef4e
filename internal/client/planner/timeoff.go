package planner

import (
	"context"
	"fmt"

	"github.com/nimbushr/syncengine/internal/domain"
)

// TimeOff is a planner time-off entry.
type TimeOff struct {
	ID        string `json:"id"`
	PersonID  string `json:"personId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Note      string `json:"note"`
}

// endpointForCategory resolves one of the three category-keyed endpoints
// (§4.1: "create/update/delete time-off in one of three endpoints keyed
// by category").
func endpointForCategory(category domain.TimeOffCategory) string {
	switch category {
	case domain.CategoryHolidays:
		return "/holidays"
	case domain.CategoryRosteredOff:
		return "/rostered-days-off"
	default:
		return "/time-off"
	}
}

// CreateTimeOff creates a time-off entry on the category-appropriate
// endpoint. The planner's own overlap-merge behavior is tolerated by
// design (§4.3.1): this call does not pre-check for overlap.
func (c *Client) CreateTimeOff(ctx context.Context, personID string, category domain.TimeOffCategory, startDate, endDate, note string) (string, error) {
	body := map[string]any{
		"personId":  personID,
		"startDate": startDate,
		"endDate":   endDate,
		"note":      note,
	}

	var dto TimeOff
	url := c.baseURL + endpointForCategory(category)
	if err := c.doJSON(ctx, "POST", url, body, &dto); err != nil {
		return "", fmt.Errorf("planner: create time off for %s: %w", personID, err)
	}
	return dto.ID, nil
}

// UpdateTimeOff updates an existing time-off entry.
func (c *Client) UpdateTimeOff(ctx context.Context, id string, category domain.TimeOffCategory, startDate, endDate, note string) error {
	body := map[string]any{
		"startDate": startDate,
		"endDate":   endDate,
		"note":      note,
	}
	url := c.baseURL + endpointForCategory(category) + "/" + id
	if err := c.doJSON(ctx, "PATCH", url, body, nil); err != nil {
		return fmt.Errorf("planner: update time off %s: %w", id, err)
	}
	return nil
}

// DeleteTimeOff deletes a time-off entry (§4.3.2).
func (c *Client) DeleteTimeOff(ctx context.Context, id string, category domain.TimeOffCategory) error {
	url := c.baseURL + endpointForCategory(category) + "/" + id
	if err := c.doJSON(ctx, "DELETE", url, nil, nil); err != nil {
		return fmt.Errorf("planner: delete time off %s: %w", id, err)
	}
	return nil
}

// ListPersonTimeOffs lists every time-off entry recorded for a person,
// across all three category endpoints.
func (c *Client) ListPersonTimeOffs(ctx context.Context, personID string) ([]TimeOff, error) {
	var all []TimeOff
	for _, category := range []domain.TimeOffCategory{domain.CategoryLeave, domain.CategoryHolidays, domain.CategoryRosteredOff} {
		var entries []TimeOff
		url := c.baseURL + endpointForCategory(category) + "?personId=" + personID
		if err := c.doJSON(ctx, "GET", url, nil, &entries); err != nil {
			return nil, fmt.Errorf("planner: list time offs for %s: %w", personID, err)
		}
		all = append(all, entries...)
	}
	return all, nil
}

// ProbeOverlap reports whether a proposed [startDate, endDate] window
// overlaps an existing time-off entry for the person. The result is
// logged by the reconciler, never used to block the create (§4.3.1: "the
// planner's own overlap-merge behavior is tolerated; overlap is logged,
// not blocked").
func (c *Client) ProbeOverlap(ctx context.Context, personID, startDate, endDate string) (bool, error) {
	entries, err := c.ListPersonTimeOffs(ctx, personID)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.StartDate <= endDate && startDate <= e.EndDate {
			return true, nil
		}
	}
	return false, nil
}
