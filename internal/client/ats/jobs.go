package ats

import (
	"context"
	"fmt"
)

type jobDTO struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// CreateJob creates a job posting.
func (c *Client) CreateJob(ctx context.Context, title string) (string, error) {
	var dto jobDTO
	body := map[string]any{"title": title}
	if err := c.doJSON(ctx, "POST", c.baseURL+"/jobs", body, &dto); err != nil {
		return "", fmt.Errorf("ats: create job: %w", err)
	}
	return dto.ID, nil
}

// PatchJob updates a job's title and/or status (§4.1).
func (c *Client) PatchJob(ctx context.Context, id, title, status string) error {
	body := map[string]any{}
	if title != "" {
		body["title"] = title
	}
	if status != "" {
		body["status"] = status
	}
	if err := c.doJSON(ctx, "PATCH", c.baseURL+"/jobs/"+id, body, nil); err != nil {
		return fmt.Errorf("ats: patch job %s: %w", id, err)
	}
	return nil
}
