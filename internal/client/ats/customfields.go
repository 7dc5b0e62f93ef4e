package ats

import (
	"context"
	"fmt"
)

type customFieldDTO struct {
	ID      string `json:"id"`
	APIName string `json:"apiName"`
}

// ResolveCustomFieldID looks up a custom field's internal id by its
// stable API name (§4.1: "resolve custom-field id by api-name").
func (c *Client) ResolveCustomFieldID(ctx context.Context, apiName string) (string, error) {
	var fields []customFieldDTO
	if err := c.doJSON(ctx, "GET", c.baseURL+"/custom_fields?apiName="+apiName, nil, &fields); err != nil {
		return "", fmt.Errorf("ats: resolve custom field %q: %w", apiName, err)
	}
	for _, f := range fields {
		if f.APIName == apiName {
			return f.ID, nil
		}
	}
	return "", fmt.Errorf("ats: custom field %q not found", apiName)
}

// UpsertJobCustomField sets a custom-field value on a job.
func (c *Client) UpsertJobCustomField(ctx context.Context, jobID, fieldID string, value any) error {
	url := fmt.Sprintf("%s/jobs/%s/custom_fields/%s", c.baseURL, jobID, fieldID)
	body := map[string]any{"value": value}
	if err := c.doJSON(ctx, "PUT", url, body, nil); err != nil {
		return fmt.Errorf("ats: upsert job %s custom field %s: %w", jobID, fieldID, err)
	}
	return nil
}
