package hris

import (
	"context"
	"fmt"

	"github.com/nimbushr/syncengine/internal/domain"
)

// GetJob fetches a job by id.
func (c *Client) GetJob(ctx context.Context, id string) (domain.Job, error) {
	var dto jobDTO
	err := c.doJSON(ctx, "GET", c.baseURLV2+"/jobs/"+id, nil, &dto)
	if err != nil {
		return domain.Job{}, fmt.Errorf("hris: get job %s: %w", id, err)
	}
	return dto.toDomain(), nil
}

// PatchJob patches arbitrary job fields, used for CTC write-back
// (§4.3.6: "patch HRIS job with ctc in USD").
func (c *Client) PatchJob(ctx context.Context, id string, fields map[string]any) error {
	if err := c.doJSON(ctx, "PATCH", c.baseURLV2+"/jobs/"+id, fields, nil); err != nil {
		return fmt.Errorf("hris: patch job %s: %w", id, err)
	}
	return nil
}
