package hris

import (
	"context"
	"fmt"
)

type createImportResponse struct {
	ImportID string `json:"importId"`
}

// SubmitCSVImport runs the three-step HRIS people import (§4.1: "submit a
// three-step CSV import (create → data → submit with
// sendInviteEmails=false)"). csvBody is the already-encoded CSV payload
// (canonical header order, §3).
func (c *Client) SubmitCSVImport(ctx context.Context, csvBody string) error {
	var created createImportResponse
	if err := c.doJSON(ctx, "POST", c.baseURLV2+"/people_imports", map[string]any{}, &created); err != nil {
		return fmt.Errorf("hris: create import: %w", err)
	}

	dataURL := c.baseURLV2 + "/people_imports/" + created.ImportID + "/data"
	if err := c.doJSON(ctx, "POST", dataURL, map[string]any{"csv": csvBody}, nil); err != nil {
		return fmt.Errorf("hris: upload import data: %w", err)
	}

	submitURL := c.baseURLV2 + "/people_imports/" + created.ImportID + "/submit"
	if err := c.doJSON(ctx, "POST", submitURL, map[string]any{"sendInviteEmails": false}, nil); err != nil {
		return fmt.Errorf("hris: submit import: %w", err)
	}

	return nil
}
