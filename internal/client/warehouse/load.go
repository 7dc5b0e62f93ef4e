package warehouse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/bigquery"
)

// LoadStaging loads NDJSON rows into a fresh staging table named
// "stg_<collection>_<suffix>" with WRITE_TRUNCATE and schema autodetect
// (§4.5.2 step 1), and returns the staging table name for the caller to
// pass to Merge and DropStaging.
func (c *Client) LoadStaging(ctx context.Context, collection, suffix string, rows []map[string]any) (string, error) {
	stagingName := fmt.Sprintf("stg_%s_%s", collection, suffix)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return "", fmt.Errorf("warehouse: encode staging row for %s: %w", collection, err)
		}
	}

	source := bigquery.NewReaderSource(&buf)
	source.SourceFormat = bigquery.JSON
	source.AutoDetect = true

	loader := c.stagingTable(stagingName).LoaderFrom(source)
	loader.WriteDisposition = bigquery.WriteTruncate
	loader.CreateDisposition = bigquery.CreateIfNeeded

	job, err := loader.Run(ctx)
	if err != nil {
		return "", fmt.Errorf("warehouse: start staging load for %s: %w", collection, err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("warehouse: wait for staging load %s: %w", collection, err)
	}
	if status.Err() != nil {
		return "", fmt.Errorf("warehouse: staging load %s failed: %w", collection, status.Err())
	}

	return stagingName, nil
}

// DropStaging deletes a staging table after a successful MERGE (§4.5.2
// step 5).
func (c *Client) DropStaging(ctx context.Context, stagingName string) error {
	if err := c.stagingTable(stagingName).Delete(ctx); err != nil {
		return fmt.Errorf("warehouse: drop staging table %s: %w", stagingName, err)
	}
	return nil
}
