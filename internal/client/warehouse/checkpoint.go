package warehouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/nimbushr/syncengine/internal/domain"
)

const checkpointTable = "__sync_state"

type checkpointRow struct {
	Collection    string    `bigquery:"collection"`
	LastSuccessTS time.Time `bigquery:"last_success_ts"`
}

// EnsureCheckpointTable creates the warehouse-native checkpoint table if
// it does not exist yet (§4.2: "__sync_state (warehouse) – per-collection
// last-success ts; lives in the warehouse itself as a keyed table to
// avoid a second store").
func (c *Client) EnsureCheckpointTable(ctx context.Context) error {
	table := c.targetTable(checkpointTable)
	if _, err := table.Metadata(ctx); err == nil {
		return nil
	}

	schema := bigquery.Schema{
		{Name: "collection", Type: bigquery.StringFieldType, Required: true},
		{Name: "last_success_ts", Type: bigquery.TimestampFieldType, Required: true},
	}
	if err := table.Create(ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
		return fmt.Errorf("warehouse: create checkpoint table: %w", err)
	}
	return nil
}

// GetCheckpoint reads the stored checkpoint for a collection, returning
// the zero value if none exists yet.
func (c *Client) GetCheckpoint(ctx context.Context, collection string) (domain.WarehouseCheckpoint, error) {
	sql := fmt.Sprintf("SELECT collection, last_success_ts FROM `%s.%s` WHERE collection = @collection",
		c.dataset, checkpointTable)
	q := c.bq.Query(sql)
	q.Parameters = []bigquery.QueryParameter{{Name: "collection", Value: collection}}

	it, err := q.Read(ctx)
	if err != nil {
		return domain.WarehouseCheckpoint{}, fmt.Errorf("warehouse: read checkpoint for %s: %w", collection, err)
	}

	var row checkpointRow
	err = it.Next(&row)
	if errors.Is(err, iterator.Done) {
		return domain.WarehouseCheckpoint{Collection: collection}, nil
	}
	if err != nil {
		return domain.WarehouseCheckpoint{}, fmt.Errorf("warehouse: scan checkpoint for %s: %w", collection, err)
	}

	return domain.WarehouseCheckpoint{Collection: row.Collection, LastSuccessTS: row.LastSuccessTS}, nil
}

// SetCheckpoint upserts the checkpoint for a collection. Callers must
// enforce monotonicity themselves via domain.WarehouseCheckpoint.Advance
// before calling this (§3 invariant 3).
func (c *Client) SetCheckpoint(ctx context.Context, collection string, ts time.Time) error {
	sql := fmt.Sprintf(`
MERGE `+"`%s.%s`"+` T
USING (SELECT @collection AS collection, @ts AS last_success_ts) S
ON T.collection = S.collection
WHEN MATCHED THEN UPDATE SET last_success_ts = S.last_success_ts
WHEN NOT MATCHED THEN INSERT (collection, last_success_ts) VALUES (S.collection, S.last_success_ts)
`, c.dataset, checkpointTable)

	q := c.bq.Query(sql)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "collection", Value: collection},
		{Name: "ts", Value: ts},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("warehouse: start checkpoint upsert for %s: %w", collection, err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("warehouse: wait for checkpoint upsert %s: %w", collection, err)
	}
	if status.Err() != nil {
		return fmt.Errorf("warehouse: checkpoint upsert %s failed: %w", collection, status.Err())
	}
	return nil
}
