// Package warehouse adapts the BigQuery-backed warehouse remote: staging
// loads, schema-tolerant MERGE, and staging cleanup (spec.md §4.1
// "Warehouse", §4.5.2).
package warehouse

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"

	"github.com/nimbushr/syncengine/internal/config"
)

// Client wraps a BigQuery client scoped to one project/dataset pair.
type Client struct {
	bq             *bigquery.Client
	dataset        string
	stagingDataset string
	location       string
	loadTimeout    int64 // seconds, stored to avoid importing time in every file
}

// NewClient dials BigQuery using application-default credentials (the
// same auth idiom as the teacher's cloud.google.com/go/storage client
// construction).
func NewClient(ctx context.Context, cfg *config.WarehouseConfig) (*Client, error) {
	bq, err := bigquery.NewClient(ctx, cfg.Project)
	if err != nil {
		return nil, fmt.Errorf("warehouse: dial bigquery: %w", err)
	}

	return &Client{
		bq:             bq,
		dataset:        cfg.Dataset,
		stagingDataset: cfg.StagingDataset,
		location:       cfg.Location,
		loadTimeout:    int64(cfg.LoadTimeout.Seconds()),
	}, nil
}

// Close releases the underlying BigQuery client.
func (c *Client) Close() error {
	return c.bq.Close()
}

func (c *Client) targetTable(collection string) *bigquery.Table {
	return c.bq.Dataset(c.dataset).Table(collection)
}

func (c *Client) stagingTable(name string) *bigquery.Table {
	return c.bq.Dataset(c.stagingDataset).Table(name)
}
