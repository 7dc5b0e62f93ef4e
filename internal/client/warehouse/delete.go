package warehouse

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
)

// DeleteWindow implements §4.5.2 "Backfill": a scoped
// `DELETE FROM target WHERE DATE(dateField) BETWEEN ... [AND personId =
// ...]`, run before a backfill load so the caller-provided window stays
// authoritative rather than merging on top of whatever the checkpoint
// already landed. dateField defaults to "date" when the collection has no
// declared partition field.
func (c *Client) DeleteWindow(ctx context.Context, collection, dateField string, from, to time.Time, personID string) error {
	if dateField == "" {
		dateField = "date"
	}

	sql := fmt.Sprintf("DELETE FROM `%s.%s` WHERE DATE(%s) BETWEEN @from AND @to",
		c.dataset, collection, dateField)
	params := []bigquery.QueryParameter{
		{Name: "from", Value: from.Format("2006-01-02")},
		{Name: "to", Value: to.Format("2006-01-02")},
	}
	if personID != "" {
		sql += " AND personId = @personId"
		params = append(params, bigquery.QueryParameter{Name: "personId", Value: personID})
	}

	q := c.bq.Query(sql)
	q.Parameters = params

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("warehouse: start backfill delete for %s: %w", collection, err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("warehouse: wait for backfill delete %s: %w", collection, err)
	}
	if status.Err() != nil {
		return fmt.Errorf("warehouse: backfill delete %s failed: %w", collection, status.Err())
	}
	return nil
}
