package warehouse

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

type columnInfo struct {
	Name string
	Type string
	Mode string // "REPEATED" for repeated fields
}

type columnRow struct {
	ColumnName string `bigquery:"column_name"`
	DataType   string `bigquery:"data_type"`
}

// columns reads a table's schema via INFORMATION_SCHEMA, the
// BigQuery-native way to discover columns without special-casing on a
// cached bigquery.Schema (§4.5.2 step 3: "intersection of target columns
// ∩ staging columns").
func (c *Client) columns(ctx context.Context, datasetID, tableID string) ([]columnInfo, error) {
	sql := fmt.Sprintf(
		"SELECT column_name, data_type FROM `%s.%s.INFORMATION_SCHEMA.COLUMNS` WHERE table_name = @table",
		c.bq.Project(), datasetID)
	q := c.bq.Query(sql)
	q.Parameters = []bigquery.QueryParameter{{Name: "table", Value: tableID}}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("warehouse: read columns for %s.%s: %w", datasetID, tableID, err)
	}

	var cols []columnInfo
	for {
		var row columnRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("warehouse: scan column row for %s.%s: %w", datasetID, tableID, err)
		}
		mode := "NULLABLE"
		if strings.Contains(strings.ToUpper(row.DataType), "ARRAY") {
			mode = "REPEATED"
		}
		cols = append(cols, columnInfo{Name: row.ColumnName, Type: row.DataType, Mode: mode})
	}
	return cols, nil
}

// intersectColumns returns the columns present (by name) in both sets,
// preserving the target's declared order and type, with the mode taken
// from the staging column so selectExpr can flatten a repeated one.
func intersectColumns(target, staging []columnInfo) []columnInfo {
	stagingByName := make(map[string]columnInfo, len(staging))
	for _, s := range staging {
		stagingByName[s.Name] = s
	}

	var out []columnInfo
	for _, t := range target {
		if s, ok := stagingByName[t.Name]; ok {
			out = append(out, columnInfo{Name: t.Name, Type: t.Type, Mode: s.Mode})
		}
	}
	return out
}

// selectExpr builds the SAFE_CAST projection for one column, flattening a
// repeated staging column to its first element (§4.5.2 step 3).
func selectExpr(col columnInfo) string {
	source := "S." + col.Name
	if col.Mode == "REPEATED" {
		source = fmt.Sprintf("%s[SAFE_OFFSET(0)]", source)
	}
	return fmt.Sprintf("SAFE_CAST(%s AS %s) AS %s", source, col.Type, col.Name)
}

// EnsureTargetTable creates the target table from the staging table's
// schema if it does not already exist, optionally day-partitioned on
// partitionField (§4.5.2 step 2).
func (c *Client) EnsureTargetTable(ctx context.Context, collection, stagingName, partitionField string) error {
	target := c.targetTable(collection)
	if _, err := target.Metadata(ctx); err == nil {
		return nil
	}

	stagingMeta, err := c.stagingTable(stagingName).Metadata(ctx)
	if err != nil {
		return fmt.Errorf("warehouse: read staging schema for %s: %w", collection, err)
	}

	meta := &bigquery.TableMetadata{Schema: stagingMeta.Schema}
	if partitionField != "" {
		meta.TimePartitioning = &bigquery.TimePartitioning{
			Type:  bigquery.DayPartitioningType,
			Field: partitionField,
		}
	}

	if err := target.Create(ctx, meta); err != nil {
		return fmt.Errorf("warehouse: create target table %s: %w", collection, err)
	}
	return nil
}

// Merge runs a schema-tolerant MERGE of the staging table into the target
// table, matching on pk and optionally guarding the UPDATE branch by a
// timestamp comparison (§4.5.2 steps 3-4).
func (c *Client) Merge(ctx context.Context, collection, stagingName, pk, tsField string) error {
	targetCols, err := c.columns(ctx, c.dataset, collection)
	if err != nil {
		return err
	}
	stagingCols, err := c.columns(ctx, c.stagingDataset, stagingName)
	if err != nil {
		return err
	}
	shared := intersectColumns(targetCols, stagingCols)
	if len(shared) == 0 {
		return fmt.Errorf("warehouse: no shared columns between %s and staging %s", collection, stagingName)
	}

	var selectCols, insertCols, insertVals, updateSets []string
	for _, col := range shared {
		selectCols = append(selectCols, selectExpr(col))
		insertCols = append(insertCols, col.Name)
		insertVals = append(insertVals, "S."+col.Name)
		if col.Name != pk {
			updateSets = append(updateSets, fmt.Sprintf("T.%s = S.%s", col.Name, col.Name))
		}
	}

	updateGuard := ""
	if tsField != "" {
		for _, col := range shared {
			if col.Name == tsField {
				updateGuard = fmt.Sprintf(
					" AND (SAFE.TIMESTAMP(S.%s) > SAFE.TIMESTAMP(T.%s) OR T.%s IS NULL OR S.%s IS NULL)",
					tsField, tsField, tsField, tsField)
				break
			}
		}
	}

	sql := fmt.Sprintf(`
MERGE `+"`%s.%s`"+` T
USING (SELECT %s FROM `+"`%s.%s`"+` S) S
ON CAST(T.%s AS STRING) = CAST(S.%s AS STRING)
WHEN MATCHED%s THEN UPDATE SET %s
WHEN NOT MATCHED THEN INSERT (%s) VALUES (%s)
`,
		c.dataset, collection,
		strings.Join(selectCols, ", "), c.stagingDataset, stagingName,
		pk, pk,
		updateGuard, strings.Join(updateSets, ", "),
		strings.Join(insertCols, ", "), strings.Join(insertVals, ", "),
	)

	q := c.bq.Query(sql)
	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("warehouse: start merge for %s: %w", collection, err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("warehouse: wait for merge %s: %w", collection, err)
	}
	if status.Err() != nil {
		return fmt.Errorf("warehouse: merge %s failed: %w", collection, status.Err())
	}
	return nil
}
