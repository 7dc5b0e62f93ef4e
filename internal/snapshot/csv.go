package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/nimbushr/syncengine/internal/domain"
)

// writeCSV emits the header plus one line per row (§4.5.1 "CSV format":
// exact column order, UTF-8, LF line endings, trailing newline
// guaranteed). UseCRLF is set false explicitly (also encoding/csv's
// default) so the writer emits a bare "\n", matching the spec's literal
// line ending.
func writeCSV(w io.Writer, rows []domain.SnapshotRow) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = false

	if err := cw.Write(domain.SnapshotColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Fields()); err != nil {
			return fmt.Errorf("write row %s: %w", row.EmployeeID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
