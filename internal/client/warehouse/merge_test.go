package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersectColumnsPreservesTargetOrder(t *testing.T) {
	target := []columnInfo{{Name: "pk"}, {Name: "name"}, {Name: "legacy_only"}}
	staging := []columnInfo{{Name: "name"}, {Name: "pk"}, {Name: "new_only"}}

	got := intersectColumns(target, staging)

	var names []string
	for _, c := range got {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"pk", "name"}, names)
}

func TestSelectExprFlattensRepeatedColumns(t *testing.T) {
	scalar := selectExpr(columnInfo{Name: "email", Type: "STRING", Mode: "NULLABLE"})
	assert.Equal(t, "SAFE_CAST(S.email AS STRING) AS email", scalar)

	repeated := selectExpr(columnInfo{Name: "tags", Type: "STRING", Mode: "REPEATED"})
	assert.Equal(t, "SAFE_CAST(S.tags[SAFE_OFFSET(0)] AS STRING) AS tags", repeated)
}
