package warehouse

import (
	"github.com/nimbushr/syncengine/internal/domain"
)

// normalize applies §4.5.2 "Normalize & synthesize": the raw object is
// nested under "raw" so the warehouse keeps a lossless copy alongside the
// flattened top-level fields used for MERGE matching/ordering; a missing
// primary key is synthesized as the content hash of the raw object (using
// the same canonical-JSON hash helper as the snapshot manifest, §3); a
// missing updatedAt copies createdAt.
func normalize(spec CollectionSpec, obj map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(obj)+1)
	for k, v := range obj {
		out[k] = v
	}
	out["raw"] = obj

	if spec.PK != "" {
		if v, ok := out[spec.PK]; !ok || v == nil || v == "" {
			hash, err := domain.ContentHash(obj)
			if err != nil {
				return nil, err
			}
			out[spec.PK] = hash
		}
	}

	if v, ok := out["updatedAt"]; !ok || v == nil || v == "" {
		if created, ok := out["createdAt"]; ok {
			out["updatedAt"] = created
		}
	}

	return out, nil
}
