package warehouse

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/httpx"
)

// fetchWindow bounds a collection fetch: modifiedAfter (delta collections)
// and/or minDate/maxDate (fact collections), per §4.5.2 "Fetch".
type fetchWindow struct {
	modifiedAfter time.Time
	minDate       time.Time
	maxDate       time.Time
}

// buildWindow computes the fetch window for one collection from its
// checkpoint and the mirror's configured window/overlap (§4.5.2):
// modifiedAfter = max(checkpoint - overlap, baseline), never regressing
// below baseline = now - windowDays; fact collections additionally get
// minDate/maxDate spanning [baseline, now].
func buildWindow(spec CollectionSpec, checkpoint domain.WarehouseCheckpoint, now time.Time, windowDays, overlapDays int) fetchWindow {
	baseline := now.AddDate(0, 0, -windowDays)

	var w fetchWindow
	if spec.SupportsModifiedAfter {
		candidate := checkpoint.LastSuccessTS.AddDate(0, 0, -overlapDays)
		if candidate.Before(baseline) {
			candidate = baseline
		}
		w.modifiedAfter = candidate
	}
	if spec.Windowed {
		w.minDate = baseline
		w.maxDate = now
	}
	return w
}

// fetchCollection pages through one collection, applying spec.FixedParams
// plus the computed window, normalizing every row (§4.5.2 "Normalize &
// synthesize").
func (m *Mirror) fetchCollection(ctx context.Context, name string, spec CollectionSpec, w fetchWindow) ([]map[string]any, error) {
	rows, err := m.fetchWithParams(ctx, spec, buildParams(spec, w))
	if err != nil {
		return nil, err
	}

	// §4.5.2: "if a delta-enabled collection returns empty under
	// modifiedAfter, and it is not windowed by date, retry once without
	// modifiedAfter (defensive against tenants without reliable
	// timestamps)."
	if len(rows) == 0 && spec.SupportsModifiedAfter && !spec.Windowed && !w.modifiedAfter.IsZero() {
		bare := w
		bare.modifiedAfter = time.Time{}
		rows, err = m.fetchWithParams(ctx, spec, buildParams(spec, bare))
		if err != nil {
			return nil, err
		}
	}

	out := make([]map[string]any, 0, len(rows))
	for _, raw := range rows {
		normalized, err := normalize(spec, raw)
		if err != nil {
			return nil, fmt.Errorf("warehouse: normalize row in %s: %w", name, err)
		}
		out = append(out, normalized)
	}
	return out, nil
}

func (m *Mirror) fetchWithParams(ctx context.Context, spec CollectionSpec, params url.Values) ([]map[string]any, error) {
	if spec.SingleObject {
		p, err := m.source.fetchPage(ctx, spec.Path, params)
		if err != nil {
			return nil, err
		}
		return p.Items, nil
	}

	var all []map[string]any
	for item, err := range httpx.Paginate(func(cursor string) ([]map[string]any, string, error) {
		pageParams := url.Values{}
		for k, v := range params {
			pageParams[k] = v
		}
		if cursor != "" {
			pageParams.Set("cursor", cursor)
		}
		p, err := m.source.fetchPage(ctx, spec.Path, pageParams)
		if err != nil {
			return nil, "", err
		}
		return p.Items, p.NextCursor, nil
	}) {
		if err != nil {
			return nil, err
		}
		all = append(all, item)
	}
	return all, nil
}

func buildParams(spec CollectionSpec, w fetchWindow) url.Values {
	params := url.Values{"limit": []string{"200"}}
	for k, v := range spec.FixedParams {
		params[k] = v
	}
	if !w.modifiedAfter.IsZero() {
		params.Set("modifiedAfter", w.modifiedAfter.UTC().Format(time.RFC3339))
	}
	if !w.minDate.IsZero() {
		params.Set("minDate", w.minDate.UTC().Format("2006-01-02"))
		params.Set("maxDate", w.maxDate.UTC().Format("2006-01-02"))
	}
	return params
}
