package dispatch

import (
	"strings"

	"github.com/nimbushr/syncengine/internal/reconcile"
)

// normalizeEventKey lowercases and folds the `.`/`_`/`-` separator variants
// the upstream HRIS event stream is known to use interchangeably (§4.4:
// "tolerant to casing and separator variants") down to a single form.
func normalizeEventKey(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(".", "_", "-", "_").Replace(s)
	return s
}

// firstNonEmpty returns the first non-empty string field looked up from m
// by each key in order, tolerating the HRIS event payload's habit of using
// several different casings/spellings for the same logical field.
func firstNonEmpty(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// classifyHRISEvent extracts (event type, entity type, entity id) from an
// HRIS webhook body and maps it to a reconciler Kind (§4.4: "Classify as
// job create/update, time-off create/update/delete, or person
// create/update"). The second return value is false for event/entity
// combinations this system does not reconcile from a webhook; the
// caller's contract is to 200 these without enqueueing, never surface
// them as an error.
func classifyHRISEvent(body map[string]any) (kind reconcile.Kind, entityID string, ok bool) {
	evtype := normalizeEventKey(firstNonEmpty(body, "type", "eventType", "eventtype", "event_type"))
	entity := normalizeEventKey(firstNonEmpty(body, "entityType", "entitytype", "entity_type"))
	entityID = firstNonEmpty(body, "entityId", "entityid", "entity_id")
	if entityID == "" {
		return "", "", false
	}

	isCreate := evtype == "create" || strings.HasSuffix(evtype, "_create")
	isUpdate := evtype == "update" || evtype == "change" || strings.HasSuffix(evtype, "_update") || strings.HasSuffix(evtype, "_change")
	isDelete := evtype == "delete" || strings.HasSuffix(evtype, "_delete")

	switch entity {
	case "timeoff", "time_off":
		switch {
		case isDelete:
			return reconcile.KindTimeOffDelete, entityID, true
		case isCreate || isUpdate:
			return reconcile.KindTimeOff, entityID, true
		}
	case "person", "people":
		if isCreate || isUpdate {
			return reconcile.KindPerson, entityID, true
		}
	case "job", "jobs":
		switch {
		case isCreate:
			return reconcile.KindJob, entityID, true
		case isUpdate:
			return reconcile.KindJobUpdate, entityID, true
		}
	}
	return "", "", false
}
