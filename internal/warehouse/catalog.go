package warehouse

import "net/url"

// CollectionSpec describes one warehouse-mirrored collection (§4.5.2
// "Collection catalog"): where to fetch it, its primary key and
// timestamp field, whether it supports a modifiedAfter delta filter,
// whether it is windowed by a fact date range, its partition field (if
// any), and whether it is a lone object rather than a listing.
type CollectionSpec struct {
	Path                   string
	PK                     string
	TSField                string
	SupportsModifiedAfter  bool
	Windowed               bool
	PartitionField         string
	SingleObject           bool
	FixedParams            url.Values
}

// Catalog is the static collection->spec map (§4.5.2), grounded on the
// teacher's internal/recurring.patterns.go style of a fixed registry keyed
// by a closed set of names, generalized from "recurrence pattern" to
// "collection fetch/merge rule".
var Catalog = map[string]CollectionSpec{
	"people":             {Path: "people", PK: "id", TSField: "updatedAt", SupportsModifiedAfter: true},
	"projects":           {Path: "projects", PK: "id", TSField: "updatedAt", SupportsModifiedAfter: true},
	"clients":            {Path: "clients", PK: "id", TSField: "updatedAt", SupportsModifiedAfter: true},
	"roles":              {Path: "roles", PK: "id", TSField: "updatedAt", SupportsModifiedAfter: true},
	"teams":              {Path: "teams", PK: "id", TSField: "updatedAt", SupportsModifiedAfter: true},
	"workstreams":        {Path: "workstreams", PK: "id", TSField: "updatedAt", SupportsModifiedAfter: true},
	"skills":             {Path: "skills", PK: "id"},
	"tags":               {Path: "tags", PK: "id"},
	"rate-cards":         {Path: "rate-cards", PK: "id", TSField: "updatedAt", SupportsModifiedAfter: true},
	"contracts":          {Path: "contracts", PK: "id", TSField: "updatedAt", SupportsModifiedAfter: true},
	"custom-fields":      {Path: "custom-fields", PK: "id"},
	"assignments":        {Path: "assignments", PK: "id", TSField: "updatedAt", SupportsModifiedAfter: true, Windowed: true, PartitionField: "date"},
	"actuals":            {Path: "actuals", PK: "id", TSField: "updatedAt", SupportsModifiedAfter: true, Windowed: true, PartitionField: "date"},
	"time-off-families":  {Path: "time-off-families", PK: "id"},
	"holiday-groups":     {Path: "holiday-groups", PK: "id"},
	"placeholders":       {Path: "placeholders", PK: "id", TSField: "updatedAt", SupportsModifiedAfter: true},
	"me":                 {Path: "me", SingleObject: true},
}

// BackfillableCollections is the subset of Catalog that accepts a scoped
// {date_from, date_to, person_id?} backfill override (§4.5.2
// "Backfill"): actuals and assignments.
var BackfillableCollections = map[string]bool{
	"actuals":     true,
	"assignments": true,
}
