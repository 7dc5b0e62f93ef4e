// Package domain holds the plain entity types shared by every component:
// Person, Job, TimeOff, HireEvent, the flattened snapshot row, and the
// small enums (hiring scheme, time-off category/status) that parameterize
// them. Nothing here talks to a remote system or a store; it is the
// vocabulary the rest of the repository shares.
package domain

import "errors"

var (
	// ErrNotFound names the case where the remote system has no record for
	// the requested id. The adapters report that case with
	// httpx.ErrNotFound, which is what reconciler handlers check; nothing
	// returns this value.
	ErrNotFound = errors.New("entity not found")

	// ErrMissingField names the case where a required field is absent on
	// an entity fetched from a remote system (e.g. no work/personal
	// email). Nothing returns this value.
	ErrMissingField = errors.New("required field missing")

	// ErrInvalidScheme names a hiring scheme outside the known table.
	// CTCForScheme reports an unknown scheme through its ok result and
	// does not return this error.
	ErrInvalidScheme = errors.New("unrecognized hiring scheme")
)
