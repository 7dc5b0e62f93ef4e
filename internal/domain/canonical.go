package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// CanonicalJSON encodes v the way every persisted blob and content hash in
// this system requires: UTF-8, map keys sorted, no inserted whitespace.
// encoding/json already sorts map keys and emits compact output with no
// extra configuration, so this is a documented passthrough rather than a
// bespoke encoder — see DESIGN.md for why no third-party canonical-JSON
// library is used here.
func CanonicalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// ContentHash returns the lowercase-hex SHA-256 of v's canonical JSON
// encoding. Used for the snapshot manifest's per-row content hash (§3) and
// as the synthesized warehouse primary key when a collection provides none
// (§4.5.2).
func ContentHash(v any) (string, error) {
	data, err := CanonicalJSON(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
