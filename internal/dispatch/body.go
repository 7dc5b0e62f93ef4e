package dispatch

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// peekJSONBody decodes r.Body as JSON and rewinds it so a downstream
// handler can decode it again from scratch.
func peekJSONBody(r *http.Request) (map[string]any, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body, nil
}
