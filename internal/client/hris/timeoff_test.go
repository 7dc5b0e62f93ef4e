package hris

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTimeOffEnrichesMissingEmailViaV1Batch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if strings.HasPrefix(r.URL.Path, "/time_off") {
			_ = json.NewEncoder(w).Encode(timeOffPage{
				Items: []timeOffDTO{
					{ID: "t1", PersonID: "p1", StartDate: "2026-01-01", Status: "approved"},
				},
			})
			return
		}

		assert.Equal(t, "p1", r.URL.Query().Get("ids"))
		_ = json.NewEncoder(w).Encode([]batchPersonDTO{{ID: "p1", Email: "p1@co.com"}})
	})

	var got []string
	for e, err := range client.ListTimeOff(context.Background(), time.Now(), time.Now()) {
		require.NoError(t, err)
		got = append(got, e.PersonEmail)
	}

	assert.Equal(t, []string{"p1@co.com"}, got)
}

func TestGetTimeOff(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(timeOffDTO{ID: "t1", Status: "denied", Reason: "personal"})
	})

	e, err := client.GetTimeOff(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "denied", string(e.Status))
	assert.True(t, e.ShouldSkip())
}
