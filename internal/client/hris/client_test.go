package hris

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbushr/syncengine/internal/config"
	"github.com/nimbushr/syncengine/internal/httpx"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.HRISConfig{
		BaseURLV2:      srv.URL,
		BaseURLV1:      srv.URL,
		APIToken:       "test-token",
		RequestTimeout: 2 * time.Second,
		PageSize:       200,
	}
	require.NoError(t, cfg.Validate())
	return NewClient(cfg), srv
}

func TestListPeopleCollectsAllPages(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("from") == "" {
			_ = json.NewEncoder(w).Encode(peoplePage{
				Items: []personDTO{{ID: "1", WorkEmail: "a@co.com", Active: true}},
				Next:  "cursor-2",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(peoplePage{
			Items: []personDTO{{ID: "2", WorkEmail: "b@co.com", Active: true}},
			Next:  "",
		})
	})

	var ids []string
	for p, err := range client.ListPeople(context.Background()) {
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	assert.Equal(t, []string{"1", "2"}, ids)
	assert.Equal(t, 2, calls)
}

func TestListPeopleHalvesPageSizeOnPageSizeError(t *testing.T) {
	var sawLimits []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		limit := r.URL.Query().Get("limit")
		sawLimits = append(sawLimits, limit)

		if limit == "200" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"limit too large, reduce page size"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(peoplePage{Items: nil, Next: ""})
	})

	var got []string
	for p, err := range client.ListPeople(context.Background()) {
		require.NoError(t, err)
		got = append(got, p.ID)
	}

	assert.Empty(t, got)
	assert.Equal(t, []string{"200", "100"}, sawLimits)
}

func TestGetJobAndPatchJob(t *testing.T) {
	var lastMethod string
	var lastBody map[string]any

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		lastMethod = r.Method
		if r.Method == http.MethodPatch {
			_ = json.NewDecoder(r.Body).Decode(&lastBody)
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jobDTO{ID: "j1", Title: "Engineer", CTC: 1000})
	})

	job, err := client.GetJob(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, "Engineer", job.Title)

	err = client.PatchJob(context.Background(), "j1", map[string]any{"ctc": 1234.56})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, lastMethod)
	assert.Equal(t, 1234.56, lastBody["ctc"])
}

func TestEmailExistsFindsWorkEmailMatch(t *testing.T) {
	var sawQueries []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		sawQueries = append(sawQueries, r.URL.Query().Get("q"))
		if r.URL.Query().Get("q") == `workEmail\jane@co.com` {
			_ = json.NewEncoder(w).Encode(peoplePage{Items: []personDTO{{ID: "p1"}}})
			return
		}
		_ = json.NewEncoder(w).Encode(peoplePage{})
	})

	exists, err := client.EmailExists(context.Background(), "jane@co.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []string{`workEmail\jane@co.com`}, sawQueries)
}

func TestEmailExistsFallsBackToPersonalEmail(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == `personalEmail\jane@co.com` {
			_ = json.NewEncoder(w).Encode(peoplePage{Items: []personDTO{{ID: "p1"}}})
			return
		}
		_ = json.NewEncoder(w).Encode(peoplePage{})
	})

	exists, err := client.EmailExists(context.Background(), "jane@co.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEmailExistsReturnsFalseWhenNoMatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(peoplePage{})
	})

	exists, err := client.EmailExists(context.Background(), "nobody@co.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDoJSONClassifiesNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no such job"}`))
	})

	_, err := client.GetJob(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
