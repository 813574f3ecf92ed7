package transaction

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
	"github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc := transaction.NewService(store.New(filepath.Join(t.TempDir(), "data.csv")))

	router := chi.NewRouter()
	router.Route("/transactions", NewHandler(svc).Routes)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func TestHandler_CreateListDelete(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()

	// Create an expense. The handler takes a positive amount and the
	// expense category determines the stored sign.
	body := `{"type":"Dinner","amount":"8.55","date":"2025-03-15","category":"Tax"}`
	resp, err := client.Post(srv.URL+"/transactions", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID     int64  `json:"id"`
		Amount string `json:"amount"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "-8.55", created.Amount)

	// List it back.
	resp, err = client.Get(srv.URL + "/transactions?year=2025")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []struct {
		ID       int64  `json:"id"`
		Date     string `json:"date"`
		Category string `json:"category"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	resp.Body.Close()

	require.Len(t, listed, 1)
	assert.Equal(t, "2025-03-15", listed[0].Date)
	assert.Equal(t, "Tax", listed[0].Category)

	// Delete and verify the follow-up lookup 404s.
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/transactions/1", nil)
	require.NoError(t, err)

	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/transactions/1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_CreateRejectsInvalid(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()

	tests := []struct {
		name string
		body string
	}{
		{name: "bad amount", body: `{"type":"x","amount":"abc","date":"2025-03-15","category":"Tax"}`},
		{name: "bad date", body: `{"type":"x","amount":"1.00","date":"15/03/2025","category":"Tax"}`},
		{name: "unknown category", body: `{"type":"x","amount":"1.00","date":"2025-03-15","category":"Nope"}`},
		{name: "empty type", body: `{"type":"","amount":"1.00","date":"2025-03-15","category":"Tax"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := client.Post(srv.URL+"/transactions", "application/json", strings.NewReader(tc.body))
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHandler_Update(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()

	body := `{"type":"Salary","amount":"5095.00","date":"2025-01-31","category":"Monthly Salary/General"}`
	resp, err := client.Post(srv.URL+"/transactions", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Patch only the type; amount and date must survive.
	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/transactions/1",
		strings.NewReader(`{"type":"January salary"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Type   string `json:"type"`
		Amount string `json:"amount"`
		Date   string `json:"date"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	resp.Body.Close()

	assert.Equal(t, "January salary", updated.Type)
	assert.Equal(t, "5095.00", updated.Amount)
	assert.Equal(t, "2025-01-31", updated.Date)
}
