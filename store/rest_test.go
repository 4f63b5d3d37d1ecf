package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"checkin-guide/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilter(t *testing.T) {
	expr, err := BuildFilter(Filter{"housing_complex": "Green Park", "apartment_id": "a1"})
	require.NoError(t, err)
	assert.Equal(t, "(apartment_id='a1' && housing_complex='Green Park')", expr)

	expr, err = BuildFilter(Filter{"title": `it's \ here`})
	require.NoError(t, err)
	assert.Equal(t, `(title='it\'s \\ here')`, expr)

	_, err = BuildFilter(Filter{"title' || 1=1": "x"})
	assert.Error(t, err)

	expr, err = BuildFilter(nil)
	require.NoError(t, err)
	assert.Empty(t, expr)
}

func TestRESTStore_ListFollowsPages(t *testing.T) {
	var gotFilter, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/collections/apartments/records", r.URL.Path)
		gotFilter = r.URL.Query().Get("filter")
		gotAuth = r.Header.Get("Authorization")
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		_ = json.NewEncoder(w).Encode(listResponse{
			Page:       page,
			TotalPages: 2,
			Items:      []models.Record{{"id": "p" + strconv.Itoa(page)}},
		})
	}))
	defer srv.Close()

	s := NewRESTStore(srv.URL, "secret", 1, time.Second)
	recs, err := s.List(context.Background(), CollectionApartments, Filter{"housing_complex": "A"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "p1", recs[0]["id"])
	assert.Equal(t, "p2", recs[1]["id"])
	assert.Equal(t, "(housing_complex='A')", gotFilter)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestRESTStore_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/collections/apartments/records/missing" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"bad"}`))
	}))
	defer srv.Close()

	s := NewRESTStore(srv.URL, "", 0, time.Second)
	_, err := s.Get(context.Background(), CollectionApartments, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Create(context.Background(), CollectionApartments, models.Record{"title": "x"})
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, http.MethodPost, httpErr.Method)

	_, err = s.Get(context.Background(), "users", "x")
	assert.Error(t, err)
}

func TestRESTStore_UpdateSendsPatch(t *testing.T) {
	var body map[string]any
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "a1", "wifi_name": body["wifi_name"]})
	}))
	defer srv.Close()

	s := NewRESTStore(srv.URL, "Token abc", 0, time.Second)
	rec, err := s.Update(context.Background(), CollectionApartments, "a1", models.Record{"wifi_name": "Home"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, map[string]any{"wifi_name": "Home"}, body)
	assert.Equal(t, "Home", rec["wifi_name"])
}

func TestAuthHeader(t *testing.T) {
	assert.Equal(t, "Bearer abc", authHeader("abc"))
	assert.Equal(t, "Token abc", authHeader("Token abc"))
}
