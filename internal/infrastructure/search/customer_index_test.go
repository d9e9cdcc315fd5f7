package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/customer-directory/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   string
}

func newTestIndex(t *testing.T, status int, reply string) (*CustomerIndex, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewCustomerIndex(es, "customers", logger), &calls
}

func TestIndexCustomerPutsDocument(t *testing.T) {
	idx, calls := newTestIndex(t, http.StatusCreated, `{"result":"created"}`)

	err := idx.IndexCustomer(context.Background(), entity.CustomerView{ID: 7, Name: "Alex", Email: "alex@example.com", Gender: entity.GenderMale, Age: 30})
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPut, call.method)
	assert.Equal(t, "/customers/_doc/7", call.path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(call.body), &doc))
	assert.Equal(t, "alex@example.com", doc["email"])
	assert.NotContains(t, call.body, "password")
}

func TestRemoveMissingDocumentIsNotAnError(t *testing.T) {
	idx, calls := newTestIndex(t, http.StatusNotFound, `{"result":"not_found"}`)

	require.NoError(t, idx.RemoveCustomer(context.Background(), 3))
	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodDelete, (*calls)[0].method)
}

func TestSearchCustomersDecodesHits(t *testing.T) {
	reply := `{"hits":{"hits":[{"_id":"7","_source":{"id":7,"name":"Alex","email":"alex@example.com","gender":"MALE","age":30}}]}}`
	idx, calls := newTestIndex(t, http.StatusOK, reply)

	views, err := idx.SearchCustomers(context.Background(), "alex", 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, int64(7), views[0].ID)
	assert.Equal(t, "alex@example.com", views[0].Username)
	assert.Equal(t, []string{entity.RoleUser}, views[0].Roles)

	require.Len(t, *calls, 1)
	assert.True(t, strings.HasSuffix((*calls)[0].path, "/customers/_search"))
	assert.Contains(t, (*calls)[0].body, `"size":10`)
}

func TestSearchCustomersSurfacesErrorStatus(t *testing.T) {
	idx, _ := newTestIndex(t, http.StatusInternalServerError, `{"error":"boom"}`)

	_, err := idx.SearchCustomers(context.Background(), "alex", 5)
	assert.Error(t, err)
}

func TestEnsureIndexCreatesMissingIndex(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		b, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(b), `"keyword"`)
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	require.NoError(t, NewCustomerIndex(es, "customers", logger).EnsureIndex(context.Background()))
	assert.Equal(t, []string{http.MethodHead, http.MethodPut}, methods)
}

func TestEnsureIndexKeepsExistingIndex(t *testing.T) {
	idx, calls := newTestIndex(t, http.StatusOK, ``)

	require.NoError(t, idx.EnsureIndex(context.Background()))
	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodHead, (*calls)[0].method)
}
