package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/car_export/internal/models"
)

type fakeES struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]string
	hits     []string
	exists   bool
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.requests = append(f.requests, key)
	f.bodies[key] = string(body)
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case key == "GET /":
		_, _ = io.WriteString(w, `{"version":{"number":"9.0.0","build_flavor":"default"},"tagline":"You Know, for Search"}`)
	case key == "HEAD /products":
		f.mu.Lock()
		exists := f.exists
		f.mu.Unlock()
		if exists {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case key == "PUT /products":
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	case key == "POST /products/_search":
		f.mu.Lock()
		ids := f.hits
		f.mu.Unlock()
		hits := make([]string, 0, len(ids))
		for _, id := range ids {
			hits = append(hits, `{"_id":"`+id+`"}`)
		}
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":42},"hits":[`+strings.Join(hits, ",")+`]}}`)
	case key == "POST /_bulk":
		_, _ = io.WriteString(w, `{"errors":false,"items":[]}`)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/products/_doc/"):
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/products/_doc/"):
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"unexpected `+key+`"}`)
	}
}

func (f *fakeES) body(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[key]
}

func (f *fakeES) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func newFakeClient(t *testing.T) (*fakeES, *Client) {
	t.Helper()
	fake := &fakeES{bodies: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), Config{URL: srv.URL, Index: "products"})
	require.NoError(t, err)
	return fake, c
}

func TestSearch_ReturnsIDsInRankOrder(t *testing.T) {
	fake, c := newFakeClient(t)
	a, b := uuid.New(), uuid.New()
	fake.mu.Lock()
	fake.hits = []string{b.String(), "not-a-uuid", a.String()}
	fake.mu.Unlock()

	total, ids, err := c.Search(context.Background(), "corola", 10, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 42, total)
	assert.Equal(t, []uuid.UUID{b, a}, ids)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(fake.body("POST /products/_search")), &sent))
	assert.EqualValues(t, 10, sent["from"])
	assert.EqualValues(t, 5, sent["size"])
	mm := sent["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "corola", mm["query"])
	assert.Equal(t, "AUTO", mm["fuzziness"])
	assert.Contains(t, mm["fields"], "title^3")
}

func TestEnsureIndex_CreatesWhenMissing(t *testing.T) {
	fake, c := newFakeClient(t)

	require.NoError(t, c.EnsureIndex(context.Background()))
	assert.Contains(t, fake.seen(), "PUT /products")
	assert.Contains(t, fake.body("PUT /products"), `"unitPrice"`)
}

func TestEnsureIndex_Existing(t *testing.T) {
	fake, c := newFakeClient(t)
	fake.mu.Lock()
	fake.exists = true
	fake.mu.Unlock()

	require.NoError(t, c.EnsureIndex(context.Background()))
	assert.NotContains(t, fake.seen(), "PUT /products")
}

func TestIndexAndDelete(t *testing.T) {
	fake, c := newFakeClient(t)
	id := uuid.New()
	p := models.Product{
		Base: models.Base{ID: id}, Title: "Hilux", Year: 2019,
		Category: &models.Category{Name: "Truck"}, Make: &models.Brand{Name: "Toyota"},
	}

	require.NoError(t, c.IndexProduct(context.Background(), DocumentFromProduct(&p)))
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(fake.body("PUT /products/_doc/"+id.String())), &doc))
	assert.Equal(t, "Hilux", doc.Title)
	assert.Equal(t, "Toyota", doc.Make)
	assert.Equal(t, "Truck", doc.Category)

	assert.NoError(t, c.DeleteProduct(context.Background(), id.String()), "missing documents are ignored")
}

func TestBulkIndex(t *testing.T) {
	fake, c := newFakeClient(t)
	docs := []Document{{ID: "1", Title: "a"}, {ID: "2", Title: "b"}}

	require.NoError(t, c.BulkIndex(context.Background(), docs))
	lines := strings.Split(strings.TrimSpace(fake.body("POST /_bulk")), "\n")
	require.Len(t, lines, 4)
	assert.JSONEq(t, `{"index":{"_index":"products","_id":"1"}}`, lines[0])

	require.NoError(t, c.BulkIndex(context.Background(), nil))
}
