package resources

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/ranchsync/internal/config"
	"github.com/imamik/ranchsync/internal/platform/rancher"
)

// fakeRancher serves /v3 collections from memory and records every request
// and every POST body.
type fakeRancher struct {
	mu       sync.Mutex
	server   *httptest.Server
	records  map[string][]map[string]any
	posts    map[string][]map[string]any
	requests []string
	seq      int
}

func newFakeRancher(t *testing.T) *fakeRancher {
	t.Helper()
	f := &fakeRancher{
		records: map[string][]map[string]any{},
		posts:   map[string][]map[string]any{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeRancher) client(t *testing.T) *rancher.Client {
	t.Helper()
	c, err := rancher.NewClient(rancher.Options{Host: f.server.URL, Username: "admin", Password: "secret"})
	require.NoError(t, err)
	return c
}

// seed stores a record with a remove link. extra adds or overrides fields.
func (f *fakeRancher) seed(collection, id, name, state string, extra map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := map[string]any{
		"id":    id,
		"name":  name,
		"state": state,
		"links": map[string]string{rancher.LinkRemove: fmt.Sprintf("%s/v3/%s/%s", f.server.URL, collection, id)},
	}
	for k, v := range extra {
		rec[k] = v
	}
	f.records[collection] = append(f.records[collection], rec)
}

func (f *fakeRancher) postsTo(collection string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.posts[collection]...)
}

func (f *fakeRancher) requestLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeRancher) countPrefix(prefix string) int {
	n := 0
	for _, r := range f.requestLog() {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeRancher) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.RequestURI())
	path := strings.TrimPrefix(r.URL.Path, "/v3/")
	collection, id, _ := strings.Cut(path, "/")

	switch {
	case r.Method == http.MethodGet:
		data := []map[string]any{}
		for _, rec := range f.records[collection] {
			if matchesQuery(rec, r.URL.Query()) {
				data = append(data, rec)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"type": "collection", "data": data})

	case r.Method == http.MethodPost && r.URL.Query().Get("action") == rancher.ActionGenerateKubeconfig:
		writeJSON(w, http.StatusOK, map[string]any{
			"type":   "generateKubeconfigOutput",
			"config": "apiVersion: v1\nkind: Config\nclusters: []\n# " + id + "\n",
		})

	case r.Method == http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		var rec map[string]any
		if err := json.Unmarshal(body, &rec); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"type": "error", "code": "InvalidBodyContent"})
			return
		}
		f.posts[collection] = append(f.posts[collection], rec)

		f.seq++
		created := map[string]any{}
		for k, v := range rec {
			created[k] = v
		}
		created["id"] = fmt.Sprintf("%s-%d", collection, f.seq)
		created["state"] = "provisioning"
		created["links"] = map[string]string{rancher.LinkRemove: fmt.Sprintf("%s/v3/%s/%s", f.server.URL, collection, created["id"])}
		f.records[collection] = append(f.records[collection], created)
		writeJSON(w, http.StatusCreated, created)

	case r.Method == http.MethodDelete:
		recs := f.records[collection]
		for i, rec := range recs {
			if rec["id"] == id {
				f.records[collection] = append(recs[:i:i], recs[i+1:]...)
				writeJSON(w, http.StatusOK, rec)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"type": "error", "code": "NotFound", "status": 404})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func matchesQuery(rec map[string]any, query map[string][]string) bool {
	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		if fmt.Sprint(rec[key]) != values[0] {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// loadDocument parses YAML the way the CLI does, defaults included.
func loadDocument(t *testing.T, data string) *config.Document {
	t.Helper()
	doc, err := config.LoadFromBytes([]byte(data))
	require.NoError(t, err)
	return doc
}
