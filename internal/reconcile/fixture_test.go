package reconcile

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/imamik/ranchsync/internal/platform/rancher"
)

// fixture is a stateful fake of the Rancher v3 API. Records live in memory
// per collection; every request is logged as "METHOD /path?query".
type fixture struct {
	mu       sync.Mutex
	server   *httptest.Server
	records  map[string][]map[string]any
	requests []string
	seq      int
}

func newFixture() *fixture {
	f := &fixture{records: map[string][]map[string]any{}}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

func (f *fixture) close() {
	f.server.Close()
}

func (f *fixture) client() *rancher.Client {
	c, err := rancher.NewClient(rancher.Options{Host: f.server.URL, Username: "admin", Password: "secret"})
	if err != nil {
		panic(err)
	}
	return c
}

// removeLink returns the link the fixture publishes for a record.
func (f *fixture) removeLink(collection, id string) string {
	return fmt.Sprintf("%s/v3/%s/%s", f.server.URL, collection, id)
}

// seed stores a record. Unless withoutLink is set it gets a remove link.
func (f *fixture) seed(collection, id, name string, withoutLink bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := map[string]any{"id": id, "name": name, "state": "active"}
	if !withoutLink {
		rec["links"] = map[string]string{rancher.LinkRemove: f.removeLink(collection, id)}
	}
	f.records[collection] = append(f.records[collection], rec)
}

func (f *fixture) requestLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fixture) resetLog() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
}

func (f *fixture) count(method string) int {
	n := 0
	for _, r := range f.requestLog() {
		if strings.HasPrefix(r, method+" ") {
			n++
		}
	}
	return n
}

func (f *fixture) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.RequestURI())
	path := strings.TrimPrefix(r.URL.Path, "/v3/")

	switch r.Method {
	case http.MethodGet:
		name := r.URL.Query().Get("name")
		data := []map[string]any{}
		for _, rec := range f.records[path] {
			if name == "" || rec["name"] == name {
				data = append(data, rec)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"type": "collection", "data": data})

	case http.MethodPost:
		var rec map[string]any
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"type": "error", "code": "InvalidBodyContent"})
			return
		}
		f.seq++
		id := fmt.Sprintf("%s-%d", path, f.seq)
		rec["id"] = id
		rec["state"] = "provisioning"
		rec["links"] = map[string]string{rancher.LinkRemove: f.removeLink(path, id)}
		f.records[path] = append(f.records[path], rec)
		writeJSON(w, http.StatusCreated, rec)

	case http.MethodDelete:
		collection, id, _ := strings.Cut(path, "/")
		recs := f.records[collection]
		for i, rec := range recs {
			if rec["id"] == id {
				f.records[collection] = append(recs[:i:i], recs[i+1:]...)
				rec["state"] = "removing"
				writeJSON(w, http.StatusOK, rec)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"type": "error", "code": "NotFound", "status": 404})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// driverOp builds a node-driver-like operation with a map payload.
func driverOp(name string, p Presence) *Operation[map[string]any] {
	return &Operation[map[string]any]{
		Kind:       "node driver",
		Collection: rancher.CollectionNodeDriver,
		Name:       name,
		Presence:   p,
		Payload: func(Resolved) (map[string]any, error) {
			return map[string]any{"name": name, "active": true, "builtin": false}, nil
		},
	}
}
