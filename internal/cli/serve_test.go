package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/store"
	"github.com/griddeck/griddeck/pkg/widget"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	st := store.New(store.Options{Backend: store.NewMemoryBackend()})
	t.Cleanup(func() { st.Close() })

	handler := newServeHandler(st, widget.Builtin(), newLogger(io.Discard, log.ErrorLevel))
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, st
}

func TestServeHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestServeGetLayout(t *testing.T) {
	srv, st := newTestServer(t)
	if _, err := st.AddWidget(store.Widget{Type: "clock", Placement: grid.Placement{X: 1, Y: 1, W: 3, H: 2}}); err != nil {
		t.Fatalf("AddWidget: %v", err)
	}

	resp, err := http.Get(srv.URL + "/api/layout")
	if err != nil {
		t.Fatalf("GET /api/layout: %v", err)
	}
	defer resp.Body.Close()

	var doc store.ExportDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Widgets) != 1 || doc.Widgets[0].Type != "clock" {
		t.Errorf("layout = %+v", doc.Widgets)
	}
	if doc.ExportedAt.IsZero() {
		t.Error("missing export stamp")
	}
}

func TestServePostLayoutImports(t *testing.T) {
	srv, st := newTestServer(t)

	state := store.DefaultState()
	state.Widgets = []store.Widget{
		{ID: "g-1", Type: "gauge", Placement: grid.Placement{X: 1, Y: 1, W: 4, H: 2}},
	}
	body, _ := json.Marshal(store.ExportDocument{State: state})

	resp, err := http.Post(srv.URL+"/api/layout", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/layout: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := st.Widgets(); len(got) != 1 || got[0].Type != "gauge" {
		t.Errorf("widgets after import = %+v", got)
	}
}

func TestServePostLayoutRejectsInvalid(t *testing.T) {
	srv, st := newTestServer(t)

	state := store.DefaultState()
	state.Widgets = []store.Widget{
		// 20 wide on a 12-column grid.
		{ID: "bad", Type: "gauge", Placement: grid.Placement{X: 1, Y: 1, W: 20, H: 2}},
	}
	body, _ := json.Marshal(store.ExportDocument{State: state})

	resp, err := http.Post(srv.URL+"/api/layout", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/layout: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
	if got := st.Widgets(); len(got) != 0 {
		t.Errorf("invalid import mutated state: %+v", got)
	}

	resp2, err := http.Post(srv.URL+"/api/layout", "application/json", bytes.NewReader([]byte("not json")))
	if err != nil {
		t.Fatalf("POST bad body: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("bad body status = %d, want 400", resp2.StatusCode)
	}
}

func TestServeImportLogsThroughServerLogger(t *testing.T) {
	st := store.New(store.Options{Backend: store.NewMemoryBackend()})
	t.Cleanup(func() { st.Close() })

	var buf bytes.Buffer
	handler := newServeHandler(st, widget.Builtin(), newLogger(&buf, log.InfoLevel))
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	body, _ := json.Marshal(store.ExportDocument{State: store.DefaultState()})
	resp, err := http.Post(srv.URL+"/api/layout", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/layout: %v", err)
	}
	resp.Body.Close()

	if !strings.Contains(buf.String(), "layout imported") {
		t.Errorf("import not logged, got %q", buf.String())
	}
}

func TestServeWidgetTypes(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/widgets")
	if err != nil {
		t.Fatalf("GET /api/widgets: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Types []string `json:"types"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Types) != 3 {
		t.Errorf("types = %v", out.Types)
	}
}
