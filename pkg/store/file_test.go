package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}
	defer backend.Close()

	if _, err := backend.Load(ctx); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("empty backend Load error = %v, want ErrNoRecord", err)
	}

	record := []byte(`{"version":"1.0.0"}`)
	if err := backend.Store(ctx, record); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, err := backend.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != string(record) {
		t.Errorf("Load = %q, want %q", got, record)
	}
}

func TestFileBackendOverwrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend, _ := NewFileBackend(dir)

	backend.Store(ctx, []byte("one"))
	backend.Store(ctx, []byte("two"))

	got, _ := backend.Load(ctx)
	if string(got) != "two" {
		t.Errorf("Load = %q, want latest record", got)
	}

	// Exactly one record file exists.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != layoutFileName {
		t.Errorf("dir entries = %v", entries)
	}
}

func TestFileBackendPath(t *testing.T) {
	dir := t.TempDir()
	backend, _ := NewFileBackend(dir)
	if got := backend.Path(); got != filepath.Join(dir, layoutFileName) {
		t.Errorf("Path = %q", got)
	}
}

func TestStoreWithFileBackend(t *testing.T) {
	// End-to-end: state written through the store survives a new store
	// reading the same directory.
	dir := t.TempDir()
	backend, _ := NewFileBackend(dir)
	s := New(Options{Backend: backend, SaveDelay: time.Hour})
	s.Load(context.Background())
	s.AddWidget(placed("clock", 2, 3, 3, 2))
	s.SetTheme(ThemeDark)
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	backend2, _ := NewFileBackend(dir)
	s2 := New(Options{Backend: backend2, SaveDelay: time.Hour})
	st := s2.Load(context.Background())

	if len(st.Widgets) != 1 || st.Widgets[0].Type != "clock" {
		t.Fatalf("reloaded widgets = %+v", st.Widgets)
	}
	if st.Widgets[0].X != 2 || st.Widgets[0].Y != 3 {
		t.Errorf("reloaded placement = %+v", st.Widgets[0].Placement)
	}
	if st.Theme != ThemeDark {
		t.Errorf("reloaded theme = %s", st.Theme)
	}
}
