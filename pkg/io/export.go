// Package io provides JSON import and export for layout export documents.
//
// The on-disk format is the export document produced by the store: the full
// dashboard state (grid, widgets, theme, version, lastModified) plus an
// exportedAt stamp. Round-trip fidelity is preserved: export a layout,
// re-import it, and the widget list, grid, and theme survive intact (widget
// ids are reassigned on import to avoid collisions with residual state).
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/griddeck/griddeck/pkg/store"
)

// WriteJSON encodes an export document as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(doc store.ExportDocument, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes an export document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc store.ExportDocument, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}
