package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/griddeck/griddeck/pkg/store"
)

// ReadJSON decodes an export document from r.
//
// Decoding is strict about shape (unknown fields are rejected) but lenient
// about content: an old schema version is fine, because the store migrates
// and validates the document before it touches any state. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (store.ExportDocument, error) {
	var doc store.ExportDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return store.ExportDocument{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// ImportJSON reads a JSON file at path and returns the decoded export
// document. The error wraps the underlying cause with the file path for
// context.
func ImportJSON(path string) (store.ExportDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return store.ExportDocument{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
