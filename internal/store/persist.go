package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// loadDocument reads and normalizes the persisted document. A missing
// or unreadable file yields the default document; malformed content is
// recovered field by field through Normalize. Load never fails.
func loadDocument(path string) Document {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	return Normalize(raw)
}

// saveDocument writes the document as a single JSON file, via a temp
// file and rename so a crash mid-write never leaves a torn document.
func saveDocument(path string, doc Document) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}
