package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LoadPrevious reads the prior run's document from path and indexes it for
// diffing. Any failure (missing file, unreadable file, malformed JSON) is
// logged and degrades to an empty lookup; the previous snapshot is an
// optimization, never a requirement.
func LoadPrevious(path string, log *zap.Logger) Previous {
	blob, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("previous snapshot unreadable, treating all entities as new",
				zap.String("path", path), zap.Error(err))
		}
		return PreviousFromDocument(nil)
	}

	var doc Document
	if err := json.Unmarshal(blob, &doc); err != nil {
		log.Warn("previous snapshot malformed, treating all entities as new",
			zap.String("path", path), zap.Error(err))
		return PreviousFromDocument(nil)
	}
	return PreviousFromDocument(&doc)
}

// Write serializes doc and replaces path atomically: the document is
// marshalled fully in memory, written to a temp file in the same directory,
// and renamed over the target. The previous file stays intact until the new
// one is complete.
func Write(path string, doc *Document) error {
	blob, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
