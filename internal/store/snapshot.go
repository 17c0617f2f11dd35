package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tally-dev/tally/internal/model"
)

// ErrInvalidSnapshot is wrapped by every Import failure.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Export serializes doc in the persisted shape, indented, with a trailing
// newline.
func Export(doc *model.Document) ([]byte, error) {
	if doc == nil {
		doc = model.NewDocument()
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return append(data, '\n'), nil
}

// Import parses a snapshot produced by Export (or by an older version of the
// document). The content must be a JSON object; nothing is returned unless
// the whole snapshot decodes.
func Import(data []byte) (*model.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidSnapshot)
	}
	doc := model.NewDocument()
	if err := json.Unmarshal(trimmed, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	doc.Normalize()
	return doc, nil
}
