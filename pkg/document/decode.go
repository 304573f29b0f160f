// ABOUTME: JSON decoding into the document tree model
// ABOUTME: Thin wrapper over encoding/json plus FromAny canonicalization

package document

import (
	"encoding/json"
	"fmt"
)

// Decode parses a JSON object into a Mapping. Numbers decode as float64,
// matching the canonical scalar representation.
func Decode(data []byte) (Mapping, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("document: decode: %w", err)
	}
	v, err := FromAny(raw)
	if err != nil {
		return nil, err
	}
	return v.(Mapping), nil
}
