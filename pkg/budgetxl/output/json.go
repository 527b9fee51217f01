// Package output handles the JSON boundary of the CLI: encoding read
// results and decoding the proposal generator's line-item records.
package output

import (
	"encoding/json"
	"fmt"

	"github.com/obrasoft/budgetxl/pkg/budgetxl/models"
)

// ToJSON serializes v, optionally indented.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ParseItems decodes an array of line-item input records. Validation of
// field contents is the writer's job; this only rejects malformed JSON.
func ParseItems(data []byte) ([]models.ItemInput, error) {
	var items []models.ItemInput
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	return items, nil
}
