package leads

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cristianoliveira/leadnexus/internal/domain"
)

// ReadJSON decodes a lead list. It accepts a bare array, a search response
// envelope ({"data": [...]} or {"items": [...]}) and grouped search data
// ({"company_name": ..., "leads": [...]}), which is flattened.
func ReadJSON(r io.Reader) ([]domain.Record, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	records, _, err := decodeLeads(body)
	return records, err
}

func decodeLeads(body []byte) ([]domain.Record, int, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []domain.Record{}, 0, nil
	}

	var items []json.RawMessage
	total := -1
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, 0, err
		}
	case '{':
		var env searchResponse
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, 0, err
		}
		items = env.Data
		if items == nil {
			items = env.Items
		}
		total = env.Total
	default:
		return nil, 0, errors.New("expected a JSON array or object")
	}

	records := make([]domain.Record, 0, len(items))
	for i, raw := range items {
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, 0, fmt.Errorf("item %d: %w", i, err)
		}
		if nested, ok := obj["leads"].([]any); ok {
			for _, n := range nested {
				if m, ok := n.(map[string]any); ok {
					records = append(records, domain.Record(m))
				}
			}
			continue
		}
		records = append(records, domain.Record(obj))
	}
	if total < 0 {
		total = len(records)
	}
	return records, total, nil
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []domain.Record) error {
	if records == nil {
		records = []domain.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
