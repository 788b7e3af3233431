package realtime

import (
	"encoding/json"
	"fmt"
)

type EventType string

const (
	Insert EventType = "INSERT"
	Update EventType = "UPDATE"
	Delete EventType = "DELETE"
)

// Event is one row change on a watched table.
type Event struct {
	Type      EventType      `json:"type"`
	Table     string         `json:"table"`
	Record    map[string]any `json:"record,omitempty"`
	OldRecord map[string]any `json:"old_record,omitempty"`
}

// RecordOf flattens a model into the JSON shape clients render.
func RecordOf(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("realtime: encode record: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("realtime: decode record: %w", err)
	}
	return out, nil
}

func (e Event) row() map[string]any {
	if e.Record != nil {
		return e.Record
	}
	return e.OldRecord
}

func field(row map[string]any, key string) string {
	if row == nil {
		return ""
	}
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
