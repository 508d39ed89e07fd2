package models

import "time"

// EntityRecord is one row of a local entity table. The library keeps server
// entities as opaque JSON documents keyed by entity id; the reader UI and the
// sync engine never merge fields, a newer Data always replaces the whole row.
type EntityRecord struct {
	EntityType EntityType     `json:"entity_type"`
	ID         string         `json:"id"`
	Data       map[string]any `json:"data"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// ProgressValue extracts the reading-progress fraction from an entity data
// map. ok is false when the map has no numeric "progress" field.
func ProgressValue(data map[string]any) (float64, bool) {
	if data == nil {
		return 0, false
	}
	v, exists := data["progress"]
	if !exists {
		return 0, false
	}

	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
