package basecamp

import (
	"github.com/pkg/errors"

	"github.com/cfmeyers/tenzing/internal/model"
)

// dockEntryID finds the id of the dock entry with the given name in a
// project record. Every project carries a dock listing its tools.
func dockEntryID(project model.Record, name string) (int64, error) {
	dock, ok := project["dock"].([]any)
	if !ok {
		return 0, errors.New("record has no dock")
	}
	for _, raw := range dock {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if entry["name"] == name {
			if id, ok := asInt64(entry["id"]); ok {
				return id, nil
			}
			return 0, errors.Errorf("dock entry %q has no id", name)
		}
	}
	return 0, errors.Errorf("dock has no %q entry", name)
}

// bucketID returns the id of the record's enclosing bucket (its project).
func bucketID(rec model.Record) (int64, error) {
	bucket, ok := rec["bucket"].(map[string]any)
	if !ok {
		return 0, errors.New("record has no bucket")
	}
	id, ok := asInt64(bucket["id"])
	if !ok {
		return 0, errors.New("bucket has no id")
	}
	return id, nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
