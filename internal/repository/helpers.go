package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique index violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unique") ||
		strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "already exists")
}

// recordID converts a SurrealDB id (which may be a RecordID object) to the
// canonical "table:id" string.
func recordID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
	case map[string]interface{}:
		if tb, ok := v["tb"].(string); ok {
			if id, ok := v["id"].(string); ok {
				return tb + ":" + id
			}
		}
	}

	if data, err := json.Marshal(id); err == nil {
		var rid models.RecordID
		if err := json.Unmarshal(data, &rid); err == nil {
			return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
		}
	}
	return ""
}

// parseTime handles the time encodings the SurrealDB client may return.
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// decodeRow converts one query row into a struct. SurrealDB ids and record
// references are normalized to strings first, then the row goes through a
// JSON round trip into the target type.
func decodeRow[T any](row interface{}) (*T, error) {
	data, ok := row.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	normalized := make(map[string]interface{}, len(data))
	for k, v := range data {
		normalized[k] = normalizeValue(v)
	}

	jsonBytes, err := json.Marshal(normalized)
	if err != nil {
		return nil, err
	}

	out := new(T)
	if err := json.Unmarshal(jsonBytes, out); err != nil {
		return nil, err
	}
	return out, nil
}

// normalizeValue rewrites RecordID values (and lists of them) as strings and
// datetimes as RFC 3339 so the JSON round trip in decodeRow succeeds.
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case models.RecordID, *models.RecordID:
		return recordID(t)
	case models.CustomDateTime:
		return t.Time.Format(time.RFC3339Nano)
	case *models.CustomDateTime:
		if t != nil {
			return t.Time.Format(time.RFC3339Nano)
		}
		return nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = normalizeValue(item)
		}
		return out
	case map[string]interface{}:
		// Bare {"tb": ..., "id": ...} maps are record references.
		if rid := recordID(t); rid != "" {
			return rid
		}
		out := make(map[string]interface{}, len(t))
		for k, item := range t {
			out[k] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}

// rowString extracts a string field from a raw row.
func rowString(row interface{}, key string) string {
	if m, ok := row.(map[string]interface{}); ok {
		switch v := m[key].(type) {
		case string:
			return v
		default:
			return recordID(m[key])
		}
	}
	return ""
}
