package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Data categories understood by the factories.
const (
	CategoryAssets        = "assets"
	CategoryConditions    = "conditions"
	CategoryInvestigators = "investigators"
	CategoryLocations     = "locations"
	CategoryMythos        = "mythos"
)

// EncounterCategory returns the data category holding encounters of type t.
func EncounterCategory(t EncounterType) string {
	return "encounters/" + string(t)
}

// Record is one already-parsed data record, such as a card or a component.
type Record map[string]any

// Source supplies records by category. A category with no data yields an empty
// slice and no error.
type Source interface {
	Load(category string) ([]Record, error)
}

// Has reports whether key is present and non-nil.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// String returns key as a string. Numbers are formatted; other values yield "".
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Int returns key as an int, or def when absent or not numeric.
func (r Record) Int(key string, def int) int {
	if n, ok := r.IntOK(key); ok {
		return n
	}
	return def
}

// IntOK returns key as an int and whether a numeric value was present.
func (r Record) IntOK(key string) (int, bool) {
	switch v := r[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Bool returns key as a bool. The strings "true" and "false" are accepted.
func (r Record) Bool(key string, def bool) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

// Strings returns key as a string slice. A single string becomes a one-element
// slice.
func (r Record) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, x := range v {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// Record returns key as a nested record, or nil.
func (r Record) Record(key string) Record {
	return asRecord(r[key])
}

// Records returns key as a slice of nested records. Entries that are not
// records are dropped.
func (r Record) Records(key string) []Record {
	switch v := r[key].(type) {
	case []Record:
		return v
	case []map[string]any:
		out := make([]Record, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out
	case []any:
		out := make([]Record, 0, len(v))
		for _, x := range v {
			if rec := asRecord(x); rec != nil {
				out = append(out, rec)
			}
		}
		return out
	}
	return nil
}

// IntMap returns key as a map of ints, such as a skill table.
func (r Record) IntMap(key string) map[string]int {
	m := r.Record(key)
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k := range m {
		out[k] = m.Int(k, 0)
	}
	return out
}

func asRecord(v any) Record {
	switch m := v.(type) {
	case Record:
		return m
	case map[string]any:
		return m
	}
	return nil
}
