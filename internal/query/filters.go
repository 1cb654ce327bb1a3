package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadFilters marks an unparseable structured filters parameter; it
// must fail the request instead of silently dropping the filter.
var ErrBadFilters = errors.New("malformed filters parameter")

// FieldFilter is one {field, value} pair of the structured filters
// parameter a generic list-view client sends. Extra keys (operator,
// etc.) are ignored.
type FieldFilter struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

type Filters []FieldFilter

// ParseFilters decodes the raw filters query parameter, a serialized
// JSON array of field/value pairs. Empty input means no structured
// filters.
func ParseFilters(raw string) (Filters, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var fs Filters
	if err := json.Unmarshal([]byte(raw), &fs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFilters, err)
	}
	return fs, nil
}

// Value returns the first value for the named field as a string, ""
// when absent. JSON numbers come back integral when they are.
func (fs Filters) Value(field string) string {
	for _, f := range fs {
		if f.Field != field || f.Value == nil {
			continue
		}
		switch v := f.Value.(type) {
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}

// Pick applies the precedence rule between a direct query parameter and
// the equivalent structured filter: the direct parameter wins.
func Pick(direct string, fs Filters, field string) string {
	if strings.TrimSpace(direct) != "" {
		return direct
	}
	return fs.Value(field)
}
