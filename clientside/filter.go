package clientside

import (
	"fmt"
	"strings"

	"github.com/gridkit/gridkit/model"
)

// matches reports whether a row payload passes every active filter. The
// reserved global entry passes when any scanned column matches.
func (m *Model) matches(data any, filters model.FilterModel) bool {
	for columnID, fv := range filters {
		if columnID == model.GlobalFilterKey {
			if !m.matchesGlobal(data, fv) {
				return false
			}
			continue
		}
		if !matchValue(m.getValue(data, columnID), fv) {
			return false
		}
	}
	return true
}

func (m *Model) matchesGlobal(data any, fv model.FilterValue) bool {
	for _, columnID := range m.columns {
		if matchValue(m.getValue(data, columnID), fv) {
			return true
		}
	}
	return false
}

func matchValue(value any, fv model.FilterValue) bool {
	switch f := fv.(type) {
	case model.TextFilter:
		return matchText(value, f)
	case model.RangeFilter:
		return matchRange(value, f)
	case model.SetFilter:
		s := stringify(value)
		for _, allowed := range f.Values {
			if s == allowed {
				return true
			}
		}
		return false
	case model.BoolFilter:
		b, ok := value.(bool)
		return ok && b == f.Value
	default:
		return false
	}
}

func matchText(value any, f model.TextFilter) bool {
	have := strings.ToLower(stringify(value))
	want := strings.ToLower(f.Value)
	switch f.Op {
	case model.TextEquals:
		return have == want
	case model.TextStartsWith:
		return strings.HasPrefix(have, want)
	default: // TextContains
		return strings.Contains(have, want)
	}
}

func matchRange(value any, f model.RangeFilter) bool {
	n, ok := numeric(value)
	if !ok {
		return false
	}
	if f.Min != nil && n < *f.Min {
		return false
	}
	if f.Max != nil && n > *f.Max {
		return false
	}
	return true
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

func stringify(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
