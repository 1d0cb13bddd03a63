package clientside

import (
	"sort"
	"strings"

	"github.com/gridkit/gridkit/model"
)

// sortOrder stable-sorts the display order under the given multi-column sort
// model. Rows comparing equal on every sort column keep their data order.
func (m *Model) sortOrder(sortModel []model.SortColumn) {
	if len(sortModel) == 0 {
		return
	}
	sort.SliceStable(m.order, func(i, j int) bool {
		a, b := m.data[m.order[i]], m.data[m.order[j]]
		for _, col := range sortModel {
			c := compareValues(m.getValue(a, col.ColumnID), m.getValue(b, col.ColumnID))
			if c == 0 {
				continue
			}
			if col.Direction == model.SortDescending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compareValues orders two cell values: numerically when both sides are
// numeric, case-insensitively as strings otherwise. Nil sorts first.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if na, ok := numeric(a); ok {
		if nb, ok := numeric(b); ok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(strings.ToLower(stringify(a)), strings.ToLower(stringify(b)))
}
