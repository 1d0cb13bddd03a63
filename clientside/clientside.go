// Package clientside implements the in-memory row model strategy: the host
// hands over the full data set once, and filtering and sorting run locally.
//
// The model keeps a roaring bitmap of the underlying row indexes that pass
// the current filter model, then derives the display order by sorting the
// surviving rows under the current sort model. Apply recomputes both; the
// surrounding grid layer calls it whenever it mutates the grid state.
package clientside

import (
	"context"
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/gridkit/gridkit/event"
	"github.com/gridkit/gridkit/gridstate"
	"github.com/gridkit/gridkit/model"
)

// ValueGetter extracts the cell value of a column from a row payload.
type ValueGetter func(data any, columnID string) any

// Model is the client-side row model.
type Model struct {
	state    *gridstate.State
	columns  []string
	getValue ValueGetter
	events   *event.Emitter

	mu      sync.RWMutex
	data    []any
	visible *roaring.Bitmap
	// order maps display index to underlying row index, post filter+sort.
	order []uint32
}

var _ model.RowModel = (*Model)(nil)

// New creates a client-side model. columns lists the column IDs the global
// filter scans; getValue resolves cell values for filtering and sorting.
func New(state *gridstate.State, columns []string, getValue ValueGetter) *Model {
	return &Model{
		state:    state,
		columns:  columns,
		getValue: getValue,
		events:   event.NewEmitter(),
		visible:  roaring.New(),
	}
}

// SetRowData replaces the full data set and re-applies filter and sort.
func (m *Model) SetRowData(data []any) {
	m.mu.Lock()
	m.data = append([]any(nil), data...)
	m.applyLocked()
	m.mu.Unlock()
	m.events.Notify()
}

// Apply recomputes the filtered and sorted view against the current grid
// state. Call it after mutating sort or filter state.
func (m *Model) Apply() {
	m.mu.Lock()
	m.applyLocked()
	m.mu.Unlock()
	m.events.Notify()
}

func (m *Model) applyLocked() {
	filters := m.state.FilterModel()
	sortModel := m.state.SortModel()

	m.visible = roaring.New()
	for i, row := range m.data {
		if m.matches(row, filters) {
			m.visible.Add(uint32(i))
		}
	}

	m.order = m.visible.ToArray()
	m.sortOrder(sortModel)
}

// GetRow returns the row at the given display index.
func (m *Model) GetRow(index int) (model.Row, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if index < 0 || index >= len(m.order) {
		return model.Row{}, false
	}
	underlying := m.order[index]
	return m.rowAt(index, underlying), true
}

// GetRowByID returns the displayed row with the given generated ID. IDs are
// stable across filter and sort changes because they derive from the
// underlying index.
func (m *Model) GetRowByID(id string) (model.Row, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for display, underlying := range m.order {
		if clientRowID(underlying) == id {
			return m.rowAt(display, underlying), true
		}
	}
	return model.Row{}, false
}

// RowCount returns the number of rows passing the current filter.
func (m *Model) RowCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// ForEachRow visits every displayed row in display order.
func (m *Model) ForEachRow(fn func(model.Row)) {
	m.mu.RLock()
	rows := make([]model.Row, len(m.order))
	for display, underlying := range m.order {
		rows[display] = m.rowAt(display, underlying)
	}
	m.mu.RUnlock()

	for _, row := range rows {
		fn(row)
	}
}

// EnsureRange is a no-op: every row is already resident.
func (m *Model) EnsureRange(ctx context.Context, startRow, endRow int) error {
	return nil
}

// IsVisible reports whether the underlying row index passes the current
// filter.
func (m *Model) IsVisible(underlying int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return underlying >= 0 && m.visible.Contains(uint32(underlying))
}

// OnRowsChanged subscribes to change notifications fired by SetRowData and
// Apply. The returned function unsubscribes.
func (m *Model) OnRowsChanged(fn func()) (unsubscribe func()) {
	return m.events.Subscribe(fn)
}

func (m *Model) rowAt(display int, underlying uint32) model.Row {
	return model.Row{
		ID:    clientRowID(underlying),
		Index: display,
		Data:  m.data[underlying],
	}
}

func clientRowID(underlying uint32) string {
	return fmt.Sprintf("client_%d", underlying)
}
