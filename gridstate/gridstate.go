// Package gridstate holds the externally-mutated sort, filter and column
// visibility state of a grid, and snapshots it into source-agnostic requests.
//
// The state is deliberately passive: changing the sort model does not refresh
// any row model. The surrounding grid layer decides when a state change
// warrants a Refresh on the model it drives.
package gridstate

import (
	"sync"

	"github.com/gridkit/gridkit/model"
)

// State is a thread-safe holder of the grid's current sort model, filter
// model and column visibility.
type State struct {
	mu         sync.RWMutex
	sortModel  []model.SortColumn
	filters    model.FilterModel
	visibility map[string]bool
}

// New creates an empty State.
func New() *State {
	return &State{
		filters:    make(model.FilterModel),
		visibility: nil,
	}
}

// SetSortModel replaces the ordered sort model.
func (s *State) SetSortModel(cols []model.SortColumn) {
	s.mu.Lock()
	s.sortModel = append([]model.SortColumn(nil), cols...)
	s.mu.Unlock()
}

// SortModel returns a copy of the current sort model.
func (s *State) SortModel() []model.SortColumn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.SortColumn(nil), s.sortModel...)
}

// SetFilter sets or replaces the filter for a column. A nil value clears it.
func (s *State) SetFilter(columnID string, fv model.FilterValue) {
	s.mu.Lock()
	if fv == nil {
		delete(s.filters, columnID)
	} else {
		s.filters[columnID] = fv
	}
	s.mu.Unlock()
}

// SetGlobalFilter sets the global/quick filter. An empty text clears it.
func (s *State) SetGlobalFilter(text string) {
	if text == "" {
		s.SetFilter(model.GlobalFilterKey, nil)
		return
	}
	s.SetFilter(model.GlobalFilterKey, model.TextFilter{Op: model.TextContains, Value: text})
}

// FilterModel returns a copy of the current filter model.
func (s *State) FilterModel() model.FilterModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters.Clone()
}

// SetColumnVisible records whether a column is shown.
func (s *State) SetColumnVisible(columnID string, visible bool) {
	s.mu.Lock()
	if s.visibility == nil {
		s.visibility = make(map[string]bool)
	}
	s.visibility[columnID] = visible
	s.mu.Unlock()
}

// Snapshot builds the request a data source receives for [startRow, endRow).
// The returned request owns copies of all state so the caller may keep
// mutating the State while a fetch is in flight.
func (s *State) Snapshot(startRow, endRow int) model.GetRowsRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req := model.GetRowsRequest{
		StartRow: startRow,
		EndRow:   endRow,
	}
	if len(s.sortModel) > 0 {
		req.SortModel = append([]model.SortColumn(nil), s.sortModel...)
	}
	if len(s.filters) > 0 {
		req.FilterModel = s.filters.Clone()
	}
	if s.visibility != nil {
		vis := make(map[string]bool, len(s.visibility))
		for k, v := range s.visibility {
			vis[k] = v
		}
		req.ColumnVisibility = vis
	}
	return req
}
