package gridstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridkit/gridkit/model"
)

func TestState_SnapshotCopiesState(t *testing.T) {
	s := New()
	s.SetSortModel([]model.SortColumn{{ColumnID: "age", Direction: model.SortDescending}})
	s.SetFilter("name", model.TextFilter{Op: model.TextContains, Value: "an"})
	s.SetColumnVisible("secret", false)

	req := s.Snapshot(100, 200)
	assert.Equal(t, 100, req.StartRow)
	assert.Equal(t, 200, req.EndRow)
	require.Len(t, req.SortModel, 1)
	assert.Equal(t, "age", req.SortModel[0].ColumnID)
	assert.Equal(t, model.TextFilter{Op: model.TextContains, Value: "an"}, req.FilterModel["name"])
	assert.False(t, req.ColumnVisibility["secret"])

	// Mutations after the snapshot must not leak into it.
	s.SetSortModel(nil)
	s.SetFilter("name", nil)
	require.Len(t, req.SortModel, 1)
	assert.Contains(t, req.FilterModel, "name")
}

func TestState_GlobalFilter(t *testing.T) {
	s := New()
	s.SetGlobalFilter("smith")

	req := s.Snapshot(0, 10)
	fv, ok := req.FilterModel[model.GlobalFilterKey]
	require.True(t, ok)
	assert.Equal(t, model.TextFilter{Op: model.TextContains, Value: "smith"}, fv)

	s.SetGlobalFilter("")
	req = s.Snapshot(0, 10)
	assert.NotContains(t, req.FilterModel, model.GlobalFilterKey)
}

func TestState_EmptySnapshotOmitsModels(t *testing.T) {
	req := New().Snapshot(0, 50)
	assert.Nil(t, req.SortModel)
	assert.Nil(t, req.FilterModel)
	assert.Nil(t, req.ColumnVisibility)
}
