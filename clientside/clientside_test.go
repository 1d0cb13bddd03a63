package clientside

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridkit/gridkit/gridstate"
	"github.com/gridkit/gridkit/model"
)

type person struct {
	Name string
	Age  int
	VIP  bool
}

func personValue(data any, columnID string) any {
	p := data.(person)
	switch columnID {
	case "name":
		return p.Name
	case "age":
		return p.Age
	case "vip":
		return p.VIP
	default:
		return nil
	}
}

func testPeople() []any {
	return []any{
		person{"Dana", 41, true},
		person{"alice", 30, false},
		person{"Bob", 25, true},
		person{"carol", 35, false},
	}
}

func newPeopleModel(state *gridstate.State) *Model {
	m := New(state, []string{"name", "age"}, personValue)
	m.SetRowData(testPeople())
	return m
}

func TestClientside_UnfilteredKeepsDataOrder(t *testing.T) {
	m := newPeopleModel(gridstate.New())

	assert.Equal(t, 4, m.RowCount())
	row, ok := m.GetRow(0)
	require.True(t, ok)
	assert.Equal(t, "Dana", row.Data.(person).Name)
	assert.Equal(t, 0, row.Index)
	assert.NoError(t, m.EnsureRange(context.Background(), 0, 100))
}

func TestClientside_SortModel(t *testing.T) {
	state := gridstate.New()
	m := newPeopleModel(state)

	state.SetSortModel([]model.SortColumn{{ColumnID: "age", Direction: model.SortAscending}})
	m.Apply()

	var ages []int
	m.ForEachRow(func(r model.Row) { ages = append(ages, r.Data.(person).Age) })
	assert.Equal(t, []int{25, 30, 35, 41}, ages)

	state.SetSortModel([]model.SortColumn{{ColumnID: "name", Direction: model.SortDescending}})
	m.Apply()
	row, ok := m.GetRow(0)
	require.True(t, ok)
	assert.Equal(t, "Dana", row.Data.(person).Name, "case-insensitive descending")
}

func TestClientside_ColumnFilters(t *testing.T) {
	state := gridstate.New()
	m := newPeopleModel(state)

	minAge := 30.0
	state.SetFilter("age", model.RangeFilter{Min: &minAge})
	m.Apply()
	assert.Equal(t, 3, m.RowCount())

	state.SetFilter("vip", model.BoolFilter{Value: true})
	m.Apply()
	assert.Equal(t, 1, m.RowCount())
	row, _ := m.GetRow(0)
	assert.Equal(t, "Dana", row.Data.(person).Name)

	state.SetFilter("age", nil)
	state.SetFilter("vip", nil)
	state.SetFilter("name", model.SetFilter{Values: []string{"Bob", "carol"}})
	m.Apply()
	assert.Equal(t, 2, m.RowCount())
}

func TestClientside_GlobalFilterScansColumns(t *testing.T) {
	state := gridstate.New()
	m := newPeopleModel(state)

	state.SetGlobalFilter("3")
	m.Apply()

	// Matches ages 30 and 35 via the age column.
	assert.Equal(t, 2, m.RowCount())
	assert.True(t, m.IsVisible(1))
	assert.False(t, m.IsVisible(0))
}

func TestClientside_StableIDsAcrossSort(t *testing.T) {
	state := gridstate.New()
	m := newPeopleModel(state)

	row, ok := m.GetRow(2) // Bob, underlying index 2
	require.True(t, ok)
	id := row.ID

	state.SetSortModel([]model.SortColumn{{ColumnID: "age", Direction: model.SortAscending}})
	m.Apply()

	got, ok := m.GetRowByID(id)
	require.True(t, ok)
	assert.Equal(t, "Bob", got.Data.(person).Name)
	assert.Equal(t, 0, got.Index, "Bob is youngest, so first in display order")
}

func TestClientside_Notifications(t *testing.T) {
	m := New(gridstate.New(), []string{"name"}, personValue)

	calls := 0
	unsub := m.OnRowsChanged(func() { calls++ })
	defer unsub()

	m.SetRowData(testPeople())
	m.Apply()
	assert.Equal(t, 2, calls)
}
