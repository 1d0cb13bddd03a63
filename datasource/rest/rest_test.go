package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridkit/gridkit/model"
)

// newRowsServer serves a fixed-size data set of "row-<i>" items over the
// wire protocol the Source speaks.
func newRowsServer(t *testing.T, totalRows int) (*httptest.Server, *[]model.GetRowsRequest) {
	t.Helper()

	var seen []model.GetRowsRequest
	r := chi.NewRouter()
	r.Post("/api/rows", func(w http.ResponseWriter, req *http.Request) {
		var in model.GetRowsRequest
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		seen = append(seen, in)

		end := in.EndRow
		if end > totalRows {
			end = totalRows
		}
		out := model.GetRowsResult{}
		for i := in.StartRow; i < end; i++ {
			out.Rows = append(out.Rows, fmt.Sprintf("row-%d", i))
		}
		if in.EndRow >= totalRows {
			out.LastRow = totalRows
			out.LastRowKnown = true
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestSource_GetRows(t *testing.T) {
	srv, _ := newRowsServer(t, 1000)
	src := New(srv.URL + "/api/rows")

	res, err := src.GetRows(context.Background(), model.GetRowsRequest{StartRow: 10, EndRow: 13})
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, "row-10", res.Rows[0])
	assert.False(t, res.LastRowKnown)
}

func TestSource_ReportsLastRow(t *testing.T) {
	srv, _ := newRowsServer(t, 42)
	src := New(srv.URL + "/api/rows")

	res, err := src.GetRows(context.Background(), model.GetRowsRequest{StartRow: 0, EndRow: 100})
	require.NoError(t, err)
	assert.Len(t, res.Rows, 42)
	assert.True(t, res.LastRowKnown)
	assert.Equal(t, 42, res.LastRow)
}

func TestSource_ForwardsSortAndFilterState(t *testing.T) {
	srv, seen := newRowsServer(t, 100)
	src := New(srv.URL + "/api/rows")

	req := model.GetRowsRequest{
		StartRow:  0,
		EndRow:    10,
		SortModel: []model.SortColumn{{ColumnID: "age", Direction: model.SortDescending}},
		FilterModel: model.FilterModel{
			"name":                model.TextFilter{Op: model.TextContains, Value: "an"},
			model.GlobalFilterKey: model.TextFilter{Op: model.TextContains, Value: "x"},
		},
	}
	_, err := src.GetRows(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, *seen, 1)
	got := (*seen)[0]
	assert.Equal(t, req.SortModel, got.SortModel)
	assert.Equal(t, req.FilterModel, got.FilterModel)
}

func TestSource_ServerErrorPropagates(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/rows", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "db down", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	src := New(srv.URL + "/api/rows")
	_, err := src.GetRows(context.Background(), model.GetRowsRequest{StartRow: 0, EndRow: 10})
	assert.ErrorContains(t, err, "500")
}

func TestSource_HeaderOption(t *testing.T) {
	var auth string
	r := chi.NewRouter()
	r.Post("/api/rows", func(w http.ResponseWriter, req *http.Request) {
		auth = req.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rows":[]}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	src := New(srv.URL+"/api/rows", WithHeader("Authorization", "Bearer tok"), WithRateLimit(100, 1))
	_, err := src.GetRows(context.Background(), model.GetRowsRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", auth)
}
