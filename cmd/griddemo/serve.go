package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/gridkit/gridkit/clientside"
	"github.com/gridkit/gridkit/gridstate"
	"github.com/gridkit/gridkit/model"
)

func newServeCmd() *cobra.Command {
	var (
		addr string
		size int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a generated employee data set over the rest wire protocol",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, size)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8480", "listen address")
	cmd.Flags().IntVar(&size, "rows", 100000, "generated data set size")
	return cmd
}

func runServe(addr string, size int) error {
	dataset := makeDataset(size)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/api/rows", func(w http.ResponseWriter, req *http.Request) {
		var in model.GetRowsRequest
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// The client-side model is the server's query engine here: filter
		// and sort the data set under the request's state, then page.
		state := gridstate.New()
		state.SetSortModel(in.SortModel)
		for col, fv := range in.FilterModel {
			state.SetFilter(col, fv)
		}
		view := clientside.New(state, employeeColumns, employeeValue)
		view.SetRowData(dataset)

		total := view.RowCount()
		out := model.GetRowsResult{LastRow: total, LastRowKnown: true}
		for i := in.StartRow; i < in.EndRow && i < total; i++ {
			row, ok := view.GetRow(i)
			if !ok {
				break
			}
			out.Rows = append(out.Rows, row.Data)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			slog.Error("encode rows response", "error", err)
		}
	})

	slog.Info("grid server listening", "addr", addr, "rows", size)
	return http.ListenAndServe(addr, r)
}
