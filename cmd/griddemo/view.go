package main

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"

	"github.com/gridkit/gridkit/datasource/rest"
	"github.com/gridkit/gridkit/gridstate"
	"github.com/gridkit/gridkit/serverside"
)

func newViewCmd() *cobra.Command {
	var (
		url       string
		blockSize int
	)
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a desktop table scrolling through a grid server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(url, blockSize)
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:8480/api/rows", "grid server endpoint")
	cmd.Flags().IntVar(&blockSize, "block-size", 100, "rows per fetched block")
	return cmd
}

func runView(url string, blockSize int) error {
	state := gridstate.New()
	m, err := serverside.New(state,
		serverside.WithBlockSize(blockSize),
		serverside.WithDataSource(rest.New(url)),
	)
	if err != nil {
		return err
	}
	defer m.Close()

	a := app.New()
	win := a.NewWindow("gridkit demo")

	table := widget.NewTable(
		func() (int, int) {
			return m.RowCount(), len(employeeColumns)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("loading…")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			row, ok := m.GetRow(id.Row)
			if !ok {
				label.SetText("…")
				// Fetch the block this cell lives in; the RowsChanged
				// subscription below repaints once it lands.
				go func(rowIdx int) {
					if err := m.EnsureRange(context.Background(), rowIdx, rowIdx+blockSize); err != nil {
						slog.Warn("ensure range failed", "row", rowIdx, "error", err)
					}
				}(id.Row)
				return
			}
			label.SetText(cellText(row.Data, employeeColumns[id.Col]))
		},
	)

	unsub := m.OnRowsChanged(func() {
		fyne.Do(table.Refresh)
	})
	defer unsub()

	// Warm up the first block so the table opens populated.
	go func() {
		if err := m.EnsureRange(context.Background(), 0, blockSize); err != nil {
			slog.Warn("initial fetch failed", "error", err)
		}
	}()

	win.SetContent(table)
	win.Resize(fyne.NewSize(640, 480))
	win.ShowAndRun()
	return nil
}

func cellText(data any, columnID string) string {
	// Rows arrive as decoded JSON objects from the rest source.
	if obj, ok := data.(map[string]any); ok {
		return fmt.Sprint(obj[columnID])
	}
	return fmt.Sprint(data)
}
