package object

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridkit/gridkit/model"
)

func snapshotNDJSON(n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, "{\"id\":%d,\"name\":\"row-%d\"}\n", i, i)
	}
	return buf.Bytes()
}

func writeSnapshot(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestSource_ServesPagesWithExactCount(t *testing.T) {
	path := writeSnapshot(t, "rows.ndjson", snapshotNDJSON(25))
	src := New(NewLocalStore(path))

	res, err := src.GetRows(context.Background(), model.GetRowsRequest{StartRow: 10, EndRow: 20})
	require.NoError(t, err)
	require.Len(t, res.Rows, 10)
	assert.True(t, res.LastRowKnown)
	assert.Equal(t, 25, res.LastRow)

	row := res.Rows[0].(map[string]any)
	assert.Equal(t, float64(10), row["id"])
}

func TestSource_PastEndReturnsEmptyPage(t *testing.T) {
	path := writeSnapshot(t, "rows.ndjson", snapshotNDJSON(5))
	src := New(NewLocalStore(path))

	res, err := src.GetRows(context.Background(), model.GetRowsRequest{StartRow: 100, EndRow: 200})
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Equal(t, 5, res.LastRow)
}

func TestSource_CompressedSnapshots(t *testing.T) {
	plain := snapshotNDJSON(12)

	encoders := map[string]func([]byte) []byte{
		"gzip": func(data []byte) []byte {
			var buf bytes.Buffer
			w := gzip.NewWriter(&buf)
			_, _ = w.Write(data)
			_ = w.Close()
			return buf.Bytes()
		},
		"zstd": func(data []byte) []byte {
			var buf bytes.Buffer
			w, err := zstd.NewWriter(&buf)
			require.NoError(t, err)
			_, _ = w.Write(data)
			_ = w.Close()
			return buf.Bytes()
		},
		"lz4": func(data []byte) []byte {
			var buf bytes.Buffer
			w := lz4.NewWriter(&buf)
			_, _ = w.Write(data)
			_ = w.Close()
			return buf.Bytes()
		},
	}

	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			path := writeSnapshot(t, "rows."+name, encode(plain))
			src := New(NewLocalStore(path))

			res, err := src.GetRows(context.Background(), model.GetRowsRequest{StartRow: 0, EndRow: 100})
			require.NoError(t, err)
			assert.Len(t, res.Rows, 12)
			assert.Equal(t, 12, res.LastRow)
		})
	}
}

func TestSource_MalformedLineFails(t *testing.T) {
	path := writeSnapshot(t, "bad.ndjson", []byte("{\"ok\":1}\nnot json\n"))
	src := New(NewLocalStore(path))

	_, err := src.GetRows(context.Background(), model.GetRowsRequest{StartRow: 0, EndRow: 10})
	assert.ErrorContains(t, err, "line 2")
}

func TestSource_FailedLoadRetries(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.ndjson")
	src := New(NewLocalStore(missing))

	_, err := src.GetRows(context.Background(), model.GetRowsRequest{StartRow: 0, EndRow: 10})
	require.Error(t, err)

	require.NoError(t, os.WriteFile(missing, snapshotNDJSON(3), 0o644))
	res, err := src.GetRows(context.Background(), model.GetRowsRequest{StartRow: 0, EndRow: 10})
	require.NoError(t, err)
	assert.Len(t, res.Rows, 3)
}
