package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXWriterCreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "namespaces.xlsx")
	w := NewXLSXWriter(path)

	snap := testSnapshot()
	require.NoError(t, w.Write(context.Background(), BuildReport(snap)))

	snap.TakenAt = snap.TakenAt.Add(time.Hour)
	snap.Namespaces = snap.Namespaces[:1]
	require.NoError(t, w.Write(context.Background(), BuildReport(snap)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{NamespacesSheet, HistorySheet}, f.GetSheetList())

	rows, err := f.GetRows(NamespacesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "second write replaces the namespace rows")
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, []string{"VRSC", "VRSC", "i5w5MuNik5NtLcYmNzcvaoixooEebB6MGV", "100", "VRSC", "41", "3", "1"}, rows[1])
	assert.Equal(t, "Bridge.vETH", rows[2][0])
	assert.Equal(t, "0.5", rows[2][3])

	history, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "Taken At", history[0][0])
	assert.Equal(t, []string{"2026-05-01 12:00:00", "verus", "2", "1", "VRSC"}, history[1])
	assert.Equal(t, []string{"2026-05-01 13:00:00", "verus", "1", "0", "VRSC"}, history[2])
}

func TestXLSXWriterHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewXLSXWriter(filepath.Join(t.TempDir(), "x.xlsx")).Write(ctx, BuildReport(testSnapshot()))
	assert.ErrorIs(t, err, context.Canceled)
}
