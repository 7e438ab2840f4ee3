package importlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testTime  = time.Date(2024, 3, 2, 9, 15, 0, 0, time.UTC)
	testRunID = uuid.MustParse("6f1c2d0e-8a1b-4c7d-9e2f-3a4b5c6d7e8f")
)

func testEntry() Entry {
	return Entry{
		Timestamp:    testTime,
		RunID:        testRunID,
		File:         "dbs_jan.csv",
		Bank:         "DBS",
		Transactions: 12,
		Skipped:      1,
		Status:       StatusImported,
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	data, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.Equal(t, Header+"\n2024-03-02T09:15:00Z,6f1c2d0e-8a1b-4c7d-9e2f-3a4b5c6d7e8f,dbs_jan.csv,DBS,12,1,imported,\n", string(data))
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	failed := testEntry()
	failed.File = "broken.csv"
	failed.Bank = "Generic"
	failed.Transactions = 0
	failed.Status = StatusFailed
	failed.Error = "no valid transactions found in Generic statement"
	require.NoError(t, Append(dir, []Entry{failed}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "dbs_jan.csv", entries[0].File)
	assert.Equal(t, StatusFailed, entries[1].Status)
	assert.Equal(t, "no valid transactions found in Generic statement", entries[1].Error)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, original.RunID, got.RunID)
	assert.Equal(t, original.File, got.File)
	assert.Equal(t, original.Bank, got.Bank)
	assert.Equal(t, original.Transactions, got.Transactions)
	assert.Equal(t, original.Skipped, got.Skipped)
	assert.Equal(t, original.Status, got.Status)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(Path(dir), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	good := MarshalEntry(testEntry())

	tests := []struct {
		name   string
		col    int
		value  string
		errMsg string
	}{
		{"timestamp", colTimestamp, "yesterday", "parsing timestamp"},
		{"run id", colRunID, "not-a-uuid", "parsing run ID"},
		{"transactions", colTransactions, "many", "parsing transactions"},
		{"skipped", colSkipped, "-", "parsing skipped"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := append([]string(nil), good...)
			rec[tt.col] = tt.value
			_, err := UnmarshalEntry(rec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := UnmarshalEntry([]string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 8 fields")
}

func TestNewRunID_Unique(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
}
