package record_test

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mzaytsev/trx-replay-service/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "type, client, tx, amount\ndeposit, 1, 1, 10\nwithdrawal, 1, 2, 4\n"

func TestOpen_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trx.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	src, err := record.Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 2, drain(t, src))
}

func TestOpen_GzippedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trx.csv.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(fixture))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	src, err := record.Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 2, drain(t, src))
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := record.Open(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestOpen_CorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trx.csv.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip at all"), 0o600))

	_, err := record.Open(path)
	assert.Error(t, err)
}

func drain(t *testing.T, src *record.FileSource) int {
	t.Helper()
	var n int
	for {
		_, err := src.Next()
		if err == io.EOF {
			return n
		}
		require.NoError(t, err)
		n++
	}
}
