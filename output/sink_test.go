package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStdout(t *testing.T) {
	memFs := afero.NewMemMapFs()
	var stdout bytes.Buffer
	sink := New(memFs, &stdout)

	require.NoError(t, sink.Write(Stdout, []byte("data")))
	assert.Equal(t, "data", stdout.String())
	assert.Equal(t, "stdout", sink.ID(Stdout))

	entries, err := afero.ReadDir(memFs, "/")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteEmptyPath(t *testing.T) {
	var stdout bytes.Buffer
	sink := New(afero.NewMemMapFs(), &stdout)

	err := sink.Write("", []byte("data"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, stdout.String())
}

func TestWriteFileTruncates(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/out/versions.c", []byte("old content that is longer"), 0o644))
	var stdout bytes.Buffer
	sink := New(memFs, &stdout)

	require.NoError(t, sink.Write("/out/versions.c", []byte("new")))
	got, err := afero.ReadFile(memFs, "/out/versions.c")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
	assert.Empty(t, stdout.String())
	assert.Equal(t, "file:/out/versions.c", sink.ID("/out/versions.c"))

	entries, err := afero.ReadDir(memFs, "/out")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "versions.c", entries[0].Name())
}

func TestWriteFileOs(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "versions.c")
	sink := New(afero.NewOsFs(), &bytes.Buffer{})

	require.NoError(t, sink.Write(dest, []byte("content")))
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "content", string(got))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())
}

func TestWriteFileMissingDir(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "versions.c")
	sink := New(afero.NewOsFs(), &bytes.Buffer{})

	err := sink.Write(dest, []byte("content"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFileReadOnly(t *testing.T) {
	sink := New(afero.NewReadOnlyFs(afero.NewMemMapFs()), &bytes.Buffer{})
	require.Error(t, sink.Write("/versions.c", []byte("content")))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, os.ErrClosed
}

func TestWriteStdoutFailure(t *testing.T) {
	sink := New(afero.NewMemMapFs(), failingWriter{})
	err := sink.Write(Stdout, []byte("data"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrClosed)
}
