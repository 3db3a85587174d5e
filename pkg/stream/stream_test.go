package stream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestDescribe(t *testing.T) {
	t.Run("regular_file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "plain.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644), "writing test file")

		d, err := Describe(path)
		require.NoError(t, err, "describing regular file")
		assert.Equal(t, KindRegularFile, d.Kind)
		assert.Equal(t, path, d.Path)
	})

	t.Run("named_pipe", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "fifo")
		require.NoError(t, unix.Mkfifo(path, 0o600), "creating fifo")

		d, err := Describe(path)
		require.NoError(t, err, "describing fifo")
		assert.Equal(t, KindNamedPipe, d.Kind)
	})

	t.Run("special_stream", func(t *testing.T) {
		d, err := Describe("/dev/null")
		require.NoError(t, err, "describing /dev/null")
		assert.Equal(t, KindSpecialStream, d.Kind)
	})

	t.Run("missing_path_errors", func(t *testing.T) {
		_, err := Describe(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err, "nonexistent path must not classify")
	})
}

func TestOpenCreate(t *testing.T) {
	t.Run("round_trip_through_descriptor", func(t *testing.T) {
		dir := t.TempDir()
		d := NewFile(filepath.Join(dir, "out.bin"))

		w, err := d.Create()
		require.NoError(t, err, "creating output")
		_, err = w.Write([]byte{0x01, 0x02, 0x03})
		require.NoError(t, err, "writing output")
		require.NoError(t, w.Close(), "closing output")

		r, err := d.Open()
		require.NoError(t, err, "opening output for read")
		defer r.Close()

		buf := make([]byte, 8)
		n, _ := r.Read(buf)
		assert.Equal(t, []byte{0x01, 0x02, 0x03}, buf[:n])
	})

	t.Run("open_missing_errors", func(t *testing.T) {
		d := NewFile(filepath.Join(t.TempDir(), "missing"))
		_, err := d.Open()
		require.Error(t, err, "opening a missing file")
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "regular file", KindRegularFile.String())
	assert.Equal(t, "named pipe", KindNamedPipe.String())
	assert.Equal(t, "special stream", KindSpecialStream.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
