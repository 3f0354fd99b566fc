package archive

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, data []byte) (names []string, contents map[string]string, methods map[string]uint16) {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	contents = map[string]string{}
	methods = map[string]uint16{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		names = append(names, f.Name)
		contents[f.Name] = string(b)
		methods[f.Name] = f.Method
	}
	return names, contents, methods
}

func TestWriter(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	t.Run("writes entries in order with deflate", func(t *testing.T) {
		t.Parallel()

		w := New(stamp)
		require.NoError(t, w.Add("index.html", []byte("<html>index</html>")))
		require.NoError(t, w.Add("A-1.html", []byte("<html>a1</html>")))
		require.NoError(t, w.Add("A-2.html", []byte("<html>a2</html>")))

		assert.Equal(t, []string{"index.html", "A-1.html", "A-2.html"}, w.Names())

		data, err := w.Close()
		require.NoError(t, err)

		names, contents, methods := readEntries(t, data)
		assert.Equal(t, []string{"index.html", "A-1.html", "A-2.html"}, names)
		assert.Equal(t, "<html>a2</html>", contents["A-2.html"])
		for _, m := range methods {
			assert.Equal(t, zip.Deflate, m)
		}
	})

	t.Run("same input yields identical bytes", func(t *testing.T) {
		t.Parallel()

		build := func() []byte {
			w := New(stamp)
			require.NoError(t, w.Add("index.html", []byte("x")))
			data, err := w.Close()
			require.NoError(t, err)
			return data
		}
		assert.Equal(t, build(), build())
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		t.Parallel()

		w := New(stamp)
		require.NoError(t, w.Add("A-1.html", nil))
		err := w.Add("A-1.html", nil)
		require.Error(t, err)
		assert.EqualError(t, err, `duplicate entry "A-1.html"`)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		t.Parallel()

		w := New(stamp)
		assert.EqualError(t, w.Add("", nil), "empty entry name")
	})

	t.Run("rejects use after close", func(t *testing.T) {
		t.Parallel()

		w := New(stamp)
		_, err := w.Close()
		require.NoError(t, err)

		assert.EqualError(t, w.Add("late.html", nil), "archive closed")
		_, err = w.Close()
		assert.EqualError(t, err, "archive closed")
	})

	t.Run("empty archive is valid", func(t *testing.T) {
		t.Parallel()

		data, err := New(stamp).Close()
		require.NoError(t, err)

		names, _, _ := readEntries(t, data)
		assert.Empty(t, names)
	})
}
