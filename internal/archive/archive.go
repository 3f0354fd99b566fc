package archive

import (
	"bytes"
	"fmt"
	"time"

	"github.com/klauspost/compress/zip"
)

// Writer assembles named documents into an in-memory ZIP archive.
// Entries keep their insertion order and share one modification time.
type Writer struct {
	buf      bytes.Buffer
	zw       *zip.Writer
	modified time.Time
	names    []string
	seen     map[string]struct{}
	closed   bool
}

// New returns a Writer stamping every entry with modified.
func New(modified time.Time) *Writer {
	w := &Writer{
		modified: modified,
		seen:     make(map[string]struct{}),
	}
	w.zw = zip.NewWriter(&w.buf)
	return w
}

// Add stores data under name using DEFLATE compression.
func (w *Writer) Add(name string, data []byte) error {
	if w.closed {
		return fmt.Errorf("archive closed")
	}
	if name == "" {
		return fmt.Errorf("empty entry name")
	}
	if _, dup := w.seen[name]; dup {
		return fmt.Errorf("duplicate entry %q", name)
	}

	fw, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: w.modified,
	})
	if err != nil {
		return fmt.Errorf("create entry %q: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("write entry %q: %w", name, err)
	}

	w.seen[name] = struct{}{}
	w.names = append(w.names, name)
	return nil
}

// Names returns entry names in insertion order.
func (w *Writer) Names() []string {
	return append([]string(nil), w.names...)
}

// Close finalizes the archive and returns its bytes.
func (w *Writer) Close() ([]byte, error) {
	if w.closed {
		return nil, fmt.Errorf("archive closed")
	}
	w.closed = true
	if err := w.zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return w.buf.Bytes(), nil
}
