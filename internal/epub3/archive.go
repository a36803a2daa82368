package epub3

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// ArchiveWriter receives named entries in order and serializes them into
// a single archive. Implementations must preserve both entry order and
// the requested per-entry storage mode exactly; OCF readers depend on
// the mimetype entry being first and uncompressed.
type ArchiveWriter interface {
	// AddEntry writes one named entry. A stored entry must be written
	// without compression.
	AddEntry(name string, data []byte, stored bool) error

	// Finalize flushes the archive and returns the finished bytes.
	// The writer is unusable afterwards.
	Finalize() ([]byte, error)
}

// zipArchive is the archive/zip-backed ArchiveWriter used by default.
type zipArchive struct {
	buf bytes.Buffer
	zw  *zip.Writer
}

// NewZipArchive returns an in-memory zip ArchiveWriter.
func NewZipArchive() ArchiveWriter {
	z := &zipArchive{}
	z.zw = zip.NewWriter(&z.buf)
	return z
}

func (z *zipArchive) AddEntry(name string, data []byte, stored bool) error {
	method := zip.Deflate
	if stored {
		method = zip.Store
	}
	w, err := z.zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: method,
	})
	if err != nil {
		return fmt.Errorf("failed to create entry %q: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write entry %q: %w", name, err)
	}
	return nil
}

func (z *zipArchive) Finalize() ([]byte, error) {
	if err := z.zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close archive: %w", err)
	}
	return z.buf.Bytes(), nil
}
