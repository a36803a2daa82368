// Package epub3 renders the control documents of a fixed-layout EPUB 3
// container and assembles them, together with the page images, into the
// OCF archive layout.
package epub3

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"img2epub/internal/book"
)

// ErrNoPages is returned when generation is attempted on a book with an
// empty page list. A zero-page fixed-layout book has no cover, no spine
// and an undefined original resolution.
var ErrNoPages = errors.New("book has no pages")

// WriterConfig holds configuration for creating a Writer.
type WriterConfig struct {
	Book *book.Book

	// ModifiedTime is stamped into the package document as
	// dcterms:modified. Zero means the current time.
	ModifiedTime time.Time

	// Archive receives the ordered entries. Nil means an in-memory
	// zip archive.
	Archive ArchiveWriter
}

// Writer assembles a complete fixed-layout EPUB container from a Book.
// Generation is all-or-nothing: the first failure aborts the attempt and
// no partial output is usable.
type Writer struct {
	cfg WriterConfig
}

// NewWriter creates a Writer from the given configuration.
func NewWriter(cfg WriterConfig) (*Writer, error) {
	if cfg.Book == nil {
		return nil, errors.New("book is required")
	}
	if cfg.Book.PageCount() == 0 {
		return nil, ErrNoPages
	}
	return &Writer{cfg: cfg}, nil
}

// Bytes renders every control document from the current book state,
// emits all entries in the container layout order and returns the
// finished archive bytes.
func (w *Writer) Bytes() ([]byte, error) {
	cfg := w.cfg

	modified := cfg.ModifiedTime
	if modified.IsZero() {
		modified = time.Now()
	}

	archive := cfg.Archive
	if archive == nil {
		archive = NewZipArchive()
	}

	b := cfg.Book
	pages := b.Pages()
	width := pageNumberWidth(pages)

	containerXML, err := RenderContainer()
	if err != nil {
		return nil, err
	}
	pkg, err := RenderPackage(b, modified)
	if err != nil {
		return nil, err
	}
	ncx, err := RenderNCX(b)
	if err != nil {
		return nil, err
	}
	nav, err := RenderNav(b)
	if err != nil {
		return nil, err
	}

	// The mimetype entry must be first and stored uncompressed.
	if err := archive.AddEntry(MimetypePath, []byte(MimetypeContent), true); err != nil {
		return nil, err
	}
	if err := archive.AddEntry(ContainerPath, containerXML, false); err != nil {
		return nil, err
	}
	if err := archive.AddEntry(PackagePath, pkg, false); err != nil {
		return nil, err
	}
	if err := archive.AddEntry(NCXPath, ncx, false); err != nil {
		return nil, err
	}
	if err := archive.AddEntry(NavPath, nav, false); err != nil {
		return nil, err
	}
	if err := archive.AddEntry(StylesheetPath, Stylesheet(), false); err != nil {
		return nil, err
	}

	for _, p := range pages {
		doc, err := RenderPageDocument(p, width)
		if err != nil {
			return nil, err
		}
		if err := archive.AddEntry(pageDocumentPath(p.Number, width), doc, false); err != nil {
			return nil, err
		}
	}

	// Image bytes pass through untouched; they are never re-encoded.
	for _, p := range pages {
		if err := archive.AddEntry(pageImagePath(p.Number, width), p.Image, false); err != nil {
			return nil, err
		}
	}

	data, err := archive.Finalize()
	if err != nil {
		return nil, fmt.Errorf("failed to finalize container: %w", err)
	}
	return data, nil
}

// WriteTo generates the container and writes it to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	data, err := w.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, bytes.NewReader(data))
	if err != nil {
		return n, fmt.Errorf("failed to write container: %w", err)
	}
	return n, nil
}
