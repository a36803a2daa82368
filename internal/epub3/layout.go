package epub3

import (
	"fmt"

	"img2epub/internal/book"
)

// Archive layout, relative to the archive root. The mimetype entry must
// be the first entry and stored without compression; every other entry
// is deflated.
const (
	MimetypePath    = "mimetype"
	MimetypeContent = "application/epub+zip"
	ContainerPath   = "META-INF/container.xml"
	PackagePath     = "OEBPS/content.opf"
	NCXPath         = "OEBPS/toc.ncx"
	NavPath         = "OEBPS/nav.xhtml"
	StylesheetPath  = "OEBPS/styles/fixed-layout.css"

	pageDocumentDir  = "OEBPS/xhtml"
	pageImageDir     = "OEBPS/images"
	minPadding       = 3
	packageMediaType = "application/oebps-package+xml"
)

// pageNumberWidth returns the zero-padding width for page filenames:
// at least three digits, widened uniformly when the highest page number
// needs more. Cross-document references share the same width, so it is
// computed once per book.
func pageNumberWidth(pages []book.Page) int {
	max := 0
	for _, p := range pages {
		if p.Number > max {
			max = p.Number
		}
	}
	width := minPadding
	for limit := 1000; max >= limit; limit *= 10 {
		width++
	}
	return width
}

// pageBase returns the padded filename stem for page n, e.g. "page_007".
func pageBase(n, width int) string {
	return fmt.Sprintf("page_%0*d", width, n)
}

// Hrefs below are relative to the content directory (where content.opf,
// toc.ncx and nav.xhtml live).

func pageDocumentHref(n, width int) string {
	return "xhtml/" + pageBase(n, width) + ".xhtml"
}

func pageImageHref(n, width int) string {
	return "images/" + pageBase(n, width) + ".png"
}

func stylesheetHref() string {
	return "styles/fixed-layout.css"
}

// Archive entry names for page assets.

func pageDocumentPath(n, width int) string {
	return pageDocumentDir + "/" + pageBase(n, width) + ".xhtml"
}

func pageImagePath(n, width int) string {
	return pageImageDir + "/" + pageBase(n, width) + ".png"
}

// Manifest item IDs.

func pageDocumentID(n, width int) string {
	return pageBase(n, width)
}

func pageImageID(n, width int) string {
	return fmt.Sprintf("img_%0*d", width, n)
}
