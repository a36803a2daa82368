package epub3

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"img2epub/internal/book"
)

// The control documents are modelled as explicit element trees and
// rendered through encoding/xml, so user-supplied metadata is escaped
// centrally at the marshal boundary rather than by caller discipline.

const (
	containerNS = "urn:oasis:names:tc:opendocument:xmlns:container"
	opfNS       = "http://www.idpf.org/2007/opf"
	dcNS        = "http://purl.org/dc/elements/1.1/"
	ncxNS       = "http://www.daisy.org/z3986/2005/ncx/"
	xhtmlNS     = "http://www.w3.org/1999/xhtml"
	epubNS      = "http://www.idpf.org/2007/ops"

	xhtmlDoctype = "<!DOCTYPE html>\n"

	// modifiedTimeFormat is the dcterms:modified shape: UTC, no
	// sub-second precision.
	modifiedTimeFormat = "2006-01-02T15:04:05Z"
)

// --- container.xml ---

type containerDescriptor struct {
	XMLName   xml.Name        `xml:"container"`
	Version   string          `xml:"version,attr"`
	Xmlns     string          `xml:"xmlns,attr"`
	Rootfiles []containerRoot `xml:"rootfiles>rootfile"`
}

type containerRoot struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// RenderContainer returns META-INF/container.xml, which points OCF
// readers at the package document.
func RenderContainer() ([]byte, error) {
	doc := containerDescriptor{
		Version: "1.0",
		Xmlns:   containerNS,
		Rootfiles: []containerRoot{
			{FullPath: PackagePath, MediaType: packageMediaType},
		},
	}
	return marshalDocument(doc, "")
}

// --- content.opf ---

type packageDocument struct {
	XMLName  xml.Name        `xml:"package"`
	Xmlns    string          `xml:"xmlns,attr"`
	Version  string          `xml:"version,attr"`
	UniqueID string          `xml:"unique-identifier,attr"`
	Metadata packageMetadata `xml:"metadata"`
	Manifest packageManifest `xml:"manifest"`
	Spine    packageSpine    `xml:"spine"`
	Guide    packageGuide    `xml:"guide"`
}

type packageMetadata struct {
	XmlnsDC    string        `xml:"xmlns:dc,attr"`
	Identifier dcIdentifier  `xml:"dc:identifier"`
	Title      string        `xml:"dc:title"`
	Language   string        `xml:"dc:language"`
	Creator    string        `xml:"dc:creator"`
	Metas      []packageMeta `xml:"meta"`
}

type dcIdentifier struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

type packageMeta struct {
	Name     string `xml:"name,attr,omitempty"`
	Content  string `xml:"content,attr,omitempty"`
	Property string `xml:"property,attr,omitempty"`
	Value    string `xml:",chardata"`
}

type packageManifest struct {
	Items []manifestItem `xml:"item"`
}

type manifestItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr,omitempty"`
}

type packageSpine struct {
	TOC      string         `xml:"toc,attr"`
	ItemRefs []spineItemRef `xml:"itemref"`
}

type spineItemRef struct {
	IDRef      string `xml:"idref,attr"`
	Properties string `xml:"properties,attr,omitempty"`
}

type packageGuide struct {
	References []guideReference `xml:"reference"`
}

type guideReference struct {
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
	Href  string `xml:"href,attr"`
}

// RenderPackage returns the package document (content.opf) for the book,
// stamped with the given dcterms:modified time.
func RenderPackage(b *book.Book, modified time.Time) ([]byte, error) {
	pages := b.Pages()
	width := pageNumberWidth(pages)
	maxW, maxH := b.MaxDimensions()

	metadata := packageMetadata{
		XmlnsDC:    dcNS,
		Identifier: dcIdentifier{ID: "book-id", Value: "urn:uuid:" + b.Identifier()},
		Title:      b.Title,
		Language:   b.Language,
		Creator:    b.Author,
		Metas: []packageMeta{
			{Property: "dcterms:modified", Value: modified.UTC().Format(modifiedTimeFormat)},
			{Property: "rendition:layout", Value: "pre-paginated"},
			{Property: "rendition:orientation", Value: "portrait"},
			{Property: "rendition:spread", Value: "none"},
			{Name: "original-resolution", Content: fmt.Sprintf("%dx%d", maxW, maxH)},
		},
	}

	manifest := packageManifest{
		Items: []manifestItem{
			{ID: "css", Href: stylesheetHref(), MediaType: "text/css"},
			{ID: "ncx", Href: "toc.ncx", MediaType: "application/x-dtbncx+xml"},
			{ID: "nav", Href: "nav.xhtml", MediaType: "application/xhtml+xml", Properties: "nav"},
		},
	}
	for _, p := range pages {
		manifest.Items = append(manifest.Items, manifestItem{
			ID:        pageDocumentID(p.Number, width),
			Href:      pageDocumentHref(p.Number, width),
			MediaType: "application/xhtml+xml",
		})
	}
	for i, p := range pages {
		item := manifestItem{
			ID:        pageImageID(p.Number, width),
			Href:      pageImageHref(p.Number, width),
			MediaType: "image/png",
		}
		// The first page's image doubles as the cover.
		if i == 0 {
			item.Properties = "cover-image"
		}
		manifest.Items = append(manifest.Items, item)
	}

	spine := packageSpine{TOC: "ncx"}
	for _, p := range pages {
		spine.ItemRefs = append(spine.ItemRefs, spineItemRef{
			IDRef:      pageDocumentID(p.Number, width),
			Properties: "rendition:layout-pre-paginated rendition:spread-none",
		})
	}

	guide := packageGuide{}
	if len(pages) > 0 {
		guide.References = []guideReference{
			{Type: "cover", Title: "Cover", Href: pageDocumentHref(pages[0].Number, width)},
		}
		// Legacy readers find the cover through meta name="cover".
		metadata.Metas = append(metadata.Metas, packageMeta{
			Name:    "cover",
			Content: pageImageID(pages[0].Number, width),
		})
	}

	doc := packageDocument{
		Xmlns:    opfNS,
		Version:  "3.0",
		UniqueID: "book-id",
		Metadata: metadata,
		Manifest: manifest,
		Spine:    spine,
		Guide:    guide,
	}
	return marshalDocument(doc, "")
}

// --- toc.ncx ---

type ncxDocument struct {
	XMLName  xml.Name  `xml:"ncx"`
	Xmlns    string    `xml:"xmlns,attr"`
	Version  string    `xml:"version,attr"`
	Head     ncxHead   `xml:"head"`
	DocTitle ncxText   `xml:"docTitle"`
	NavMap   ncxNavMap `xml:"navMap"`
}

type ncxHead struct {
	Metas []ncxMeta `xml:"meta"`
}

type ncxMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type ncxText struct {
	Text string `xml:"text"`
}

type ncxNavMap struct {
	Points []ncxNavPoint `xml:"navPoint"`
}

type ncxNavPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     ncxText    `xml:"navLabel"`
	Content   ncxContent `xml:"content"`
}

type ncxContent struct {
	Src string `xml:"src,attr"`
}

// RenderNCX returns the legacy navigation-control document (toc.ncx):
// one navPoint per page in page order.
func RenderNCX(b *book.Book) ([]byte, error) {
	pages := b.Pages()
	width := pageNumberWidth(pages)

	maxPage := 0
	for _, p := range pages {
		if p.Number > maxPage {
			maxPage = p.Number
		}
	}

	doc := ncxDocument{
		Xmlns:   ncxNS,
		Version: "2005-1",
		Head: ncxHead{Metas: []ncxMeta{
			{Name: "dtb:uid", Content: "urn:uuid:" + b.Identifier()},
			{Name: "dtb:depth", Content: "1"},
			{Name: "dtb:totalPageCount", Content: fmt.Sprintf("%d", len(pages))},
			{Name: "dtb:maxPageNumber", Content: fmt.Sprintf("%d", maxPage)},
		}},
		DocTitle: ncxText{Text: b.Title},
	}
	for i, p := range pages {
		doc.NavMap.Points = append(doc.NavMap.Points, ncxNavPoint{
			ID:        "navpoint-" + pageBase(p.Number, width),
			PlayOrder: i + 1,
			Label:     ncxText{Text: fmt.Sprintf("Page %d", p.Number)},
			Content:   ncxContent{Src: pageDocumentHref(p.Number, width)},
		})
	}
	return marshalDocument(doc, "")
}

// --- nav.xhtml ---

type navDocument struct {
	XMLName   xml.Name `xml:"html"`
	Xmlns     string   `xml:"xmlns,attr"`
	XmlnsEpub string   `xml:"xmlns:epub,attr"`
	Head      navHead  `xml:"head"`
	Body      navBody  `xml:"body"`
}

type navHead struct {
	Title string `xml:"title"`
}

type navBody struct {
	Navs []navElement `xml:"nav"`
}

type navElement struct {
	Type    string  `xml:"epub:type,attr"`
	Heading string  `xml:"h1,omitempty"`
	List    navList `xml:"ol"`
}

type navList struct {
	Items []navItem `xml:"li"`
}

type navItem struct {
	Anchor navAnchor `xml:"a"`
}

type navAnchor struct {
	Href string `xml:"href,attr"`
	Text string `xml:",chardata"`
}

// RenderNav returns the EPUB 3 navigation document: a reader-facing
// table of contents plus a linear page-list, both in page order.
func RenderNav(b *book.Book) ([]byte, error) {
	pages := b.Pages()
	width := pageNumberWidth(pages)

	toc := navElement{Type: "toc", Heading: "Table of Contents"}
	pageList := navElement{Type: "page-list"}
	for _, p := range pages {
		href := pageDocumentHref(p.Number, width)
		toc.List.Items = append(toc.List.Items, navItem{
			Anchor: navAnchor{Href: href, Text: fmt.Sprintf("Page %d", p.Number)},
		})
		pageList.List.Items = append(pageList.List.Items, navItem{
			Anchor: navAnchor{Href: href, Text: fmt.Sprintf("%d", p.Number)},
		})
	}

	doc := navDocument{
		Xmlns:     xhtmlNS,
		XmlnsEpub: epubNS,
		Head:      navHead{Title: b.Title},
		Body:      navBody{Navs: []navElement{toc, pageList}},
	}
	return marshalDocument(doc, xhtmlDoctype)
}

// --- per-page XHTML ---

type pageDocument struct {
	XMLName xml.Name `xml:"html"`
	Xmlns   string   `xml:"xmlns,attr"`
	Head    pageHead `xml:"head"`
	Body    pageBody `xml:"body"`
}

type pageHead struct {
	Title    string   `xml:"title"`
	Viewport pageMeta `xml:"meta"`
	Style    pageLink `xml:"link"`
}

type pageMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type pageLink struct {
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
	Href string `xml:"href,attr"`
}

type pageBody struct {
	Image pageImage `xml:"img"`
}

type pageImage struct {
	Class string `xml:"class,attr"`
	Src   string `xml:"src,attr"`
	Alt   string `xml:"alt,attr"`
}

// RenderPageDocument returns the markup document for one page. The
// viewport is pinned to the page's own pixel dimensions; the body is a
// single full-bleed image reference.
func RenderPageDocument(p book.Page, width int) ([]byte, error) {
	doc := pageDocument{
		Xmlns: xhtmlNS,
		Head: pageHead{
			Title:    fmt.Sprintf("Page %d", p.Number),
			Viewport: pageMeta{Name: "viewport", Content: fmt.Sprintf("width=%d, height=%d", p.Width, p.Height)},
			Style:    pageLink{Rel: "stylesheet", Type: "text/css", Href: "../" + stylesheetHref()},
		},
		Body: pageBody{
			Image: pageImage{
				Class: "page",
				Src:   "../" + pageImageHref(p.Number, width),
				Alt:   fmt.Sprintf("Page %d", p.Number),
			},
		},
	}
	return marshalDocument(doc, xhtmlDoctype)
}

// --- stylesheet ---

const fixedLayoutCSS = `html, body {
  margin: 0;
  padding: 0;
  width: 100%;
  height: 100%;
  overflow: hidden;
}

img.page {
  display: block;
  width: 100%;
  height: 100%;
  object-fit: contain;
}
`

// Stylesheet returns the fixed, book-independent stylesheet that letter-
// boxes each page image into its viewport without cropping or scrolling.
func Stylesheet() []byte {
	return []byte(fixedLayoutCSS)
}

// marshalDocument renders an element tree with the XML declaration and
// an optional doctype line.
func marshalDocument(doc any, doctype string) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(doctype)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
