// Package book holds the in-memory model of a fixed-layout book: its
// metadata, its identifier and the ordered list of rendered pages.
package book

// Default metadata values applied when an Options field is left empty.
const (
	DefaultTitle    = "Untitled"
	DefaultAuthor   = "Unknown"
	DefaultLanguage = "en"
)

// Options configures a new Book. All fields are optional.
type Options struct {
	Title    string
	Author   string
	Language string

	// Identifiers mints the book identifier at construction time.
	// Nil selects RandomIdentifiers.
	Identifiers IdentifierSource
}

// Page is a single rendered page: PNG image bytes plus pixel dimensions
// and the caller-assigned 1-based page number.
type Page struct {
	Number int
	Width  int
	Height int
	Image  []byte
}

// Book is the model read by the EPUB writer. Metadata fields stay
// mutable until generation; the identifier is fixed at construction.
//
// A Book is not safe for concurrent use by multiple goroutines.
type Book struct {
	Title    string
	Author   string
	Language string

	identifier string
	pages      []Page
}

// New creates a Book with the given options, filling in defaults and
// minting the identifier. The identifier is generated exactly once and
// never changes, even if metadata is edited afterwards.
func New(opts Options) *Book {
	b := &Book{
		Title:    opts.Title,
		Author:   opts.Author,
		Language: opts.Language,
	}
	if b.Title == "" {
		b.Title = DefaultTitle
	}
	if b.Author == "" {
		b.Author = DefaultAuthor
	}
	if b.Language == "" {
		b.Language = DefaultLanguage
	}

	ids := opts.Identifiers
	if ids == nil {
		ids = RandomIdentifiers()
	}
	b.identifier = ids.NewIdentifier()

	return b
}

// AddPage appends a page record. Page numbers are trusted as given; the
// model does not check for duplicates or gaps.
func (b *Book) AddPage(image []byte, width, height, number int) {
	b.pages = append(b.pages, Page{
		Number: number,
		Width:  width,
		Height: height,
		Image:  image,
	})
}

// Identifier returns the identifier minted at construction.
func (b *Book) Identifier() string {
	return b.identifier
}

// Pages returns the pages in insertion order, which is reading order.
func (b *Book) Pages() []Page {
	return b.pages
}

// PageCount returns the number of pages added so far.
func (b *Book) PageCount() int {
	return len(b.pages)
}

// MaxDimensions returns the maximum width and maximum height observed
// across all pages, each taken independently. Both are 0 for a book
// with no pages.
func (b *Book) MaxDimensions() (width, height int) {
	for _, p := range b.pages {
		if p.Width > width {
			width = p.Width
		}
		if p.Height > height {
			height = p.Height
		}
	}
	return width, height
}
