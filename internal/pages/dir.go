// Package pages loads rendered page images for the book model. It is a
// caller-side collaborator of the packaging core: the core only ever
// sees the (bytes, width, height, number) triples produced here.
package pages

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// BaselineDPI is the native resolution of page-description renders;
// target resolutions are expressed as multiples of it.
const BaselineDPI = 72

// SupportedDPIs lists the render resolutions a caller may select.
var SupportedDPIs = []int{72, 150, 300}

// LoadOptions configures LoadDirectory.
type LoadOptions struct {
	// DPI selects the target render resolution. Source images are
	// treated as baseline renders and resampled by DPI/72. Zero or
	// 72 leaves them untouched.
	DPI int
}

// RenderedPage is one page image ready for book.AddPage.
type RenderedPage struct {
	Number int
	Width  int
	Height int
	Image  []byte
}

// SupportedDPI reports whether dpi is one of the selectable resolutions.
func SupportedDPI(dpi int) bool {
	for _, d := range SupportedDPIs {
		if d == dpi {
			return true
		}
	}
	return false
}

// LoadDirectory reads every .png file in dir in lexical filename order
// and returns one RenderedPage per file, numbered 1..n. Any unreadable
// or undecodable file fails the whole load; there is no per-page
// partial-failure mode.
func LoadDirectory(dir string, opts LoadOptions) ([]RenderedPage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read page directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no PNG pages found in %s", dir)
	}
	sort.Strings(names)

	scale := 1.0
	if opts.DPI != 0 {
		scale = float64(opts.DPI) / BaselineDPI
	}

	result := make([]RenderedPage, 0, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %s: %w", name, err)
		}

		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode page %s: %w", name, err)
		}
		w, h := cfg.Width, cfg.Height

		if scale != 1.0 {
			data, w, h, err = resample(data, scale)
			if err != nil {
				return nil, fmt.Errorf("failed to resample page %s: %w", name, err)
			}
		}

		result = append(result, RenderedPage{
			Number: i + 1,
			Width:  w,
			Height: h,
			Image:  data,
		})
	}
	return result, nil
}

// resample decodes a PNG, resizes it by scale with Lanczos filtering and
// re-encodes it.
func resample(data []byte, scale float64) ([]byte, int, int, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, err
	}

	bounds := src.Bounds()
	w := int(math.Round(float64(bounds.Dx()) * scale))
	h := int(math.Round(float64(bounds.Dy()) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	resized := imaging.Resize(src, w, h, imaging.Lanczos)
	encoded, err := encodePNG(resized)
	if err != nil {
		return nil, 0, 0, err
	}
	return encoded, resized.Bounds().Dx(), resized.Bounds().Dy(), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
