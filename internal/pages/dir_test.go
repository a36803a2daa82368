package pages

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, dir, name string, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s failed: %v", name, err)
	}
	return buf.Bytes()
}

func TestLoadDirectory_Order(t *testing.T) {
	dir := t.TempDir()
	// Written out of order; lexical filename order decides.
	writePNG(t, dir, "p02.png", 2, 3)
	writePNG(t, dir, "p01.png", 1, 1)
	writePNG(t, dir, "p03.png", 4, 5)

	pages, err := LoadDirectory(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("page count = %d, want 3", len(pages))
	}

	wantDims := [][2]int{{1, 1}, {2, 3}, {4, 5}}
	for i, p := range pages {
		if p.Number != i+1 {
			t.Errorf("pages[%d].Number = %d, want %d", i, p.Number, i+1)
		}
		if p.Width != wantDims[i][0] || p.Height != wantDims[i][1] {
			t.Errorf("pages[%d] dims = %dx%d, want %dx%d", i, p.Width, p.Height, wantDims[i][0], wantDims[i][1])
		}
	}
}

func TestLoadDirectory_PassThroughAtBaseline(t *testing.T) {
	dir := t.TempDir()
	original := writePNG(t, dir, "page.png", 3, 3)

	pages, err := LoadDirectory(dir, LoadOptions{DPI: BaselineDPI})
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if !bytes.Equal(pages[0].Image, original) {
		t.Error("baseline load re-encoded the image")
	}
}

func TestLoadDirectory_Resample(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "page.png", 72, 36)

	pages, err := LoadDirectory(dir, LoadOptions{DPI: 150})
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}

	// 72x36 at 150/72 scale -> 150x75.
	if pages[0].Width != 150 || pages[0].Height != 75 {
		t.Errorf("resampled dims = %dx%d, want 150x75", pages[0].Width, pages[0].Height)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(pages[0].Image))
	if err != nil {
		t.Fatalf("resampled image is not a PNG: %v", err)
	}
	if cfg.Width != pages[0].Width || cfg.Height != pages[0].Height {
		t.Errorf("encoded dims %dx%d disagree with reported %dx%d", cfg.Width, cfg.Height, pages[0].Width, pages[0].Height)
	}
}

func TestLoadDirectory_IgnoresNonPNG(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "page.png", 1, 1)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := LoadDirectory(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if len(pages) != 1 {
		t.Errorf("page count = %d, want 1", len(pages))
	}
}

func TestLoadDirectory_Empty(t *testing.T) {
	if _, err := LoadDirectory(t.TempDir(), LoadOptions{}); err == nil {
		t.Fatal("expected error for directory with no pages")
	}
}

func TestLoadDirectory_Missing(t *testing.T) {
	if _, err := LoadDirectory(filepath.Join(t.TempDir(), "nope"), LoadOptions{}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoadDirectory_CorruptPNG(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDirectory(dir, LoadOptions{}); err == nil {
		t.Fatal("expected error for undecodable page")
	}
}

func TestSupportedDPI(t *testing.T) {
	for _, d := range SupportedDPIs {
		if !SupportedDPI(d) {
			t.Errorf("SupportedDPI(%d) = false, want true", d)
		}
	}
	if SupportedDPI(96) {
		t.Error("SupportedDPI(96) = true, want false")
	}
}
