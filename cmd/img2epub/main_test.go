package main

import (
	"strings"
	"testing"
)

func TestReadCLIOptions_Defaults(t *testing.T) {
	cmd := newRootCmd()
	opts, err := readCLIOptions(cmd, []string{"./scans/mybook"})
	if err != nil {
		t.Fatalf("readCLIOptions() error = %v", err)
	}

	if opts.OutputPath != "scans/mybook.epub" {
		t.Fatalf("OutputPath = %q, want %q", opts.OutputPath, "scans/mybook.epub")
	}
	if opts.DPI != defaultDPI {
		t.Fatalf("DPI = %d, want %d", opts.DPI, defaultDPI)
	}
	if opts.Title != "" || opts.Author != "" || opts.Language != "" {
		t.Fatalf("metadata flags should default to empty, got %+v", opts)
	}
}

func TestReadCLIOptions_CustomFlags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{
		"--output", "./out/custom.epub",
		"--title", "My Book",
		"--author", "Someone",
		"--language", "ja",
		"--dpi", "300",
	}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	opts, err := readCLIOptions(cmd, []string{"./scans/mybook"})
	if err != nil {
		t.Fatalf("readCLIOptions() error = %v", err)
	}

	if opts.OutputPath != "./out/custom.epub" {
		t.Fatalf("OutputPath = %q", opts.OutputPath)
	}
	if opts.Title != "My Book" {
		t.Fatalf("Title = %q", opts.Title)
	}
	if opts.Author != "Someone" {
		t.Fatalf("Author = %q", opts.Author)
	}
	if opts.Language != "ja" {
		t.Fatalf("Language = %q", opts.Language)
	}
	if opts.DPI != 300 {
		t.Fatalf("DPI = %d", opts.DPI)
	}
}

func TestReadCLIOptions_InvalidDPI(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--dpi", "96"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	_, err := readCLIOptions(cmd, []string{"./scans/mybook"})
	if err == nil || !strings.Contains(err.Error(), "--dpi") {
		t.Fatalf("expected dpi validation error, got %v", err)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	got := defaultOutputPath("./scans/mybook/")
	if got != "scans/mybook.epub" {
		t.Fatalf("defaultOutputPath() = %q", got)
	}
}
