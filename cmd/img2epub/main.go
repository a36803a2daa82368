package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"img2epub/internal/book"
	"img2epub/internal/epub3"
	"img2epub/internal/pages"
)

const defaultDPI = 150

// cliOptions holds the resolved command-line options.
type cliOptions struct {
	InputDir   string
	OutputPath string
	Title      string
	Author     string
	Language   string
	DPI        int
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "img2epub <pages-dir>",
		Short: "Package rendered page images into a fixed-layout EPUB",
		Long: `img2epub takes a directory of rendered page images (PNG, one file
per page, lexical filename order = reading order) and packages them
into a fixed-layout EPUB 3 container.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readCLIOptions(cmd, args)
			if err != nil {
				return err
			}
			return run(opts)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file path (default: input directory name with .epub extension)")
	cmd.Flags().String("title", "", "Book title")
	cmd.Flags().String("author", "", "Book author")
	cmd.Flags().String("language", "", "Book language tag (BCP 47)")
	cmd.Flags().Int("dpi", defaultDPI, "Target render resolution: 72, 150 or 300")

	return cmd
}

// readCLIOptions resolves and validates flags against the positional
// input directory argument.
func readCLIOptions(cmd *cobra.Command, args []string) (cliOptions, error) {
	opts := cliOptions{InputDir: args[0]}

	opts.OutputPath, _ = cmd.Flags().GetString("output")
	if opts.OutputPath == "" {
		opts.OutputPath = defaultOutputPath(opts.InputDir)
	}

	opts.Title, _ = cmd.Flags().GetString("title")
	opts.Author, _ = cmd.Flags().GetString("author")
	opts.Language, _ = cmd.Flags().GetString("language")

	opts.DPI, _ = cmd.Flags().GetInt("dpi")
	if !pages.SupportedDPI(opts.DPI) {
		return cliOptions{}, fmt.Errorf("--dpi must be one of %v, got %d", pages.SupportedDPIs, opts.DPI)
	}

	return opts, nil
}

// defaultOutputPath derives the output filename from the input directory
// name, e.g. "./scans/mybook" -> "./scans/mybook.epub".
func defaultOutputPath(inputDir string) string {
	return strings.TrimSuffix(filepath.Clean(inputDir), string(filepath.Separator)) + ".epub"
}

func run(opts cliOptions) error {
	log.Printf("Packaging: %s -> %s", opts.InputDir, opts.OutputPath)

	rendered, err := pages.LoadDirectory(opts.InputDir, pages.LoadOptions{DPI: opts.DPI})
	if err != nil {
		return fmt.Errorf("failed to load pages: %w", err)
	}

	b := book.New(book.Options{
		Title:    opts.Title,
		Author:   opts.Author,
		Language: opts.Language,
	})
	for _, p := range rendered {
		b.AddPage(p.Image, p.Width, p.Height, p.Number)
	}

	w, err := epub3.NewWriter(epub3.WriterConfig{Book: b})
	if err != nil {
		return fmt.Errorf("failed to create writer: %w", err)
	}

	f, err := os.Create(opts.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := w.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write EPUB: %w", err)
	}

	log.Printf("Done: %s (%d pages)", opts.OutputPath, len(rendered))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
