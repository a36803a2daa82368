package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"sort"

	"img2epub/internal/book"
	"img2epub/internal/epub3"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (s *Server) handleServiceInfo(w http.ResponseWriter, r *http.Request) {
	hostname, _ := os.Hostname()

	info := map[string]interface{}{
		"service":  ServiceName,
		"version":  ServiceVersion,
		"hostname": hostname,
		"endpoints": []string{
			"/convert",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	jsonResponse, _ := json.Marshal(info)
	w.Write(jsonResponse)
}

// handleConvert accepts a multipart form with optional title, author and
// language fields and one or more PNG files under the "pages" key.
// Files are ordered by filename; the response body is the EPUB.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart request: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["pages"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no page files provided under the 'pages' field")
		return
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Filename < files[j].Filename
	})

	b := book.New(book.Options{
		Title:    r.FormValue("title"),
		Author:   r.FormValue("author"),
		Language: r.FormValue("language"),
	})

	for i, fh := range files {
		data, width, height, err := readPagePart(fh)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("page %q: %v", fh.Filename, err))
			return
		}
		b.AddPage(data, width, height, i+1)
	}

	writer, err := epub3.NewWriter(epub3.WriterConfig{Book: b})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	epubBytes, err := writer.Bytes()
	if err != nil {
		log.Printf("conversion failed: %v", err)
		writeError(w, http.StatusInternalServerError, "conversion failed")
		return
	}

	w.Header().Set("Content-Type", epub3.MimetypeContent)
	w.Header().Set("Content-Disposition", `attachment; filename="book.epub"`)
	w.WriteHeader(http.StatusOK)
	w.Write(epubBytes)
}

// readPagePart reads one uploaded page file and decodes its pixel
// dimensions. Only PNG payloads are accepted.
func readPagePart(fh *multipart.FileHeader) ([]byte, int, int, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read upload: %w", err)
	}
	data := buf.Bytes()

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("not a decodable PNG: %w", err)
	}
	return data, cfg.Width, cfg.Height, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
