package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dkrish/GoOCR/internal/customHttpClient"
	"github.com/dkrish/GoOCR/internal/domain/jobModel"
	"github.com/dkrish/GoOCR/internal/rasterizer"
)

// provenance records where the document came from; exactly one field is
// set per submission and it ends up in the result metadata verbatim.
type provenance struct {
	sourceURL  string
	sourcePath string
	filename   string
}

func (s *service) resolveFile(ctx context.Context, record jobModel.FileRecord) ([]rasterizer.Page, error) {
	if record.MimeType == "application/pdf" {
		return s.raster.Rasterize(ctx, record.Path)
	}

	encoded, err := s.files.GetFileAsBase64(record.Path)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded file: %w", err)
	}
	return singlePage(encoded, record.MimeType), nil
}

func (s *service) resolveURL(ctx context.Context, rawURL string) ([]rasterizer.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building download request: %w", err)
	}
	resp, err := customHttpClient.Pooled.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading download: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if contentType == "" {
		contentType = "image/png"
	}

	if contentType == "application/pdf" || strings.HasSuffix(strings.ToLower(rawURL), ".pdf") {
		return s.rasterizeBytes(ctx, data, "download.pdf")
	}
	return singlePage(base64.StdEncoding.EncodeToString(data), contentType), nil
}

func (s *service) resolveBase64(ctx context.Context, data string, filename string, mimeType string) ([]rasterizer.Page, error) {
	if mimeType == "application/pdf" || strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		raw, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 payload: %w", err)
		}
		if filename == "" {
			filename = "document.pdf"
		}
		return s.rasterizeBytes(ctx, raw, filename)
	}

	if mimeType == "" {
		mimeType = "image/png"
	}
	//image payloads pass through untouched; a bad encoding shows up as an
	//extraction failure on page one
	return singlePage(data, mimeType), nil
}

func (s *service) resolvePath(ctx context.Context, path string) ([]rasterizer.Page, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return s.raster.Rasterize(ctx, path)
	}

	encoded, err := s.files.GetFileAsBase64(path)
	if err != nil {
		return nil, fmt.Errorf("reading file at path: %w", err)
	}
	return singlePage(encoded, mimeFromExt(path)), nil
}

// rasterizeBytes parks transient PDF bytes on disk long enough for the
// rasterizer, which works file-to-file.
func (s *service) rasterizeBytes(ctx context.Context, data []byte, filename string) ([]rasterizer.Page, error) {
	tempPath, err := s.files.SaveTempFile(data, filename)
	if err != nil {
		return nil, fmt.Errorf("staging document: %w", err)
	}
	defer s.files.DeleteFile(tempPath)
	return s.raster.Rasterize(ctx, tempPath)
}

func singlePage(encoded string, mimeType string) []rasterizer.Page {
	return []rasterizer.Page{{Number: 1, MimeType: mimeType, Base64: encoded}}
}

func mimeFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}
