package rasterizer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	_ "image/jpeg" //register decoders for extracted page images

	"github.com/dkrish/GoOCR/internal/config"
	"github.com/dkrish/GoOCR/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/image/draw"
)

// Page is one rasterized page image, ready for the extractor.
type Page struct {
	Number   int
	MimeType string
	Base64   string
}

// Rasterizer resolves a PDF into an ordered sequence of page images.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath string) ([]Page, error)
}

type pdfcpuRasterizer struct {
	scale    float64
	maxPages int
	logger   *logger_i.Logger
}

func NewPDFRasterizer() Rasterizer {
	return &pdfcpuRasterizer{
		scale:    config.RasterizeScale,
		maxPages: config.MaxPages,
		logger:   logger_i.NewLogger("Rasterizer"),
	}
}

// Rasterize optimizes the document with relaxed validation, extracts each
// page's image and upscales it before re-encoding as PNG. Pages without an
// extractable image fail the whole document.
func (r *pdfcpuRasterizer) Rasterize(ctx context.Context, pdfPath string) ([]Page, error) {
	if err := r.checkPageLimit(pdfPath); err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp("", "goocr-raster-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed

	optimizedPath := filepath.Join(tempDir, "optimized.pdf")
	if err := api.OptimizeFile(pdfPath, optimizedPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to validate pdf: %w", err)
	}

	pageCount, err := api.PageCountFile(optimizedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}
	if pageCount > r.maxPages {
		return nil, fmt.Errorf("document has %d pages, limit is %d", pageCount, r.maxPages)
	}
	r.logger.Debug("Converting PDF to images", "path", pdfPath, "pages", pageCount)

	pages := make([]Page, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		encoded, err := r.extractPageImage(optimizedPath, tempDir, i, cfg)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, Page{
			Number:   i,
			MimeType: "image/png",
			Base64:   encoded,
		})
		r.logger.Debug("Page converted", "page", i)
	}

	return pages, nil
}

// checkPageLimit is a cheap read-only pass over the unoptimized file so
// oversized documents are rejected before any page work happens.
func (r *pdfcpuRasterizer) checkPageLimit(pdfPath string) error {
	f, err := pdf.Open(pdfPath)
	if err != nil {
		//leave malformed files to the optimize pass, which reports better errors
		r.logger.Warn("Page limit precheck skipped", "path", pdfPath, "error", err)
		return nil
	}
	if n := f.NumPage(); n > r.maxPages {
		return fmt.Errorf("document has %d pages, limit is %d", n, r.maxPages)
	}
	return nil
}

func (r *pdfcpuRasterizer) extractPageImage(pdfPath string, tempDir string, pageNum int, cfg *model.Configuration) (string, error) {
	outDir := filepath.Join(tempDir, "page_"+strconv.Itoa(pageNum))
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return "", err
	}

	if err := api.ExtractImagesFile(pdfPath, outDir, []string{strconv.Itoa(pageNum)}, cfg); err != nil {
		return "", fmt.Errorf("image extraction failed: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no extractable page image")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	file, err := os.Open(filepath.Join(outDir, entries[0].Name()))
	if err != nil {
		return "", err
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decoding page image: %w", err)
	}

	return encodePNGBase64(upscale(src, r.scale))
}

func upscale(src image.Image, scale float64) image.Image {
	if scale == 1.0 {
		return src
	}
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0,
		int(float64(bounds.Dx())*scale),
		int(float64(bounds.Dy())*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

func encodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding page image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
