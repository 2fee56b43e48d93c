package rasterizer

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/dkrish/GoOCR/pkg/logger_i"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 0, A: 255})
		}
	}
	return img
}

func TestUpscale_Dimensions(t *testing.T) {
	src := testImage(100, 40)

	scaled := upscale(src, 2.0)
	bounds := scaled.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 80 {
		t.Errorf("Scaled size got %dx%d, want 200x80", bounds.Dx(), bounds.Dy())
	}
}

func TestUpscale_IdentityScale(t *testing.T) {
	src := testImage(10, 10)
	if upscale(src, 1.0) != src {
		t.Error("Scale 1.0 must return the source untouched")
	}
}

func TestEncodePNGBase64_Roundtrip(t *testing.T) {
	src := testImage(8, 8)

	encoded, err := encodePNGBase64(src)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("output is not valid base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 8 {
		t.Errorf("Roundtrip size got %dx%d, want 8x8", decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}

func TestCheckPageLimit_SkipsUnreadableFile(t *testing.T) {
	logger_i.Init()
	r := &pdfcpuRasterizer{scale: 2.0, maxPages: 100, logger: logger_i.NewLogger("rasterizer-test")}

	//a file the precheck cannot open is left to the optimize pass
	if err := r.checkPageLimit("/does/not/exist.pdf"); err != nil {
		t.Errorf("Precheck should skip unreadable files, got %v", err)
	}
}
