package vips

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/h2non/bimg"

	"comicstudio/internal/imagecodec"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestCompress(t *testing.T) {
	if !bimg.IsTypeSupported(bimg.PNG) || !bimg.IsTypeSupportedSave(bimg.JPEG) {
		t.Skip("libvips without PNG/JPEG support")
	}
	d, err := imagecodec.FromBytes(testPNG(t, 64, 32))
	if err != nil {
		t.Fatalf("from bytes: %v", err)
	}

	out, err := New(80, 16).Compress(context.Background(), d.String())
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	parsed, err := imagecodec.ParseDataURI(out)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if parsed.MIME != "image/jpeg" {
		t.Fatalf("expected jpeg output, got %s", parsed.MIME)
	}
	size, err := bimg.NewImage(parsed.Data).Size()
	if err != nil {
		t.Fatalf("reading output size: %v", err)
	}
	if size.Width != 16 {
		t.Fatalf("expected width 16, got %d", size.Width)
	}
}

func TestCompressRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	if _, err := New(0, 0).Compress(ctx, "not-a-uri"); !errors.Is(err, imagecodec.ErrNotDataURI) {
		t.Fatalf("expected ErrNotDataURI, got %v", err)
	}
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := New(0, 0).Compress(canceled, "data:image/png;base64,AA=="); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if c := New(0, -1); c.Quality != DefaultQuality || c.MaxWidth != DefaultMaxWidth {
		t.Fatalf("expected defaults, got %+v", c)
	}
}
