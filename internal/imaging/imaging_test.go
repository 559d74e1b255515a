package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding test JPEG: %v", err)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func decodeDataURL(t *testing.T, dataURL string) image.Image {
	t.Helper()
	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		t.Fatalf("unexpected data URL prefix: %.40s", dataURL)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	if err != nil {
		t.Fatalf("decoding base64 payload: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decoding JPEG payload: %v", err)
	}
	return img
}

func TestInlineDataURLJPEG(t *testing.T) {
	data := encodeJPEG(t, testImage(320, 240))

	dataURL, err := InlineDataURL(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("InlineDataURL: %v", err)
	}

	img := decodeDataURL(t, dataURL)
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Errorf("expected dimensions preserved, got %v", img.Bounds())
	}
}

func TestInlineDataURLConvertsPNG(t *testing.T) {
	data := encodePNG(t, testImage(100, 100))

	dataURL, err := InlineDataURL(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("InlineDataURL: %v", err)
	}
	// PNG input still comes out as JPEG.
	decodeDataURL(t, dataURL)
}

func TestInlineDataURLDownscalesWide(t *testing.T) {
	data := encodeJPEG(t, testImage(2048, 1024))

	dataURL, err := InlineDataURL(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("InlineDataURL: %v", err)
	}

	img := decodeDataURL(t, dataURL)
	if img.Bounds().Dx() != MaxDimension {
		t.Errorf("expected width %d, got %d", MaxDimension, img.Bounds().Dx())
	}
	if img.Bounds().Dy() != 512 {
		t.Errorf("expected height 512, got %d", img.Bounds().Dy())
	}
}

func TestInlineDataURLDownscalesTall(t *testing.T) {
	data := encodeJPEG(t, testImage(512, 2048))

	dataURL, err := InlineDataURL(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("InlineDataURL: %v", err)
	}

	img := decodeDataURL(t, dataURL)
	if img.Bounds().Dy() != MaxDimension {
		t.Errorf("expected height %d, got %d", MaxDimension, img.Bounds().Dy())
	}
	if img.Bounds().Dx() != 256 {
		t.Errorf("expected width 256, got %d", img.Bounds().Dx())
	}
}

func TestInlineDataURLRejectsUnsupported(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"text", []byte("definitely not an image")},
		{"gif header", []byte("GIF89a\x01\x00\x01\x00")},
		{"empty", nil},
	}
	for _, tc := range cases {
		if _, err := InlineDataURL(bytes.NewReader(tc.data)); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}
