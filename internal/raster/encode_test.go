package raster

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/giobyte8/imgresize/internal/models"
)

func TestEncode_PNGIsLossless(t *testing.T) {
	surface := Render(gradientImage(30, 20), 1, BiLinearResampler{})

	data, err := Encode(surface, models.FormatPNG)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a png: %v", err)
	}

	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			wr, wg, wb, wa := surface.At(x, y).RGBA()
			gr, gg, gb, ga := decoded.At(x, y).RGBA()
			if wr != gr || wg != gg || wb != gb || wa != ga {
				t.Fatalf("pixel (%d,%d) changed after png round trip", x, y)
			}
		}
	}
}

func TestEncode_JPG(t *testing.T) {
	surface := Render(gradientImage(400, 300), 1, BiLinearResampler{})

	data, err := Encode(surface, models.FormatJPG)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a jpeg: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Fatalf("expected 400x300, got %dx%d", cfg.Width, cfg.Height)
	}

	// Quality 90 output must match the stdlib encoder at the same setting
	var want bytes.Buffer
	if err := jpeg.Encode(&want, surface, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, want.Bytes()) {
		t.Fatal("jpg output does not match quality 90 encoding")
	}
}

func TestEncode_FormatOnlyAffectsBytes(t *testing.T) {
	src := gradientImage(64, 64)

	a := Render(src, 0.5, BiLinearResampler{})
	b := Render(src, 0.5, BiLinearResampler{})
	if a.Bounds() != b.Bounds() || !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("render output should not depend on anything but source and scale")
	}

	pngData, err := Encode(a, models.FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	jpgData, err := Encode(b, models.FormatJPG)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(pngData, jpgData) {
		t.Fatal("expected png and jpg encodings to differ")
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if _, err := Encode(img, models.OutputFormat("gif")); !errors.Is(err, ErrEncodeFailed) {
		t.Fatalf("expected ErrEncodeFailed, got %v", err)
	}
}

func TestEncode_ResultNotSharedWithPool(t *testing.T) {
	img := gradientImage(16, 16)

	first, err := Encode(img, models.FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	snapshot := append([]byte(nil), first...)

	if _, err := Encode(gradientImage(32, 32), models.FormatJPG); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, snapshot) {
		t.Fatal("encoded bytes were modified by a later encode")
	}
}
