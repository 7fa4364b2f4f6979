package preview

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func filled(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestRenderer_Size(t *testing.T) {
	r := NewRenderer(80, false)

	tests := []struct {
		w, h       int
		cols, rows int
	}{
		{800, 600, 80, 30},
		{400, 300, 80, 30},
		{40, 30, 40, 15},
		{1000, 10, 80, 1},
		{0, 10, 0, 0},
	}
	for _, tt := range tests {
		cols, rows := r.Size(tt.w, tt.h)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("Size(%d, %d) = %d, %d; want %d, %d", tt.w, tt.h, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestRenderer_DefaultWidth(t *testing.T) {
	cols, _ := NewRenderer(0, false).Size(1000, 1000)
	if cols != DefaultWidth {
		t.Fatalf("expected default width %d, got %d", DefaultWidth, cols)
	}
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer(20, false)

	if out := r.Render(nil); out != "" {
		t.Fatalf("expected empty output for nil image, got %q", out)
	}

	white := r.Render(filled(40, 40, color.White))
	black := r.Render(filled(40, 40, color.Black))
	if white == "" || black == "" {
		t.Fatal("expected non-empty previews")
	}
	if white == black {
		t.Fatal("expected different previews for black and white images")
	}
}
