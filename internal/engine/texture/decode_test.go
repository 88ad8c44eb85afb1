package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{255, 0, 0, 255}
			if y >= h/2 {
				c = color.RGBA{0, 0, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 200, 100, 50},
		{400, 200, 100, 100, 50},
		{200, 400, 100, 50, 100},
		{5000, 1, 100, 100, 1},
		{300, 300, 0, 300, 300},
	}
	for _, tt := range tests {
		w, h := Fit(tt.w, tt.h, tt.max)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("Fit(%d, %d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.max, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestDecodeScalesDown(t *testing.T) {
	img, format, err := Decode(encodePNG(t, 64, 32), 16)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q", format)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("size = %v, want 16x8", b)
	}
	if top := img.RGBAAt(8, 0); top.R < 200 || top.B > 50 {
		t.Errorf("top row = %v, want red", top)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, _, err := Decode([]byte("hero bytes"), MaxSize); err == nil {
		t.Error("expected an error for non-image data")
	}
}

func TestFlipVertical(t *testing.T) {
	img, _, err := Decode(encodePNG(t, 4, 4), 0)
	if err != nil {
		t.Fatal(err)
	}
	FlipVertical(img)
	if c := img.RGBAAt(0, 0); c.B != 255 {
		t.Errorf("after flip the top row = %v, want blue", c)
	}
	if c := img.RGBAAt(0, 3); c.R != 255 {
		t.Errorf("after flip the bottom row = %v, want red", c)
	}
}

func TestFitRect(t *testing.T) {
	tests := []struct {
		imgW, imgH   int
		boxW, boxH   float32
		wantW, wantH float32
	}{
		{200, 100, 4, 4, 4, 2},
		{100, 200, 4, 4, 2, 4},
		{100, 100, 3, 1, 1, 1},
		{0, 100, 3, 1, 0, 0},
	}
	for _, tt := range tests {
		w, h := FitRect(tt.imgW, tt.imgH, tt.boxW, tt.boxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("FitRect(%d, %d, %v, %v) = %vx%v, want %vx%v", tt.imgW, tt.imgH, tt.boxW, tt.boxH, w, h, tt.wantW, tt.wantH)
		}
	}
}
