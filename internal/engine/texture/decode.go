// Package texture decodes slot images and uploads them as OpenGL textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// MaxSize caps the longest side of a decoded image.
const MaxSize = 1024

// Decode decodes an encoded image into RGBA, scaled down so neither side
// exceeds maxSide, and returns the format name. Rows are stored top to
// bottom; see FlipVertical for OpenGL upload order.
func Decode(data []byte, maxSide int) (*image.RGBA, string, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, format, fmt.Errorf("decode image: empty %s", format)
	}

	w, h := Fit(b.Dx(), b.Dy(), maxSide)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}
	return dst, format, nil
}

// Fit scales w x h down to fit within maxSide, keeping the aspect ratio and
// at least one pixel per side. maxSide <= 0 means no limit.
func Fit(w, h, maxSide int) (int, int) {
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return w, h
	}
	if w >= h {
		return maxSide, max(h*maxSide/w, 1)
	}
	return max(w*maxSide/h, 1), maxSide
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// FitRect returns the largest rectangle with the image's aspect ratio that
// fits inside a boxW x boxH box.
func FitRect(imgW, imgH int, boxW, boxH float32) (float32, float32) {
	if imgW <= 0 || imgH <= 0 || boxW <= 0 || boxH <= 0 {
		return 0, 0
	}
	aspect := float32(imgW) / float32(imgH)
	if boxW/boxH > aspect {
		return boxH * aspect, boxH
	}
	return boxW, boxW / aspect
}
