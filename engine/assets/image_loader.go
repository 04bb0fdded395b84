package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/hubastard/snek/engine/core"
	"golang.org/x/image/draw"
)

// DecodePNG returns width, height, and tightly packed RGBA8 pixels (row-major).
// With flip set the rows are reversed so the first row is the bottom of the
// image, matching OpenGL's bottom-left texture origin.
func DecodePNG(data []byte, flip bool) (w, h int, rgba []byte, err error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode png: %w", err)
	}

	// Ensure RGBA
	rgbaImg := imageToRGBA(img)
	w, h = rgbaImg.Bounds().Dx(), rgbaImg.Bounds().Dy()

	// Repack in tight rows (stride == 4*w)
	out := make([]byte, w*h*4)
	src := rgbaImg.Pix
	srcStride := rgbaImg.Stride
	row := w * 4
	for y := 0; y < h; y++ {
		dy := y
		if flip {
			dy = h - 1 - y
		}
		copy(out[dy*row:(dy+1)*row], src[y*srcStride:y*srcStride+row])
	}

	return w, h, out, nil
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

// LoadTexture reads a PNG through p, flips it and uploads it with the filter
// and wrap settings from desc. Size, format and pixels in desc are ignored.
func LoadTexture(dev core.Device, p core.Platform, path string, desc core.TextureDesc) (core.Texture, error) {
	data, err := p.ReadFile(path)
	if err != nil {
		return core.Texture{}, fmt.Errorf("load texture %q: %w", path, err)
	}
	w, h, pix, err := DecodePNG(data, true)
	if err != nil {
		return core.Texture{}, fmt.Errorf("load texture %q: %w", path, err)
	}
	desc.Width, desc.Height = w, h
	desc.Format = core.TextureRGBA8
	desc.Pixels = pix
	tex, err := dev.CreateTexture(desc)
	if err != nil {
		return core.Texture{}, fmt.Errorf("upload texture %q: %w", path, err)
	}
	return tex, nil
}
