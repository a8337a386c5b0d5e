package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/sixarne/raytracer/pkg/core"
	"golang.org/x/image/bmp"
)

// DefaultScreenshotName is the file written when a screenshot has no explicit name
const DefaultScreenshotName = "RayTracing_Buffer.bmp"

// Framebuffer holds packed 0x00RRGGBB pixels, row-major with a stride of Width
type Framebuffer struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// ToneMap prepares a linear color for display: non-finite channels become zero,
// negatives are clamped and the result is rescaled so no channel exceeds one
func ToneMap(c core.Vec3) core.Vec3 {
	c = core.NewVec3(finiteOrZero(c.X), finiteOrZero(c.Y), finiteOrZero(c.Z))
	c = c.Max(core.Black)
	return c.MaxToOne()
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// PackColor converts a display color in [0,1] to 0x00RRGGBB
func PackColor(c core.Vec3) uint32 {
	r := uint32(uint8(c.X * 255))
	g := uint32(uint8(c.Y * 255))
	b := uint32(uint8(c.Z * 255))
	return r<<16 | g<<8 | b
}

// UnpackColor splits a packed pixel into its 8-bit channels
func UnpackColor(pixel uint32) (r, g, b uint8) {
	return uint8(pixel >> 16), uint8(pixel >> 8), uint8(pixel)
}

// Set tone maps a linear color and stores it at (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[x+y*fb.Width] = PackColor(ToneMap(c))
}

// At returns the packed pixel at (x, y)
func (fb *Framebuffer) At(x, y int) uint32 {
	return fb.Pixels[x+y*fb.Width]
}

// ToImage converts the framebuffer to an opaque RGBA image
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := UnpackColor(fb.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// EncodeBMP writes the framebuffer as an uncompressed bitmap
func (fb *Framebuffer) EncodeBMP(w io.Writer) error {
	return bmp.Encode(w, fb.ToImage())
}

// EncodePNG writes the framebuffer as a PNG
func (fb *Framebuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, fb.ToImage())
}

// SaveBMP writes the framebuffer to a bitmap file
func (fb *Framebuffer) SaveBMP(filename string) error {
	if filename == "" {
		filename = DefaultScreenshotName
	}
	return fb.save(filename, fb.EncodeBMP)
}

// SavePNG writes the framebuffer to a PNG file
func (fb *Framebuffer) SavePNG(filename string) error {
	return fb.save(filename, fb.EncodePNG)
}

func (fb *Framebuffer) save(filename string, encode func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := encode(writer); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
