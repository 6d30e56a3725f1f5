package domain

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"go.trai.ch/zerr"
)

// PixelFormat is the channel layout of a thumbnail buffer.
type PixelFormat int

const (
	// FormatRGB8 stores interleaved 8-bit RGB.
	FormatRGB8 PixelFormat = iota
	// FormatRGBF32 stores interleaved float32 RGB.
	FormatRGBF32
)

func (f PixelFormat) String() string {
	if f == FormatRGBF32 {
		return "rgbf32"
	}
	return "rgb8"
}

// MediaDescriptor identifies a media source and optional per-call overrides.
type MediaDescriptor struct {
	SourceID string
	Params   *ParamsOverride
}

// ThumbnailBuffer is a packed RGB image.
type ThumbnailBuffer struct {
	Width  int
	Height int
	Format PixelFormat
	Pix    []uint8
	Float  []float32
}

// NewThumbnailBuffer allocates an empty buffer.
func NewThumbnailBuffer(width, height int, format PixelFormat) *ThumbnailBuffer {
	b := &ThumbnailBuffer{Width: width, Height: height, Format: format}
	if format == FormatRGBF32 {
		b.Float = make([]float32, width*height*3)
	} else {
		b.Pix = make([]uint8, width*height*3)
	}
	return b
}

// Validate checks the geometry against the pixel data.
func (b *ThumbnailBuffer) Validate() error {
	if b == nil {
		return zerr.Wrap(ErrInvalidBuffer, "buffer is nil")
	}
	if b.Width <= 0 || b.Height <= 0 {
		return zerr.With(zerr.Wrap(ErrInvalidBuffer, fmt.Sprintf("invalid size %dx%d", b.Width, b.Height)),
			"format", b.Format.String())
	}
	want := b.Width * b.Height * 3
	got := len(b.Pix)
	if b.Format == FormatRGBF32 {
		got = len(b.Float)
	}
	if got != want {
		return zerr.With(zerr.Wrap(ErrInvalidBuffer, fmt.Sprintf("expected %d values, got %d", want, got)),
			"format", b.Format.String())
	}
	return nil
}

// At returns the pixel at (x, y) as normalised floats.
func (b *ThumbnailBuffer) At(x, y int) RGB {
	i := (y*b.Width + x) * 3
	if b.Format == FormatRGBF32 {
		return RGB{float64(b.Float[i]), float64(b.Float[i+1]), float64(b.Float[i+2])}
	}
	return RGB{float64(b.Pix[i]) / 255, float64(b.Pix[i+1]) / 255, float64(b.Pix[i+2]) / 255}
}

// Set stores a pixel; 8-bit buffers clamp and round.
func (b *ThumbnailBuffer) Set(x, y int, c RGB) {
	i := (y*b.Width + x) * 3
	if b.Format == FormatRGBF32 {
		b.Float[i], b.Float[i+1], b.Float[i+2] = float32(c[0]), float32(c[1]), float32(c[2])
		return
	}
	for ch := range 3 {
		b.Pix[i+ch] = toByte(c[ch])
	}
}

func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(math.Min(math.Max(v, 0), 1) * 255))
}

// ThumbnailFromImage copies a decoded image into an 8-bit buffer.
func ThumbnailFromImage(img image.Image) *ThumbnailBuffer {
	bounds := img.Bounds()
	b := NewThumbnailBuffer(bounds.Dx(), bounds.Dy(), FormatRGB8)
	for y := range b.Height {
		for x := range b.Width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := (y*b.Width + x) * 3
			b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c.R, c.G, c.B
		}
	}
	return b
}

// Image converts the buffer into an opaque RGBA image.
func (b *ThumbnailBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := range b.Height {
		for x := range b.Width {
			c := b.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: toByte(c[0]), G: toByte(c[1]), B: toByte(c[2]), A: 0xff})
		}
	}
	return img
}
