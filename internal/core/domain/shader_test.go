package domain_test

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hue/internal/core/domain"
)

func TestShaderDescriptor(t *testing.T) {
	shader := &domain.CompiledShader{Handles: []domain.Handle{{Name: domain.DynamicExposure, Offset: 0, Components: 1}}}
	d := domain.NewShaderDescriptor(shader)
	assert.Same(t, shader, d.Shader())

	u := d.Uniforms()
	require.Len(t, u, domain.UniformBlockLen)
	assert.InDelta(t, 1.0, u[domain.UniformGradeSlot+4], 0, "neutral gain")

	u[0] = 42
	assert.Zero(t, d.Uniforms()[0], "Uniforms returns a copy")

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Update(func(u []float32) { u[domain.UniformExposureSlot]++ })
		}()
	}
	wg.Wait()
	assert.InDelta(t, 20.0, d.Uniforms()[domain.UniformExposureSlot], 0)
	assert.Equal(t, uint64(20), d.Updates())

	h, ok := shader.Handle(domain.DynamicExposure)
	assert.True(t, ok)
	assert.Equal(t, 1, h.Components)
	_, ok = shader.Handle(domain.DynamicBypass)
	assert.False(t, ok)
}

func TestShaderDescriptor_NoHandles(t *testing.T) {
	d := domain.NewShaderDescriptor(&domain.CompiledShader{})
	assert.Empty(t, d.Uniforms())
}

func TestPipelineData(t *testing.T) {
	var p domain.PipelineData
	assert.Nil(t, p.Descriptor(domain.ViewerMain))

	main := domain.NewShaderDescriptor(&domain.CompiledShader{})
	popout := domain.NewShaderDescriptor(&domain.CompiledShader{})
	p.Install("clip", "abc", main, popout)

	assert.Equal(t, "clip", p.SourceID())
	assert.Equal(t, "abc", p.Hash())
	assert.Same(t, main, p.Descriptor(domain.ViewerMain))
	assert.Same(t, popout, p.Descriptor(domain.ViewerPopout))
	assert.Nil(t, p.Descriptor(domain.ViewerThumbnail))
}

func TestThumbnailBuffer(t *testing.T) {
	assert.ErrorIs(t, (*domain.ThumbnailBuffer)(nil).Validate(), domain.ErrInvalidBuffer)
	assert.ErrorIs(t, (&domain.ThumbnailBuffer{Width: 0, Height: 1}).Validate(), domain.ErrInvalidBuffer)
	assert.ErrorIs(t, (&domain.ThumbnailBuffer{Width: 2, Height: 1, Pix: make([]uint8, 5)}).Validate(), domain.ErrInvalidBuffer)

	b := domain.NewThumbnailBuffer(2, 1, domain.FormatRGB8)
	require.NoError(t, b.Validate())
	b.Set(0, 0, domain.RGB{-1, 0.5, 2})
	assert.Equal(t, []uint8{0, 128, 255}, b.Pix[:3])

	f := domain.NewThumbnailBuffer(1, 1, domain.FormatRGBF32)
	require.NoError(t, f.Validate())
	f.Set(0, 0, domain.RGB{2, -1, 0.25})
	assert.Equal(t, domain.RGB{2, -1, 0.25}, f.At(0, 0), "float buffers keep out of range values")
}

func TestThumbnailFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(3, 4, 5, 5))
	img.Set(3, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(4, 4, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	b := domain.ThumbnailFromImage(img)
	assert.Equal(t, 2, b.Width)
	assert.Equal(t, 1, b.Height)
	assert.Equal(t, []uint8{10, 20, 30, 200, 100, 50}, b.Pix)

	out := b.Image()
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, out.NRGBAAt(1, 0))
}
