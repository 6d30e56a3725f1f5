// Package thumbnail applies baked colour transforms to still images on the CPU.
package thumbnail

import (
	"context"
	"runtime"

	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/engine/compiler"
	"golang.org/x/sync/errgroup"
)

// ParamsResolver resolves stored params plus an override without persisting.
type ParamsResolver interface {
	Get(sourceID string, override *domain.ParamsOverride) (domain.MediaParams, error)
}

// GraphBuilder builds transform graphs.
type GraphBuilder interface {
	Build(params domain.MediaParams, viewer domain.Viewer) (*domain.TransformGraph, error)
}

// Processor transforms thumbnail buffers. It keeps no cache; every call
// resolves and builds from scratch.
type Processor struct {
	params  ParamsResolver
	builder GraphBuilder
	workers int
}

// New creates a Processor that spreads rows over GOMAXPROCS workers.
func New(params ParamsResolver, builder GraphBuilder) *Processor {
	return &Processor{params: params, builder: builder, workers: runtime.GOMAXPROCS(0)}
}

// Process returns a transformed copy of buf with the same size and format.
// buf is not modified. The call returns once every row is written.
func (p *Processor) Process(ctx context.Context, media domain.MediaDescriptor, buf *domain.ThumbnailBuffer) (*domain.ThumbnailBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	params, err := p.params.Get(media.SourceID, media.Params)
	if err != nil {
		return nil, err
	}
	g, err := p.builder.Build(params, domain.ViewerThumbnail)
	if err != nil {
		return nil, err
	}
	proc, err := compiler.CompileCPU(g)
	if err != nil {
		return nil, err
	}

	out := domain.NewThumbnailBuffer(buf.Width, buf.Height, buf.Format)
	if proc.Identity() {
		copy(out.Pix, buf.Pix)
		copy(out.Float, buf.Float)
		return out, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.workers)
	for y := range buf.Height {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for x := range buf.Width {
				out.Set(x, y, proc.Apply(buf.At(x, y)))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
