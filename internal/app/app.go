// Package app implements the application layer for hue.
package app

import (
	"context"
	"math"
	"sync/atomic"

	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/core/ports"
	"go.trai.ch/hue/internal/engine/compiler"
	"go.trai.ch/hue/internal/engine/configcache"
	"go.trai.ch/hue/internal/engine/graph"
	"go.trai.ch/hue/internal/engine/pipecache"
	"go.trai.ch/hue/internal/engine/resolver"
	"go.trai.ch/hue/internal/engine/thumbnail"
	"go.trai.ch/hue/internal/engine/uniforms"
	"go.trai.ch/zerr"
)

// App exposes the transform, shader and hash operations of the colour
// pipeline. It is safe for concurrent use.
type App struct {
	configs  *configcache.Cache
	resolver *resolver.Resolver
	builder  *graph.Builder
	compiler *compiler.Compiler
	pipes    *pipecache.Cache
	uniforms *uniforms.Updater
	thumbs   *thumbnail.Processor
	store    ports.SettingsStore
	logger   ports.Logger
	tracer   ports.Tracer

	// Viewer-wide values; exposure holds float64 bits.
	exposure atomic.Uint64
	bypass   atomic.Bool
	channel  atomic.Int32
	current  atomic.Pointer[domain.MediaParams]
}

// New creates a new App instance.
func New(
	configs *configcache.Cache,
	res *resolver.Resolver,
	builder *graph.Builder,
	comp *compiler.Compiler,
	pipes *pipecache.Cache,
	updater *uniforms.Updater,
	thumbs *thumbnail.Processor,
	store ports.SettingsStore,
	logger ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configs:  configs,
		resolver: res,
		builder:  builder,
		compiler: comp,
		pipes:    pipes,
		uniforms: updater,
		thumbs:   thumbs,
		store:    store,
		logger:   logger,
		tracer:   tracer,
	}
}

// Options adjust an App after construction.
type Options struct {
	// ConfigPaths are searched before the configured search path.
	ConfigPaths []string
	// StateDir moves persisted settings.
	StateDir string
	JSON     bool
	Verbose  bool
}

type logControl interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// Configure applies options. It must run before the first request.
func (a *App) Configure(opts Options) {
	if lc, ok := a.logger.(logControl); ok {
		lc.SetJSON(opts.JSON)
		lc.SetVerbose(opts.Verbose)
	}
	if len(opts.ConfigPaths) > 0 {
		a.configs.AddSearchPath(opts.ConfigPaths...)
	}
	if opts.StateDir != "" {
		a.store.SetRoot(opts.StateDir)
	}
}

// Params resolves the params of a source with an optional override. Nothing
// is stored.
func (a *App) Params(sourceID string, override *domain.ParamsOverride) (domain.MediaParams, error) {
	return a.resolver.Get(sourceID, override)
}

// ComputeHash returns the content hash of a source's resolved params. Equal
// semantic state yields equal hashes across sources.
func (a *App) ComputeHash(sourceID string, override *domain.ParamsOverride) (string, error) {
	p, err := a.resolver.Get(sourceID, override)
	if err != nil {
		return "", err
	}
	return a.resolver.ComputeHash(p), nil
}

// FastDisplayTransformHash returns the pipeline cache key a viewer would use
// for media, without building anything.
func (a *App) FastDisplayTransformHash(media domain.MediaDescriptor, viewer domain.Viewer) (string, error) {
	p, err := a.resolver.Get(media.SourceID, media.Params)
	if err != nil {
		return "", err
	}
	return a.pipes.FastHash(p, viewer), nil
}

// SetupShader resolves a source, fetches or builds the main and popout
// shaders and installs both into sink in one step. On error sink is left
// untouched.
func (a *App) SetupShader(ctx context.Context, sink *domain.PipelineData, sourceID string, override *domain.ParamsOverride) (err error) {
	ctx, span := a.tracer.Start(ctx, "setup_shader", ports.WithAttribute("source_id", sourceID))
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	p, err := a.resolver.Get(sourceID, override)
	if err != nil {
		return err
	}

	main, err := a.shader(ctx, p, domain.ViewerMain)
	if err != nil {
		return err
	}
	popout, err := a.shader(ctx, p, domain.ViewerPopout)
	if err != nil {
		return err
	}

	values := a.values(p)
	mainDesc := domain.NewShaderDescriptor(main)
	popoutDesc := domain.NewShaderDescriptor(popout)
	a.uniforms.Update(mainDesc, values)
	a.uniforms.Update(popoutDesc, values)

	hash := a.resolver.ComputeHash(p)
	sink.Install(sourceID, hash, mainDesc, popoutDesc)
	a.current.Store(&p)
	span.SetAttribute("params_hash", hash)
	return nil
}

// Shader returns the cached artifact for one viewer, building it on a miss.
func (a *App) Shader(ctx context.Context, sourceID string, override *domain.ParamsOverride, viewer domain.Viewer) (*domain.CompiledShader, error) {
	p, err := a.resolver.Get(sourceID, override)
	if err != nil {
		return nil, err
	}
	return a.shader(ctx, p, viewer)
}

func (a *App) shader(ctx context.Context, p domain.MediaParams, viewer domain.Viewer) (*domain.CompiledShader, error) {
	key := a.pipes.FastHash(p, viewer)
	shader, hit, err := a.pipes.GetOrBuild(key, func() (*domain.CompiledShader, error) {
		_, span := a.tracer.Start(ctx, "pipeline.build",
			ports.WithAttribute("viewer", viewer.String()),
			ports.WithAttribute("key", key))
		defer span.End()

		g, err := a.builder.Build(p, viewer)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		s, err := a.compiler.Compile(key, g)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		span.SetAttribute("stages", len(g.Stages))
		span.SetAttribute("textures", len(s.Textures))
		return s, nil
	})
	if err != nil {
		return nil, zerr.With(err, "viewer", viewer.String())
	}
	if hit {
		a.logger.Debug("pipeline cache hit " + key + " for " + viewer.String())
	}
	return shader, nil
}

// UpdateShaderUniforms writes the current dynamic values into the shaders
// installed in sink. Shader source and textures are never touched. A sink
// holding another source, or descriptors without handles, are left alone.
func (a *App) UpdateShaderUniforms(sink *domain.PipelineData, sourceID string) {
	if sink.SourceID() != sourceID {
		return
	}
	values := a.values(a.sourceParams(sourceID))
	a.uniforms.Update(sink.Descriptor(domain.ViewerMain), values)
	a.uniforms.Update(sink.Descriptor(domain.ViewerPopout), values)
}

// sourceParams returns the latest known params of a source without resolving.
func (a *App) sourceParams(sourceID string) domain.MediaParams {
	if cur := a.current.Load(); cur != nil && cur.SourceID == sourceID {
		return *cur
	}
	if p, ok := a.resolver.Stored(sourceID); ok {
		return p
	}
	return domain.NewMediaParams(sourceID)
}

func (a *App) values(p domain.MediaParams) uniforms.Values {
	return uniforms.Values{
		Exposure: a.Exposure(),
		Bypass:   a.Bypass(),
		Channel:  a.Channel(),
		Primary:  p.Primary,
	}
}

// ProcessThumbnail returns a transformed copy of buf using the baked
// thumbnail variant of the source's transform.
func (a *App) ProcessThumbnail(ctx context.Context, media domain.MediaDescriptor, buf *domain.ThumbnailBuffer) (out *domain.ThumbnailBuffer, err error) {
	ctx, span := a.tracer.Start(ctx, "process_thumbnail",
		ports.WithAttribute("source_id", media.SourceID))
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	if buf != nil {
		span.SetAttribute("width", buf.Width)
		span.SetAttribute("height", buf.Height)
	}
	return a.thumbs.Process(ctx, media, buf)
}

// MediaSourceChanged merges override into the stored params of a source and
// makes it the current source.
func (a *App) MediaSourceChanged(sourceID string, override *domain.ParamsOverride) (domain.MediaParams, error) {
	p, err := a.resolver.Update(sourceID, override)
	if err != nil {
		return domain.MediaParams{}, err
	}
	a.current.Store(&p)
	return p, nil
}

// Current returns the params of the source most recently set up or changed.
func (a *App) Current() (domain.MediaParams, bool) {
	cur := a.current.Load()
	if cur == nil {
		return domain.MediaParams{}, false
	}
	return cur.Clone(), true
}

// Exposure returns the viewer exposure in stops.
func (a *App) Exposure() float64 {
	return math.Float64frombits(a.exposure.Load())
}

// SetExposure sets the viewer exposure in stops.
func (a *App) SetExposure(stops float64) {
	a.exposure.Store(math.Float64bits(stops))
}

// Bypass reports whether the viewer shows unprocessed pixels.
func (a *App) Bypass() bool {
	return a.bypass.Load()
}

// SetBypass toggles the viewer bypass.
func (a *App) SetBypass(enable bool) {
	a.bypass.Store(enable)
}

// Channel returns the channel the viewer isolates.
func (a *App) Channel() domain.Channel {
	return domain.Channel(a.channel.Load())
}

// SetChannel selects the channel the viewer isolates.
func (a *App) SetChannel(c domain.Channel) {
	a.channel.Store(int32(c))
}

// CacheStats summarises the pipeline cache.
type CacheStats struct {
	Shaders int
	Hits    uint64
	Misses  uint64
	Builds  uint64
	Configs int
	Sources int
}

// Stats returns cache counters.
func (a *App) Stats() CacheStats {
	s := a.pipes.Stats()
	return CacheStats{
		Shaders: a.pipes.Len(),
		Hits:    s.Hits,
		Misses:  s.Misses,
		Builds:  s.Builds,
		Configs: len(a.configs.Loaded()),
		Sources: a.resolver.Sources(),
	}
}
