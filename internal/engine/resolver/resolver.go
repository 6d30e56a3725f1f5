// Package resolver merges stored per-source colour state with caller overrides
// into complete, hashable media params.
package resolver

import (
	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/core/ports"
	"go.trai.ch/hue/internal/engine/shard"
)

// ConfigLoader resolves a configuration by name.
type ConfigLoader interface {
	Load(name string) (*domain.Config, error)
}

// Resolver owns the media params and per-config settings maps. Both are
// sharded. Only Update holds a params lock while reading settings; nothing
// takes them in the other order.
type Resolver struct {
	configs       ConfigLoader
	store         ports.SettingsStore
	hasher        ports.Hasher
	logger        ports.Logger
	defaultConfig string

	params   *shard.Map[domain.MediaParams]
	settings *shard.Map[domain.PerConfigSettings]
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDefaultConfig sets the configuration used by sources that name none.
func WithDefaultConfig(name string) Option {
	return func(r *Resolver) {
		r.defaultConfig = name
	}
}

// New creates a Resolver.
func New(configs ConfigLoader, store ports.SettingsStore, hasher ports.Hasher, logger ports.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		configs:       configs,
		store:         store,
		hasher:        hasher,
		logger:        logger,
		defaultConfig: domain.BuiltinConfigName,
		params:        shard.New[domain.MediaParams](shard.DefaultShardCount),
		settings:      shard.New[domain.PerConfigSettings](shard.DefaultShardCount),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultConfig returns the configuration used when a source names none.
func (r *Resolver) DefaultConfig() string {
	return r.defaultConfig
}

// Get returns the resolved params for a source. Fields set on override take
// precedence over stored state; absent fields inherit. The stored state is
// not modified.
func (r *Resolver) Get(sourceID string, override *domain.ParamsOverride) (domain.MediaParams, error) {
	stored, ok := r.params.Get(sourceID)
	if !ok {
		stored = domain.NewMediaParams(sourceID)
	}
	return r.Resolve(override.Apply(stored))
}

// Resolve fills the effective values of p against its configuration.
func (r *Resolver) Resolve(p domain.MediaParams) (domain.MediaParams, error) {
	out := p.Clone()
	if out.ConfigName == "" {
		out.ConfigName = r.defaultConfig
	}

	cfg, err := r.configs.Load(out.ConfigName)
	if err != nil {
		return domain.MediaParams{}, err
	}
	out.Config = cfg

	if err := out.Primary.Validate(); err != nil {
		return domain.MediaParams{}, err
	}

	if out.Colorspace, err = r.colorspace(cfg, out); err != nil {
		return domain.MediaParams{}, err
	}

	settings := r.Settings(cfg.Name())
	if out.Display, err = r.display(cfg, out.UserDisplay, settings.Display); err != nil {
		return domain.MediaParams{}, err
	}
	if out.View, err = r.view(cfg, out.Display, out.UserView, settings.View); err != nil {
		return domain.MediaParams{}, err
	}
	out.PopoutDisplay = r.popout(cfg, out.Display, out.View, settings.PopoutDisplay)
	return out, nil
}

func (r *Resolver) colorspace(cfg *domain.Config, p domain.MediaParams) (string, error) {
	name := p.UserColorspace
	if name == "" {
		name = p.Metadata[domain.MetaInputColorspace]
	}
	if name == "" {
		name = cfg.DefaultInputColorspace()
	}
	cs, ok := cfg.ColorSpace(name)
	if !ok {
		return "", cfg.Missing("colorspace", name)
	}
	return cs.Name, nil
}

func (r *Resolver) display(cfg *domain.Config, requested, stored string) (string, error) {
	if requested != "" {
		if _, ok := cfg.Display(requested); !ok {
			return "", cfg.Missing("display", requested)
		}
		return requested, nil
	}
	if stored != "" {
		if _, ok := cfg.Display(stored); ok {
			return stored, nil
		}
		r.logger.Debug("stored display " + stored + " is not in config " + cfg.Name())
	}
	return cfg.DefaultDisplay(), nil
}

func (r *Resolver) view(cfg *domain.Config, display, requested, stored string) (string, error) {
	if requested != "" {
		if _, ok := cfg.View(display, requested); !ok {
			return "", cfg.Missing("view", requested)
		}
		return requested, nil
	}
	if stored != "" {
		if _, ok := cfg.View(display, stored); ok {
			return stored, nil
		}
	}
	return cfg.DefaultView(display), nil
}

// popout picks the stored popout display when it offers the chosen view and
// mirrors the main display otherwise.
func (r *Resolver) popout(cfg *domain.Config, display, view, stored string) string {
	if stored == "" {
		return display
	}
	if _, ok := cfg.View(stored, view); !ok {
		r.logger.Debug("popout display " + stored + " has no view " + view + ", mirroring " + display)
		return display
	}
	return stored
}

// Set stores params for a source, replacing the previous entry.
func (r *Resolver) Set(sourceID string, params domain.MediaParams) {
	params = params.Clone()
	params.SourceID = sourceID
	r.params.Set(sourceID, params)
}

// Update applies override to the stored params of a source and stores the
// merged result, returning it resolved. The merge is resolved while the
// source's entry is locked, so a merge that does not resolve is rejected and
// leaves the stored params unchanged even under concurrent updates. Settings
// code never takes params locks.
func (r *Resolver) Update(sourceID string, override *domain.ParamsOverride) (domain.MediaParams, error) {
	var resolved domain.MediaParams
	_, err := r.params.TryUpdate(sourceID, func(cur domain.MediaParams, ok bool) (domain.MediaParams, error) {
		if !ok {
			cur = domain.NewMediaParams(sourceID)
		}
		merged := override.Apply(cur)
		var err error
		if resolved, err = r.Resolve(merged); err != nil {
			return domain.MediaParams{}, err
		}
		return merged, nil
	})
	if err != nil {
		return domain.MediaParams{}, err
	}
	return resolved, nil
}

// Stored returns a copy of the stored params for a source.
func (r *Resolver) Stored(sourceID string) (domain.MediaParams, bool) {
	p, ok := r.params.Get(sourceID)
	if !ok {
		return domain.MediaParams{}, false
	}
	return p.Clone(), true
}

// Remove forgets a source.
func (r *Resolver) Remove(sourceID string) {
	r.params.Delete(sourceID)
}

// Sources returns the number of stored sources.
func (r *Resolver) Sources() int {
	return r.params.Len()
}

// ComputeHash digests the semantic content of resolved params.
func (r *Resolver) ComputeHash(params domain.MediaParams) string {
	return r.hasher.HashParams(params)
}

// ShaderKey digests the values that shape the compiled shader for a viewer.
func (r *Resolver) ShaderKey(params domain.MediaParams, viewer domain.Viewer) string {
	return r.hasher.ShaderKey(params, viewer)
}
