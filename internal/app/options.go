package app

import (
	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/engine/graph"
)

// DisplayOptions lists what a configuration offers for viewer controls.
type DisplayOptions struct {
	Config       string
	Description  string
	Path         string
	WorkingSpace string
	Displays     []DisplayViews
	ColorSpaces  []string
	Settings     domain.PerConfigSettings
}

// DisplayViews is a display and the views it offers, in order.
type DisplayViews struct {
	Display string
	Views   []string
}

// Configs lists configuration names that can be loaded.
func (a *App) Configs() []string {
	return a.configs.Available()
}

// DisplayOptions returns the displays, views and colour spaces of a config,
// plus its stored per-config settings. An empty name selects the default.
func (a *App) DisplayOptions(name string) (DisplayOptions, error) {
	if name == "" {
		name = a.resolver.DefaultConfig()
	}
	cfg, err := a.configs.Load(name)
	if err != nil {
		return DisplayOptions{}, err
	}

	opts := DisplayOptions{
		Config:       cfg.Name(),
		Description:  cfg.Description(),
		Path:         cfg.Path(),
		WorkingSpace: cfg.WorkingSpace(),
		ColorSpaces:  cfg.ColorSpaceNames(),
		Settings:     a.resolver.Settings(cfg.Name()),
	}
	for _, d := range cfg.Displays() {
		opts.Displays = append(opts.Displays, DisplayViews{Display: d, Views: cfg.Views(d)})
	}
	return opts, nil
}

// SampleDisplay runs one colour through the display and view transform of a
// source's resolved params, forwards or backwards. Bypassed sources return c.
func (a *App) SampleDisplay(media domain.MediaDescriptor, viewer domain.Viewer, inverse bool, c domain.RGB) (domain.RGB, error) {
	p, err := a.resolver.Get(media.SourceID, media.Params)
	if err != nil {
		return domain.RGB{}, err
	}
	if p.Bypass {
		return c, nil
	}
	dir := graph.Forward
	if inverse {
		dir = graph.Inverse
	}
	stage, err := a.builder.DisplayTransform(p, viewer, dir)
	if err != nil {
		return domain.RGB{}, err
	}
	return domain.ApplyOps(stage.Ops, c), nil
}
