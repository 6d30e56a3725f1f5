package app

import (
	"fmt"
	"strconv"

	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/zerr"
)

// Attributes understood by Host.AttributeChanged.
const (
	AttrDisplay          = "display"
	AttrPopoutDisplay    = "popout_display"
	AttrView             = "view"
	AttrExposure         = "exposure"
	AttrBypass           = "bypass"
	AttrChannel          = "channel"
	AttrSourceColorspace = "source_colorspace"
	AttrReset            = "reset"
)

// Host adapts viewer control notifications onto an App. Display and view
// choices are remembered per configuration; source choices go to the current
// source.
type Host struct {
	app *App
}

// NewHost creates a Host for a.
func NewHost(a *App) *Host {
	return &Host{app: a}
}

// config returns the configuration controls apply to: the current source's,
// or the default.
func (h *Host) config() (*domain.Config, string, error) {
	name := h.app.resolver.DefaultConfig()
	sourceID := ""
	if cur, ok := h.app.Current(); ok {
		sourceID = cur.SourceID
		if cur.ConfigName != "" {
			name = cur.ConfigName
		}
	}
	cfg, err := h.app.configs.Load(name)
	return cfg, sourceID, err
}

// AttributeChanged applies a control change.
func (h *Host) AttributeChanged(attr, value string) error {
	switch attr {
	case AttrExposure:
		stops, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrUnknownAttribute, fmt.Sprintf("invalid exposure %q", value)), "attribute", attr)
		}
		h.app.SetExposure(stops)
		return nil
	case AttrBypass:
		enable, err := strconv.ParseBool(value)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrUnknownAttribute, fmt.Sprintf("invalid bypass %q", value)), "attribute", attr)
		}
		h.app.SetBypass(enable)
		return nil
	case AttrChannel:
		channel, ok := domain.ParseChannel(value)
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrUnknownAttribute, fmt.Sprintf("invalid channel %q", value)), "attribute", attr)
		}
		h.app.SetChannel(channel)
		return nil
	case AttrReset:
		h.app.SetExposure(0)
		return nil
	case AttrDisplay, AttrPopoutDisplay, AttrView, AttrSourceColorspace:
		return h.nameChanged(attr, value)
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownAttribute, fmt.Sprintf("attribute %q", attr)), "attribute", attr)
	}
}

func (h *Host) nameChanged(attr, value string) error {
	cfg, sourceID, err := h.config()
	if err != nil {
		return err
	}

	switch attr {
	case AttrSourceColorspace:
		if sourceID == "" {
			return nil
		}
		_, err := h.app.MediaSourceChanged(sourceID, &domain.ParamsOverride{Colorspace: &value})
		return err
	case AttrDisplay, AttrPopoutDisplay:
		if _, ok := cfg.Display(value); !ok {
			return cfg.Missing("display", value)
		}
	case AttrView:
		if !h.viewExists(cfg, value) {
			return cfg.Missing("view", value)
		}
	}

	if _, err := h.app.resolver.UpdateSettings(cfg.Name(), func(s *domain.PerConfigSettings) {
		switch attr {
		case AttrDisplay:
			s.Display = value
		case AttrPopoutDisplay:
			s.PopoutDisplay = value
		case AttrView:
			s.View = value
		}
	}); err != nil {
		return err
	}
	h.app.logger.Debug("settings for " + cfg.Name() + ": " + attr + "=" + value)

	// Explicit per-source choices would shadow the new setting.
	if sourceID != "" && attr != AttrPopoutDisplay {
		empty := ""
		o := &domain.ParamsOverride{}
		if attr == AttrDisplay {
			o.Display = &empty
		} else {
			o.View = &empty
		}
		_, err := h.app.MediaSourceChanged(sourceID, o)
		return err
	}
	return nil
}

func (h *Host) viewExists(cfg *domain.Config, view string) bool {
	for _, d := range cfg.Displays() {
		if _, ok := cfg.View(d, view); ok {
			return true
		}
	}
	return false
}

// ScreenChanged points the main or popout display at the display that claims
// monitor. It reports whether a display matched.
func (h *Host) ScreenChanged(primary bool, monitor string) (bool, error) {
	cfg, _, err := h.config()
	if err != nil {
		return false, err
	}
	return h.app.resolver.ScreenChanged(cfg.Name(), primary, monitor)
}
