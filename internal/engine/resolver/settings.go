package resolver

import (
	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/zerr"
)

// Settings returns the per-config settings, reading the store the first time a
// config is seen. Store failures are logged and leave the settings empty.
func (r *Resolver) Settings(config string) domain.PerConfigSettings {
	s, _, _ := r.settings.GetOrBuild(config, func() (domain.PerConfigSettings, error) {
		stored, err := r.store.Get(config)
		if err != nil {
			r.logger.Warn("ignoring stored settings for " + config + ": " + err.Error())
			return domain.PerConfigSettings{Config: config}, nil
		}
		if stored == nil {
			return domain.PerConfigSettings{Config: config}, nil
		}
		stored.Config = config
		return *stored, nil
	})
	return s
}

// UpdateSettings changes the settings of a config under its shard lock and
// persists the result.
func (r *Resolver) UpdateSettings(config string, fn func(s *domain.PerConfigSettings)) (domain.PerConfigSettings, error) {
	r.Settings(config)
	next := r.settings.Update(config, func(cur domain.PerConfigSettings, _ bool) domain.PerConfigSettings {
		cur.Config = config
		fn(&cur)
		return cur
	})
	if err := r.store.Put(next); err != nil {
		return next, zerr.With(err, "config", config)
	}
	return next, nil
}

// ScreenChanged points the main or popout display of a config at the display
// that claims monitor. It reports whether a display matched.
func (r *Resolver) ScreenChanged(config string, primary bool, monitor string) (bool, error) {
	cfg, err := r.configs.Load(config)
	if err != nil {
		return false, err
	}
	display, ok := cfg.DisplayForMonitor(monitor)
	if !ok {
		return false, nil
	}
	_, err = r.UpdateSettings(cfg.Name(), func(s *domain.PerConfigSettings) {
		if primary {
			s.Display = display
			return
		}
		s.PopoutDisplay = display
	})
	return true, err
}
