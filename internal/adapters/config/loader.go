// Package config loads colour configurations from YAML files.
package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

//go:embed builtin
var builtinFS embed.FS

var _ ports.ConfigSource = (*Loader)(nil)

// Source is one entry of the config search path.
type Source struct {
	Name string
	FS   fs.FS
}

// Loader implements ports.ConfigSource. Names are looked up as <name>.yaml in
// each source in order; a name that looks like a path is read directly.
type Loader struct {
	Logger ports.Logger

	mu      sync.RWMutex
	sources []Source
}

// NewLoader creates a Loader searching dirs, then the configurations built
// into the binary.
func NewLoader(logger ports.Logger, dirs []string) *Loader {
	l := NewLoaderFS(logger, Builtin())
	l.AddSearchPath(dirs...)
	return l
}

// NewLoaderFS creates a Loader over explicit sources.
func NewLoaderFS(logger ports.Logger, sources ...Source) *Loader {
	return &Loader{Logger: logger, sources: sources}
}

// Builtin returns the source holding the configurations shipped with hue.
func Builtin() Source {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err) // embedded directory is fixed at compile time
	}
	return Source{Name: "builtin", FS: sub}
}

// AddSearchPath puts dirs ahead of the current search path.
func (l *Loader) AddSearchPath(dirs ...string) {
	added := make([]Source, 0, len(dirs))
	for _, dir := range dirs {
		if dir != "" {
			added = append(added, Source{Name: dir, FS: os.DirFS(dir)})
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources = append(added, l.sources...)
}

func (l *Loader) searchPath() []Source {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.sources)
}

// SearchPath splits a list of directories separated by os.PathListSeparator.
func SearchPath(value string) []string {
	if value == "" {
		return nil
	}
	return filepath.SplitList(value)
}

// Load reads and validates the named configuration.
func (l *Loader) Load(name string) (*domain.Config, error) {
	if name == "" {
		return nil, zerr.Wrap(domain.ErrConfigLoad, "config name is empty")
	}

	if isPath(name) {
		abs, err := filepath.Abs(name)
		if err != nil {
			return nil, loadError(name, err)
		}
		src := Source{Name: filepath.Dir(abs), FS: os.DirFS(filepath.Dir(abs))}
		return l.loadFrom(name, src, filepath.Base(abs))
	}

	file := name + domain.ConfigExt
	for _, src := range l.searchPath() {
		if _, err := fs.Stat(src.FS, file); err == nil {
			return l.loadFrom(name, src, file)
		}
	}

	return nil, zerr.With(zerr.Wrap(domain.ErrConfigLoad,
		fmt.Sprintf("config %q not found on search path", name)), "config", name)
}

func (l *Loader) loadFrom(name string, src Source, file string) (*domain.Config, error) {
	var cfg ConfigFile
	if err := readAndUnmarshalYAML(src.FS, file, &cfg); err != nil {
		return nil, loadError(name, err)
	}

	if cfg.Name != "" && cfg.Name != name && !isPath(name) && l.Logger != nil {
		l.Logger.Warn(fmt.Sprintf("config %q declares name %q; using %q", file, cfg.Name, name))
	}

	conv := converter{fsys: src.FS, dir: path.Dir(file)}
	def, err := conv.definition(name, path.Join(src.Name, file), &cfg)
	if err != nil {
		return nil, zerr.With(err, "config", name)
	}

	c, err := domain.NewConfig(def)
	if err != nil {
		return nil, zerr.With(err, "config", name)
	}
	return c, nil
}

// Available lists the names of every configuration on the search path.
func (l *Loader) Available() []string {
	var names []string
	for _, src := range l.searchPath() {
		matches, err := fs.Glob(src.FS, "*"+domain.ConfigExt)
		if err != nil {
			continue
		}
		for _, m := range matches {
			names = append(names, strings.TrimSuffix(m, domain.ConfigExt))
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func readAndUnmarshalYAML(fsys fs.FS, file string, out any) error {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read config file"), "file", file)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to parse config file"), "file", file)
	}
	return nil
}

// loadError files a failure under ErrConfigLoad while keeping the cause's text.
func loadError(name string, err error) error {
	if errors.Is(err, domain.ErrConfigLoad) {
		return err
	}
	return zerr.With(zerr.Wrap(domain.ErrConfigLoad, fmt.Sprintf("config %q: %v", name, err)), "config", name)
}

func isPath(name string) bool {
	return strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) ||
		strings.HasSuffix(name, domain.ConfigExt)
}
