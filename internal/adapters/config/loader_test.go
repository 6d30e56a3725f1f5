package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hue/internal/adapters/config"
	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const minimalConfig = `
name: tiny
roles:
  reference: linear
displays:
  - name: sRGB
    views:
      - {name: Standard, colorspace: srgb}
colorspaces:
  - name: linear
  - name: srgb
    from_reference:
      - transfer: srgb
        inverse: true
`

func TestLoader_Builtin(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoaderFS(mocks.NewMockLogger(ctrl), config.Builtin())

	cfg, err := loader.Load("studio")
	require.NoError(t, err)

	assert.Equal(t, "studio", cfg.Name())
	assert.Equal(t, "ACEScg", cfg.WorkingSpace())
	assert.Equal(t, "ACEScg", cfg.DefaultInputColorspace())
	assert.Equal(t, "sRGB", cfg.DefaultDisplay())
	assert.Equal(t, "Film", cfg.DefaultView("sRGB"))
	assert.Equal(t, []string{"sRGB", "P3-D65", "Rec.1886"}, cfg.Displays())
	assert.Equal(t, []string{"Standard", "Raw", "Print"}, cfg.Views("P3-D65"))

	film, ok := cfg.ColorSpace("sRGB - Film")
	require.True(t, ok)
	require.Len(t, film.FromReference, 3)
	lut := film.FromReference[2]
	assert.Equal(t, domain.OpLUT1D, lut.Kind)
	assert.Equal(t, 17, lut.LUT.Size)

	print, ok := cfg.Look("Print")
	require.True(t, ok)
	assert.Equal(t, 3, print.Ops[0].LUT.Size)

	display, ok := cfg.DisplayForMonitor("pro display xdr")
	require.True(t, ok)
	assert.Equal(t, "P3-D65", display)
}

func TestLoader_SearchPathOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := fstest.MapFS{"tiny.yaml": {Data: []byte(minimalConfig)}}
	second := fstest.MapFS{"tiny.yaml": {Data: []byte("not: [valid")}}

	loader := config.NewLoaderFS(mocks.NewMockLogger(ctrl),
		config.Source{Name: "first", FS: first},
		config.Source{Name: "second", FS: second},
	)

	cfg, err := loader.Load("tiny")
	require.NoError(t, err)
	assert.Equal(t, "first/tiny.yaml", cfg.Path())
	assert.Equal(t, "linear", cfg.WorkingSpace())
}

func TestLoader_AddSearchPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.yaml"), []byte(minimalConfig), 0o600))

	loader := config.NewLoader(mocks.NewMockLogger(ctrl), nil)
	_, err := loader.Load("tiny")
	require.ErrorIs(t, err, domain.ErrConfigLoad)

	loader.AddSearchPath(dir)
	cfg, err := loader.Load("tiny")
	require.NoError(t, err)
	assert.Equal(t, "tiny", cfg.Name())
	assert.Equal(t, []string{"studio", "tiny"}, loader.Available())
}

func TestLoader_LoadByPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	p := filepath.Join(dir, "show.yaml")
	require.NoError(t, os.WriteFile(p, []byte(minimalConfig), 0o600))

	loader := config.NewLoaderFS(mocks.NewMockLogger(ctrl))
	cfg, err := loader.Load(p)
	require.NoError(t, err)
	assert.Equal(t, p, cfg.Name())
}

func TestLoader_NameMismatchWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	loader := config.NewLoaderFS(log, config.Source{Name: "mem", FS: fstest.MapFS{
		"other.yaml": {Data: []byte(minimalConfig)},
	}})
	_, err := loader.Load("other")
	require.NoError(t, err)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   fstest.MapFS
		load    string
		wantErr error
	}{
		{
			name:    "missing",
			files:   fstest.MapFS{},
			load:    "nonexistent",
			wantErr: domain.ErrConfigLoad,
		},
		{
			name:    "broken yaml",
			files:   fstest.MapFS{"bad.yaml": {Data: []byte("colorspaces: [")}},
			load:    "bad",
			wantErr: domain.ErrConfigLoad,
		},
		{
			name: "unknown view colour space",
			files: fstest.MapFS{"bad.yaml": {Data: []byte(`
roles: {reference: linear}
colorspaces: [{name: linear}]
displays: [{name: sRGB, views: [{name: Standard, colorspace: nope}]}]
`)}},
			load:    "bad",
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name: "operator with two kinds",
			files: fstest.MapFS{"bad.yaml": {Data: []byte(`
roles: {reference: linear}
colorspaces:
  - name: linear
  - name: odd
    to_reference: [{transfer: srgb, exponent: [2.2]}]
displays: [{name: sRGB, views: [{name: Standard, colorspace: linear}]}]
`)}},
			load:    "bad",
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name: "missing lut file",
			files: fstest.MapFS{"bad.yaml": {Data: []byte(`
roles: {reference: linear}
colorspaces:
  - name: linear
  - name: film
    from_reference: [{lut1d: {file: gone.cube}}]
displays: [{name: sRGB, views: [{name: Standard, colorspace: film}]}]
`)}},
			load:    "bad",
			wantErr: domain.ErrLUTParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := config.NewLoaderFS(mocks.NewMockLogger(ctrl), config.Source{Name: "mem", FS: tt.files})

			_, err := loader.Load(tt.load)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrConfigLoad)
		})
	}
}

func TestSearchPath(t *testing.T) {
	assert.Nil(t, config.SearchPath(""))
	assert.Equal(t, []string{"a", "b"}, config.SearchPath("a"+string(os.PathListSeparator)+"b"))
}
