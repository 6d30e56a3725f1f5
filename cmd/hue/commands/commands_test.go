package commands_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hue/cmd/hue/commands"
	"go.trai.ch/hue/internal/app"
	"go.trai.ch/hue/internal/build"
	"go.trai.ch/hue/internal/core/domain"
)

type mockApp struct {
	opts     app.Options
	override *domain.ParamsOverride

	hashFunc      func(sourceID string) (string, error)
	keyFunc       func(media domain.MediaDescriptor, viewer domain.Viewer) (string, error)
	shaderFunc    func(viewer domain.Viewer) (*domain.CompiledShader, error)
	thumbnailFunc func(buf *domain.ThumbnailBuffer) (*domain.ThumbnailBuffer, error)
	sampleFunc    func(viewer domain.Viewer, inverse bool, c domain.RGB) (domain.RGB, error)
	optionsFunc   func(name string) (app.DisplayOptions, error)
}

func (m *mockApp) Configure(opts app.Options) {
	m.opts = opts
}

func (m *mockApp) Params(sourceID string, override *domain.ParamsOverride) (domain.MediaParams, error) {
	m.override = override
	p := domain.NewMediaParams(sourceID)
	p.ConfigName = "studio"
	p.Colorspace = "ACEScg"
	p.Display = "sRGB"
	p.PopoutDisplay = "sRGB"
	p.View = "Standard"
	return p, nil
}

func (m *mockApp) ComputeHash(sourceID string, override *domain.ParamsOverride) (string, error) {
	m.override = override
	if m.hashFunc != nil {
		return m.hashFunc(sourceID)
	}
	return "h-" + sourceID, nil
}

func (m *mockApp) FastDisplayTransformHash(media domain.MediaDescriptor, viewer domain.Viewer) (string, error) {
	if m.keyFunc != nil {
		return m.keyFunc(media, viewer)
	}
	return "k-" + viewer.String(), nil
}

func (m *mockApp) Shader(_ context.Context, _ string, override *domain.ParamsOverride, viewer domain.Viewer) (*domain.CompiledShader, error) {
	m.override = override
	if m.shaderFunc != nil {
		return m.shaderFunc(viewer)
	}
	return &domain.CompiledShader{Key: "k", Viewer: viewer, Source: "fn fs_main() {}\n", SPIRV: []byte{1, 2, 3}}, nil
}

func (m *mockApp) ProcessThumbnail(_ context.Context, media domain.MediaDescriptor, buf *domain.ThumbnailBuffer) (*domain.ThumbnailBuffer, error) {
	m.override = media.Params
	if m.thumbnailFunc != nil {
		return m.thumbnailFunc(buf)
	}
	return buf, nil
}

func (m *mockApp) SampleDisplay(_ domain.MediaDescriptor, viewer domain.Viewer, inverse bool, c domain.RGB) (domain.RGB, error) {
	if m.sampleFunc != nil {
		return m.sampleFunc(viewer, inverse, c)
	}
	return c, nil
}

func (m *mockApp) Configs() []string {
	return []string{"aces", "studio"}
}

func (m *mockApp) DisplayOptions(name string) (app.DisplayOptions, error) {
	if m.optionsFunc != nil {
		return m.optionsFunc(name)
	}
	return app.DisplayOptions{}, nil
}

type mockControls struct {
	attrs   [][2]string
	primary bool
	monitor string
	matched bool
	err     error
}

func (m *mockControls) AttributeChanged(attr, value string) error {
	m.attrs = append(m.attrs, [2]string{attr, value})
	return m.err
}

func (m *mockControls) ScreenChanged(primary bool, monitor string) (bool, error) {
	m.primary, m.monitor = primary, monitor
	return m.matched, m.err
}

func execute(t *testing.T, a *mockApp, c *mockControls, args ...string) (string, error) {
	t.Helper()
	if c == nil {
		c = &mockControls{}
	}
	cli := commands.New(a, c)
	buf := new(bytes.Buffer)
	cli.SetArgs(args)
	cli.SetOutput(buf, buf)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_GlobalFlags(t *testing.T) {
	a := &mockApp{}
	_, err := execute(t, a, nil, "version", "--config-path", "/a,/b", "--state-dir", "/tmp/s", "--json", "-v")
	require.NoError(t, err)

	assert.Equal(t, app.Options{
		ConfigPaths: []string{"/a", "/b"},
		StateDir:    "/tmp/s",
		JSON:        true,
		Verbose:     true,
	}, a.opts)
}

func TestCommands_Hash(t *testing.T) {
	t.Run("prints hash and keys", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, nil, "hash", "clip-7")
		require.NoError(t, err)
		assert.Contains(t, out, "params  h-clip-7")
		assert.Contains(t, out, "main    k-main")
		assert.Contains(t, out, "popout  k-popout")
		assert.NotContains(t, out, "colorspace")
	})

	t.Run("no flags means no override", func(t *testing.T) {
		a := &mockApp{}
		_, err := execute(t, a, nil, "hash")
		require.NoError(t, err)
		assert.Nil(t, a.override)
	})

	t.Run("flags build an override", func(t *testing.T) {
		a := &mockApp{}
		_, err := execute(t, a, nil, "hash",
			"--params", `{"display":"P3-D65","metadata":{"shot":"010"}}`,
			"--view", "Film", "--look", "Warm", "--bypass")
		require.NoError(t, err)
		require.NotNil(t, a.override)
		assert.Equal(t, "P3-D65", *a.override.Display)
		assert.Equal(t, "Film", *a.override.View)
		assert.True(t, *a.override.Bypass)
		assert.Nil(t, a.override.Colorspace)
		assert.Equal(t, domain.Metadata{"shot": "010", domain.MetaLook: "Warm"}, a.override.Metadata)
	})

	t.Run("params from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "params.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"input_colorspace":"sRGB"}`), 0o600))

		a := &mockApp{}
		_, err := execute(t, a, nil, "hash", "--params", "@"+path)
		require.NoError(t, err)
		require.NotNil(t, a.override)
		assert.Equal(t, "sRGB", *a.override.Colorspace)
	})

	t.Run("invalid params", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, nil, "hash", "--params", "{")
		require.Error(t, err)
	})

	t.Run("resolved", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, nil, "hash", "--resolved")
		require.NoError(t, err)
		assert.Contains(t, out, "config      studio")
		assert.Contains(t, out, "view        Standard")
	})

	t.Run("propagates errors", func(t *testing.T) {
		a := &mockApp{hashFunc: func(string) (string, error) { return "", domain.ErrResolution }}
		_, err := execute(t, a, nil, "hash")
		require.ErrorIs(t, err, domain.ErrResolution)
	})
}

func TestCommands_Shader(t *testing.T) {
	t.Run("prints source and resources", func(t *testing.T) {
		a := &mockApp{shaderFunc: func(v domain.Viewer) (*domain.CompiledShader, error) {
			return &domain.CompiledShader{
				Key:      "abc",
				Viewer:   v,
				Source:   "// wgsl\n",
				Textures: []domain.Texture{{Name: "lut_0", Binding: 2, Dim: 3, Width: 17, Height: 17, Depth: 17}},
				Handles:  []domain.Handle{{Name: domain.DynamicExposure, Offset: 0, Components: 1}},
			}, nil
		}}
		out, err := execute(t, a, nil, "shader", "--viewer", "popout", "--resources")
		require.NoError(t, err)
		assert.Contains(t, out, "// wgsl")
		assert.Contains(t, out, "// key abc")
		assert.Contains(t, out, "// texture lut_0 binding 2: 3D 17x17x17")
		assert.Contains(t, out, "// handle exposure offset 0 size 1")
	})

	t.Run("writes spirv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.spv")
		_, err := execute(t, &mockApp{}, nil, "shader", "--spirv", path)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, data)
	})

	t.Run("unknown viewer", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, nil, "shader", "--viewer", "side")
		require.ErrorIs(t, err, domain.ErrUnknownViewer)
	})
}

func TestCommands_Thumbnail(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")

	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff})
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0xff})
	f, err := os.Create(in)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	a := &mockApp{thumbnailFunc: func(buf *domain.ThumbnailBuffer) (*domain.ThumbnailBuffer, error) {
		res := domain.NewThumbnailBuffer(buf.Width, buf.Height, buf.Format)
		for i, v := range buf.Pix {
			res.Pix[i] = 255 - v
		}
		return res, nil
	}}
	stdout, err := execute(t, a, nil, "thumbnail", in, out, "--colorspace", "sRGB")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(2x1)")
	require.NotNil(t, a.override)
	assert.Equal(t, "sRGB", *a.override.Colorspace)

	rf, err := os.Open(out)
	require.NoError(t, err)
	defer func() { _ = rf.Close() }()
	img, err := png.Decode(rf)
	require.NoError(t, err)
	got := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 245, G: 235, B: 225, A: 0xff}, got)

	t.Run("missing input", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, nil, "thumbnail", filepath.Join(dir, "nope.png"), out)
		require.Error(t, err)
	})
}

func TestCommands_Sample(t *testing.T) {
	var gotViewer domain.Viewer
	var gotInverse bool
	a := &mockApp{sampleFunc: func(v domain.Viewer, inverse bool, c domain.RGB) (domain.RGB, error) {
		gotViewer, gotInverse = v, inverse
		return domain.RGB{c[0] * 2, c[1] * 2, c[2] * 2}, nil
	}}

	out, err := execute(t, a, nil, "sample", "0.1", "0.2", "0.25", "--viewer", "popout", "--inverse")
	require.NoError(t, err)
	assert.Equal(t, "0.200000 0.400000 0.500000\n", out)
	assert.Equal(t, domain.ViewerPopout, gotViewer)
	assert.True(t, gotInverse)

	_, err = execute(t, a, nil, "sample", "0.1", "x", "0.2")
	require.Error(t, err)

	out, err = execute(t, a, nil, "sample", "0.1", "0.2", "0.25", "--channel", "green")
	require.NoError(t, err)
	assert.Equal(t, "0.400000 0.400000 0.400000\n", out)

	_, err = execute(t, a, nil, "sample", "0.1", "0.2", "0.25", "--channel", "green", "--inverse")
	require.Error(t, err)
	_, err = execute(t, a, nil, "sample", "0.1", "0.2", "0.25", "--channel", "infrared")
	require.Error(t, err)
}

func TestCommands_Configs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	t.Run("lists names", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, nil, "configs")
		require.NoError(t, err)
		assert.Equal(t, "aces\nstudio\n", out)
	})

	t.Run("details", func(t *testing.T) {
		a := &mockApp{optionsFunc: func(name string) (app.DisplayOptions, error) {
			return app.DisplayOptions{
				Config:       name,
				Description:  "House config",
				WorkingSpace: "ACEScg",
				Displays: []app.DisplayViews{
					{Display: "sRGB", Views: []string{"Standard", "Film"}},
					{Display: "P3-D65", Views: []string{"Standard"}},
				},
				ColorSpaces: []string{"ACEScg", "sRGB"},
				Settings:    domain.PerConfigSettings{Config: name, Display: "P3-D65"},
			}, nil
		}}
		out, err := execute(t, a, nil, "configs", "studio")
		require.NoError(t, err)
		assert.Contains(t, out, "studio")
		assert.Contains(t, out, "House config")
		assert.Contains(t, out, "working space: ACEScg")
		assert.Contains(t, out, "○ sRGB → Standard, Film")
		assert.Contains(t, out, "● P3-D65 → Standard")
		assert.Contains(t, out, "display: P3-D65")
	})

	t.Run("unknown", func(t *testing.T) {
		a := &mockApp{optionsFunc: func(string) (app.DisplayOptions, error) {
			return app.DisplayOptions{}, domain.ErrConfigLoad
		}}
		_, err := execute(t, a, nil, "configs", "nope")
		require.ErrorIs(t, err, domain.ErrConfigLoad)
	})
}

func TestCommands_Set(t *testing.T) {
	c := &mockControls{}
	out, err := execute(t, &mockApp{}, c, "set", "exposure", "1.5")
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"exposure", "1.5"}}, c.attrs)
	assert.Contains(t, out, "exposure = 1.5")

	c = &mockControls{err: errors.New("bad attribute")}
	_, err = execute(t, &mockApp{}, c, "set", "gain", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad attribute")
}

func TestCommands_Screen(t *testing.T) {
	c := &mockControls{matched: true}
	out, err := execute(t, &mockApp{}, c, "screen", "DELL U2720Q", "--popout")
	require.NoError(t, err)
	assert.False(t, c.primary)
	assert.Equal(t, "DELL U2720Q", c.monitor)
	assert.Contains(t, out, "display updated")

	c = &mockControls{}
	out, err = execute(t, &mockApp{}, c, "screen", "Projector")
	require.NoError(t, err)
	assert.True(t, c.primary)
	assert.Contains(t, out, "no display claims")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, &mockApp{}, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "hue version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}
