package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hue/internal/core/domain"
)

func TestParseOverride(t *testing.T) {
	o, err := domain.ParseOverride(nil)
	require.NoError(t, err)
	assert.Nil(t, o)
	assert.True(t, o.IsEmpty())

	_, err = domain.ParseOverride([]byte("{"))
	require.ErrorIs(t, err, domain.ErrInvalidOverride)

	o, err = domain.ParseOverride([]byte(`{"view":"","grading_primary":{"gain":[2,2,2]}}`))
	require.NoError(t, err)
	require.NotNil(t, o.View)
	assert.Empty(t, *o.View)
	require.NotNil(t, o.Primary)
	assert.Equal(t, domain.RGB{2, 2, 2}, o.Primary.Gain)
	assert.Equal(t, domain.RGB{1, 1, 1}, o.Primary.Gamma, "omitted fields stay neutral")
	assert.InDelta(t, 1.0, o.Primary.Saturation, 0)
}

func TestOverride_Apply(t *testing.T) {
	base := domain.NewMediaParams("clip")
	base.ConfigName = "studio"
	base.UserDisplay = "sRGB"
	base.UserView = "Film"
	base.Metadata = domain.Metadata{"shot": "010", domain.MetaLook: "Warm"}

	t.Run("nil keeps everything", func(t *testing.T) {
		var o *domain.ParamsOverride
		out := o.Apply(base)
		assert.Equal(t, base, out)
		out.Metadata["shot"] = "020"
		assert.Equal(t, "010", base.Metadata["shot"], "result is a copy")
	})

	t.Run("fields merge", func(t *testing.T) {
		o := &domain.ParamsOverride{
			View:     domain.Ptr(""),
			Bypass:   domain.Ptr(true),
			Metadata: domain.Metadata{domain.MetaLook: "", "take": "3"},
		}
		out := o.Apply(base)
		assert.Equal(t, "sRGB", out.UserDisplay)
		assert.Empty(t, out.UserView, "present empty string clears")
		assert.True(t, out.Bypass)
		assert.Equal(t, domain.Metadata{"shot": "010", "take": "3"}, out.Metadata)
		assert.Equal(t, "Warm", base.Metadata[domain.MetaLook])
	})

	t.Run("config change drops user choices", func(t *testing.T) {
		out := (&domain.ParamsOverride{ConfigName: domain.Ptr("aces")}).Apply(base)
		assert.Equal(t, "aces", out.ConfigName)
		assert.Nil(t, out.Config)
		assert.Empty(t, out.UserDisplay)
		assert.Empty(t, out.UserView)
	})
}

func TestMediaParams(t *testing.T) {
	p := domain.NewMediaParams("clip")
	assert.False(t, p.Resolved())
	assert.True(t, p.Primary.IsIdentity())

	p.Metadata = domain.Metadata{
		"shot":                     "010",
		domain.MetaLook:            "Warm",
		domain.MetaGradeList:       "grade.ccc",
		domain.MetaInputColorspace: "ACEScg",
	}
	assert.Equal(t, [][2]string{{domain.MetaGradeList, "grade.ccc"}, {domain.MetaLook, "Warm"}}, p.TransformMetadata())

	p.Display, p.PopoutDisplay = "sRGB", "P3-D65"
	assert.Equal(t, "sRGB", p.EffectiveDisplay(domain.ViewerMain))
	assert.Equal(t, "sRGB", p.EffectiveDisplay(domain.ViewerThumbnail))
	assert.Equal(t, "P3-D65", p.EffectiveDisplay(domain.ViewerPopout))
}

func TestParseViewer(t *testing.T) {
	for name, want := range map[string]domain.Viewer{
		"main":      domain.ViewerMain,
		"":          domain.ViewerMain,
		"Popout":    domain.ViewerPopout,
		"thumbnail": domain.ViewerThumbnail,
	} {
		v, err := domain.ParseViewer(name)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err := domain.ParseViewer("side")
	require.ErrorIs(t, err, domain.ErrUnknownViewer)

	assert.True(t, domain.ViewerMain.Dynamic())
	assert.True(t, domain.ViewerPopout.Dynamic())
	assert.False(t, domain.ViewerThumbnail.Dynamic())
}
