package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hue/internal/adapters/fs"
	"go.trai.ch/hue/internal/core/domain"
)

func resolved(sourceID string) domain.MediaParams {
	p := domain.NewMediaParams(sourceID)
	p.ConfigName = "studio"
	p.Colorspace = "ACEScg"
	p.Display = "sRGB"
	p.PopoutDisplay = "sRGB"
	p.View = "Film"
	return p
}

func TestHasher_HashParams_IgnoresSourceIdentity(t *testing.T) {
	h := fs.NewHasher()

	a := resolved("source-a")
	b := resolved("source-b")
	b.Metadata["camera"] = "alexa"

	assert.Equal(t, h.HashParams(a), h.HashParams(b))
	assert.Len(t, h.HashParams(a), 16)
}

func TestHasher_HashParams_SemanticChanges(t *testing.T) {
	h := fs.NewHasher()
	base := h.HashParams(resolved("s"))

	tests := []struct {
		name   string
		mutate func(p *domain.MediaParams)
	}{
		{"config", func(p *domain.MediaParams) { p.ConfigName = "other" }},
		{"colorspace", func(p *domain.MediaParams) { p.Colorspace = "Linear Rec.709" }},
		{"display", func(p *domain.MediaParams) { p.Display = "P3" }},
		{"popout display", func(p *domain.MediaParams) { p.PopoutDisplay = "P3" }},
		{"view", func(p *domain.MediaParams) { p.View = "Raw" }},
		{"bypass", func(p *domain.MediaParams) { p.Bypass = true }},
		{"grade gain", func(p *domain.MediaParams) { p.Primary.Gain[1] = 1.1 }},
		{"grade saturation", func(p *domain.MediaParams) { p.Primary.Saturation = 0.5 }},
		{"look metadata", func(p *domain.MediaParams) { p.Metadata[domain.MetaLook] = "Warm" }},
		{"grade list metadata", func(p *domain.MediaParams) { p.Metadata[domain.MetaGradeListID] = "shot_010" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := resolved("s")
			tt.mutate(&p)
			assert.NotEqual(t, base, h.HashParams(p))
		})
	}
}

func TestHasher_ShaderKey(t *testing.T) {
	h := fs.NewHasher()
	p := resolved("s")

	t.Run("main and popout agree when displays agree", func(t *testing.T) {
		assert.Equal(t, h.ShaderKey(p, domain.ViewerMain), h.ShaderKey(p, domain.ViewerPopout))
	})

	t.Run("main and popout differ when displays differ", func(t *testing.T) {
		q := p.Clone()
		q.PopoutDisplay = "P3"
		assert.NotEqual(t, h.ShaderKey(q, domain.ViewerMain), h.ShaderKey(q, domain.ViewerPopout))
	})

	t.Run("grade is dynamic for live viewers", func(t *testing.T) {
		q := p.Clone()
		q.Primary.Gain = domain.RGB{2, 2, 2}
		assert.Equal(t, h.ShaderKey(p, domain.ViewerMain), h.ShaderKey(q, domain.ViewerMain))
		assert.NotEqual(t, h.ShaderKey(p, domain.ViewerThumbnail), h.ShaderKey(q, domain.ViewerThumbnail))
	})

	t.Run("thumbnail never shares with live viewers", func(t *testing.T) {
		assert.NotEqual(t, h.ShaderKey(p, domain.ViewerMain), h.ShaderKey(p, domain.ViewerThumbnail))
	})
}

func TestHasher_GradeListContents(t *testing.T) {
	h := fs.NewHasher()
	path := filepath.Join(t.TempDir(), "grade.cc")
	require.NoError(t, os.WriteFile(path, []byte("<ColorCorrection id=\"a\"/>"), 0o600))

	p := resolved("s")
	p.Metadata[domain.MetaGradeList] = path
	first := h.HashParams(p)
	assert.Equal(t, first, h.HashParams(p))

	require.NoError(t, os.WriteFile(path, []byte("<ColorCorrection id=\"b\"/>"), 0o600))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	assert.NotEqual(t, first, h.HashParams(p))
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	h := fs.NewHasher()
	_, err := h.ComputeFileHash(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestHasher_UnreadableGradeList(t *testing.T) {
	h := fs.NewHasher()
	path := filepath.Join(t.TempDir(), "grade.cc")

	p := resolved("s")
	p.Metadata[domain.MetaGradeList] = path
	missing := h.HashParams(p)
	assert.Equal(t, missing, h.HashParams(p))
	missingKey := h.ShaderKey(p, domain.ViewerThumbnail)

	require.NoError(t, os.WriteFile(path, []byte("<ColorCorrection id=\"a\"/>"), 0o600))
	assert.NotEqual(t, missing, h.HashParams(p))
	assert.NotEqual(t, missingKey, h.ShaderKey(p, domain.ViewerThumbnail))

	require.NoError(t, os.Remove(path))
	assert.Equal(t, missing, h.HashParams(p))
}
