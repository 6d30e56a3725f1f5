// Package fs implements content hashing of media params and the files they reference.
package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Digest format versions; bump when the layout of a digest changes.
const (
	paramsDigestVersion = "hue.params.v2"
	shaderDigestVersion = "hue.shader.v2"

	unreadableMarker = "unreadable"
)

// Hasher computes xxhash digests over resolved media params. Grade decision
// lists named by metadata contribute their file contents, so editing a list on
// disk changes the digest.
type Hasher struct {
	mu    sync.Mutex
	files map[string]fileDigest
}

type fileDigest struct {
	size    int64
	modTime time.Time
	sum     uint64
}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{files: make(map[string]fileDigest)}
}

// HashParams digests every value that affects the rendered result: config
// name, effective colour space, displays and view, bypass, grading primary and
// transform-relevant metadata. Source identity and other metadata are ignored.
func (h *Hasher) HashParams(p domain.MediaParams) string {
	d := xxhash.New()
	writeString(d, paramsDigestVersion)
	writeString(d, p.ConfigName)
	writeString(d, p.Colorspace)
	writeString(d, p.Display)
	writeString(d, p.PopoutDisplay)
	writeString(d, p.View)
	writeBool(d, p.Bypass)
	writeGrade(d, p.Primary)
	h.writeMetadata(d, p)
	return fmt.Sprintf("%016x", d.Sum64())
}

// ShaderKey digests the values that shape shader source for a viewer. Main and
// popout viewers share keys whenever their display and view agree; values fed
// through dynamic handles are excluded for them and baked in for thumbnails.
func (h *Hasher) ShaderKey(p domain.MediaParams, viewer domain.Viewer) string {
	d := xxhash.New()
	writeString(d, shaderDigestVersion)
	writeBool(d, viewer.Dynamic())
	writeString(d, p.ConfigName)
	writeString(d, p.Colorspace)
	writeString(d, p.EffectiveDisplay(viewer))
	writeString(d, p.View)
	writeBool(d, p.Bypass)
	if !viewer.Dynamic() {
		writeGrade(d, p.Primary)
	}
	h.writeMetadata(d, p)
	return fmt.Sprintf("%016x", d.Sum64())
}

func (h *Hasher) writeMetadata(d *xxhash.Digest, p domain.MediaParams) {
	for _, kv := range p.TransformMetadata() {
		writeString(d, kv[0])
		_, _ = d.Write([]byte{'='})
		writeString(d, kv[1])
		if kv[0] == domain.MetaGradeList {
			sum, err := h.ComputeFileHash(kv[1])
			if err != nil {
				// An unreadable list must not collide with any readable one.
				_, _ = d.Write([]byte{0xff})
				writeString(d, unreadableMarker)
				continue
			}
			_, _ = d.Write([]byte{0x01})
			_ = binary.Write(d, binary.LittleEndian, sum)
		}
	}
	_, _ = d.Write([]byte{0}) // Section separator
}

// ComputeFileHash returns the xxhash of a file's content. Results are reused
// while the file's size and modification time are unchanged.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	h.mu.Lock()
	cached, ok := h.files[path]
	h.mu.Unlock()
	if ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.sum, nil
	}

	f, err := os.Open(path) //nolint:gosec // Path comes from source metadata
	if err != nil {
		return 0, err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, err
	}
	sum := digest.Sum64()

	h.mu.Lock()
	h.files[path] = fileDigest{size: info.Size(), modTime: info.ModTime(), sum: sum}
	h.mu.Unlock()
	return sum, nil
}

func writeString(d *xxhash.Digest, s string) {
	_, _ = d.WriteString(s)
	_, _ = d.Write([]byte{0}) // Separator
}

func writeBool(d *xxhash.Digest, b bool) {
	if b {
		_, _ = d.Write([]byte{1})
		return
	}
	_, _ = d.Write([]byte{0})
}

func writeGrade(d *xxhash.Digest, g domain.GradingPrimary) {
	var buf [8]byte
	for _, block := range [][3]float64{g.Offset, g.Gain, g.Gamma, {g.Saturation}} {
		for _, v := range block {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}
}
