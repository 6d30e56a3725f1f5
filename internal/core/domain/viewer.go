package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// Viewer selects which compiled artifact and stage variant applies.
type Viewer int

const (
	// ViewerMain is the primary viewport.
	ViewerMain Viewer = iota
	// ViewerPopout is the secondary, independently configured viewport.
	ViewerPopout
	// ViewerThumbnail bakes every stage for one-shot still image export.
	ViewerThumbnail
)

// String returns the viewer's canonical name.
func (v Viewer) String() string {
	switch v {
	case ViewerMain:
		return "main"
	case ViewerPopout:
		return "popout"
	case ViewerThumbnail:
		return "thumbnail"
	default:
		return "unknown"
	}
}

// Dynamic reports whether artifacts for this viewer carry runtime handles.
func (v Viewer) Dynamic() bool {
	return v == ViewerMain || v == ViewerPopout
}

// ParseViewer converts a viewer name into a Viewer.
func ParseViewer(s string) (Viewer, error) {
	switch strings.ToLower(s) {
	case "main", "":
		return ViewerMain, nil
	case "popout":
		return ViewerPopout, nil
	case "thumbnail":
		return ViewerThumbnail, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrUnknownViewer, fmt.Sprintf("viewer %q", s)), "viewer", s)
	}
}
