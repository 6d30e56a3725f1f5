// Package output builds termenv outputs with hue's colour profile rules.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorProfile returns Ascii when NO_COLOR is set and the detected profile otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w, defaulting to stderr. Files that are not
// terminals get plain text.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if f, ok := w.(*os.File); ok && !IsTerminal(f) {
		return NewWithProfile(w, func() termenv.Profile { return termenv.Ascii }, opts...)
	}
	return NewWithProfile(w, ColorProfile, opts...)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewWithProfile creates a termenv.Output whose profile comes from profileFn.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
