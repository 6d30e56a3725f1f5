package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/hue/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
		},
		{
			name:         "zerr chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("file not found"), "lut unreadable"), "config load failed"),
			wantMessages: []string{"config load failed", "lut unreadable", "file not found"},
		},
		{
			name:         "nil",
			err:          nil,
			wantMessages: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			var got []string
			for _, e := range entries {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.wantMessages, got)
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "causes",
			entries: []logger.ErrorEntry{{Message: "outer"}, {Message: "middle"}, {Message: "inner"}},
			want:    "Error: outer\n\n  Caused by:\n    → middle\n    → inner",
		},
		{
			name: "metadata sorted",
			entries: []logger.ErrorEntry{{
				Message:  "display not found",
				Metadata: map[string]any{"display": "DCI-X", "config": "studio"},
			}},
			want: "Error: display not found\n       config: studio\n       display: DCI-X",
		},
		{
			name: "metadata on cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause", Metadata: map[string]any{"line": 4}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause\n      line: 4",
		},
		{
			name:    "multiline",
			entries: []logger.ErrorEntry{{Message: "yaml: errors:\n  line 3"}, {Message: "a\nb"}},
			want:    "Error: yaml: errors:\n         line 3\n\n  Caused by:\n    → a\n      b",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
