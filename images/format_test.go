package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want ImageFormat
		ok   bool
	}{
		{"jpg", FormatJPEG, true},
		{"jpeg", FormatJPEG, true},
		{"png", FormatPNG, true},
		{"JPG", "", false},
		{"Png", "", false},
		{"gif", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := FormatFromExtension(tt.ext)
		assert.Equal(t, tt.ok, ok, tt.ext)
		assert.Equal(t, tt.want, got, tt.ext)
	}
}
