package emby

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		version           string
		brokenImageUpload bool
	}{
		{"4.8.11.0", true},
		{"4.8.11.7", true},
		{"4.8.10.0", false},
		{"4.9.0.25", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			t.Parallel()
			caps := capabilitiesFor(tt.version, "Home", "Linux")

			assert.Equal(t, tt.brokenImageUpload, caps.BrokenImageUpload)
			assert.True(t, caps.SupportsLibraryAccess)
			assert.Equal(t, tt.version, caps.Version)
			assert.Equal(t, "Home", caps.ServerName)
		})
	}
}
