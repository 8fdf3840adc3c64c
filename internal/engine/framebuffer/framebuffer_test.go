package framebuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampSize(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{640, 480, 640, 480},
		{0, 480, 1, 480},
		{640, -3, 640, 1},
		{0, 0, 1, 1},
	}
	for _, tt := range tests {
		w, h := clampSize(tt.w, tt.h)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}
