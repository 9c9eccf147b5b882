package video

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinkConfigValidate(t *testing.T) {
	valid := SinkConfig{
		Path:   "out.avi",
		FPS:    30,
		Size:   image.Pt(640, 480),
		Codecs: []string{"MJPG"},
	}

	tests := []struct {
		name    string
		mutate  func(*SinkConfig)
		wantErr bool
	}{
		{name: "valid", mutate: func(*SinkConfig) {}},
		{name: "empty path", mutate: func(c *SinkConfig) { c.Path = "" }, wantErr: true},
		{name: "zero fps", mutate: func(c *SinkConfig) { c.FPS = 0 }, wantErr: true},
		{name: "negative fps", mutate: func(c *SinkConfig) { c.FPS = -24 }, wantErr: true},
		{name: "zero width", mutate: func(c *SinkConfig) { c.Size.X = 0 }, wantErr: true},
		{name: "no codecs", mutate: func(c *SinkConfig) { c.Codecs = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
