package roi

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    image.Rectangle
		wantErr bool
	}{
		{name: "plain", in: "40,40,20,20", want: image.Rect(40, 40, 60, 60)},
		{name: "spaces", in: " 0, 0, 20, 20", want: image.Rect(0, 0, 20, 20)},
		{name: "too few fields", in: "1,2,3", wantErr: true},
		{name: "not a number", in: "a,b,c,d", wantErr: true},
		{name: "zero width", in: "10,10,0,20", wantErr: true},
		{name: "negative height", in: "10,10,20,-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStaticProvider(t *testing.T) {
	want := image.Rect(5, 6, 25, 36)
	got, err := Static{Rect: want}.Select(gocv.Mat{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
