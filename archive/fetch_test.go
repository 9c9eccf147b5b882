package archive

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReadManifest(t *testing.T) {
	in := strings.NewReader(`
# planetary archive, orbit 33
https://example.org/stills/img1.png

https://example.org/stills/img2.png
`)
	urls, err := ReadManifest(in)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.org/stills/img1.png",
		"https://example.org/stills/img2.png",
	}, urls)
}

func TestReadManifestRejectsGarbage(t *testing.T) {
	_, err := ReadManifest(strings.NewReader("not a url at all\n"))
	assert.Error(t, err)
}

func TestFetchDownloadsManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "pixels of %s", filepath.Base(r.URL.Path))
	}))
	defer srv.Close()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.txt")
	body := fmt.Sprintf("# two stills\n%s/img1.png\n%s/img2.png\n", srv.URL, srv.URL)
	require.NoError(t, os.WriteFile(manifest, []byte(body), 0o644))

	dest := filepath.Join(dir, "stills")
	var progressed int
	count, err := Fetch(context.Background(), manifest, dest, FetchOptions{
		OnFile: func(i, total int) { progressed++ },
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, progressed)

	data, err := os.ReadFile(filepath.Join(dest, "img1.png"))
	require.NoError(t, err)
	assert.Equal(t, "pixels of img1.png", string(data))
}

func TestFetchAbortsOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.txt")
	require.NoError(t, os.WriteFile(manifest, []byte(srv.URL+"/gone.png\n"), 0o644))

	_, err := Fetch(context.Background(), manifest, filepath.Join(dir, "stills"), FetchOptions{}, zap.NewNop())
	assert.Error(t, err)
}

func TestFetchEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("# nothing here\n"), 0o644))

	_, err := Fetch(context.Background(), manifest, filepath.Join(dir, "stills"), FetchOptions{}, zap.NewNop())
	assert.Error(t, err)
}
