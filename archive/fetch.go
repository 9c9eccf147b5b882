package archive

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FetchOptions configures a manifest download.
type FetchOptions struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client
	// OnFile, if set, is called after each successful download.
	OnFile func(i, total int)
}

// ReadManifest parses a manifest: one URL per line, blank lines and
// lines starting with '#' ignored.
func ReadManifest(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := url.ParseRequestURI(line); err != nil {
			return nil, errors.Wrapf(err, "manifest entry %q", line)
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

// Fetch downloads every still listed in the manifest file into destDir,
// named by the last path segment of its URL. One attempt per file; any
// failure aborts the run.
func Fetch(ctx context.Context, manifestPath, destDir string, opts FetchOptions, log *zap.Logger) (int, error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return 0, errors.Wrapf(err, "open manifest %s", manifestPath)
	}
	defer f.Close()

	urls, err := ReadManifest(f)
	if err != nil {
		return 0, err
	}
	if len(urls) == 0 {
		return 0, errors.Errorf("manifest %s lists no files", manifestPath)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, errors.Wrapf(err, "create dest dir %s", destDir)
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := fetchOne(ctx, client, u, destDir); err != nil {
			return i, err
		}
		log.Debug("fetched still", zap.String("url", u))
		if opts.OnFile != nil {
			opts.OnFile(i+1, len(urls))
		}
	}

	return len(urls), nil
}

func fetchOne(ctx context.Context, client *http.Client, rawURL, destDir string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrapf(err, "request %s", rawURL)
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("fetch %s: %s", rawURL, resp.Status)
	}

	name := path.Base(req.URL.Path)
	if name == "" || name == "/" || name == "." {
		return errors.Errorf("fetch %s: cannot derive file name", rawURL)
	}

	out, err := os.Create(filepath.Join(destDir, name))
	if err != nil {
		return errors.Wrapf(err, "create %s", name)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return errors.Wrapf(err, "download %s", rawURL)
	}
	return out.Close()
}
