package worker

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const staticRoot = "../../web/static"

// Routes answered by the server rather than the static directory.
var serverRoutes = map[string]bool{
	"./":              true,
	"./manifest.json": true,
}

func staticFile(t *testing.T, url string) string {
	t.Helper()
	rel := strings.TrimPrefix(strings.TrimPrefix(url, "."), "/static/")
	if rel == url || strings.HasPrefix(rel, "/") {
		t.Fatalf("%s is not under /static/", url)
	}
	return filepath.Join(staticRoot, filepath.FromSlash(rel))
}

func TestDefaultAssetsShipWithStaticDir(t *testing.T) {
	for _, asset := range DefaultAssets {
		if serverRoutes[asset] {
			continue
		}
		path := staticFile(t, asset)
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("precached asset %s missing: %v", asset, err)
		}
		if info.Size() == 0 {
			t.Fatalf("precached asset %s is empty", asset)
		}
	}
}

func TestNotificationIconsArePNGs(t *testing.T) {
	tests := []struct {
		url  string
		size int
	}{
		{url: DefaultIcon, size: 192},
		{url: DefaultBadge, size: 72},
	}

	for _, test := range tests {
		t.Run(filepath.Base(test.url), func(t *testing.T) {
			f, err := os.Open(staticFile(t, test.url))
			if err != nil {
				t.Fatalf("open %s: %v", test.url, err)
			}
			defer f.Close()

			cfg, err := png.DecodeConfig(f)
			if err != nil {
				t.Fatalf("decode %s: %v", test.url, err)
			}
			if cfg.Width != test.size || cfg.Height != test.size {
				t.Fatalf("%s is %dx%d, want %dx%d", test.url, cfg.Width, cfg.Height, test.size, test.size)
			}
		})
	}
}
