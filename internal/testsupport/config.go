package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"imfdata/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config suited to tests: rate limiting disabled, short
// timeouts, and quiet logging. It applies any provided options last.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.HTTP.RequestsPerSecond = -1
	cfg.HTTP.TimeoutSeconds = 10
	cfg.Logging.Level = "error"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSiteURL points both feeds at url, usually an httptest server.
func WithSiteURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.WEO.BaseURL = url
		cfg.SDR.BaseURL = url
	}
}

// WithMaxRollbacks overrides the release fallback budget.
func WithMaxRollbacks(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.WEO.MaxRollbacks = n
	}
}

// WriteConfig marshals cfg into a TOML file under a fresh temp directory and
// returns its path, ready for the --config flag.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "imfdata.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
