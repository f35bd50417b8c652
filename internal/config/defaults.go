package config

const (
	defaultUserAgent         = "Mozilla/5.0 (compatible; imfdata/1.0)"
	defaultTimeoutSeconds    = 60
	defaultRequestsPerSecond = 4
	defaultWEOBaseURL        = "https://www.imf.org"
	defaultSDRBaseURL        = "https://www.imf.org"
	defaultMaxRollbacks      = 2
	defaultCacheCapacity     = 8
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults. The user agent
// is left empty so normalization can consult IMFDATA_USER_AGENT first.
func Default() Config {
	return Config{
		HTTP: HTTP{
			TimeoutSeconds:    defaultTimeoutSeconds,
			RequestsPerSecond: defaultRequestsPerSecond,
		},
		WEO: WEO{
			BaseURL:      defaultWEOBaseURL,
			MaxRollbacks: defaultMaxRollbacks,
		},
		SDR: SDR{
			BaseURL: defaultSDRBaseURL,
		},
		Cache: Cache{
			Capacity: defaultCacheCapacity,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
