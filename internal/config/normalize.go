package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() {
	c.normalizeHTTP()
	c.normalizeFeeds()
	c.normalizeCache()
	c.normalizeLogging()
}

func (c *Config) normalizeHTTP() {
	c.HTTP.UserAgent = strings.TrimSpace(c.HTTP.UserAgent)
	if c.HTTP.UserAgent == "" {
		if value, ok := os.LookupEnv("IMFDATA_USER_AGENT"); ok {
			c.HTTP.UserAgent = strings.TrimSpace(value)
		}
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = defaultUserAgent
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		c.HTTP.TimeoutSeconds = defaultTimeoutSeconds
	}
	// Zero means "use the default"; a negative rate disables limiting.
	if c.HTTP.RequestsPerSecond == 0 {
		c.HTTP.RequestsPerSecond = defaultRequestsPerSecond
	}
}

func (c *Config) normalizeFeeds() {
	c.WEO.BaseURL = strings.TrimRight(strings.TrimSpace(c.WEO.BaseURL), "/")
	if c.WEO.BaseURL == "" {
		c.WEO.BaseURL = defaultWEOBaseURL
	}
	// Zero means "use the default"; a negative budget disables rollback.
	if c.WEO.MaxRollbacks == 0 {
		c.WEO.MaxRollbacks = defaultMaxRollbacks
	}
	c.SDR.BaseURL = strings.TrimRight(strings.TrimSpace(c.SDR.BaseURL), "/")
	if c.SDR.BaseURL == "" {
		c.SDR.BaseURL = defaultSDRBaseURL
	}
}

func (c *Config) normalizeCache() {
	if c.Cache.Capacity < 1 {
		c.Cache.Capacity = defaultCacheCapacity
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
