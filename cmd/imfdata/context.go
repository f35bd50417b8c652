package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"imfdata/internal/config"
	"imfdata/internal/logging"
	"imfdata/internal/sdr"
	"imfdata/internal/transport"
	"imfdata/internal/weo"
)

// commandContext carries the lazily built runtime shared by the command
// tree: the resolved configuration, the logger, and one service per feed.
// Both feeds share a single transport client so the polite request rate
// holds across them.
type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	runtimeOnce sync.Once
	logger      *slog.Logger
	weoSvc      *weo.Service
	sdrSvc      *sdr.Service
	runtimeErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureRuntime() error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	c.runtimeOnce.Do(func() {
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.runtimeErr = err
			return
		}
		c.logger = logger

		client := transport.NewClient(transport.Config{
			UserAgent:         cfg.HTTP.UserAgent,
			TimeoutSeconds:    cfg.HTTP.TimeoutSeconds,
			RequestsPerSecond: cfg.HTTP.RequestsPerSecond,
		}, transport.WithLogger(logger))

		c.weoSvc = weo.NewService(client, weo.Config{
			BaseURL:       cfg.WEO.BaseURL,
			MaxRollbacks:  cfg.WEO.MaxRollbacks,
			CacheCapacity: cfg.Cache.Capacity,
		}, logger)
		c.sdrSvc = sdr.NewService(client, sdr.Config{
			BaseURL:       cfg.SDR.BaseURL,
			CacheCapacity: cfg.Cache.Capacity,
		}, logger)
	})
	return c.runtimeErr
}

func (c *commandContext) weoService() (*weo.Service, error) {
	if err := c.ensureRuntime(); err != nil {
		return nil, err
	}
	return c.weoSvc, nil
}

func (c *commandContext) sdrService() (*sdr.Service, error) {
	if err := c.ensureRuntime(); err != nil {
		return nil, err
	}
	return c.sdrSvc, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
