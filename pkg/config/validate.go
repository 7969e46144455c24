package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"docintro/pkg/markup"
	"docintro/pkg/utils"
)

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// DocsDir
	if c.DocsDir == "" {
		warnings = append(warnings, "docs_dir is empty, defaulting to './docs'")
		c.DocsDir = "./docs"
	}

	// DefaultExtension
	if c.DefaultExtension == "" {
		c.DefaultExtension = ".html"
	}
	if c.DefaultExtension[0] != '.' {
		warnings = append(warnings, fmt.Sprintf(
			"default_extension '%s' missing leading dot, normalizing", c.DefaultExtension))
		c.DefaultExtension = "." + c.DefaultExtension
	}

	// LinkPolicy
	if c.LinkPolicy == "" {
		c.LinkPolicy = markup.LinkPolicyID
	}
	if _, linkErr := markup.LinkFuncForPolicy(c.LinkPolicy); linkErr != nil {
		return warnings, linkErr
	}

	// CacheDir
	if c.CacheDir == "" {
		warnings = append(warnings, "cache_dir is empty, defaulting to './intro_cache'")
		c.CacheDir = "./intro_cache"
	}

	// CacheGCInterval
	if c.CacheGCInterval <= 0 {
		c.CacheGCInterval = 5 * time.Minute
	}

	// WarmConcurrency
	if c.WarmConcurrency <= 0 {
		warnings = append(warnings, "warm_concurrency should be > 0, defaulting to 4")
		c.WarmConcurrency = 4
	}

	// LogLevel
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, parseErr := logrus.ParseLevel(c.LogLevel); parseErr != nil {
		return warnings, fmt.Errorf("%w: invalid log_level '%s'", utils.ErrConfigValidation, c.LogLevel)
	}

	return warnings, nil
}
