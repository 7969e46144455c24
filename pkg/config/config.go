package config

import "time"

// AppConfig holds the global application configuration
type AppConfig struct {
	DocsDir          string        `yaml:"docs_dir"`                    // Directory holding the raw intro documents
	DefaultExtension string        `yaml:"default_extension,omitempty"` // Appended to extension-less document names
	LinkPolicy       string        `yaml:"link_policy,omitempty"`       // Anchor derivation: "id", "slug" or "none"
	CacheDir         string        `yaml:"cache_dir,omitempty"`         // State directory for the page cache
	CacheGCInterval  time.Duration `yaml:"cache_gc_interval,omitempty"` // Badger value-log GC interval
	WarmConcurrency  int           `yaml:"warm_concurrency,omitempty"`  // Parallel builds during cache warming
	LogLevel         string        `yaml:"log_level,omitempty"`         // logrus level name
}
