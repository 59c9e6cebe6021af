package sceval

import (
	"io"
	"time"
)

// analyzeConfig holds the resolved configuration for a batch run.
type analyzeConfig struct {
	timeout        time.Duration
	progress       io.Writer
	ignorePatterns []string
}

// Option configures an analysis run.
type Option func(*analyzeConfig)

// WithTimeout bounds each individual tool invocation. Zero means no
// limit.
func WithTimeout(d time.Duration) Option {
	return func(c *analyzeConfig) {
		c.timeout = d
	}
}

// WithProgress writes one "Analyzing model/contract..." line per target
// to w as the batch proceeds.
func WithProgress(w io.Writer) Option {
	return func(c *analyzeConfig) {
		c.progress = w
	}
}

// WithIgnorePatterns skips contracts matching the given glob patterns
// during discovery, in addition to any .scevalignore file in the root.
func WithIgnorePatterns(patterns []string) Option {
	return func(c *analyzeConfig) {
		c.ignorePatterns = patterns
	}
}

func applyOpts(opts []Option) *analyzeConfig {
	cfg := &analyzeConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}
