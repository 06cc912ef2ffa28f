package extract

import (
	"errors"
	"time"
)

// Config holds tuning parameters for document segmentation and FAQ
// extraction.
type Config struct {
	// MaxItemsPerSection caps the number of Q/A pairs requested per section.
	// Default: 5
	MaxItemsPerSection int

	// MinConfidence drops extracted items below this confidence.
	// Default: 0.0 (keep everything)
	MinConfidence float64

	// MaxSectionChars re-splits sections longer than this on paragraph
	// boundaries before they are sent to the model.
	// Default: 7000
	MaxSectionChars int

	// MinSectionChars merges sections shorter than this into the preceding
	// section. Default: 200
	MinSectionChars int

	// MaxAttempts is the number of model call attempts per section.
	// Default: 3
	MaxAttempts int

	// RetryBaseDelay is the base delay between attempts. The actual delay
	// grows linearly with the attempt number. Default: 1.5s
	RetryBaseDelay time.Duration

	// DedupThreshold discards an item when its normalized question is at
	// least this similar to an already kept question. Default: 0.92
	DedupThreshold float64

	// MinAnswerChars caps the confidence of items whose answer is shorter
	// than this. Default: 3
	MinAnswerChars int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithMaxItemsPerSection sets the per-section Q/A cap.
func WithMaxItemsPerSection(n int) ConfigOption {
	return func(c *Config) { c.MaxItemsPerSection = n }
}

// WithMinConfidence sets the confidence floor for kept items.
func WithMinConfidence(min float64) ConfigOption {
	return func(c *Config) { c.MinConfidence = min }
}

// WithMaxSectionChars sets the section size limit.
func WithMaxSectionChars(n int) ConfigOption {
	return func(c *Config) { c.MaxSectionChars = n }
}

// WithMinSectionChars sets the short-section merge threshold.
func WithMinSectionChars(n int) ConfigOption {
	return func(c *Config) { c.MinSectionChars = n }
}

// WithMaxAttempts sets the number of model call attempts per section.
func WithMaxAttempts(n int) ConfigOption {
	return func(c *Config) { c.MaxAttempts = n }
}

// WithRetryBaseDelay sets the base delay between attempts.
func WithRetryBaseDelay(d time.Duration) ConfigOption {
	return func(c *Config) { c.RetryBaseDelay = d }
}

// WithDedupThreshold sets the question similarity threshold.
func WithDedupThreshold(t float64) ConfigOption {
	return func(c *Config) { c.DedupThreshold = t }
}

// DefaultConfig returns a Config with the standard extraction parameters.
func DefaultConfig() *Config {
	return &Config{
		MaxItemsPerSection: 5,
		MinConfidence:      0.0,
		MaxSectionChars:    7000,
		MinSectionChars:    200,
		MaxAttempts:        3,
		RetryBaseDelay:     1500 * time.Millisecond,
		DedupThreshold:     0.92,
		MinAnswerChars:     3,
	}
}

// NewConfig creates a Config with default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.MaxItemsPerSection <= 0 {
		return errors.New("extract config: MaxItemsPerSection must be positive")
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return errors.New("extract config: MinConfidence must be in [0,1]")
	}
	if c.MaxSectionChars <= c.MinSectionChars {
		return errors.New("extract config: MaxSectionChars must exceed MinSectionChars")
	}
	if c.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	if c.DedupThreshold <= 0 || c.DedupThreshold > 1 {
		return errors.New("extract config: DedupThreshold must be in (0,1]")
	}
	return nil
}
