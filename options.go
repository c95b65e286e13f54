package cvpdf

import (
	"time"

	"github.com/google/uuid"
)

// Default timeout for browser rendering.
const defaultTimeout = 30 * time.Second

// DefaultProducer is written to the document information dictionary.
const DefaultProducer = "cvpdf"

// serializerConfig holds settings shared by both engines.
type serializerConfig struct {
	timeout         time.Duration
	page            PageSettings
	limits          Limits
	style           string // name or path to a .css file
	assetPath       string
	timestampFormat string
	producer        string
	now             func() time.Time
	newID           func() uuid.UUID
	pdfConverter    pdfConverter // browser engine backend, replaced in tests
}

func defaultConfig() serializerConfig {
	return serializerConfig{
		timeout:  defaultTimeout,
		page:     DefaultPageSettings(),
		producer: DefaultProducer,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// Option configures a Serializer.
type Option func(*serializerConfig)

// WithTimeout sets the browser page load timeout. Ignored by the native engine.
// Panics if d <= 0 (programmer error).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("cvpdf: WithTimeout requires a positive duration")
	}
	return func(c *serializerConfig) {
		c.timeout = d
	}
}

// WithPage sets the page size and margins.
func WithPage(p PageSettings) Option {
	return func(c *serializerConfig) {
		c.page = p
	}
}

// WithLimits caps achievements per entry, certifications and skills.
func WithLimits(l Limits) Option {
	return func(c *serializerConfig) {
		c.limits = l
	}
}

// WithStyle selects the browser engine stylesheet: an embedded or custom style
// name (e.g. "compact"), or a path to a .css file.
func WithStyle(nameOrPath string) Option {
	return func(c *serializerConfig) {
		c.style = nameOrPath
	}
}

// WithAssetPath sets a directory of custom styles and templates. Assets not
// found there fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *serializerConfig) {
		c.assetPath = path
	}
}

// WithTimestamp appends a timestamp to derived filenames, using a preset
// ("iso", "compact", "stamp", "month") or a token format such as "YYYYMMDD".
// Explicit filenames are never changed.
func WithTimestamp(format string) Option {
	return func(c *serializerConfig) {
		c.timestampFormat = format
	}
}

// WithProducer sets the /Producer entry of native documents.
func WithProducer(producer string) Option {
	return func(c *serializerConfig) {
		if producer != "" {
			c.producer = producer
		}
	}
}

// WithClock replaces time.Now for creation dates and filename timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *serializerConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator replaces the source of trailer /ID values.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(c *serializerConfig) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// withPDFConverter replaces the headless Chrome backend.
func withPDFConverter(conv pdfConverter) Option {
	return func(c *serializerConfig) {
		c.pdfConverter = conv
	}
}
