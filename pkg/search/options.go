// ABOUTME: Construction options for the search engine
// ABOUTME: Include rule, hash strategy, logging and metrics wiring

package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/nainya/docsearch/internal/logger"
	"github.com/nainya/docsearch/pkg/document"
	"github.com/nainya/docsearch/pkg/flatten"
	"github.com/nainya/docsearch/pkg/pathhash"
)

// Option configures an Engine at construction.
type Option func(*config)

type config struct {
	include *flatten.Rule
	hasher  pathhash.Hasher
	idKey   string
	log     *logger.Logger
	reg     prometheus.Registerer
}

func defaultConfig() config {
	return config{
		hasher: pathhash.XX{},
		idKey:  document.IDKey,
		log:    logger.GetGlobalLogger(),
	}
}

// WithInclude restricts indexing to the paths permitted by rule. Filters
// addressing paths outside the rule fail Check with ErrUnsupportedFilter.
func WithInclude(rule *flatten.Rule) Option {
	return func(c *config) { c.include = rule }
}

// WithHasher substitutes the hash strategy used for branches and prefixes.
// The default is pathhash.XX.
func WithHasher(h pathhash.Hasher) Option {
	return func(c *config) { c.hasher = h }
}

// WithIDKey changes the reserved field holding document identifiers.
// The default is document.IDKey.
func WithIDKey(key string) Option {
	return func(c *config) { c.idKey = key }
}

// WithLogger attaches a zerolog logger to the engine.
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) { c.log = logger.FromZerolog(log) }
}

// WithMetrics registers engine metrics against reg. Each engine registers
// the same metric names, so distinct engines need distinct registerers.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) { c.reg = reg }
}
