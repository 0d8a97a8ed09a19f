package attribution

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/refparse/attribution/referrers"
)

// Option configures a Classifier.
type Option func(*config)

// config holds configuration for a Classifier instance.
type config struct {
	kb     *referrers.KnowledgeBase
	store  *Store
	logger *slog.Logger
	tracer trace.Tracer
}

// WithKnowledgeBase supplies a preloaded referrer knowledge base instead of
// the bundled dataset.
func WithKnowledgeBase(kb *referrers.KnowledgeBase) Option {
	return func(c *config) {
		c.kb = kb
	}
}

// WithStore attaches a snapshot store. The classifier reads the store's
// current snapshot on every call, so an external loader can refresh the
// dataset with Store.Swap without rebuilding the classifier. Takes
// precedence over WithKnowledgeBase.
func WithStore(s *Store) Option {
	return func(c *config) {
		c.store = s
	}
}

// WithLogger sets a custom logger for the classifier.
// If not provided, a default logger will be created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer. When set, every classification
// runs inside its own span carrying the resulting source and medium.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}
