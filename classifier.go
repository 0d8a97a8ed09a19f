package attribution

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/refparse/attribution/clickid"
	"github.com/refparse/attribution/domain"
	"github.com/refparse/attribution/referrers"
	"github.com/refparse/attribution/urlparse"
)

// Classifier assigns a traffic source and medium to page views. It is safe
// for concurrent use: all shared state is immutable after construction, and
// every call produces a fresh Result.
type Classifier struct {
	store  *Store
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates a Classifier. Without WithKnowledgeBase or WithStore the
// bundled referrer dataset is loaded; a dataset that fails to load is a
// construction error, never a silently degraded classifier.
//
// Example:
//
//	clf, err := attribution.New(
//	    attribution.WithLogger(logger),
//	    attribution.WithTracer(tracer),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := clf.Classify(pageURL, referrerURL)
func New(opts ...Option) (*Classifier, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	if cfg.store == nil {
		kb := cfg.kb
		if kb == nil {
			var err error
			kb, err = referrers.Bundled()
			if err != nil {
				return nil, err
			}
		}
		cfg.store = NewStore(kb, cfg.logger)
	}

	return &Classifier{
		store:  cfg.store,
		logger: cfg.logger,
		tracer: cfg.tracer,
	}, nil
}

// Classify determines how a visitor arrived at pageURL. referrer may be
// empty. Classify never fails: malformed input degrades to the direct or
// referral fallbacks, and repeated calls with the same inputs and the same
// knowledge-base snapshot return identical results.
func (c *Classifier) Classify(pageURL, referrer string) Result {
	return c.ClassifyContext(context.Background(), pageURL, referrer)
}

// ClassifyContext is Classify with a caller-supplied context, used as the
// parent for the tracing span when a tracer is configured. Classification
// itself never blocks, so the context is not consulted for cancellation.
func (c *Classifier) ClassifyContext(ctx context.Context, pageURL, referrer string) Result {
	if c.tracer == nil {
		return c.classify(pageURL, referrer)
	}

	_, span := c.tracer.Start(ctx, "attribution.Classify")
	defer span.End()
	res := c.classify(pageURL, referrer)
	span.SetAttributes(
		attribute.String("attribution.source", res.Source),
		attribute.String("attribution.medium", res.Medium),
	)
	return res
}

// classify runs the cascade. Stages are ordered and short-circuiting:
// explicit UTM tags, then click-ID platform signals, then referrer
// classification, then the direct fallback. Later stages only fill fields
// earlier stages left unset.
func (c *Classifier) classify(pageURL, referrer string) Result {
	page := urlparse.Decompose(pageURL)
	ref := urlparse.Decompose(referrer)

	merged, tracked := collectParams(page, ref)

	var res Result
	res.Params = tracked

	// Stage 1: explicit UTM tags win outright. A utm_medium without a
	// utm_source pins the medium and leaves the source to later stages.
	if v := strings.TrimSpace(tracked[paramUTMSource]); v != "" {
		res.Source = v
	}
	if v := strings.TrimSpace(tracked[paramUTMMedium]); v != "" {
		res.Medium = v
	}
	res.Term = tracked[paramUTMTerm]
	res.Campaign = tracked[paramUTMCampaign]
	res.Content = tracked[paramUTMContent]

	// Stage 2: platform signals carried in the URL itself. The Telegram
	// start parameter encodes its own source/medium pair; otherwise the
	// click-ID table's platform inference applies. Click-tracking fields
	// are always surfaced, independent of who decided source/medium.
	if res.Source == "" {
		if src, med, ok := parseTelegramParam(tracked[paramTelegram]); ok {
			res.Source = src
			if res.Medium == "" {
				res.Medium = med
			}
		}
	}
	if match, ok := clickid.Extract(merged); ok {
		res.ClickID = match.ID
		res.ClickIDType = match.Type.String()
		res.CampaignID = match.CampaignID
		if res.Source == "" {
			res.Source = match.Source
		}
		if res.Medium == "" {
			res.Medium = match.Medium
		}
	}
	if res.CampaignID == "" {
		res.CampaignID = tracked[paramUTMID]
	}

	// Stage 3: referrer classification, only when the URL itself said
	// nothing about the source.
	if res.Source == "" {
		c.applyReferrer(&res, page, ref)
	}

	// Stage 4: direct fallback.
	if res.Source == "" {
		res.Source = SourceDirect
	}
	if res.Medium == "" {
		res.Medium = MediumNone
	}

	return res
}

// applyReferrer classifies the referrer host: internal navigation first,
// then the knowledge base, then the unknown-domain referral fallback.
// Referrers without an http(s) scheme or a host are ignored.
func (c *Classifier) applyReferrer(res *Result, page, ref urlparse.URL) {
	if ref.Host == "" || (ref.Scheme != "http" && ref.Scheme != "https") {
		return
	}

	refD := domain.Normalize(ref.Host)
	pageD := domain.Normalize(page.Host)
	if pageD.Root != "" && pageD.Root == refD.Root {
		res.Source = SourceInternal
		if res.Medium == "" {
			res.Medium = MediumInternal
		}
		return
	}

	if cls, ok := c.store.Current().Classify(ref.Host); ok {
		res.Source = cls.Source
		if res.Medium == "" {
			res.Medium = cls.Medium.String()
		}
		if res.Term == "" && cls.Medium == referrers.MediumSearch {
			if term := cls.ExtractTerm(ref.RawQuery); term != "" {
				res.Term = term
			}
		}
		return
	}

	res.Source = refD.Root
	if res.Medium == "" {
		res.Medium = MediumReferral
	}
}

// Default classifier for the package-level Classify, built lazily from the
// bundled dataset.
var (
	defaultOnce sync.Once
	defaultClf  *Classifier
)

// Classify runs classification with a process-wide default classifier
// built from the bundled referrer dataset. For custom datasets, loggers,
// or tracing, build a Classifier with New.
func Classify(pageURL, referrer string) Result {
	defaultOnce.Do(func() {
		clf, err := New()
		if err != nil {
			// The bundled dataset is compiled into the binary; failing to
			// parse it is a build defect. Degrade to an empty knowledge
			// base so callers still get direct/referral attribution.
			slog.Default().Error("bundled referrer dataset unavailable", "error", err)
			clf, _ = New(WithKnowledgeBase(referrers.Empty()))
		}
		defaultClf = clf
	})
	return defaultClf.Classify(pageURL, referrer)
}
