// Package attribution classifies how visitors arrive at a site. Given a
// landing URL and an optional referrer URL it deterministically assigns a
// (source, medium) pair plus campaign and click-tracking detail, using a
// priority cascade across four signal sources:
//
//   - Explicit UTM tags: utm_source and friends always win.
//   - Advertising click identifiers: gclid, fbclid, msclkid and roughly two
//     dozen others, scanned in a fixed priority order.
//   - Referrer classification: a knowledge base maps referrer domains to
//     search engines, social platforms, email clients and ad networks;
//     same-site referrers are recognized as internal navigation via
//     public-suffix rules.
//   - Direct fallback: no signal at all yields (direct)/(none).
//
// # Getting started
//
// The zero-configuration path uses the bundled referrer dataset:
//
//	result := attribution.Classify(
//	    "https://shop.example.com/landing?utm_source=newsletter&utm_medium=email",
//	    "https://mail.google.com/",
//	)
//	fmt.Println(result.Source, result.Medium) // newsletter email
//
// For control over the dataset, logging, or tracing, build a Classifier:
//
//	kb, err := referrers.Load("/etc/analytics/referers.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	clf, err := attribution.New(
//	    attribution.WithKnowledgeBase(kb),
//	    attribution.WithLogger(logger),
//	)
//
// # Concurrency
//
// A Classifier is safe for concurrent use: the knowledge base and the
// public-suffix table are immutable after construction, and every call
// produces a fresh Result. Dataset refreshes go through a Store, which
// publishes each new knowledge base as an immutable snapshot behind an
// atomic pointer; in-flight calls keep the snapshot they started with.
package attribution
