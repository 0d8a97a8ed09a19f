package attribution

// Sentinel attribution values for traffic that carries no explicit signal.
const (
	// SourceDirect is assigned when no stage of the cascade produced a
	// source: the visitor typed the URL, used a bookmark, or the referrer
	// was stripped.
	SourceDirect = "(direct)"

	// SourceInternal is assigned when the referrer shares the landing
	// URL's registrable root domain.
	SourceInternal = "(internal)"

	// MediumNone marks traffic with no derivable medium.
	MediumNone = "(none)"

	// MediumInternal marks same-site navigation.
	MediumInternal = "internal"

	// MediumReferral marks traffic from an external domain the knowledge
	// base does not recognize.
	MediumReferral = "referral"
)

// Result is the attribution record for a single page view. Source and
// Medium are always set; the remaining fields are populated only when the
// cascade derived them and are omitted from JSON when empty. A Result is
// produced fresh per call and shares no state with the classifier.
type Result struct {
	// Source is where the visitor came from: a UTM source, an ad platform,
	// a knowledge-base provider name, a referrer root domain, or one of
	// the (direct)/(internal) sentinels.
	Source string `json:"source"`

	// Medium is how the visitor arrived: cpc, search, social, email,
	// referral, internal, or (none).
	Medium string `json:"medium"`

	// Term is the search term, from utm_term or the referring search
	// engine's query.
	Term string `json:"term,omitempty"`

	// ClickID and ClickIDType identify an advertising click, when present.
	ClickID     string `json:"click_id,omitempty"`
	ClickIDType string `json:"click_id_type,omitempty"`

	// CampaignID is the platform campaign identifier, from gad_campaignid
	// or utm_id.
	CampaignID string `json:"campaign_id,omitempty"`

	// Campaign and Content carry utm_campaign and utm_content verbatim.
	Campaign string `json:"campaign,omitempty"`
	Content  string `json:"content,omitempty"`

	// Params holds every recognized tracking parameter found on the
	// landing or referrer URL, keyed by canonical parameter name.
	Params map[string]string `json:"params,omitempty"`
}
