// Package clickid extracts advertising click identifiers from query
// parameters. Roughly two dozen ad platforms append their own tracking
// parameter to landing URLs; this package scans them in a fixed priority
// order and unifies the first hit into a single (click ID, type) pair plus
// a platform inference the attribution engine can fall back on.
package clickid

import (
	"github.com/refparse/attribution/urlparse"
)

// Type identifies which advertising parameter supplied a click ID.
type Type string

// Click-ID types, named after the query parameter that carries them.
const (
	TypeGclid     Type = "gclid"      // Google Ads
	TypeGbraid    Type = "gbraid"     // Google Ads, iOS app campaigns
	TypeWbraid    Type = "wbraid"     // Google Ads, web-to-app
	TypeFbclid    Type = "fbclid"     // Facebook / Meta
	TypeMsclkid   Type = "msclkid"    // Microsoft Advertising (Bing)
	TypeTtclid    Type = "ttclid"     // TikTok
	TypeTwclid    Type = "twclid"     // Twitter / X
	TypeLiFatID   Type = "li_fat_id"  // LinkedIn first-party ad tracking
	TypeSccid     Type = "sccid"      // Snapchat
	TypeRdtCid    Type = "rdt_cid"    // Reddit
	TypeObclickID Type = "obclick_id" // Outbrain
	TypeTblci     Type = "tblci"      // Taboola
	TypeIrclid    Type = "irclid"     // Impact
	TypeYclid     Type = "yclid"      // Yahoo
	TypeDclid     Type = "dclid"      // DoubleClick
)

// String returns the parameter name backing the type.
func (t Type) String() string {
	return string(t)
}

// IsValid reports whether the type is one of the known click-ID parameters.
func (t Type) IsValid() bool {
	switch t {
	case TypeGclid, TypeGbraid, TypeWbraid, TypeFbclid, TypeMsclkid,
		TypeTtclid, TypeTwclid, TypeLiFatID, TypeSccid, TypeRdtCid,
		TypeObclickID, TypeTblci, TypeIrclid, TypeYclid, TypeDclid:
		return true
	default:
		return false
	}
}

// role separates parameters that carry a real per-click identifier from
// platform metadata that only implies a source/medium (gclsrc, gad_source,
// mailing-list IDs, and so on). Metadata never populates the click ID.
type role int

const (
	roleClickID role = iota
	roleMetadata
)

type entry struct {
	param  string
	typ    Type
	source string
	medium string
	role   role
}

// table is the priority order for click-ID attribution: the Google Ads
// family first, then the major platforms, then everything else. The order
// is a deliberate tie-break — when several parameters are present the
// earliest entry wins — so priority changes are edits to this table, not
// to logic.
var table = []entry{
	{"gclid", TypeGclid, "google", "cpc", roleClickID},
	{"gclsrc", "", "google", "cpc", roleMetadata},
	{"gbraid", TypeGbraid, "google", "cpc", roleClickID},
	{"wbraid", TypeWbraid, "google", "cpc", roleClickID},
	{"gad_source", "", "google", "cpc", roleMetadata},
	{"gad_campaignid", "", "google", "cpc", roleMetadata},
	{"srsltid", "", "google", "cpc", roleMetadata},
	{"fbclid", TypeFbclid, "facebook", "cpc", roleClickID},
	{"msclkid", TypeMsclkid, "bing", "cpc", roleClickID},
	{"ttclid", TypeTtclid, "tiktok", "cpc", roleClickID},
	{"twclid", TypeTwclid, "twitter", "cpc", roleClickID},
	{"li_fat_id", TypeLiFatID, "linkedin", "cpc", roleClickID},
	{"igshid", "", "instagram", "social", roleMetadata},
	{"sccid", TypeSccid, "snapchat", "cpc", roleClickID},
	{"epik", "", "pinterest", "social", roleMetadata},
	{"rdt_cid", TypeRdtCid, "reddit", "cpc", roleClickID},
	{"obclick_id", TypeObclickID, "outbrain", "cpc", roleClickID},
	{"obOrigUrl", "", "outbrain", "cpc", roleMetadata},
	{"tblci", TypeTblci, "taboola", "cpc", roleClickID},
	{"irclid", TypeIrclid, "impact", "cpc", roleClickID},
	{"ttd_uuid", "", "tradedesk", "display", roleMetadata},
	{"yclid", TypeYclid, "yahoo", "cpc", roleClickID},
	{"dclid", TypeDclid, "doubleclick", "display", roleClickID},
	{"mc_cid", "", "mailchimp", "email", roleMetadata},
	{"mc_eid", "", "mailchimp", "email", roleMetadata},
	{"ml_subscriber_hash", "", "mailerlite", "email", roleMetadata},
}

// campaignIDParam augments the cascade independently of click-ID priority.
const campaignIDParam = "gad_campaignid"

// Match is the outcome of scanning a parameter set.
type Match struct {
	// ID and Type identify the click. Both are empty when only metadata
	// parameters were present.
	ID   string
	Type Type

	// Source and Medium are the platform inference of the highest-priority
	// parameter found, of either role. The engine applies them only when
	// explicit UTM tags did not already decide source/medium.
	Source string
	Medium string

	// CampaignID carries gad_campaignid when present.
	CampaignID string
}

// Extract scans params against the priority table. Parameter names match
// case-insensitively; parameters with empty values count as absent. The
// first present click-ID parameter supplies (ID, Type); the first present
// parameter of any role supplies the platform inference. ok is false when
// no table parameter is present at all.
func Extract(params urlparse.Params) (Match, bool) {
	var m Match
	found := false
	for _, e := range table {
		v := params.GetFold(e.param)
		if v == "" {
			continue
		}
		if !found {
			m.Source = e.source
			m.Medium = e.medium
			found = true
		}
		if m.ID == "" && e.role == roleClickID {
			m.ID = v
			m.Type = e.typ
		}
	}
	if v := params.GetFold(campaignIDParam); v != "" {
		m.CampaignID = v
	}
	return m, found
}

// ParamNames returns every parameter name in the priority table, in table
// order.
func ParamNames() []string {
	names := make([]string, len(table))
	for i, e := range table {
		names[i] = e.param
	}
	return names
}
