package attribution

import (
	"regexp"
	"strings"

	"github.com/refparse/attribution/clickid"
	"github.com/refparse/attribution/urlparse"
)

// UTM parameter names.
const (
	paramUTMSource   = "utm_source"
	paramUTMMedium   = "utm_medium"
	paramUTMCampaign = "utm_campaign"
	paramUTMTerm     = "utm_term"
	paramUTMContent  = "utm_content"
	paramUTMID       = "utm_id"
)

// paramTelegram is the Telegram mini-app start parameter, which smuggles a
// source/medium pair in its value instead of using separate UTM tags.
const paramTelegram = "tgWebAppStartParam"

// trackedParams is every query parameter the classifier recognizes, in
// canonical spelling. Matching against URLs is case-insensitive.
var trackedParams = buildTrackedParams()

func buildTrackedParams() []string {
	names := []string{
		paramUTMSource,
		paramUTMMedium,
		paramUTMCampaign,
		paramUTMTerm,
		paramUTMContent,
		paramUTMID,
	}
	names = append(names, clickid.ParamNames()...)
	// Piwik/Matomo campaign tags and the Telegram start parameter are
	// surfaced in Result.Params but carry no cascade logic of their own.
	names = append(names, "pk_campaign", "pk_source", "pk_medium", paramTelegram)
	return names
}

// collectParams merges landing-URL and referrer-URL parameters (landing
// wins on conflicts) and extracts the recognized tracking parameters into
// a map keyed by canonical name. Parameters with empty values are treated
// as absent.
func collectParams(page, ref urlparse.URL) (urlparse.Params, map[string]string) {
	merged := make(urlparse.Params, 0, len(page.Params)+len(ref.Params))
	merged = append(merged, page.Params...)
	for _, p := range ref.Params {
		if !page.Params.HasFold(p.Key) {
			merged = append(merged, p)
		}
	}

	var tracked map[string]string
	for _, name := range trackedParams {
		if v := merged.GetFold(name); v != "" {
			if tracked == nil {
				tracked = make(map[string]string)
			}
			tracked[name] = v
		}
	}
	return merged, tracked
}

var (
	telegramSourceRe = regexp.MustCompile(`utm_source-([^_]+)`)
	telegramMediumRe = regexp.MustCompile(`utm_medium-([^_]+)`)
)

// parseTelegramParam parses Telegram mini-app start parameters of the form
// "utm_source-telegram_utm_medium-cpc" into a source/medium pair.
func parseTelegramParam(v string) (source, medium string, ok bool) {
	if !strings.Contains(v, "utm_source-") || !strings.Contains(v, "utm_medium-") {
		return "", "", false
	}
	sm := telegramSourceRe.FindStringSubmatch(v)
	mm := telegramMediumRe.FindStringSubmatch(v)
	if sm == nil || mm == nil {
		return "", "", false
	}
	return sm[1], mm[1], true
}
