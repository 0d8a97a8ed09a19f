package clickid

import (
	"testing"

	"github.com/refparse/attribution/urlparse"
)

func params(pairs ...string) urlparse.Params {
	var p urlparse.Params
	for i := 0; i+1 < len(pairs); i += 2 {
		p = append(p, urlparse.Param{Key: pairs[i], Value: pairs[i+1]})
	}
	return p
}

func TestExtract_Priority(t *testing.T) {
	tests := []struct {
		name     string
		params   urlparse.Params
		wantID   string
		wantType Type
	}{
		{
			name:     "gclid beats fbclid",
			params:   params("fbclid", "FB1", "gclid", "GC1"),
			wantID:   "GC1",
			wantType: TypeGclid,
		},
		{
			name:     "gclid beats all google variants",
			params:   params("wbraid", "WB1", "gbraid", "GB1", "gclid", "GC1"),
			wantID:   "GC1",
			wantType: TypeGclid,
		},
		{
			name:     "gbraid beats wbraid",
			params:   params("wbraid", "WB1", "gbraid", "GB1"),
			wantID:   "GB1",
			wantType: TypeGbraid,
		},
		{
			name:     "fbclid beats msclkid and ttclid",
			params:   params("ttclid", "TT1", "msclkid", "MS1", "fbclid", "FB1"),
			wantID:   "FB1",
			wantType: TypeFbclid,
		},
		{
			name:     "case-insensitive parameter names",
			params:   params("ScCid", "SC1"),
			wantID:   "SC1",
			wantType: TypeSccid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Extract(tt.params)
			if !ok {
				t.Fatal("Extract() ok = false, want true")
			}
			if m.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", m.ID, tt.wantID)
			}
			if m.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", m.Type, tt.wantType)
			}
		})
	}
}

func TestExtract_PlatformInference(t *testing.T) {
	tests := []struct {
		name       string
		params     urlparse.Params
		wantSource string
		wantMedium string
	}{
		{"gclid", params("gclid", "x"), "google", "cpc"},
		{"fbclid", params("fbclid", "x"), "facebook", "cpc"},
		{"msclkid", params("msclkid", "x"), "bing", "cpc"},
		{"ttclid", params("ttclid", "x"), "tiktok", "cpc"},
		{"igshid is social", params("igshid", "x"), "instagram", "social"},
		{"dclid is display", params("dclid", "x"), "doubleclick", "display"},
		{"mailchimp is email", params("mc_cid", "x"), "mailchimp", "email"},
		{"inference follows table order", params("yclid", "Y1", "igshid", "IG1"), "instagram", "social"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Extract(tt.params)
			if !ok {
				t.Fatal("Extract() ok = false, want true")
			}
			if m.Source != tt.wantSource || m.Medium != tt.wantMedium {
				t.Errorf("inference = (%q, %q), want (%q, %q)",
					m.Source, m.Medium, tt.wantSource, tt.wantMedium)
			}
		})
	}
}

func TestExtract_MetadataOnly(t *testing.T) {
	// gad_source implies Google Ads traffic but is not a per-click ID.
	m, ok := Extract(params("gad_source", "1"))
	if !ok {
		t.Fatal("Extract() ok = false, want true")
	}
	if m.ID != "" || m.Type != "" {
		t.Errorf("metadata parameter must not set a click ID, got (%q, %q)", m.ID, m.Type)
	}
	if m.Source != "google" || m.Medium != "cpc" {
		t.Errorf("inference = (%q, %q), want (google, cpc)", m.Source, m.Medium)
	}
}

func TestExtract_CampaignID(t *testing.T) {
	t.Run("alongside a click id", func(t *testing.T) {
		m, ok := Extract(params("gclid", "GC1", "gad_campaignid", "999"))
		if !ok {
			t.Fatal("Extract() ok = false, want true")
		}
		if m.CampaignID != "999" {
			t.Errorf("CampaignID = %q, want %q", m.CampaignID, "999")
		}
		if m.ID != "GC1" {
			t.Errorf("ID = %q, want %q", m.ID, "GC1")
		}
	})

	t.Run("alone", func(t *testing.T) {
		m, ok := Extract(params("gad_campaignid", "22633883708"))
		if !ok {
			t.Fatal("Extract() ok = false, want true")
		}
		if m.CampaignID != "22633883708" {
			t.Errorf("CampaignID = %q, want %q", m.CampaignID, "22633883708")
		}
		if m.ID != "" {
			t.Errorf("ID = %q, want empty", m.ID)
		}
		if m.Source != "google" || m.Medium != "cpc" {
			t.Errorf("inference = (%q, %q), want (google, cpc)", m.Source, m.Medium)
		}
	})
}

func TestExtract_NoMatch(t *testing.T) {
	if _, ok := Extract(params("utm_source", "google", "q", "x")); ok {
		t.Error("Extract() ok = true for non-click parameters, want false")
	}
	if _, ok := Extract(nil); ok {
		t.Error("Extract(nil) ok = true, want false")
	}
	// Present but empty counts as absent.
	if _, ok := Extract(params("gclid", "")); ok {
		t.Error("Extract() ok = true for empty gclid, want false")
	}
}

func TestType_IsValid(t *testing.T) {
	for _, typ := range []Type{TypeGclid, TypeFbclid, TypeMsclkid, TypeDclid} {
		if !typ.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", typ)
		}
	}
	if Type("gad_source").IsValid() {
		t.Error("metadata parameter must not be a valid click-ID type")
	}
	if Type("").IsValid() {
		t.Error("empty type must not be valid")
	}
}

func TestParamNames(t *testing.T) {
	names := ParamNames()
	if len(names) != 26 {
		t.Fatalf("len(ParamNames()) = %d, want 26", len(names))
	}
	if names[0] != "gclid" {
		t.Errorf("highest priority parameter = %q, want gclid", names[0])
	}
}
