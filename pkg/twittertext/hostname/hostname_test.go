package hostname

import (
	"strings"
	"testing"
)

func TestHasScriptMixing(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"comだよね", true},
		{"example", false},
		{"한국", false},
		{"xn--p1ai", false},
		{"abc-123", false},
		{"日本go", false},
		{"exampleこれは", true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := HasScriptMixing(tt.label); got != tt.want {
				t.Errorf("HasScriptMixing(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestScriptBoundary(t *testing.T) {
	if got := ScriptBoundary("comだよね"); got != 3 {
		t.Errorf("ScriptBoundary(comだよね) = %d, want 3", got)
	}
	if got := ScriptBoundary("한국"); got != len("한국") {
		t.Errorf("ScriptBoundary(한국) = %d, want %d", got, len("한국"))
	}
}

func TestValidDomainEnd(t *testing.T) {
	if got := ValidDomainEnd("twitter.한국"); got != len("twitter.한국") {
		t.Errorf("unicode TLD domain trimmed to %d", got)
	}
	if got := ValidDomainEnd("example.comだよね"); got != len("example.com") {
		t.Errorf("ValidDomainEnd = %d, want %d", got, len("example.com"))
	}
}

func TestTLDBoundary(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		exact  bool
		want   string
		ok     bool
	}{
		{"plain", "msdn.microsoft.com", false, "msdn.microsoft.com", true},
		{"script mixing", "example.comだよね.comtest", false, "example.com", true},
		{"unicode prefix", "twitter.みんなです", true, "twitter.みんな", true},
		{"unicode prefix needs exact", "twitter.みんなです", false, "", false},
		{"hyphenated suffix", "example.com-that-you-meant", false, "example.com", true},
		{"rightmost wins", "foo.co.jp", false, "foo.co.jp", true},
		{"unknown tld", "foo.baz", true, "", false},
		{"uppercase", "EXAMPLE.COM", false, "EXAMPLE.COM", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, ok := TLDBoundary(tt.domain, tt.exact, nil)
			if ok != tt.ok {
				t.Fatalf("TLDBoundary(%q) ok = %v, want %v", tt.domain, ok, tt.ok)
			}
			if ok && tt.domain[:end] != tt.want {
				t.Errorf("TLDBoundary(%q) = %q, want %q", tt.domain, tt.domain[:end], tt.want)
			}
		})
	}
}

func TestTLDBoundary_CustomOracle(t *testing.T) {
	only := func(label string) bool { return label == "internal" }
	end, ok := TLDBoundary("svc.internal", false, only)
	if !ok || end != len("svc.internal") {
		t.Errorf("TLDBoundary with custom oracle = %d, %v", end, ok)
	}
}

func TestUnderscoreBeforeTLD(t *testing.T) {
	if !UnderscoreBeforeTLD("domain-dash_2314352345_dfasd.foo-cow_4352.com") {
		t.Error("underscore in label before TLD should be detected")
	}
	if UnderscoreBeforeTLD("test_underscore.twitter.com") {
		t.Error("underscore in a subdomain is allowed")
	}
}

func TestValidPunycode(t *testing.T) {
	if !ValidPunycode("http://xn--80abe5aohbnkjb.xn--p1ai/", "xn--80abe5aohbnkjb.xn--p1ai", true) {
		t.Error("punycode domain should validate")
	}
	if !ValidPunycode("https://twitter.한국", "twitter.한국", true) {
		t.Error("unicode domain should convert")
	}

	long := strings.Repeat("a", 64) + ".com"
	if ValidPunycode("http://"+long, long, true) {
		t.Error("label over 63 bytes should fail DNS length verification")
	}
}

func TestLengthOK(t *testing.T) {
	domain := "example.com"
	path := "/" + strings.Repeat("a", MaxURLLength)
	if LengthOK("http://"+domain+path, domain, domain, true) {
		t.Error("URL past the maximum length should be rejected")
	}
	if !LengthOK(domain+"/a", domain, domain, false) {
		t.Error("short URL should pass")
	}
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(nil)

	tests := []struct {
		name     string
		url      string
		host     string
		kind     Kind
		wantTrim int
		ok       bool
	}{
		{"protocol", "http://example.com/path", "example.com", KindProtocol, 0, true},
		{"trailing cjk", "http://example.comだよね.comtest/hogehoge", "example.comだよね.comtest", KindProtocol, len("だよね.comtest/hogehoge"), true},
		{"uwp unicode tld", "twitter.みんなです", "twitter.みんなです", KindWithoutProtocol, len("です"), true},
		{"uwp script mixing", "example.comてすと", "example.comてすと", KindWithoutProtocol, len("てすと"), true},
		{"unknown tld", "foo.baz", "foo.baz", KindWithoutProtocol, 0, false},
		{"tco", "https://t.co/abc123", "t.co", KindTCo, 0, true},
		{"ip literal", "http://127.0.0.1/x", "127.0.0.1", KindProtocol, 0, false},
		{"underscore before tld", "http://a.foo_bar.com", "a.foo_bar.com", KindProtocol, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := strings.Index(tt.url, tt.host)
			c := Candidate{URL: tt.url, HostStart: start, HostEnd: start + len(tt.host), Kind: tt.kind}

			trim, ok := v.Validate(c)
			if ok != tt.ok {
				t.Fatalf("Validate(%q) ok = %v, want %v", tt.url, ok, tt.ok)
			}
			if ok && trim != tt.wantTrim {
				t.Errorf("Validate(%q) trim = %d, want %d", tt.url, trim, tt.wantTrim)
			}
		})
	}
}
