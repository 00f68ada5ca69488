package domain_test

import (
	"testing"

	"twittertext/internal/domain"
	"twittertext/pkg/twittertext"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want domain.EntityKind
		ok   bool
	}{
		{"url", domain.KindURL, true},
		{" Hashtag ", domain.KindHashtag, true},
		{"LIST", domain.KindList, true},
		{"federated", domain.KindFederated, true},
		{"emoji", "", false},
	}
	for _, tt := range tests {
		got, ok := domain.ParseKind(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKind(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		entity twittertext.Entity
		want   domain.EntityKind
	}{
		{twittertext.Entity{Type: twittertext.URL}, domain.KindURL},
		{twittertext.Entity{Type: twittertext.Mention, Value: "user"}, domain.KindMention},
		{twittertext.Entity{Type: twittertext.Mention, Value: "user", ListSlug: "/list"}, domain.KindList},
		{twittertext.Entity{Type: twittertext.Cashtag}, domain.KindCashtag},
		{twittertext.Entity{Type: twittertext.FederatedMention}, domain.KindFederated},
	}
	for _, tt := range tests {
		if got := domain.KindOf(tt.entity); got != tt.want {
			t.Errorf("KindOf(%+v) = %q, want %q", tt.entity, got, tt.want)
		}
	}
}

func TestAnalysisKey_DistinguishesInputs(t *testing.T) {
	// Arrange
	v3 := twittertext.ConfigV3()
	heavier := twittertext.ConfigV3()
	heavier.DefaultWeight = 300
	base := domain.AnalysisKey("v3", v3, true, "hello")

	// Act
	variants := []string{
		domain.AnalysisKey("v2", v3, true, "hello"),
		domain.AnalysisKey("v3", twittertext.ConfigV2(), true, "hello"),
		domain.AnalysisKey("v3", heavier, true, "hello"),
		domain.AnalysisKey("v3", v3, false, "hello"),
		domain.AnalysisKey("v3", v3, true, "hello!"),
	}

	// Assert
	if base != domain.AnalysisKey("v3", twittertext.ConfigV3(), true, "hello") {
		t.Error("key should be deterministic")
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collides with base key %q", i, base)
		}
	}
}

func TestConfigFingerprint_FollowsContents(t *testing.T) {
	// Arrange
	a := twittertext.ConfigV3()
	b := twittertext.ConfigV3()

	// Act
	same := domain.ConfigFingerprint(a) == domain.ConfigFingerprint(b)
	b.Ranges[0].Weight = 200
	changed := domain.ConfigFingerprint(a) != domain.ConfigFingerprint(b)

	// Assert
	if !same {
		t.Error("equal configurations should share a fingerprint")
	}
	if !changed {
		t.Error("changing a range weight should change the fingerprint")
	}
}
