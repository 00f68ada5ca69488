package scanner

import (
	"reflect"
	"testing"
)

type spanText struct {
	Kind Kind
	Text string
}

func scanTexts(text string, mode Mode) []spanText {
	var out []spanText
	for _, sp := range Scan(text, mode) {
		out = append(out, spanText{sp.Kind, sp.Text(text)})
	}
	return out
}

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		mode Mode
		want []spanText
	}{
		{"empty", "", ModeStandard, nil},
		{"plain text", "Hello world", ModeStandard, nil},
		{
			"mixed entities", "hello @user and #tag $AAPL http://example.com", ModeStandard,
			[]spanText{{KindUsername, "@user"}, {KindHashtag, "#tag"}, {KindCashtag, "$AAPL"}, {KindURL, "http://example.com"}},
		},
		{"email domain is skipped", "email user@mail.com", ModeStandard, nil},
		{"cashtag poison skips domain", "$twitter.com", ModeStandard, nil},
		{"retweet prefix", "RT@user", ModeStandard, []spanText{{KindUsername, "@user"}}},
		{"retweet prefix with colon", "RT:@user", ModeStandard, []spanText{{KindUsername, "@user"}}},
		{"retweet prefix lowercase after space", "hi rt@user", ModeStandard, []spanText{{KindUsername, "@user"}}},
		{"not a retweet prefix", "xRT@user", ModeStandard, nil},
		{"slash before at", "a/@user", ModeStandard, nil},
		{"mention followed by dash", "@user-name", ModeStandard, nil},
		{"list", "@user/list", ModeStandard, []spanText{{KindList, "@user/list"}}},
		{"invalid char", "a\uFFFEb", ModeStandard, []spanText{{KindInvalidChar, "\uFFFE"}}},
		{"emoji", "I \u2764\uFE0F you", ModeStandard, []spanText{{KindEmoji, "\u2764\uFE0F"}}},
		{"kana is not emoji", "日本語 あ", ModeStandard, nil},
		{"url trailing dot", "see http://example.com.", ModeStandard, []spanText{{KindURL, "http://example.com"}}},
		{"bare domain starting with h", "hello.com", ModeStandard, []spanText{{KindURLWithoutProtocol, "hello.com"}}},
		{"no uwp inside failed url", "http://-foo.com", ModeStandard, nil},
		{"hashtag after ampersand", "&#tag", ModeStandard, nil},
		{"hashtag after letter", "a#tag", ModeStandard, nil},
		{"hashtag before protocol", "#http://foo.com", ModeStandard, nil},
		{"cashtag needs space", "a$AAPL", ModeStandard, nil},
		{
			"federated in standard mode", "test @sayrer @user1@domain1.com and @user2@domain2.org", ModeStandard,
			[]spanText{{KindUsername, "@sayrer"}},
		},
		{
			"federated mode", "test @sayrer @user1@domain1.com", ModeFederated,
			[]spanText{{KindUsername, "@sayrer"}, {KindFederatedMention, "@user1@domain1.com"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanTexts(tt.text, tt.mode)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestScan_ListSlugStart(t *testing.T) {
	// Arrange
	text := "hi @user/list"

	// Act
	spans := Scan(text, ModeStandard)

	// Assert
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if got := text[spans[0].SlugStart:spans[0].End]; got != "list" {
		t.Errorf("slug: got %q, want %q", got, "list")
	}
}

func TestScan_URLHostOffsets(t *testing.T) {
	// Arrange
	text := "go to https://example.com/x now"

	// Act
	spans := Scan(text, ModeStandard)

	// Assert
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if got := text[spans[0].HostStart:spans[0].HostEnd]; got != "example.com" {
		t.Errorf("host: got %q, want %q", got, "example.com")
	}
}

var sigilTexts = []string{
	"",
	"hello @user and @other/list",
	"RT @a: RT@b rt:@c x@d",
	"email user@mail.com then @real",
	"http://example.com/a,@user @after",
	"example.com/@user and @ok",
	"@user1@domain1.com @user2",
	"＠fullwidth and @half",
	"@user-name @user_name",
	"$AAPL $BRK.A a$NOPE $toolongx $twitter.com",
	"$ $1 $ab_cd\t$XY",
	"日本 $JPY と @名前 @name",
}

func TestScanMentions_MatchesFullScan(t *testing.T) {
	for _, mode := range []Mode{ModeStandard, ModeFederated} {
		for _, text := range sigilTexts {
			want := filterMentions(Scan(text, mode))
			got := ScanMentions(text, mode)
			if len(got) == 0 && len(want) == 0 {
				continue
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ScanMentions(%q, %d) = %v, want %v", text, mode, got, want)
			}
		}
	}
}

func TestScanCashtags_MatchesFullScan(t *testing.T) {
	for _, text := range sigilTexts {
		want := filterKind(Scan(text, ModeStandard), KindCashtag)
		got := ScanCashtags(text)
		if len(got) == 0 && len(want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ScanCashtags(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestIsSpace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\n', 0x85, 0xA0, 0x2000, 0x200A, 0x3000} {
		if !IsSpace(r) {
			t.Errorf("IsSpace(%U) = false, want true", r)
		}
	}
	for _, r := range []rune{'a', 0x200B, '_', 0xFEFF} {
		if IsSpace(r) {
			t.Errorf("IsSpace(%U) = true, want false", r)
		}
	}
}
