// Package fixtures provides sample posts shared by tests across packages.
package fixtures

// Post is a sample text with the entity values it is known to contain, in
// document order. Mentions and lists list the screen name, federated
// mentions their full text.
type Post struct {
	Name     string
	Text     string
	Hashtags []string
	Cashtags []string
	Mentions []string
	URLs     []string
}

// Posts returns the shared sample posts.
func Posts() []Post {
	return []Post{
		{
			Name:     "plain",
			Text:     "Shipping the release today #golang #release",
			Hashtags: []string{"golang", "release"},
		},
		{
			Name:     "reply with link",
			Text:     "@jack thanks, notes at https://example.com/notes?v=2.",
			Mentions: []string{"jack"},
			URLs:     []string{"https://example.com/notes?v=2"},
		},
		{
			Name:     "retweet",
			Text:     "RT @newsdesk: markets up, $AAPL and $BRK.A lead",
			Mentions: []string{"newsdesk"},
			Cashtags: []string{"AAPL", "BRK.A"},
		},
		{
			Name:     "email and bare domain",
			Text:     "write to team@example.org or visit example.org/jobs",
			URLs:     []string{"example.org/jobs"},
		},
		{
			Name:     "list mention",
			Text:     "following @golang/contributors and @rob_pike",
			Mentions: []string{"golang", "rob_pike"},
		},
		{
			Name:     "cjk",
			Text:     "日本語のツイート #日本 http://example.jp/path",
			Hashtags: []string{"日本"},
			URLs:     []string{"http://example.jp/path"},
		},
		{
			Name:     "emoji",
			Text:     "\U0001F389 launch day \U0001F468\u200D\U0001F4BB #ship",
			Hashtags: []string{"ship"},
		},
		{
			Name: "no entities",
			Text: "nothing to see here, just text: a.b c#d e@f $ 5",
		},
	}
}
