package classify

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Rule maps URLs to a kind and knows how to extract the reference to render.
type Rule struct {
	Kind    Kind
	Match   func(raw string) bool
	Extract func(raw string) (string, error)
}

var (
	vimeoID       = regexp.MustCompile(`vimeo\.com/(\d+)`)
	sendvidSlug   = regexp.MustCompile(`sendvid\.com/([a-zA-Z0-9]+)`)
	directFileExt = regexp.MustCompile(`(?i)\.(mp4|webm|ogg)$`)
)

// precedence matters: a youtube link to an .mp4 is still youtube
var rules = []Rule{
	{
		Kind:    KindYouTube,
		Match:   containsAny("youtube.com", "youtu.be"),
		Extract: youtubeEmbed,
	},
	{
		Kind:    KindVimeo,
		Match:   containsAny("vimeo.com"),
		Extract: submatch(vimeoID, "https://player.vimeo.com/video/%s?autoplay=1"),
	},
	{
		Kind:    KindSibnet,
		Match:   containsAny("sibnet.ru"),
		Extract: passthrough,
	},
	{
		Kind:    KindSendvid,
		Match:   containsAny("sendvid.com"),
		Extract: submatch(sendvidSlug, "https://sendvid.com/embed/%s"),
	},
	{
		Kind:    KindDirectFile,
		Match:   isDirectFile,
		Extract: passthrough,
	},
	{
		Kind:    KindEmbedUnknown,
		Match:   func(string) bool { return true },
		Extract: passthrough,
	},
}

// Rules returns a copy of the rule table in precedence order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

func containsAny(needles ...string) func(string) bool {
	return func(raw string) bool {
		for _, n := range needles {
			if strings.Contains(raw, n) {
				return true
			}
		}
		return false
	}
}

func passthrough(raw string) (string, error) {
	return raw, nil
}

func submatch(re *regexp.Regexp, format string) func(string) (string, error) {
	return func(raw string) (string, error) {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			return "", ErrUnresolvable
		}
		return fmt.Sprintf(format, m[1]), nil
	}
}

// isDirectFile checks the URL path so that query strings and fragments do not hide the extension.
func isDirectFile(raw string) bool {
	if directFileExt.MatchString(raw) {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return directFileExt.MatchString(u.Path)
}

func youtubeEmbed(raw string) (string, error) {
	var id string

	if _, rest, ok := strings.Cut(raw, "youtu.be/"); ok {
		id, _, _ = strings.Cut(rest, "?")
		id, _, _ = strings.Cut(id, "&")
	} else {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnresolvable, err)
		}
		id = u.Query().Get("v")
	}

	if id == "" {
		return "", ErrUnresolvable
	}

	return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1&controls=1&rel=0", id), nil
}
