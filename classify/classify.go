// Package classify resolves arbitrary episode video URLs into something the player can render.
package classify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wemanga/wemanga/log"
)

var (
	// ErrEmpty marks an episode without any video URL.
	ErrEmpty = errors.New("no video source")

	// ErrUnresolvable marks a recognized host whose URL could not be turned into an embed reference.
	ErrUnresolvable = errors.New("cannot load video")
)

// Kind is the family a video source belongs to.
type Kind string

const (
	KindEmpty        Kind = "empty"
	KindYouTube      Kind = "youtube"
	KindVimeo        Kind = "vimeo"
	KindSibnet       Kind = "sibnet"
	KindSendvid      Kind = "sendvid"
	KindDirectFile   Kind = "direct-file"
	KindEmbedUnknown Kind = "embed-unknown"
)

// Source is the outcome of classifying a raw URL.
type Source struct {
	Kind Kind
	// Raw is the URL as found in the catalog.
	Raw string
	// Ref is what gets rendered: an embed URL for frame sources, the raw URL otherwise.
	Ref string
	// Err is set when nothing can be rendered.
	Err error
}

// Playable reports whether there is something to render.
func (s Source) Playable() bool {
	return s.Err == nil && s.Ref != ""
}

// Native reports whether the source plays in a time-seekable element that reports its position.
func (s Source) Native() bool {
	return s.Playable() && s.Kind == KindDirectFile
}

func (s Source) String() string {
	if s.Err != nil {
		return fmt.Sprintf("%s (%v)", s.Kind, s.Err)
	}
	return fmt.Sprintf("%s %s", s.Kind, s.Ref)
}

// Classify runs raw through the rule table. The first matching rule decides the kind.
func Classify(raw string) Source {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Source{Kind: KindEmpty, Raw: raw, Err: ErrEmpty}
	}

	for _, r := range rules {
		if !r.Match(trimmed) {
			continue
		}

		src := Source{Kind: r.Kind, Raw: raw}
		ref, err := r.Extract(trimmed)
		if err != nil {
			src.Err = fmt.Errorf("%s: %w", r.Kind, err)
			log.Warnf("classify %q: %v", raw, src.Err)
			return src
		}
		src.Ref = ref
		return src
	}

	// unreachable: the last rule matches everything
	return Source{Kind: KindEmbedUnknown, Raw: raw, Ref: trimmed}
}
