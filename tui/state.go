package tui

import "github.com/wemanga/wemanga/session"

type state int

const (
	errorState state = iota
	homeState
	listingState
	detailState
	playerState
)

// stateOf maps the controller page onto the bubble state.
func stateOf(view session.View) state {
	switch {
	case view == session.Detail:
		return detailState
	case view == session.Player:
		return playerState
	case view.Browsable():
		return listingState
	default:
		return homeState
	}
}
