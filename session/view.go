package session

import "fmt"

// View is the page the shell is showing.
type View int

const (
	Home View = iota
	Series
	Films
	Catalog
	Detail
	Player
)

var viewNames = map[View]string{
	Home:    "home",
	Series:  "series",
	Films:   "films",
	Catalog: "catalog",
	Detail:  "detail",
	Player:  "player",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// Browsable reports whether the view is a listing reachable through Browse.
func (v View) Browsable() bool {
	return v == Series || v == Films || v == Catalog
}
