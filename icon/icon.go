// Package icon renders the symbols of the CLI and TUI (films, series, resume entries, upcoming
// episodes) in the variant picked by icons.variant.
package icon

import (
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// iconDef holds one glyph per variant.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// Get picks the glyph of the configured variant, empty for an unknown one.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

func Get(i Icon) string {
	return icons[i].Get()
}

// Icon identifies a UI symbol in the global registry.
type Icon int

// Registered symbols.
const (
	Success Icon = iota
	Fail
	Warn
	Progress
	Play
	Resume
	Calendar
	Film
	Serie
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "\uf00c",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "ﮊ",
		plain:   "✖",
		kaomoji: "(ಥ﹏ಥ)",
		squares: "🟥",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "\uf071",
		plain:   "!",
		kaomoji: "(o_O)",
		squares: "🟨",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "\uf110",
		plain:   "…",
		kaomoji: "(・_・;)",
		squares: "🟦",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "\uf04b",
		plain:   "▶",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟪",
	},
	Resume: {
		emoji:   "⏯️",
		nerd:    "\uf144",
		plain:   "↺",
		kaomoji: "(｀・ω・´)",
		squares: "🟫",
	},
	Calendar: {
		emoji:   "📅",
		nerd:    "\uf073",
		plain:   "#",
		kaomoji: "(￣▽￣)ノ",
		squares: "⬜",
	},
	Film: {
		emoji:   "🎬",
		nerd:    "\uf008",
		plain:   "F",
		kaomoji: "(⌐■_■)",
		squares: "⬛",
	},
	Serie: {
		emoji:   "📺",
		nerd:    "\uf26c",
		plain:   "S",
		kaomoji: "(＾▽＾)",
		squares: "🔳",
	},
}
