package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/color"
	"github.com/wemanga/wemanga/constant"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/style"
)

// Field is a setting with its default value. The default also fixes the type
// accepted by "config set".
type Field struct {
	Key         string
	Value       any
	Description string
}

func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the variable that overrides the field, e.g. WEMANGA_PLAYER_LOW_WATER.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Wemanga + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Modified reports whether the effective value differs from the default.
func (f *Field) Modified() bool {
	return !reflect.DeepEqual(viper.Get(f.Key), f.Value)
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Modified    bool   `json:"modified"`
		Env         string `json:"env"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Modified:    f.Modified(),
		Env:         f.Env(),
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	if f.Value == nil {
		return "unknown"
	}
	return reflect.TypeOf(f.Value).String()
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.CatalogPath, "", "Path to the catalog JSON file.\nDefaults to catalog.json in the config directory")
	register(key.ResumeCapacity, constant.DefaultCapacity, "Maximum number of entries kept in the continue watching log")
	register(key.ResumeRailSize, constant.DefaultRailSize, "Number of continue watching entries shown on the home view")
	register(key.Player, "mpv", "Surface used for direct video files.\nAvailable options are: mpv, iina, browser")
	register(key.PlayerPersistSeconds, 5, "Minimum number of seconds between two progress writes while playing")
	register(key.PlayerMinProgress, 1, "Progress percentage below which periodic writes are skipped (0-100)")
	register(key.PlayerLowWater, 20, "Progress percentage recorded on exit when the source never reported time (0-100)")
	register(key.PlayerResumeOnOpen, true, "Seek to the last known position when an episode is reopened")
	register(key.UpcomingEnable, true, "Fetch upcoming episodes from Anilist")
	register(key.UpcomingTimeout, 10, "Hard timeout in seconds for the upcoming episodes request")
	register(key.UpcomingPerPage, 12, "Number of releasing titles requested from Anilist")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.TUIShowURLs, false, "Show video URLs under episode list items")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, false, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(f *Field) string { return f.typeName() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}{{ if .Modified }} {{ faint "(modified)" }}{{ end }}
{{ blue "Type:" }}    {{ typename . }}`))
