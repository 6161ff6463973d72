// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog - these keys locate the static catalog data source.
const (
	CatalogPath = "catalog.path"
)

// Resume Log - these keys bound the "continue watching" history.
const (
	ResumeCapacity = "resume.capacity"
	ResumeRailSize = "resume.rail_size"
)

// Media Playback - these keys configure the playback surfaces and progress sampling.
const (
	Player               = "player.default"
	PlayerPersistSeconds = "player.persist_interval"
	PlayerMinProgress    = "player.min_progress"
	PlayerLowWater       = "player.low_water"
	PlayerResumeOnOpen   = "player.resume_on_open"
)

// Upcoming Episodes Feed - these keys govern the remote airing schedule.
const (
	UpcomingEnable  = "upcoming.enable"
	UpcomingTimeout = "upcoming.timeout"
	UpcomingPerPage = "upcoming.per_page"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's styling.
const (
	TUIItemSpacing = "tui.item_spacing"
	TUIShowURLs    = "tui.show_urls"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
