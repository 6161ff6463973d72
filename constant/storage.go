package constant

// ContinueWatchingKey is the storage key holding the serialized resume log.
const ContinueWatchingKey = "continueWatching"

// Resume defaults - these values seed the configuration registry.
const (
	// DefaultCapacity bounds the number of records kept in the resume log.
	DefaultCapacity = 10

	// DefaultRailSize is the number of resolved entries shown in the "continue watching" rail.
	DefaultRailSize = 6

	// DefaultLowWater is persisted on exit when a source never reported playback time.
	DefaultLowWater = 0.2

	// DefaultMinProgress is the fraction below which periodic writes are skipped.
	DefaultMinProgress = 0.01
)
