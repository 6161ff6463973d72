package constant

// GOOS values the player and URL launcher branch on.
const (
	Windows = "windows"
	Darwin  = "darwin" // IINA is only offered here
	Linux   = "linux"
	Android = "android" // Termux
)
