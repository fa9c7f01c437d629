// Package ansi provides ANSI escape code constants for plain terminal output.
// All colored/styled terminal output outside the TUI should reference these
// constants to avoid duplication.
package ansi

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Yellow = "\033[33m"
	Green  = "\033[32m"
	Red    = "\033[31m"
	Cyan   = "\033[36m"
)

// ANSI cursor and screen control codes.
const (
	// ClearLine clears the entire current line.
	ClearLine = "\033[2K"

	// ClearScreen clears the screen and moves the cursor home.
	ClearScreen = "\033[2J\033[H"
)
