package ui

import "golang.org/x/term"

// IsTTY reports whether fd refers to a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Width returns the terminal width in columns, falling back to 80 when
// the size cannot be read.
func Width(fd uintptr) int {
	w, _, err := term.GetSize(int(fd))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
