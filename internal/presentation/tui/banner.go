package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown by interactive commands.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Warm orange-to-red gradient, after the classic sticky note palette.
	s1 := termenv.String(`  _     _             _      _                  `).Foreground(p.Color("#fbbf24"))
	s2 := termenv.String(` | |__ (_) __ _ _ __ (_) ___| |_ _   _ _ __ ___ `).Foreground(p.Color("#f59e0b"))
	s3 := termenv.String(` | '_ \| |/ _` + "`" + ` | '_ \| |/ __| __| | | | '__/ _ \`).Foreground(p.Color("#f97316"))
	s4 := termenv.String(` | |_) | | (_| | |_) | | (__| |_| |_| | | |  __/`).Foreground(p.Color("#ea580c"))
	s5 := termenv.String(` |_.__/|_|\__, | .__/|_|\___|\__|\__,_|_|  \___|`).Foreground(p.Color("#dc2626"))
	s6 := termenv.String(`          |___/|_|                              `).Foreground(p.Color("#b91c1c"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
