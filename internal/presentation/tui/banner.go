package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the hive ASCII banner in a honey gradient.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String(" _     _           ").Foreground(p.Color("#fde68a"))
	s2 := termenv.String("| |__ (_)_   _____ ").Foreground(p.Color("#fcd34d"))
	s3 := termenv.String("| '_ \\| \\ \\ / / _ \\").Foreground(p.Color("#fbbf24"))
	s4 := termenv.String("| | | | |\\ V /  __/").Foreground(p.Color("#f59e0b"))
	s5 := termenv.String("|_| |_|_| \\_/ \\___|").Foreground(p.Color("#d97706"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
