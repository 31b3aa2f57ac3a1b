package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	stepStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ConfigureColor turns styling off when out is not a terminal or NO_COLOR is set
func ConfigureColor(out *os.File) {
	if os.Getenv("NO_COLOR") != "" || !IsTerminal(out) {
		DisableColor()
	}
}

// DisableColor renders every style as plain text
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// StepBanner renders the heading printed before a pipeline step
func StepBanner(index, total int, title string) string {
	return stepStyle.Render(fmt.Sprintf("[%d/%d] %s", index, total, title))
}

// ColorCommand renders a command line as the operator would type it
func ColorCommand(command string) string {
	return commandStyle.Render("$ " + command)
}

// ColorSuccess renders a completion message
func ColorSuccess(msg string) string {
	return successStyle.Render("✓ " + msg)
}

// ColorName highlights a repository, remote or host name
func ColorName(name string) string {
	return nameStyle.Render(name)
}
