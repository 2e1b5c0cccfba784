package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Color scheme for pkgreq
var (
	// Primary actions
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow)
	Info    = color.New(color.FgCyan)

	// Secondary actions
	Highlight = color.New(color.FgHiCyan, color.Bold)
	Muted     = color.New(color.Faint)
	Bold      = color.New(color.Bold)

	// Status indicators
	CheckMark = color.GreenString("✓")
	CrossMark = color.RedString("✗")
	Arrow     = color.CyanString("→")
	Bullet    = color.HiBlackString("•")

	// Object kind colors
	KindPatch      = color.New(color.FgMagenta)
	KindPattern    = color.New(color.FgBlue)
	KindProduct    = color.New(color.FgYellow)
	KindSrcPackage = color.New(color.FgRed)
)

// Output streams, replaceable in tests
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// InitColors initializes color settings based on environment and the
// configured mode (auto, always, never)
func InitColors(mode string) {
	switch mode {
	case "never":
		color.NoColor = true
		return
	case "always":
		color.NoColor = false
		return
	}

	// Respect NO_COLOR environment variable
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	// Respect TERM environment variable
	if os.Getenv("TERM") == "dumb" {
		color.NoColor = true
	}
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	Success.Fprintf(Stdout, "%s %s\n", CheckMark, fmt.Sprintf(format, args...))
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(Stderr, "%s Error: %s\n", CrossMark, fmt.Sprintf(format, args...))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	Warning.Fprintf(Stderr, "Warning: %s\n", fmt.Sprintf(format, args...))
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	Info.Fprintf(Stdout, "%s %s\n", Arrow, fmt.Sprintf(format, args...))
}

// PrintKeyValue prints a key-value pair with color
func PrintKeyValue(key, value string) {
	Bold.Fprintf(Stdout, "%s: ", key)
	fmt.Fprintln(Stdout, value)
}

// PrintHeader prints a section header
func PrintHeader(text string) {
	fmt.Fprintln(Stdout)
	Bold.Fprintln(Stdout, text)
	Muted.Fprintln(Stdout, "────────────────────────────────────────")
}

// PrintList prints a bulleted list
func PrintList(items []string) {
	for _, item := range items {
		fmt.Fprintf(Stdout, "  %s %s\n", Bullet, item)
	}
}

// ColorizeKind returns a colored object kind. Packages stay uncolored.
func ColorizeKind(kind string) string {
	switch kind {
	case "patch":
		return KindPatch.Sprint(kind)
	case "pattern":
		return KindPattern.Sprint(kind)
	case "product":
		return KindProduct.Sprint(kind)
	case "srcpackage":
		return KindSrcPackage.Sprint(kind)
	default:
		return kind
	}
}

// SprintSuccess returns a success string without printing
func SprintSuccess(format string, args ...interface{}) string {
	return fmt.Sprintf("%s %s", CheckMark, fmt.Sprintf(format, args...))
}

// SprintError returns an error string without printing
func SprintError(format string, args ...interface{}) string {
	return fmt.Sprintf("%s Error: %s", CrossMark, fmt.Sprintf(format, args...))
}

// SprintWarning returns a warning string without printing
func SprintWarning(format string, args ...interface{}) string {
	return fmt.Sprintf("Warning: %s", fmt.Sprintf(format, args...))
}

// SprintInfo returns an info string without printing
func SprintInfo(format string, args ...interface{}) string {
	return fmt.Sprintf("%s %s", Arrow, fmt.Sprintf(format, args...))
}

// DisableColors disables all color output
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output
func EnableColors() {
	color.NoColor = false
}
