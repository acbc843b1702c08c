// Package ui provides colored terminal output helpers
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PromptColor  = color.New(color.FgGreen, color.Bold)
)

func Header(format string, a ...any) {
	HeaderColor.Fprintf(os.Stdout, format+"\n", a...)
}

func Info(format string, a ...any) {
	InfoColor.Fprintf(os.Stdout, format+"\n", a...)
}

func Success(format string, a ...any) {
	SuccessColor.Fprintf(os.Stdout, "✓ "+format+"\n", a...)
}

func Warning(format string, a ...any) {
	WarningColor.Fprintf(os.Stdout, "⚠ "+format+"\n", a...)
}

func Error(format string, a ...any) {
	ErrorColor.Fprintf(os.Stdout, "✗ "+format+"\n", a...)
}

// Banner prints the welcome screen shown once at startup.
func Banner(sessionDir string) {
	Header("\nWelcome to Ollama Engineer - your AI pair programming assistant")
	fmt.Println()
	Info("New files proposed by the assistant are placed under: %s/", sessionDir)
	Info("Commands:")
	Info("  /add path/to/file - add a file to the conversation")
	Info("  exit or quit      - end the session")
	fmt.Println()
}
