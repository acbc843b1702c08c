// Package diffview renders proposed file operations for user review.
package diffview

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/youruser/ollama-engineer/pkg/schema"
	"github.com/youruser/ollama-engineer/pkg/ui"
)

const separator = "--------------------------------------------------------------------------------"

// RenderEdit writes a unified diff of the snippet replacement proposed for
// one file.
func RenderEdit(w io.Writer, edit schema.FileToEdit) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(edit.OriginalSnippet),
		B:        difflib.SplitLines(edit.NewSnippet),
		FromFile: edit.Path,
		ToFile:   edit.Path,
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("render diff for %q: %w", edit.Path, err)
	}

	fmt.Fprintln(w, ui.InfoColor.Sprintf("File: %s", edit.Path))
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		fmt.Fprint(w, colorize(line))
	}
	fmt.Fprintln(w, separator)
	return nil
}

// RenderCreate writes the full content of a proposed new file.
func RenderCreate(w io.Writer, create schema.FileToCreate) {
	fmt.Fprintln(w, ui.InfoColor.Sprintf("New file: %s", create.Path))
	fmt.Fprint(w, create.Content)
	if !strings.HasSuffix(create.Content, "\n") {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, separator)
}

func colorize(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return ui.HeaderColor.Sprint(line)
	case strings.HasPrefix(line, "@@"):
		return ui.InfoColor.Sprint(line)
	case strings.HasPrefix(line, "+"):
		return ui.SuccessColor.Sprint(line)
	case strings.HasPrefix(line, "-"):
		return ui.ErrorColor.Sprint(line)
	default:
		return line
	}
}
