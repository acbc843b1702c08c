// Package fsops reads and writes local files and applies snippet edits
package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrSnippetNotFound  = errors.New("original snippet not found")
)

// ReadFile returns the text content of a local file.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", wrapAccess(path, err)
	}
	return string(data), nil
}

// WriteFile creates or overwrites the file at path, creating any missing
// parent directories.
func WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return wrapAccess(dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return wrapAccess(path, err)
	}
	return nil
}

// ApplyEdit replaces the first literal occurrence of originalSnippet in the
// file at path with newSnippet and writes the result back. The file is left
// untouched when the snippet is absent. Returns the updated content.
func ApplyEdit(path, originalSnippet, newSnippet string) (string, error) {
	content, err := ReadFile(path)
	if err != nil {
		return "", err
	}
	if !strings.Contains(content, originalSnippet) {
		return "", fmt.Errorf("%w in %q", ErrSnippetNotFound, path)
	}
	updated := strings.Replace(content, originalSnippet, newSnippet, 1)
	if err := WriteFile(path, updated); err != nil {
		return "", err
	}
	return updated, nil
}

// Normalize returns a canonical, absolute version of the path.
func Normalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func wrapAccess(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return err
	}
}

var (
	adjectives = []string{"swift", "bright", "calm", "wise", "bold", "kind", "pure", "warm", "cool", "soft"}
	colors     = []string{"azure", "coral", "jade", "amber", "ruby", "pearl", "gold", "silver", "bronze", "crystal"}
	nouns      = []string{"river", "mountain", "forest", "cloud", "star", "ocean", "valley", "meadow", "wind", "sun"}
)

// RandomDirName generates a three-word directory name for organizing files
// created during one session.
func RandomDirName() string {
	return fmt.Sprintf("%s_%s_%s",
		adjectives[rand.Intn(len(adjectives))],
		colors[rand.Intn(len(colors))],
		nouns[rand.Intn(len(nouns))])
}
