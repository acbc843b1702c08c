package chat

import "strings"

var recognizedExtensions = []string{".css", ".html", ".js", ".py", ".json", ".md", ".go", ".txt"}

// GuessFiles scans a user message for tokens that look like file paths so
// their content can be injected before the model call. Surrounding quotes and
// commas are stripped; no filesystem access happens here.
func GuessFiles(message string) []string {
	var candidates []string
	for _, word := range strings.Fields(message) {
		if !looksLikeFile(word) {
			continue
		}
		path := strings.Trim(word, `'",`)
		if path != "" {
			candidates = append(candidates, path)
		}
	}
	return candidates
}

func looksLikeFile(word string) bool {
	if strings.Contains(word, "/") {
		return true
	}
	for _, ext := range recognizedExtensions {
		if strings.Contains(word, ext) {
			return true
		}
	}
	return false
}
