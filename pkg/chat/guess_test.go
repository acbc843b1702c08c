package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessFiles(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{
			name:    "extension match",
			message: "please fix main.py for me",
			want:    []string{"main.py"},
		},
		{
			name:    "slash match",
			message: "look at src/app/server.go now",
			want:    []string{"src/app/server.go"},
		},
		{
			name:    "quoted and comma separated",
			message: `update 'a.js', "b.css"`,
			want:    []string{"a.js", "b.css"},
		},
		{
			name:    "no candidates",
			message: "explain goroutines to me",
			want:    nil,
		},
		{
			name:    "multiple mixed",
			message: "merge notes.md into docs/readme.md",
			want:    []string{"notes.md", "docs/readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GuessFiles(tt.message))
		})
	}
}
