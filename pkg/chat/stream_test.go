package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/ollama-engineer/pkg/schema"
)

func writeSSEChunk(t *testing.T, w http.ResponseWriter, content string, finish string) {
	t.Helper()
	payload := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion.chunk",
		"created": 0,
		"model":   "test-model",
		"choices": []any{
			map[string]any{
				"index":         0,
				"delta":         map[string]any{"content": content},
				"finish_reason": nil,
			},
		},
	}
	if finish != "" {
		payload["choices"].([]any)[0].(map[string]any)["finish_reason"] = finish
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	require.NoError(t, err)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func newStreamingServer(t *testing.T, fragments []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.Error(w, "unexpected request", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")

		for i, fragment := range fragments {
			finish := ""
			if i == len(fragments)-1 {
				finish = "stop"
			}
			writeSSEChunk(t, w, fragment, finish)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func splitIntoFragments(s string, size int) []string {
	var fragments []string
	for i := 0; i < len(s); i += size {
		fragments = append(fragments, s[i:min(i+size, len(s))])
	}
	return fragments
}

func TestCompleteStreamsAndParses(t *testing.T) {
	reply := `{"assistant_reply": "done", "files_to_edit": [{"path": "a.txt", "original_snippet": "hello", "new_snippet": "goodbye"}]}`
	server := newStreamingServer(t, splitIntoFragments(reply, 9))
	defer server.Close()

	client := openai.NewClient(option.WithBaseURL(server.URL))
	var echoed bytes.Buffer
	streamer := NewStreamer(client, "test-model", &echoed)

	history := NewHistory("sys")
	history.AddUser("replace hello")

	resp, err := streamer.Complete(context.Background(), history)
	require.NoError(t, err)

	assert.Equal(t, "done", resp.AssistantReply)
	require.Len(t, resp.FilesToEdit, 1)
	assert.Equal(t, "goodbye", resp.FilesToEdit[0].NewSnippet)

	// Fragments are echoed in arrival order, so the terminal transcript
	// equals the accumulated text.
	assert.Equal(t, reply, echoed.String())
}

func TestCompleteMalformedReplyIsParseError(t *testing.T) {
	server := newStreamingServer(t, []string{"not json at all"})
	defer server.Close()

	client := openai.NewClient(option.WithBaseURL(server.URL))
	streamer := NewStreamer(client, "test-model", &bytes.Buffer{})

	_, err := streamer.Complete(context.Background(), NewHistory("sys"))
	var parseErr *schema.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestCompleteHostUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := openai.NewClient(option.WithBaseURL(server.URL), option.WithMaxRetries(0))
	streamer := NewStreamer(client, "test-model", &bytes.Buffer{})

	_, err := streamer.Complete(context.Background(), NewHistory("sys"))
	require.Error(t, err)

	var parseErr *schema.ParseError
	assert.False(t, errors.As(err, &parseErr), "transport failure must not be a ParseError")
}
