// Package schema defines the structured response contract between the model
// and the file-operation loop.
package schema

import (
	"bytes"
	"encoding/json"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/shared/constant"
)

// FileToCreate asks for a new or overwritten file with the given content.
type FileToCreate struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// FileToEdit asks for the first occurrence of OriginalSnippet in the file at
// Path to be replaced with NewSnippet.
type FileToEdit struct {
	Path            string `json:"path"`
	OriginalSnippet string `json:"original_snippet"`
	NewSnippet      string `json:"new_snippet"`
}

// AssistantResponse is the complete structured reply for one model turn.
type AssistantResponse struct {
	AssistantReply string         `json:"assistant_reply"`
	FilesToCreate  []FileToCreate `json:"files_to_create,omitempty"`
	FilesToEdit    []FileToEdit   `json:"files_to_edit,omitempty"`
}

// ParseError reports a completed model reply that does not conform to the
// response schema.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return "parse assistant response: " + e.Reason
}

// Parse decodes a complete model reply into an AssistantResponse. Unknown
// fields and trailing data are rejected so a reply with a drifted shape fails
// loudly instead of being half-read. A missing assistant_reply decodes as "".
func Parse(data []byte) (*AssistantResponse, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var resp AssistantResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, &ParseError{Reason: err.Error(), Raw: string(data)}
	}
	if dec.More() {
		return nil, &ParseError{Reason: "trailing data after response object", Raw: string(data)}
	}
	return &resp, nil
}

// ResponseFormat instructs an OpenAI-compatible host to emit replies
// conforming to the AssistantResponse JSON schema.
func ResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   "assistant_response",
				Strict: param.NewOpt(true),
				Schema: jsonSchema(),
			},
			Type: constant.ValueOf[constant.JSONSchema](),
		},
	}
}

func jsonSchema() map[string]any {
	stringProp := map[string]any{"type": "string"}

	fileToCreate := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path":    stringProp,
			"content": stringProp,
		},
		"required":             []string{"path", "content"},
		"additionalProperties": false,
	}

	fileToEdit := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path":             stringProp,
			"original_snippet": stringProp,
			"new_snippet":      stringProp,
		},
		"required":             []string{"path", "original_snippet", "new_snippet"},
		"additionalProperties": false,
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"assistant_reply": stringProp,
			"files_to_create": map[string]any{"type": "array", "items": fileToCreate},
			"files_to_edit":   map[string]any{"type": "array", "items": fileToEdit},
		},
		"required":             []string{"assistant_reply"},
		"additionalProperties": false,
	}
}
