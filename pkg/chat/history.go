// Package chat holds conversation state and drives streamed model turns.
package chat

import (
	"fmt"
	"strings"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of the conversation transcript.
type Message struct {
	Role    string
	Content string
}

// History is the append-only conversation transcript for one session.
type History struct {
	messages []Message
}

// NewHistory starts a transcript seeded with the system prompt.
func NewHistory(systemPrompt string) *History {
	return &History{messages: []Message{{Role: RoleSystem, Content: systemPrompt}}}
}

// NewHistoryFromMessages rebuilds a transcript from previously saved messages.
func NewHistoryFromMessages(messages []Message) *History {
	h := &History{messages: make([]Message, len(messages))}
	copy(h.messages, messages)
	return h
}

func (h *History) AddSystem(content string)    { h.append(RoleSystem, content) }
func (h *History) AddUser(content string)      { h.append(RoleUser, content) }
func (h *History) AddAssistant(content string) { h.append(RoleAssistant, content) }

func (h *History) append(role, content string) {
	h.messages = append(h.messages, Message{Role: role, Content: content})
}

func fileMarker(path string) string {
	return fmt.Sprintf("Content of file '%s'", path)
}

// AddFileContext records a file's content as a system message, once per path.
// Returns false when the file is already in context.
func (h *History) AddFileContext(path, content string) bool {
	if h.HasFileContext(path) {
		return false
	}
	h.RecordFileContent(path, content)
	return true
}

// RecordFileContent appends a file-content system message unconditionally,
// used after a write so the model sees the current content.
func (h *History) RecordFileContent(path, content string) {
	h.AddSystem(fmt.Sprintf("%s:\n\n%s", fileMarker(path), content))
}

// HasFileContext reports whether the file at path was already injected.
func (h *History) HasFileContext(path string) bool {
	marker := fileMarker(path)
	for _, m := range h.messages {
		if strings.Contains(m.Content, marker) {
			return true
		}
	}
	return false
}

// Messages returns a copy of the transcript in append order.
func (h *History) Messages() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *History) Len() int {
	return len(h.messages)
}
