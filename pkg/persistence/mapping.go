package persistence

import (
	"github.com/youruser/ollama-engineer/pkg/chat"
)

func NewSessionFromHistory(model string, history *chat.History) *Session {
	session := Session{Model: model}
	for _, m := range history.Messages() {
		session.Messages = append(session.Messages, Message{Role: m.Role, Content: m.Content})
	}
	return &session
}

func NewHistoryFromSession(session *Session) *chat.History {
	messages := make([]chat.Message, 0, len(session.Messages))
	for _, m := range session.Messages {
		messages = append(messages, chat.Message{Role: m.Role, Content: m.Content})
	}
	return chat.NewHistoryFromMessages(messages)
}
