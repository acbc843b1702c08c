package persistence

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/youruser/ollama-engineer/pkg/chat"
)

func SaveSession(sessionFile, model string, history *chat.History) error {
	session := NewSessionFromHistory(model, history)
	data, err := yaml.Marshal(session)
	if err != nil {
		return err
	}
	if err = os.WriteFile(sessionFile, data, 0640); err != nil {
		return err
	}
	return nil
}

// TryToResumeSession loads a saved conversation. A missing session file is
// not an error; it returns a nil history so the caller starts fresh.
func TryToResumeSession(sessionFile string) (*chat.History, error) {
	_, err := os.Stat(sessionFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(sessionFile)
	if err != nil {
		return nil, err
	}

	var session Session
	if err = yaml.Unmarshal(data, &session); err != nil {
		return nil, err
	}

	return NewHistoryFromSession(&session), nil
}
