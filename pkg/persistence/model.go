// Package persistence handles mapping and YAML serialization of sessions
package persistence

type Session struct {
	Model string

	Messages []Message
}

type Message struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content,omitempty"`
}
