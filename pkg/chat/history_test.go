package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryAppendOrder(t *testing.T) {
	h := NewHistory("be helpful")
	h.AddUser("hi")
	h.AddAssistant("hello")
	h.AddUser("bye")

	msgs := h.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, "hi", msgs[1].Content)
	assert.Equal(t, RoleAssistant, msgs[2].Role)
	assert.Equal(t, "bye", msgs[3].Content)
}

func TestMessagesReturnsCopy(t *testing.T) {
	h := NewHistory("sys")
	msgs := h.Messages()
	msgs[0].Content = "mutated"
	assert.Equal(t, "sys", h.Messages()[0].Content)
}

func TestAddFileContextDeduplicates(t *testing.T) {
	h := NewHistory("sys")

	assert.True(t, h.AddFileContext("/tmp/a.txt", "one"))
	assert.False(t, h.AddFileContext("/tmp/a.txt", "two"))
	assert.Equal(t, 2, h.Len())

	assert.True(t, h.HasFileContext("/tmp/a.txt"))
	assert.False(t, h.HasFileContext("/tmp/b.txt"))
}

func TestRecordFileContentAppendsUnconditionally(t *testing.T) {
	h := NewHistory("sys")
	h.RecordFileContent("/tmp/a.txt", "one")
	h.RecordFileContent("/tmp/a.txt", "two")
	assert.Equal(t, 3, h.Len())
}

func TestNewHistoryFromMessages(t *testing.T) {
	saved := []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "hi"},
	}
	h := NewHistoryFromMessages(saved)
	require.Equal(t, 2, h.Len())

	saved[1].Content = "mutated"
	assert.Equal(t, "hi", h.Messages()[1].Content)
}
