package chat

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/ssestream"

	"github.com/youruser/ollama-engineer/pkg/schema"
)

// Streamer runs one model turn against an OpenAI-compatible host.
type Streamer struct {
	client openai.Client
	model  string
	out    io.Writer
}

// NewStreamer returns a Streamer that echoes reply fragments to out as they
// arrive.
func NewStreamer(client openai.Client, model string, out io.Writer) *Streamer {
	return &Streamer{client: client, model: model, out: out}
}

// Complete streams one chat completion for the given history and parses the
// accumulated text as an AssistantResponse once the stream finishes. Transport
// failures and schema violations are distinct errors; neither is fatal to the
// session.
func (s *Streamer) Complete(ctx context.Context, history *History) (*schema.AssistantResponse, error) {
	param := openai.ChatCompletionNewParams{
		Model:          s.model,
		Messages:       toMessageParams(history.Messages()),
		ResponseFormat: schema.ResponseFormat(),
	}

	stream := s.client.Chat.Completions.NewStreaming(ctx, param)
	full, err := s.drain(ctx, stream)
	if closeErr := stream.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("model host: %w", err)
	}

	return schema.Parse([]byte(full))
}

// drain consumes the fragment stream in arrival order, echoing content deltas
// to the terminal, and returns the accumulated message text.
func (s *Streamer) drain(ctx context.Context, stream *ssestream.Stream[openai.ChatCompletionChunk]) (string, error) {
	acc := openai.ChatCompletionAccumulator{}

loop:
	for stream.Next() {
		select {
		case <-ctx.Done():
			break loop
		default:
		}

		chunk := stream.Current()
		acc.AddChunk(chunk)

		if len(chunk.Choices) > 0 {
			if delta := chunk.Choices[0].Delta.Content; len(delta) > 0 {
				fmt.Fprint(s.out, delta)
			}
		}
	}

	if err := stream.Err(); err != nil {
		return "", err
	}
	if len(acc.Choices) == 0 {
		return "", fmt.Errorf("host returned no completion")
	}
	return acc.Choices[0].Message.Content, nil
}

func toMessageParams(messages []Message) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleAssistant:
			params = append(params, openai.AssistantMessage(m.Content))
		case RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		default:
			params = append(params, openai.UserMessage(m.Content))
		}
	}
	return params
}
