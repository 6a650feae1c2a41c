package llm

import (
	"context"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"
)

// Stream is a finite, forward-only sequence of incremental text fragments.
// Recv returns io.EOF once the provider signals completion. Callers must
// either drain the stream or Close it; both release the underlying
// connection.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// CompleteStream performs one chat-completion call in streaming mode.
// Credential resolution and error wrapping follow Complete exactly.
func (c *Client) CompleteStream(ctx context.Context, req Request) (Stream, error) {
	provider, err := c.providerClient(req.APIKey)
	if err != nil {
		return nil, err
	}

	inner := provider.Chat.Completions.NewStreaming(ctx, buildParams(req))
	if err := inner.Err(); err != nil {
		_ = inner.Close()
		return nil, c.wrapCallError(req.Model, err)
	}

	return &chunkStream{model: req.Model, client: c, inner: inner}, nil
}

type chunkStream struct {
	model  string
	client *Client
	inner  *ssestream.Stream[openai.ChatCompletionChunk]
}

func (s *chunkStream) Recv() (string, error) {
	for s.inner.Next() {
		chunk := s.inner.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			return delta, nil
		}
	}
	if err := s.inner.Err(); err != nil {
		return "", s.client.wrapCallError(s.model, err)
	}
	return "", io.EOF
}

func (s *chunkStream) Close() error {
	return s.inner.Close()
}
