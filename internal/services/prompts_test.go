package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepread-backend/internal/llm"
)

func TestSummarizeMessages(t *testing.T) {
	msgs := SummarizeMessages("some lecture notes")

	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "summarizing texts accurately and concisely")
	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.Equal(t, "Please summarize the following text:\n\nsome lecture notes", msgs[1].Content)
}

func TestContextChatMessages_ContainsInputsVerbatim(t *testing.T) {
	docCtx := "Chapter 3 covers spectral clustering on k-NN graphs."
	query := "What does chapter 3 say about eigenvalues?"

	msgs := ContextChatMessages(docCtx, query)

	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, docCtx)
	assert.Contains(t, msgs[1].Content, query)

	// No leftover template placeholders.
	assert.NotContains(t, msgs[1].Content, "{document_context}")
	assert.NotContains(t, msgs[1].Content, "{user_query}")
}

func TestContextChatMessages_Deterministic(t *testing.T) {
	a := ContextChatMessages("doc", "query")
	b := ContextChatMessages("doc", "query")

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i])
	}
}

func TestMindmapMessages_Mermaid(t *testing.T) {
	msgs, err := MindmapMessages("full document text", OutputFormatMermaid)

	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Content, "Mermaid思维导图")
	assert.Contains(t, msgs[1].Content, "mindmap")
	assert.Contains(t, msgs[1].Content, "full document text")
	assert.NotContains(t, msgs[1].Content, "{document_text}")
}

func TestMindmapMessages_JSON(t *testing.T) {
	msgs, err := MindmapMessages("full document text", OutputFormatJSON)

	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Content, "'children'")
	assert.Contains(t, msgs[1].Content, "full document text")
	assert.True(t, strings.HasSuffix(msgs[1].Content, "JSON 输出:\n"))
}

func TestMindmapMessages_UnknownFormat(t *testing.T) {
	msgs, err := MindmapMessages("text", OutputFormat("yaml"))

	assert.Nil(t, msgs)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"mermaid", OutputFormatMermaid, false},
		{"MERMAID", OutputFormatMermaid, false},
		{"json", OutputFormatJSON, false},
		{" json ", OutputFormatJSON, false},
		{"yaml", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tc.in)
			if tc.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
