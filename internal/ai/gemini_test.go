package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestGemini_MissingKey(t *testing.T) {
	_, err := NewGemini("", "gemini-2.5-flash").Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestResponseText_FirstCandidate(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "# Report"}, {Text: "\nbody"}}}},
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "ignored"}}}},
		},
	}
	assert.Equal(t, "# Report\nbody", responseText(resp))
	assert.Equal(t, "", responseText(nil))
	assert.Equal(t, "", responseText(&genai.GenerateContentResponse{}))
}
