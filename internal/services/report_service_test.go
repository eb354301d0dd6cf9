package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmate/internal/models"
)

type fakeGenerator struct {
	generate func(ctx context.Context, prompt string) (string, error)
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.generate(ctx, prompt)
}

func TestReportService_ReturnsTextVerbatim(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.tasks.Create(ctx, "u1", models.CreateTaskInput{Title: "a"})
	require.NoError(t, err)

	gen := &fakeGenerator{generate: func(context.Context, string) (string, error) {
		return "# Report\n**great**", nil
	}}
	svc := NewReportService(f.tasks, gen, time.Second)

	report, err := svc.Generate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "# Report\n**great**", report.Text)
	assert.Equal(t, models.Stats{Total: 1, Pending: 1}, report.Stats)

	require.Len(t, gen.prompts, 1)
	assert.True(t, strings.HasPrefix(gen.prompts[0], "You are an AI performance analyst."))
	assert.Contains(t, gen.prompts[0], "User Stats:\n{\n  \"total\": 1,")
	assert.Contains(t, gen.prompts[0], `"inProgress": 0`)
}

func TestReportService_ProviderErrorSurfaced(t *testing.T) {
	f := newFixture()
	gen := &fakeGenerator{generate: func(context.Context, string) (string, error) {
		return "", errors.New("GEMINI_API_KEY is not defined")
	}}
	svc := NewReportService(f.tasks, gen, time.Second)

	_, err := svc.Generate(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportGenerationFailed)
	assert.Equal(t, "GEMINI_API_KEY is not defined", MessageOf(err, ""))
	assert.Len(t, gen.prompts, 1, "no retry")
}

func TestReportService_Timeout(t *testing.T) {
	f := newFixture()
	gen := &fakeGenerator{generate: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	svc := NewReportService(f.tasks, gen, 20*time.Millisecond)

	_, err := svc.Generate(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrReportGenerationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "Report generation timed out", MessageOf(err, ""))
}
