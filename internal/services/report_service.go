package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"taskmate/internal/models"
)

// ReportGenerator turns a prompt into free text. It may fail.
type ReportGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Report struct {
	Text        string
	Stats       models.Stats
	GeneratedAt time.Time
}

type ReportService interface {
	Generate(ctx context.Context, userID string) (*Report, error)
}

type reportService struct {
	tasks     TaskService
	generator ReportGenerator
	timeout   time.Duration
}

func NewReportService(tasks TaskService, generator ReportGenerator, timeout time.Duration) ReportService {
	return &reportService{tasks: tasks, generator: generator, timeout: timeout}
}

const reportPrompt = `You are an AI performance analyst.

Generate a detailed performance report for the user based on the statistics below.

Please structure your response using Markdown formatting:
- Use # for the main title.
- Use ## for section headers.
- Use **bold** for key numbers and emphasis.
- Use bullet points (-) for lists.

Include the following sections:
1. Overall Productivity Score (0–100)
2. Completed Tasks Analysis
3. Pending Tasks Analysis
4. Weekly/Monthly Performance Trend
5. Efficiency (time taken vs tasks completed)
6. Strengths
7. Weaknesses
8. Personal Recommendations
9. Productivity Tips
10. Motivation Message
11. Any patterns or insights observed

Write the report in a friendly, professional, motivational tone.

User Stats:
`

// BuildReportPrompt embeds the stats as indented JSON into the fixed template.
func BuildReportPrompt(stats models.Stats) (string, error) {
	b, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return "", err
	}
	return reportPrompt + string(b), nil
}

// Generate returns the generator's text verbatim. Generator failures are
// reported once as ReportGenerationFailed carrying the provider message.
func (s *reportService) Generate(ctx context.Context, userID string) (*Report, error) {
	stats, err := s.tasks.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	prompt, err := BuildReportPrompt(stats)
	if err != nil {
		return nil, internal("Failed to build report prompt", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[ai][report][err] user=%s: %v", userID, err)
		msg := err.Error()
		if ctx.Err() == context.DeadlineExceeded {
			msg = "Report generation timed out"
		}
		return nil, &Error{Kind: KindReportGenerationFailed, Message: msg, Err: err}
	}
	log.Printf("[ai][report][ok] user=%s chars=%d", userID, len(text))
	return &Report{Text: text, Stats: stats, GeneratedAt: time.Now().UTC()}, nil
}
