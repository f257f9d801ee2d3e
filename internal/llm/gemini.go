// Package llm wraps the Gemini API for question generation and resume
// scoring.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	_ "embed"

	"google.golang.org/genai"

	"github.com/mkandie/resume-screener/internal/models"
)

const defaultModel = "gemini-2.0-flash-lite"

//go:embed questions_prompt.md
var questionsPrompt string

//go:embed scoring_prompt.md
var scoringPrompt string

// Client wraps the GenAI SDK configured for the Gemini API backend.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates a Gemini client authenticated with an API key.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Client{client: client, modelName: model}, nil
}

// GenerateQuestions asks the model for 4 clarifying questions about the job
// description and returns the raw response text. The caller parses it; the
// tagged output format is requested but not guaranteed.
func (c *Client) GenerateQuestions(ctx context.Context, jd string) (string, error) {
	prompt := buildQuestionsPrompt(jd)
	return c.generate(ctx, prompt, nil)
}

// ScoreResume asks the model to score one resume against the job
// description and the HR clarifications, returning the raw response text.
// Low temperature keeps scoring consistent across a batch.
func (c *Client) ScoreResume(ctx context.Context, jd, resume string, answers models.HRAnswers) (string, error) {
	prompt := buildScoringPrompt(jd, resume, answers)
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.2),
		MaxOutputTokens: 8000,
	}
	return c.generate(ctx, prompt, cfg)
}

func (c *Client) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is not initialized")
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(part.Text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// Model reports the configured model name.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}

func buildQuestionsPrompt(jd string) string {
	return strings.ReplaceAll(questionsPrompt, "{{JOB_DESCRIPTION}}", jd)
}

func buildScoringPrompt(jd, resume string, answers models.HRAnswers) string {
	prompt := strings.ReplaceAll(scoringPrompt, "{{JOB_DESCRIPTION}}", jd)
	prompt = strings.ReplaceAll(prompt, "{{ROLE_CONTEXT}}", answers.RoleContext)
	prompt = strings.ReplaceAll(prompt, "{{MUST_HAVE_SKILLS}}", answers.MustHaveSkills)
	prompt = strings.ReplaceAll(prompt, "{{TEAM_ENVIRONMENT}}", answers.TeamEnvironment)
	prompt = strings.ReplaceAll(prompt, "{{DEAL_BREAKERS}}", answers.DealBreakers)
	return strings.ReplaceAll(prompt, "{{RESUME}}", resume)
}
