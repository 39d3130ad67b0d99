// Package gemini wraps the Gemini API behind the narrow summarize
// contract the pipeline depends on: text in, bounded summary out.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const modelName = "gemini-1.5-flash"

type Client struct {
	client *genai.Client
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Summarize produces a Korean summary of text between minLength and
// maxLength characters.
func (c *Client) Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	text = sanitize(text)
	if text == "" {
		return "", fmt.Errorf("empty input text")
	}

	prompt := fmt.Sprintf(`다음 뉴스 기사를 한국어로 요약해줘.

기사:
%s

요구사항:
- 요약은 %d자 이상 %d자 이하.
- 핵심 사실만, 서론 없이 바로 본문으로.
- "이 기사는" 같은 도입부 금지.
- 요약 텍스트만 출력할 것.`, text, minLength, maxLength)

	model := c.client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	summary := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if summary == "" {
		return "", fmt.Errorf("empty summary from Gemini")
	}
	return summary, nil
}

// sanitize collapses whitespace and keeps the prompt bounded. Cuts land
// on a rune boundary, preferring a sentence end when one is near.
func sanitize(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.Join(strings.Fields(text), " ")

	const maxChars = 6000
	if utf8.RuneCountInString(text) > maxChars {
		runes := []rune(text)
		trimmed := string(runes[:maxChars])
		if idx := strings.LastIndex(trimmed, ". "); idx > 1200 {
			trimmed = trimmed[:idx+1]
		}
		text = trimmed
	}
	return text
}
