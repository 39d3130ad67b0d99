// Package summarize adapts the external summarization capability to the
// pipeline: input normalization, length policy, keyword extraction and
// deterministic degradation when the model is missing or failing.
package summarize

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/deusflow/newsboard/internal/ratelimit"
	"github.com/deusflow/newsboard/internal/textutil"
)

const (
	// UnavailableSummary is the fixed placeholder used when no model can
	// be invoked at all.
	UnavailableSummary = "AI 모델을 사용할 수 없습니다."

	shortTextThreshold = 50   // runes; below this the model is skipped
	maxInputRunes      = 2000 // model input bound

	primaryMaxLength = 100
	shortMaxLength   = 35
	shortSummaryCap  = 40 // runes
)

// Model is the narrow contract to the summarization capability.
type Model interface {
	Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error)
}

// Result is one summarization outcome. Success=false always comes with a
// deterministic fallback in Summary, never an empty string.
type Result struct {
	Summary  string
	Keywords []string
	Success  bool
	Err      string
}

type Adapter struct {
	model  Model // nil means the capability is unavailable
	budget *ratelimit.Budget
}

func NewAdapter(model Model, budget *ratelimit.Budget) *Adapter {
	if budget == nil {
		budget = ratelimit.NewBudget(0)
	}
	return &Adapter{model: model, budget: budget}
}

// Summarize runs the full policy for one text.
func (a *Adapter) Summarize(ctx context.Context, title, content string, maxLength int) Result {
	cleanTitle := textutil.Normalize(title)
	cleanContent := textutil.Normalize(content)
	full := cleanTitle + ". " + cleanContent

	// Very short texts never go to the model, available or not.
	if utf8.RuneCountInString(strings.TrimSpace(full)) < shortTextThreshold {
		summary := cleanContent
		if summary == "" {
			summary = cleanTitle
		}
		return Result{
			Summary:  summary,
			Keywords: ExtractKeywords(full, topKeywords),
			Success:  true,
		}
	}

	if a.model == nil {
		return Result{Summary: UnavailableSummary, Success: false}
	}
	if !a.budget.Use() {
		return Result{Summary: UnavailableSummary, Success: false, Err: "ai request budget exhausted"}
	}

	runes := []rune(full)
	if len(runes) > maxInputRunes {
		runes = runes[:maxInputRunes]
	}
	input := string(runes)

	effectiveMax := maxLength
	if half := len(runes) / 2; half < effectiveMax {
		effectiveMax = half
	}
	minLength := 30
	if effectiveMax-10 < minLength {
		minLength = effectiveMax - 10
	}

	// Keywords do not depend on the model call working out.
	keywords := ExtractKeywords(full, topKeywords)

	summary, err := a.model.Summarize(ctx, input, effectiveMax, minLength)
	if err != nil {
		slog.Warn("summarization failed, using fallback", "error", err)
		return Result{
			Summary:  fallbackSummary(cleanContent, cleanTitle, maxLength),
			Keywords: keywords,
			Success:  false,
			Err:      err.Error(),
		}
	}

	return Result{Summary: summary, Keywords: keywords, Success: true}
}

// Enrich produces the primary summary (max 100 chars) and, when the
// primary pass worked, a short variant capped at 40 runes. A failing
// short pass leaves the primary result untouched.
func (a *Adapter) Enrich(ctx context.Context, title, content string) (Result, string) {
	primary := a.Summarize(ctx, title, content, primaryMaxLength)
	if !primary.Success {
		return primary, ""
	}

	short := a.Summarize(ctx, title, content, shortMaxLength)
	if !short.Success {
		return primary, ""
	}
	return primary, truncateRunes(short.Summary, shortSummaryCap)
}

// fallbackSummary is the deterministic degradation: the head of the
// content (or title) plus an ellipsis.
func fallbackSummary(content, title string, maxLength int) string {
	src := content
	if src == "" {
		src = title
	}
	return truncateRunes(src, maxLength) + "..."
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
