// Package gemini summarizes news articles with Google's Gemini models.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pep299/smart-news-digest/internal/apperr"
)

// MinArticleLength is the trimmed length, in characters, below which an
// article is not worth a model call and its title is returned instead.
const MinArticleLength = 50

// Summarizer produces short summaries of article text.
type Summarizer struct {
	apiKey    string
	generator Generator
	log       *zap.Logger
}

// NewSummarizer creates a Summarizer. apiKey is only checked for presence;
// the generator is expected to authenticate with the same key.
func NewSummarizer(apiKey string, generator Generator, log *zap.Logger) *Summarizer {
	return &Summarizer{
		apiKey:    apiKey,
		generator: generator,
		log:       log.Named("gemini"),
	}
}

// Summarize returns a 3-5 sentence summary of article, or title when the
// article is too short to summarize.
func (s *Summarizer) Summarize(ctx context.Context, article, title string) (string, error) {
	if utf8.RuneCountInString(strings.TrimSpace(article)) < MinArticleLength {
		return title, nil
	}

	if s.apiKey == "" {
		return "", apperr.Unauthorized("Missing Gemini Api Key")
	}

	gen, err := s.generator.Generate(ctx, buildPrompt(article))
	if err != nil {
		s.log.Warn("summarization failed", zap.Error(err))
		return "", apperr.Internal(fmt.Sprintf("An error occurred during summarization: %v", err), err)
	}

	if len(gen.Candidates) == 0 {
		s.log.Warn("model returned no candidates", zap.String("feedback", gen.Feedback))
		return "", apperr.BadRequest(
			"Gemini did not provide a summary (no candidates). Prompt feedback: " + gen.Feedback)
	}

	text := gen.Candidates[0].Text
	if text == "" {
		return "", apperr.Internal("Gemini generated no text content.", nil)
	}

	return strings.TrimSpace(text), nil
}

func buildPrompt(article string) string {
	return fmt.Sprintf(`Provide a concise and informative summary of the following news article.
Focus on the main points, key events, and outcomes.
The summary should be no longer than 3-5 sentences.

Article:
---
%s
---

Concise Summary:
`, article)
}
