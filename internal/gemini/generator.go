package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generation is what the model produced for one prompt.
type Generation struct {
	Candidates []Candidate
	// Feedback describes why the prompt was rejected, if the provider said so.
	Feedback string
}

// Candidate is one generated answer. Text is empty when the candidate carried no text parts.
type Candidate struct {
	Text string
}

// Generator sends a single prompt to a model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Generation, error)
}

// SDKGenerator calls the Gemini API through the official Go SDK.
// A client is opened and closed per call.
type SDKGenerator struct {
	apiKey   string
	model    string
	endpoint string
}

// NewSDKGenerator creates a Generator for model. endpoint is optional.
func NewSDKGenerator(apiKey, model, endpoint string) *SDKGenerator {
	return &SDKGenerator{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
	}
}

// Generate implements Generator.
func (g *SDKGenerator) Generate(ctx context.Context, prompt string) (*Generation, error) {
	opts := []option.ClientOption{option.WithAPIKey(g.apiKey)}
	if g.endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	defer client.Close()

	resp, err := client.GenerativeModel(g.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		// The SDK reports blocked prompts and blocked candidates as errors;
		// they are provider answers, not transport failures.
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return fromBlocked(blocked), nil
		}
		return nil, fmt.Errorf("generating content: %w", err)
	}

	return fromResponse(resp), nil
}

func fromResponse(resp *genai.GenerateContentResponse) *Generation {
	gen := &Generation{Feedback: formatFeedback(resp.PromptFeedback)}
	for _, c := range resp.Candidates {
		gen.Candidates = append(gen.Candidates, Candidate{Text: candidateText(c)})
	}
	return gen
}

func fromBlocked(blocked *genai.BlockedError) *Generation {
	gen := &Generation{Feedback: formatFeedback(blocked.PromptFeedback)}
	if blocked.Candidate != nil {
		gen.Candidates = []Candidate{{Text: candidateText(blocked.Candidate)}}
	}
	return gen
}

func candidateText(c *genai.Candidate) string {
	if c == nil || c.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range c.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

func formatFeedback(pf *genai.PromptFeedback) string {
	if pf == nil {
		return "none"
	}

	ratings := make([]string, 0, len(pf.SafetyRatings))
	for _, r := range pf.SafetyRatings {
		if r == nil {
			continue
		}
		rating := fmt.Sprintf("%v:%v", r.Category, r.Probability)
		if r.Blocked {
			rating += "(blocked)"
		}
		ratings = append(ratings, rating)
	}

	return fmt.Sprintf("block_reason=%v safety_ratings=[%s]", pf.BlockReason, strings.Join(ratings, ", "))
}
