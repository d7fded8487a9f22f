package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// Service turns a finished itinerary into short prose. The engine never
// generates language itself; this is a black-box text collaborator invoked
// after planning is done.
type Service interface {
	ItinerarySummary(ctx context.Context, it *types.Itinerary) (string, error)
}

var _ Service = (*AIClient)(nil)

type AIClient struct {
	client *genai.Client
	model  string
}

// NewAIClient builds the Gemini-backed summarizer. Returns an error when the
// API key is not configured; callers treat that as "no summaries".
func NewAIClient(ctx context.Context) (*AIClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &AIClient{
		client: client,
		model:  "gemini-2.0-flash",
	}, nil
}

func (ai *AIClient) ItinerarySummary(ctx context.Context, it *types.Itinerary) (string, error) {
	payload, err := json.Marshal(it)
	if err != nil {
		return "", fmt.Errorf("failed to encode itinerary: %w", err)
	}

	prompt := fmt.Sprintf(`You are a travel assistant. Summarize the following
%d-day itinerary for %s in at most 120 words of friendly prose. Mention the
highlights, the overall cost, and any days marked infeasible or over budget.
Do not invent places that are not in the data.

%s`, it.NumDays, it.City, payload)

	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return result.Text(), nil
}
