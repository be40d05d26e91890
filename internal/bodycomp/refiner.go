package bodycomp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harrysikes/shredai/internal/plan"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// refiner asks the LLM to second-guess the heuristic estimate. Callers must
// treat any error as a cue to fall back to the heuristic value.
type refiner struct {
	client openai.Client
}

func newRefiner(apiKey string) *refiner {
	return &refiner{client: openai.NewClient(option.WithAPIKey(apiKey))}
}

type refinedEstimate struct {
	BodyFatPercentage float64 `json:"body_fat_percentage"`
}

// refine returns an adjusted body-fat percentage for the profile.
func (r *refiner) refine(ctx context.Context, prof plan.SurveyProfile, heuristic float64) (float64, error) {
	prompt := fmt.Sprintf(`A fitness app estimated a user's body-fat percentage at %.1f%% based on
a survey: sex %q, exercise frequency %q, workout goal %q.

Adjust the estimate if the survey answers suggest it is off, otherwise keep it.
Respond with JSON only, in the form {"body_fat_percentage": <number>}.`,
		heuristic, prof.Sex, prof.ExerciseFrequency, prof.WorkoutGoal)

	chat, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModelGPT4o,
	})
	if err != nil {
		return 0, fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return 0, errors.New("chat completion returned no choices")
	}

	var refined refinedEstimate
	if err = json.Unmarshal([]byte(chat.Choices[0].Message.Content), &refined); err != nil {
		return 0, fmt.Errorf("parse refined estimate: %w", err)
	}
	if refined.BodyFatPercentage < minBodyFat || refined.BodyFatPercentage > maxBodyFat {
		return 0, fmt.Errorf("refined estimate %.1f out of range", refined.BodyFatPercentage)
	}
	return refined.BodyFatPercentage, nil
}
