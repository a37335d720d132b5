// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/poiesic/paperflow/ai"
	"github.com/poiesic/paperflow/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const maxParseAttempts = 3

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client       llms.Model
	temperature  float64
	interestTags []core.InterestTag
	logger       *slog.Logger
}

var _ ai.Classifier = (*Classifier)(nil)

// labelSet is an internal type used for JSON unmarshaling.
// It matches the structure the model is instructed to return.
type labelSet struct {
	PrimaryArea       string   `json:"primary_area"`
	SecondaryFocus    string   `json:"secondary_focus"`
	ApplicationDomain string   `json:"application_domain"`
	TLDR              string   `json:"tldr"`
	InterestTags      []string `json:"interest_tags"`
}

// NewClassifier creates a classifier backed by an OpenAI-compatible chat API.
// Interest tags, when provided, are offered to the model as optional hints;
// papers strongly matching one carry its label in the result.
func NewClassifier(config *ai.Config, interestTags []core.InterestTag) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client:       client,
		temperature:  config.Temperature,
		interestTags: interestTags,
		logger:       slog.Default().With("component", "openai-classifier"),
	}, nil
}

// Classify labels one paper. Remote failures and unparseable responses surface
// as *ai.ClassificationError; malformed JSON is retried up to three times
// with a stricter hint appended to the prompt.
func (c *Classifier) Classify(ctx context.Context, paper core.Paper) (core.Classification, error) {
	systemPrompt := buildSystemPrompt()
	basePrompt := buildUserPrompt(paper, c.interestTags)

	var labels labelSet
	var lastErr error
	for attempt := 1; attempt <= maxParseAttempts; attempt++ {
		userPrompt := basePrompt
		if attempt > 1 {
			userPrompt += retryHint
		}

		content := []llms.MessageContent{
			{
				Role:  llms.ChatMessageTypeSystem,
				Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
			},
			{
				Role:  llms.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
			},
		}

		response, err := c.client.GenerateContent(ctx, content,
			llms.WithTemperature(c.temperature), llms.WithJSONMode())
		if err != nil {
			return core.Classification{}, &ai.ClassificationError{Reason: "remote call failed", Err: err}
		}

		if len(response.Choices) < 1 {
			return core.Classification{}, &ai.ClassificationError{Reason: "no choices returned from model"}
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &labels); err != nil {
			lastErr = err
			c.logger.Warn("error parsing classifier response",
				"attempt", attempt,
				"paper", paper.ArxivId,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		return core.Classification{}, &ai.ClassificationError{Reason: "unparseable response", Err: lastErr}
	}

	if labels.PrimaryArea == "" {
		return core.Classification{}, &ai.ClassificationError{Reason: "response missing primary_area"}
	}

	return core.Classification{
		PaperId:           paper.Id,
		PrimaryArea:       labels.PrimaryArea,
		SecondaryFocus:    labels.SecondaryFocus,
		ApplicationDomain: labels.ApplicationDomain,
		TLDR:              labels.TLDR,
		InterestTags:      cleanTags(labels.InterestTags),
		ClassifiedAt:      time.Now().UTC(),
	}, nil
}
