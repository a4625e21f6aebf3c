package describer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"leak-watch/internal/domain/entity"
	"leak-watch/internal/domain/port"
)

const (
	DefaultModel = openai.GPT4oMini
	maxTokens    = 400
)

const systemPrompt = `You are an operations assistant at a water treatment plant.
You receive a JSON summary of an automated pump leak inspection.
Write a short briefing (at most 5 sentences) for the on-call maintenance lead:
state the overall severity, how many leaks and normal pumps were seen,
and what should happen next. Do not invent numbers that are not in the JSON.`

// OpenAIDescriber описывает итоги запуска через chat completion
type OpenAIDescriber struct {
	client *openai.Client
	model  string
}

// NewOpenAIDescriber создаёт описатель с публичным API OpenAI
func NewOpenAIDescriber(apiKey, model string) *OpenAIDescriber {
	return NewOpenAIDescriberWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAIDescriberWithConfig позволяет задать свой BaseURL
func NewOpenAIDescriberWithConfig(cfg openai.ClientConfig, model string) *OpenAIDescriber {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIDescriber{client: openai.NewClientWithConfig(cfg), model: model}
}

// Describe генерирует текстовое описание итогов
func (d *OpenAIDescriber) Describe(ctx context.Context, summary *entity.RunSummary) (*entity.AiDescription, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     d.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty chat completion")
	}

	return &entity.AiDescription{Text: strings.TrimSpace(resp.Choices[0].Message.Content)}, nil
}

var _ port.SummaryDescriber = (*OpenAIDescriber)(nil)
