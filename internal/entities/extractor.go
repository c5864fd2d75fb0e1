// entities реализует service.EntityExtractor поверх OpenAI Chat Completions
// с JSON-ответом. Извлечение включается флагом конфигурации; при ошибке
// оркестратор деградирует до пустого набора сущностей.
package entities

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/pribylovaa/flra-notifier/internal/models"
)

// Extractor — LLM-извлекатель именованных сущностей.
type Extractor struct {
	client openai.Client
	model  string
}

// New создаёт извлекатель сущностей с заданным API-ключом и моделью.
func New(apiKey, model string) *Extractor {
	return &Extractor{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// extractionResponse — ожидаемая форма JSON-ответа модели.
type extractionResponse struct {
	Entities []struct {
		Text string `json:"text"`
		Type string `json:"type"`
	} `json:"entities"`
}

// Extract возвращает именованные сущности текста (PERSON, ORGANIZATION,
// LOCATION, DATE, OTHER). Пустой текст — пустой результат без вызова модели.
func (e *Extractor) Extract(ctx context.Context, text string) ([]models.Entity, error) {
	const op = "entities/Extract"

	if text == "" {
		return nil, nil
	}

	prompt := fmt.Sprintf(`Extract named entities from the text below.
Respond with JSON only: {"entities": [{"text": "...", "type": "PERSON|ORGANIZATION|LOCATION|DATE|OTHER"}]}

Text: %s`, text)

	response, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(e.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(0.0),
		MaxTokens:   openai.Int(800),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("%s: no response from openai", op)
	}

	var parsed extractionResponse
	if err := json.Unmarshal([]byte(response.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("%s: parse response: %w", op, err)
	}

	result := make([]models.Entity, 0, len(parsed.Entities))
	for _, ent := range parsed.Entities {
		if ent.Text == "" {
			continue
		}

		result = append(result, models.Entity{Text: ent.Text, Type: ent.Type})
	}

	return result, nil
}
