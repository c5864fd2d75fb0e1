// summarize реализует service.Summarizer поверх OpenAI Chat Completions.
// Клиент не принимает решений о фолбэках: любая ошибка возвращается
// оркестратору, который сам подставляет плейсхолдер вместо резюме.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Client — LLM-суммаризатор контента FLRA.
type Client struct {
	client openai.Client
	model  string
}

// New создаёт клиента суммаризации с заданным API-ключом и моделью.
func New(apiKey, model string) *Client {
	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Summarize строит краткое резюме публикации в виде 3–5 bullet points.
func (c *Client) Summarize(ctx context.Context, title, content string) (string, error) {
	const op = "summarize/Summarize"

	prompt := buildPrompt(title, content)

	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String("You summarize Federal Labor Relations Authority publications into concise bullet points."),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(500),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%s: no response from openai", op)
	}

	summary := strings.TrimSpace(response.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("%s: empty summary", op)
	}

	return summary, nil
}

// buildPrompt собирает промпт суммаризации.
func buildPrompt(title, content string) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following FLRA content in concise bullet points:\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", title))
	sb.WriteString(fmt.Sprintf("Content: %s\n", content))
	sb.WriteString("Make it 3-5 bullet points highlighting key info.")
	return sb.String()
}
