// secrets загружает одноразовый JSON-блоб секретов процесса:
// API-ключ LLM и OAuth-токен Alexa для проактивных уведомлений.
//
// Ожидаемая форма файла:
//
//	{"llm_api_key": "...", "alexa_oauth_token": "..."}
//
// Переменные окружения LLM_API_KEY и ALEXA_OAUTH_TOKEN имеют приоритет
// над файлом. Пустые значения не считаются ошибкой: фичи деградируют
// (плейсхолдер вместо резюме, пропуск уведомлений), а не роняют запуск.
package secrets

import (
	"encoding/json"
	"fmt"
	"os"
)

// Secrets — секреты процесса.
type Secrets struct {
	// LLMAPIKey — ключ суммаризатора/извлекателя сущностей.
	LLMAPIKey string `json:"llm_api_key"`
	// AlexaOAuthToken — bearer-токен Proactive Events API.
	AlexaOAuthToken string `json:"alexa_oauth_token"`
}

// Load читает секреты из файла path (если задан) и накладывает ENV-переопределения.
// Отсутствующий путь при заданных ENV — не ошибка.
func Load(path string) (*Secrets, error) {
	const op = "secrets/Load"

	var s Secrets

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: read %s: %w", op, path, err)
		}

		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%s: parse %s: %w", op, path, err)
		}
	}

	if v := os.Getenv("LLM_API_KEY"); v != "" {
		s.LLMAPIKey = v
	}
	if v := os.Getenv("ALEXA_OAUTH_TOKEN"); v != "" {
		s.AlexaOAuthToken = v
	}

	return &s, nil
}
