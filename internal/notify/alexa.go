// notify реализует service.Notifier поверх Alexa Proactive Events API.
// Доставка best-effort: без ретраев и эскалаций, результат решает оркестратор.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrNoToken — OAuth-токен Alexa не сконфигурирован, отправка невозможна.
var ErrNoToken = fmt.Errorf("alexa oauth token is not configured")

// Client — клиент Alexa Proactive Events API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	stage      string
	token      string
}

// New создаёт клиента проактивных уведомлений.
// baseURL — без завершающего слэша; stage — development или production.
func New(client *http.Client, baseURL, stage, token string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		httpClient: client,
		baseURL:    baseURL,
		stage:      stage,
		token:      token,
	}
}

// event — тело AMAZON.MessageAlert.Activated.
// Схема: https://developer.amazon.com/en-US/docs/alexa/notifications/notify-users.html
type event struct {
	Timestamp   string `json:"timestamp"`
	ReferenceID string `json:"referenceId"`
	ExpiryTime  string `json:"expiryTime"`
	Event       struct {
		Name    string `json:"name"`
		Payload struct {
			State struct {
				Status    string `json:"status"`
				Freshness string `json:"freshness"`
			} `json:"state"`
			MessageGroup struct {
				Creator struct {
					Name string `json:"name"`
				} `json:"creator"`
				Count   int    `json:"count"`
				Urgency string `json:"urgency"`
			} `json:"messageGroup"`
		} `json:"payload"`
	} `json:"event"`
	RelevantAudience struct {
		Type    string `json:"type"`
		Payload struct {
			User string `json:"user"`
		} `json:"payload"`
	} `json:"relevantAudience"`
}

// buildEvent собирает unicast-событие о itemCount новых публикациях FLRA.
// Временные метки выводятся из переданного now, а не из часов клиента.
func buildEvent(userID string, itemCount int, now time.Time) event {
	var ev event

	ev.Timestamp = now.UTC().Truncate(time.Second).Format(time.RFC3339)
	ev.ReferenceID = fmt.Sprintf("FLRAUpdate-%s", uuid.NewString())
	ev.ExpiryTime = now.UTC().Add(time.Hour).Truncate(time.Second).Format(time.RFC3339)

	ev.Event.Name = "AMAZON.MessageAlert.Activated"
	ev.Event.Payload.State.Status = "UNREAD"
	ev.Event.Payload.State.Freshness = "NEW"
	ev.Event.Payload.MessageGroup.Creator.Name = "FLRA Bot"
	ev.Event.Payload.MessageGroup.Count = itemCount
	ev.Event.Payload.MessageGroup.Urgency = "URGENT"

	ev.RelevantAudience.Type = "Unicast"
	ev.RelevantAudience.Payload.User = userID

	return ev
}

// Notify отправляет пользователю проактивное уведомление о новых публикациях.
// Отсутствие токена — ErrNoToken (вызывающая сторона логирует и пропускает).
func (c *Client) Notify(ctx context.Context, userID string, itemCount int, now time.Time) error {
	const op = "notify/Notify"

	if c.token == "" {
		return fmt.Errorf("%s: %w", op, ErrNoToken)
	}

	body, err := json.Marshal(buildEvent(userID, itemCount, now))
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	url := fmt.Sprintf("%s/v1/proactiveEvents/stages/%s", c.baseURL, c.stage)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: new_request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s: status=%d body=%s", op, resp.StatusCode, string(msg))
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
