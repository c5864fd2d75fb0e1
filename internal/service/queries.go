package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pribylovaa/flra-notifier/internal/models"
	"github.com/pribylovaa/flra-notifier/internal/schedule"
	"github.com/pribylovaa/flra-notifier/internal/storage"
)

// LatestUpdates возвращает до cfg.Limits.Latest самых свежих элементов,
// релевантных теме пользователя, и саму применённую тему.
//
// Отсутствие записи предпочтений — не ошибка: применяются значения
// по умолчанию (daily / "decisions"). Порядок выдачи стабилен:
// (created_at, item_id) по убыванию.
func (s *Service) LatestUpdates(ctx context.Context, userID string) ([]models.Item, string, error) {
	const op = "service/queries/LatestUpdates"

	topic := models.DefaultTopic

	pref, err := s.storage.PreferenceByUser(ctx, userID)
	switch {
	case err == nil:
		topic = pref.Topic
	case errors.Is(err, storage.ErrNotFound):
		// Новый пользователь — умолчания.
	default:
		return nil, "", fmt.Errorf("%s: preference_by_user: %w", op, err)
	}

	items, err := s.storage.ListItems(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%s: list_items: %w", op, err)
	}

	relevant := schedule.SelectRelevantItems(items, topic)

	sort.SliceStable(relevant, func(i, j int) bool {
		if !relevant[i].CreatedAt.Equal(relevant[j].CreatedAt) {
			return relevant[i].CreatedAt.After(relevant[j].CreatedAt)
		}
		return relevant[i].ID > relevant[j].ID
	})

	if len(relevant) > s.cfg.Limits.Latest {
		relevant = relevant[:s.cfg.Limits.Latest]
	}

	return relevant, topic, nil
}

// SetPreference сохраняет предпочтения пользователя.
//
// Пустые слоты заполняются умолчаниями; last_notified_at записи не трогается —
// смена предпочтений не делает пользователя «только что уведомлённым».
func (s *Service) SetPreference(ctx context.Context, userID, frequency, topic string, now time.Time) (*models.Preference, error) {
	const op = "service/queries/SetPreference"

	if userID == "" {
		return nil, fmt.Errorf("%s: empty user id", op)
	}

	frequency = strings.TrimSpace(frequency)
	if frequency == "" {
		frequency = models.DefaultFrequency
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = models.DefaultTopic
	}

	pref := models.Preference{
		UserID:    userID,
		Frequency: frequency,
		Topic:     topic,
		UpdatedAt: now,
	}

	if err := s.storage.SavePreference(ctx, pref); err != nil {
		return nil, fmt.Errorf("%s: save_preference: %w", op, err)
	}

	return &pref, nil
}

// GetPreference возвращает сохранённые предпочтения пользователя.
// Отсутствие записи — ErrNotFound: озвучивание умолчаний решает вызывающая сторона.
func (s *Service) GetPreference(ctx context.Context, userID string) (*models.Preference, error) {
	const op = "service/queries/GetPreference"

	pref, err := s.storage.PreferenceByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: preference_by_user: %w", op, err)
	}

	return pref, nil
}
