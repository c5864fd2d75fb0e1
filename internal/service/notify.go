package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/flra-notifier/internal/metrics"
	"github.com/pribylovaa/flra-notifier/internal/models"
	"github.com/pribylovaa/flra-notifier/internal/schedule"
	"github.com/pribylovaa/flra-notifier/pkg/log"
)

// NotifyUsers доставляет проактивные уведомления по пачке новых элементов.
//
// Решения «кого и чем уведомлять» принимает schedule.PlanNotifications;
// здесь только доставка и сдвиг last_notified_at.
//
// Политика:
//   - доставка best-effort: ошибка нотифаера — warn, без ретраев;
//   - last_notified_at сдвигается ТОЛЬКО после успешной доставки непустого
//     плана; due-пользователь без релевантных элементов сохраняет старый
//     штамп и остаётся due на следующем проходе;
//   - ошибки чтения предпочтений — наверх (инфраструктурный сбой).
func (s *Service) NotifyUsers(ctx context.Context, newItems []models.Item, now time.Time) error {
	const op = "service/notify/NotifyUsers"

	lg := log.From(ctx)

	prefs, err := s.storage.ListPreferences(ctx)
	if err != nil {
		return fmt.Errorf("%s: list_preferences: %w", op, err)
	}

	if len(prefs) == 0 {
		return nil
	}

	plans := schedule.PlanNotifications(prefs, newItems, now)

	var sent, failed int
	for _, plan := range plans {
		if err := s.notifier.Notify(ctx, plan.UserID, len(plan.Items), now); err != nil {
			failed++
			metrics.NotificationsFailed.Inc()
			lg.Warn("notify_failed",
				slog.String("op", op),
				slog.String("user_id", plan.UserID),
				slog.String("err", err.Error()),
			)
			continue
		}

		sent++
		metrics.NotificationsSent.Inc()

		if err := s.storage.TouchLastNotified(ctx, plan.UserID, now); err != nil {
			// Уведомление уже ушло; несдвинутый штамп означает лишь
			// возможный повтор на следующем проходе.
			lg.Warn("touch_last_notified_failed",
				slog.String("op", op),
				slog.String("user_id", plan.UserID),
				slog.String("err", err.Error()),
			)
		}
	}

	lg.Info("notify_pass_done",
		slog.String("op", op),
		slog.Int("plans", len(plans)),
		slog.Int("sent", sent),
		slog.Int("failed", failed),
	)

	return nil
}
