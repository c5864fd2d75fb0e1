// schedule содержит чистую логику планирования проактивных уведомлений:
// проверку «пора ли уведомлять» и отбор релевантных элементов по теме.
//
// Пакет не выполняет I/O и не читает часы: текущее время всегда передаётся
// вызывающей стороной, что делает все решения детерминированными и тестируемыми.
package schedule

import (
	"strings"
	"time"

	"github.com/pribylovaa/flra-notifier/internal/models"
)

// Пороги due-ness по частоте уведомлений.
const (
	dailyThreshold  = 24 * time.Hour
	weeklyThreshold = 7 * 24 * time.Hour
)

// Plan — решение уведомить одного пользователя набором элементов.
// Набор не разбивается: одно уведомление покрывает все релевантные элементы прохода.
type Plan struct {
	UserID string
	Items  []models.Item
}

// IsDue сообщает, пора ли уведомлять пользователя.
//
// Правила:
//   - нулевой lastNotifiedAt («никогда не уведомлялся») — due немедленно;
//   - daily и любое нераспознанное значение частоты — порог 24 часа;
//   - weekly — порог 7 суток.
func IsDue(frequency string, lastNotifiedAt, now time.Time) bool {
	if lastNotifiedAt.IsZero() {
		return true
	}

	threshold := dailyThreshold
	if frequency == models.FrequencyWeekly {
		threshold = weeklyThreshold
	}

	return now.Sub(lastNotifiedAt) >= threshold
}

// SelectRelevantItems возвращает подпоследовательность items (порядок сохраняется),
// у которых Source содержит topic как подстроку (с учётом регистра).
//
// Пустой topic подходит под любой Source — это намеренный pass-through
// («подписка на всё»), а не ошибка.
func SelectRelevantItems(items []models.Item, topic string) []models.Item {
	var relevant []models.Item
	for _, item := range items {
		if strings.Contains(item.Source, topic) {
			relevant = append(relevant, item)
		}
	}

	return relevant
}

// PlanNotifications строит планы уведомлений для пачки новых элементов.
//
// Для каждой записи предпочтений:
//   - не due — плана нет;
//   - due, но релевантных элементов нет — плана нет; last_notified_at при этом
//     НЕ сдвигается вызывающей стороной: пользователь остаётся due на каждом
//     следующем проходе, пока не появится подходящий элемент;
//   - due и есть релевантные элементы — ровно один план со всеми ними.
//
// Порядок обработки пользователей значения не имеет: записи независимы.
func PlanNotifications(prefs []models.Preference, newItems []models.Item, now time.Time) []Plan {
	var plans []Plan
	for _, pref := range prefs {
		if !IsDue(pref.Frequency, pref.LastNotifiedAt, now) {
			continue
		}

		relevant := SelectRelevantItems(newItems, pref.Topic)
		if len(relevant) == 0 {
			continue
		}

		plans = append(plans, Plan{UserID: pref.UserID, Items: relevant})
	}

	return plans
}
