package models

import "time"

// Допустимые значения частоты уведомлений.
// Любое нераспознанное значение трактуется как daily.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// Значения по умолчанию для отсутствующих предпочтений.
const (
	DefaultFrequency = FrequencyDaily
	DefaultTopic     = "decisions"
)

// Preference — пользовательские настройки уведомлений.
//
// Особенности:
//   - запись создаётся/перезаписывается целиком при каждом set-запросе;
//     частично обновляется только LastNotifiedAt (после успешной доставки);
//   - нулевой LastNotifiedAt означает «ни разу не уведомлялся» —
//     такой пользователь due немедленно.
type Preference struct {
	// UserID — идентификатор пользователя Alexa.
	UserID string
	// Frequency — daily или weekly.
	Frequency string
	// Topic — фильтр по теме: подстрока, сопоставляемая с Item.Source.
	Topic string
	// LastNotifiedAt — время последнего успешного уведомления (UTC);
	// нулевое значение — уведомлений ещё не было.
	LastNotifiedAt time.Time
	// UpdatedAt — время последней записи предпочтений (UTC).
	UpdatedAt time.Time
}
