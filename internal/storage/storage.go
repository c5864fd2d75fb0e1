// storage определяет контракты доступа к БД для flra-notifier.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/flra-notifier/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — конфликт уникальности по item_id (элемент уже ингестирован).
	ErrAlreadyExists = errors.New("already exists")
)

// ItemStorage описывает операции над сущностью models.Item.
// Записи иммутабельны: обновления не предусмотрены, только вставка и чтение.
type ItemStorage interface {
	// ItemExists сообщает, есть ли элемент с данным item_id.
	// Наличие ключа — единственный сигнал дедупликации.
	ItemExists(ctx context.Context, itemID string) (bool, error)
	// SaveItem вставляет новый элемент.
	// Возвращает ErrAlreadyExists при конфликте по item_id (вставка без upsert).
	SaveItem(ctx context.Context, item models.Item) error
	// ListItems возвращает все элементы, отсортированные по (created_at DESC, item_id DESC).
	ListItems(ctx context.Context) ([]models.Item, error)
}

// PreferenceStorage описывает операции над сущностью models.Preference.
type PreferenceStorage interface {
	// PreferenceByUser возвращает предпочтения пользователя.
	// Если записи нет — ErrNotFound.
	PreferenceByUser(ctx context.Context, userID string) (*models.Preference, error)
	// SavePreference создаёт либо целиком перезаписывает запись предпочтений
	// (upsert по user_id); last_notified_at при этом не затирается.
	SavePreference(ctx context.Context, pref models.Preference) error
	// TouchLastNotified частично обновляет только last_notified_at.
	// Если записи нет — ErrNotFound.
	TouchLastNotified(ctx context.Context, userID string, notifiedAt time.Time) error
	// ListPreferences возвращает все записи предпочтений.
	ListPreferences(ctx context.Context) ([]models.Preference, error)
}

// Storage задаёт контракт доступа к хранилищу для flra-notifier.
type Storage interface {
	ItemStorage
	PreferenceStorage
	Close()
}
