package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/flra-notifier/internal/models"
	"github.com/pribylovaa/flra-notifier/internal/storage"
)

// itemColumns — единый список колонок таблицы items,
// используемый в SELECT, чтобы гарантировать одинаковый порядок сканирования.
const itemColumns = `
item_id, title, content, summary, entities, source, published_at, created_at
`

// scanItem сканирует одну строку элемента в доменную модель.
// Сущности хранятся в JSONB и разворачиваются явным unmarshal.
func scanItem(row pgx.Row) (*models.Item, error) {
	var item models.Item
	var entitiesRaw []byte

	if err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Content,
		&item.Summary,
		&entitiesRaw,
		&item.Source,
		&item.PublishedAt,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}

	if len(entitiesRaw) > 0 {
		if err := json.Unmarshal(entitiesRaw, &item.Entities); err != nil {
			return nil, fmt.Errorf("unmarshal entities: %w", err)
		}
	}

	// Нормализация в UTC.
	item.PublishedAt = item.PublishedAt.UTC()
	item.CreatedAt = item.CreatedAt.UTC()

	return &item, nil
}

// ItemExists проверяет наличие элемента по item_id.
func (s *Storage) ItemExists(ctx context.Context, itemID string) (bool, error) {
	const op = "storage/postgres/items/ItemExists"

	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM items WHERE item_id = $1)`, itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// SaveItem вставляет новый элемент без upsert: элементы иммутабельны,
// повторная вставка того же item_id — ошибка ErrAlreadyExists.
func (s *Storage) SaveItem(ctx context.Context, item models.Item) error {
	const op = "storage/postgres/items/SaveItem"

	entitiesRaw, err := json.Marshal(entitiesOrEmpty(item.Entities))
	if err != nil {
		return fmt.Errorf("%s: marshal entities: %w", op, err)
	}

	_, err = s.db.Exec(ctx, `
	INSERT INTO items (item_id, title, content, summary, entities, source, published_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, item.ID, item.Title, item.Content, item.Summary, entitiesRaw,
		item.Source, item.PublishedAt.UTC(), item.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListItems возвращает все элементы.
// Сортировка фиксирована: created_at DESC, item_id DESC — стабильный
// порядок для выборки «последних обновлений» на стороне навыка.
func (s *Storage) ListItems(ctx context.Context) ([]models.Item, error) {
	const op = "storage/postgres/items/ListItems"

	rows, err := s.db.Query(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC, item_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		items = append(items, *item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, nil
}

// entitiesOrEmpty гарантирует '[]' вместо NULL в JSONB-колонке.
func entitiesOrEmpty(entities []models.Entity) []models.Entity {
	if entities == nil {
		return []models.Entity{}
	}

	return entities
}
