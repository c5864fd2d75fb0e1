package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/flra-notifier/internal/models"
	"github.com/pribylovaa/flra-notifier/internal/storage"
)

// preferenceColumns — единый список колонок таблицы preferences.
const preferenceColumns = `
user_id, frequency, topic, last_notified_at, updated_at
`

// scanPreference сканирует одну строку предпочтений в доменную модель.
// NULL в last_notified_at превращается в нулевой time.Time («никогда»).
func scanPreference(row pgx.Row) (*models.Preference, error) {
	var pref models.Preference
	var lastNotified *time.Time

	if err := row.Scan(
		&pref.UserID,
		&pref.Frequency,
		&pref.Topic,
		&lastNotified,
		&pref.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if lastNotified != nil {
		pref.LastNotifiedAt = lastNotified.UTC()
	}
	pref.UpdatedAt = pref.UpdatedAt.UTC()

	return &pref, nil
}

// PreferenceByUser возвращает предпочтения по user_id.
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) PreferenceByUser(ctx context.Context, userID string) (*models.Preference, error) {
	const op = "storage/postgres/preferences/PreferenceByUser"

	row := s.db.QueryRow(ctx,
		`SELECT `+preferenceColumns+` FROM preferences WHERE user_id = $1`, userID)

	pref, err := scanPreference(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pref, nil
}

// SavePreference создаёт либо целиком перезаписывает запись (upsert по user_id).
//
// Политика обновления:
//   - frequency/topic — перезаписываются всегда (set-запрос заменяет запись целиком);
//   - last_notified_at — НЕ затирается: им управляет только TouchLastNotified;
//   - updated_at — обновляется всегда.
func (s *Storage) SavePreference(ctx context.Context, pref models.Preference) error {
	const op = "storage/postgres/preferences/SavePreference"

	_, err := s.db.Exec(ctx, `
	INSERT INTO preferences (user_id, frequency, topic, updated_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id) DO UPDATE
	SET
	frequency = EXCLUDED.frequency,
	topic = EXCLUDED.topic,
	updated_at = EXCLUDED.updated_at
	`, pref.UserID, pref.Frequency, pref.Topic, pref.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// TouchLastNotified частично обновляет только last_notified_at.
// Если записи нет — storage.ErrNotFound.
func (s *Storage) TouchLastNotified(ctx context.Context, userID string, notifiedAt time.Time) error {
	const op = "storage/postgres/preferences/TouchLastNotified"

	tag, err := s.db.Exec(ctx,
		`UPDATE preferences SET last_notified_at = $2 WHERE user_id = $1`,
		userID, notifiedAt.UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListPreferences возвращает все записи предпочтений.
// Порядок обхода не гарантируется: обработка пользователей независима.
func (s *Storage) ListPreferences(ctx context.Context) ([]models.Preference, error) {
	const op = "storage/postgres/preferences/ListPreferences"

	rows, err := s.db.Query(ctx, `SELECT `+preferenceColumns+` FROM preferences`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var prefs []models.Preference
	for rows.Next() {
		pref, scanErr := scanPreference(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		prefs = append(prefs, *pref)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return prefs, nil
}
