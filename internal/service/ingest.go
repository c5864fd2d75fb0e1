package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/flra-notifier/internal/metrics"
	"github.com/pribylovaa/flra-notifier/internal/models"
	"github.com/pribylovaa/flra-notifier/internal/storage"
	"github.com/pribylovaa/flra-notifier/pkg/log"
)

// StartIngest запускает периодический опрос источников из конфига s.cfg.Fetcher.
//
// Особенности:
//   - парсинг выполняется через переданный Parser, сохранение — через s.storage;
//   - после каждого прохода новые элементы уходят в NotifyUsers;
//   - останавливается по ctx.
func (s *Service) StartIngest(ctx context.Context, parser Parser) error {
	const op = "service/ingest/StartIngest"

	src := s.cfg.Fetcher.Sources
	interval := s.cfg.Fetcher.Interval

	if len(src) == 0 {
		return fmt.Errorf("%s: no sources configured", op)
	}

	lg := log.From(ctx)
	lg.Info("ingest_start",
		slog.String("op", op),
		slog.Int("sources", len(src)),
		slog.Duration("interval", interval),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := s.ingestTick(ctx, parser); err != nil {
		lg.Warn("ingest_tick_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}

	for {
		select {
		case <-ctx.Done():
			lg.Info("ingest_stop", slog.String("op", op))
			return nil
		case <-ticker.C:
			if err := s.ingestTick(ctx, parser); err != nil {
				lg.Warn("ingest_tick_error",
					slog.String("op", op),
					slog.String("err", err.Error()),
				)
			}
		}
	}
}

// ingestTick — один проход: ингест новых элементов и доставка уведомлений.
func (s *Service) ingestTick(ctx context.Context, parser Parser) error {
	now := time.Now().UTC()

	newItems, err := s.IngestOnce(ctx, parser, now)
	if err != nil {
		return err
	}

	if len(newItems) == 0 {
		return nil
	}

	return s.NotifyUsers(ctx, newItems, now)
}

// IngestOnce выполняет один проход ингеста: парсинг всех источников,
// дедупликацию по item_id, суммаризацию, извлечение сущностей и сохранение.
// Возвращает элементы, впервые записанные в этом проходе.
//
// Политика деградации:
//   - ошибка ленты — warn и пропуск ленты;
//   - ошибка суммаризатора — плейсхолдер вместо резюме;
//   - ошибка извлекателя — пустой набор сущностей;
//   - конфликт вставки (гонка двух проходов) — warn и пропуск элемента;
//   - ошибки хранилища — наверх: без БД проход не имеет смысла.
func (s *Service) IngestOnce(ctx context.Context, parser Parser, now time.Time) ([]models.Item, error) {
	const op = "service/ingest/IngestOnce"

	lg := log.From(ctx)

	output := parser.ParseMany(ctx, s.cfg.Fetcher.Sources)

	var feedsOK, feedsErr, seen int
	var newItems []models.Item

	for result := range output {
		if result.Err != nil {
			feedsErr++
			metrics.FeedErrors.Inc()
			lg.Warn("parse_error",
				slog.String("op", op),
				slog.String("url", result.URL),
				slog.String("err", result.Err.Error()),
			)
			continue
		}
		feedsOK++

		for _, item := range result.Items {
			seen++

			exists, err := s.storage.ItemExists(ctx, item.ID)
			if err != nil {
				return nil, fmt.Errorf("%s: item_exists: %w", op, err)
			}
			if exists {
				continue
			}

			enriched := s.enrichItem(ctx, item, now)

			if err := s.storage.SaveItem(ctx, enriched); err != nil {
				if errors.Is(err, storage.ErrAlreadyExists) {
					// Гонка с параллельным проходом: элемент уже записан — пропускаем.
					lg.Warn("item_insert_race",
						slog.String("op", op),
						slog.String("item_id", item.ID),
					)
					continue
				}

				return nil, fmt.Errorf("%s: save_item: %w", op, err)
			}

			metrics.IngestedItems.Inc()
			newItems = append(newItems, enriched)
		}
	}

	lg.Info("ingest_pass_done",
		slog.String("op", op),
		slog.Int("feeds_ok", feedsOK),
		slog.Int("feeds_err", feedsErr),
		slog.Int("seen", seen),
		slog.Int("new", len(newItems)),
	)

	return newItems, nil
}

// enrichItem дополняет новый элемент резюме и сущностями.
// Обе операции best-effort: деградация не прерывает ингест.
func (s *Service) enrichItem(ctx context.Context, item models.Item, now time.Time) models.Item {
	const op = "service/ingest/enrichItem"

	lg := log.From(ctx)

	summary, err := s.summarizer.Summarize(ctx, item.Title, item.Content)
	if err != nil {
		lg.Warn("summarize_failed",
			slog.String("op", op),
			slog.String("item_id", item.ID),
			slog.String("err", err.Error()),
		)
		summary = SummaryPlaceholder
	}
	item.Summary = summary

	if s.cfg.Entities.Enabled && s.extractor != nil {
		entities, err := s.extractor.Extract(ctx, item.Content)
		if err != nil {
			lg.Warn("entities_failed",
				slog.String("op", op),
				slog.String("item_id", item.ID),
				slog.String("err", err.Error()),
			)
			entities = nil
		}
		item.Entities = entities
	}

	item.CreatedAt = now

	return item
}
