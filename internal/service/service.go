// service содержит бизнес-логику flra-notifier: ингест лент,
// планирование и доставку уведомлений, запросы стороны навыка.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/flra-notifier/internal/config"
	"github.com/pribylovaa/flra-notifier/internal/models"
	"github.com/pribylovaa/flra-notifier/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует.
	ErrNotFound = errors.New("not found")
)

// SummaryPlaceholder подставляется вместо резюме при недоступном суммаризаторе.
const SummaryPlaceholder = "Summary not available."

// Summarizer — LLM-суммаризатор. Ошибка означает «резюме нет»:
// решение о плейсхолдере принимает оркестратор, а не клиент.
type Summarizer interface {
	Summarize(ctx context.Context, title, content string) (string, error)
}

// EntityExtractor — извлекатель именованных сущностей.
// Ошибка деградирует до пустого набора на стороне оркестратора.
type EntityExtractor interface {
	Extract(ctx context.Context, text string) ([]models.Entity, error)
}

// Notifier — канал проактивных уведомлений (fire-and-forget).
type Notifier interface {
	Notify(ctx context.Context, userID string, itemCount int, now time.Time) error
}

// Service — описывает бизнес-логику flra-notifier.
type Service struct {
	storage    storage.Storage
	summarizer Summarizer
	extractor  EntityExtractor
	notifier   Notifier
	cfg        config.Config
}

// New создает новый экземпляр Service.
// extractor может быть nil, если извлечение сущностей выключено конфигом.
func New(st storage.Storage, summarizer Summarizer, extractor EntityExtractor, notifier Notifier, cfg config.Config) *Service {
	return &Service{
		storage:    st,
		summarizer: summarizer,
		extractor:  extractor,
		notifier:   notifier,
		cfg:        cfg,
	}
}
