package service

import (
	"context"

	"github.com/pribylovaa/flra-notifier/internal/models"
)

// Parser описывает абстракцию источника лент (RSS/Atom и т.п.),
// который парсит несколько лент и возвращает доменные объекты.
//
// Требования к реализации:
// 1) Поля Summary/Entities/CreatedAt в возвращаемых items должны быть пустыми —
// их проставляет оркестратор сервиса.
// 2) ID должен быть нормализованной канонической ссылкой (без #fragment, UTM
// и прочих трекеров) — это ключ дедупликации.
// 3) PublishedAt — в UTC, допускается нулевое значение.
// 4) Реализация обязана уважать ctx (отмена/таймауты).
//
// ParseMany должен отправить по одному ParseResult на каждый URL и затем закрыть канал.
// Порядок результатов не гарантируется.
type Parser interface {
	ParseMany(ctx context.Context, urls []string) <-chan ParseResult
}

// ParseResult — результат парсинга одной ленты.
// Если Err != nil, Items может быть неполным или пустым.
type ParseResult struct {
	URL   string
	Items []models.Item
	Err   error
}
