// rss реализует service.Parser поверх gofeed.
// Возвращает доменные объекты models.Item с незаполненными Summary/Entities/CreatedAt —
// их проставляет оркестратор сервиса.
package rss

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/pribylovaa/flra-notifier/internal/models"
	"github.com/pribylovaa/flra-notifier/internal/service"
	"github.com/pribylovaa/flra-notifier/pkg/log"
)

// Parser парсит RSS/Atom-ленты конкурентно с ограничением maxConc.
// HTTP-клиент настраивается извне (таймауты, прокси и т.д.).
type Parser struct {
	parser  *gofeed.Parser
	maxConc int
}

// New создаёт новый парсер лент.
func New(client *http.Client, maxConcurrent int) *Parser {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	p := gofeed.NewParser()
	p.Client = client

	return &Parser{parser: p, maxConc: maxConcurrent}
}

// ParseMany парсит несколько лент конкурентно и отдаёт результаты в канал.
// Канал закрывается после завершения всех запущенных воркеров:
// при отмене ctx раздача новых URL прекращается, но барьер по семафору
// дожидается уже стартовавших, чтобы никто не писал в закрытый канал.
func (p *Parser) ParseMany(ctx context.Context, urls []string) <-chan service.ParseResult {
	output := make(chan service.ParseResult)

	go func() {
		defer close(output)

		sem := make(chan struct{}, p.maxConc)

	dispatch:
		for _, u := range urls {
			select {
			case <-ctx.Done():
				break dispatch
			default:
			}

			url := u
			sem <- struct{}{}

			go func() {
				defer func() {
					<-sem
				}()

				items, err := p.fetchOne(ctx, url)

				select {
				case output <- service.ParseResult{URL: url, Items: items, Err: err}:
				case <-ctx.Done():
				}
			}()
		}

		for i := 0; i < cap(sem); i++ {
			sem <- struct{}{}
		}
	}()

	return output
}

// fetchOne загружает и парсит одну ленту по URL.
func (p *Parser) fetchOne(ctx context.Context, src string) ([]models.Item, error) {
	const op = "rss/fetchOne"

	feed, err := p.parser.ParseURLWithContext(src, ctx)
	if err != nil {
		log.From(ctx).Warn("feed_parse_failed",
			slog.String("op", op),
			slog.String("url", src),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: parse %s: %w", op, src, err)
	}

	var output []models.Item
	for _, entry := range feed.Items {
		item, ok := convertEntry(entry, src)
		if !ok {
			continue
		}

		output = append(output, item)
	}

	return output, nil
}

// convertEntry превращает запись gofeed в доменную модель.
// Записи без заголовка или без канонической ссылки пропускаются:
// ссылка — натуральный ключ, без неё элемент неадресуем.
func convertEntry(entry *gofeed.Item, source string) (models.Item, bool) {
	title := strings.TrimSpace(entry.Title)
	link := CanonicalLink(entry.Link, entry.GUID)

	if title == "" || link == "" {
		return models.Item{}, false
	}

	content := strings.TrimSpace(entry.Description)
	if content == "" {
		content = strings.TrimSpace(entry.Content)
	}

	var published time.Time
	if entry.PublishedParsed != nil {
		published = entry.PublishedParsed.UTC()
	} else if entry.UpdatedParsed != nil {
		published = entry.UpdatedParsed.UTC()
	}

	return models.Item{
		ID:          link,
		Title:       title,
		Content:     content,
		Source:      source,
		PublishedAt: published,
	}, true
}

// CanonicalLink нормализует ссылку: убирает фрагмент и трекинг.
// Каноническая ссылка служит ключом дедупликации (item_id),
// поэтому нормализация обязана быть стабильной между запусками.
func CanonicalLink(raw, guid string) string {
	str := strings.TrimSpace(raw)

	if str == "" {
		if g := strings.TrimSpace(guid); strings.HasPrefix(g, "http://") || strings.HasPrefix(g, "https://") {
			str = g
		}
	}

	u, err := url.Parse(str)
	if err != nil {
		return str
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return str
	}

	u.Fragment = ""
	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || strings.HasSuffix(lk, "clid") || strings.HasPrefix(lk, "mc_") || lk == "igshid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return u.String()
}
