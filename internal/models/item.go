// models содержит доменные сущности flra-notifier.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import "time"

// Entity — именованная сущность, извлечённая из текста элемента.
type Entity struct {
	// Text — текст сущности («Federal Labor Relations Authority»).
	Text string `json:"text"`
	// Type — тип сущности (ORGANIZATION, DATE и т.п.).
	Type string `json:"type"`
}

// Item — доменная сущность элемента ленты.
//
// Особенности:
//   - ID — каноническая ссылка источника (натуральный ключ, он же ключ дедупликации);
//   - запись иммутабельна: путь обновления отсутствует, наличие ID в хранилище —
//     единственный сигнал «уже обработано»;
//   - временные метки — в UTC.
type Item struct {
	// ID — каноническая ссылка на публикацию у источника.
	ID string
	// Title — заголовок публикации.
	Title string
	// Content — исходный текст публикации (description из ленты).
	Content string
	// Summary — сгенерированное резюме (bullet points).
	Summary string
	// Entities — извлечённые именованные сущности; может быть пустым.
	Entities []Entity
	// Source — URL ленты, из которой пришёл элемент.
	Source string
	// PublishedAt — время публикации у источника.
	PublishedAt time.Time
	// CreatedAt — время записи элемента в хранилище (UTC).
	CreatedAt time.Time
}
