// alexa описывает JSON-конверты Alexa Skills Kit: входящий запрос навыка
// и строители ответов (речь, карточка, APL-документ, AudioPlayer-директива).
//
// Пакет не содержит бизнес-логики: только типы и сборка JSON-структур.
package alexa

import "strings"

// Типы входящих запросов навыка.
const (
	RequestTypeLaunch = "LaunchRequest"
	RequestTypeIntent = "IntentRequest"
)

// Имена интентов навыка.
const (
	IntentGetLatestUpdates = "GetLatestUpdatesIntent"
	IntentSetPreference    = "SetPreferenceIntent"
	IntentGetPreference    = "GetPreferenceIntent"
	IntentPlayAudio        = "PlayAudioIntent"
)

// DefaultUserID подставляется, когда запрос пришёл без идентификатора пользователя.
const DefaultUserID = "demoUser"

// Envelope — входящий конверт запроса навыка.
type Envelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Request `json:"request"`
}

// Session — сессионная часть конверта.
type Session struct {
	User User `json:"user"`
}

// User — пользователь Alexa.
type User struct {
	UserID string `json:"userId"`
}

// Request — полезная часть запроса.
type Request struct {
	Type   string `json:"type"`
	Intent Intent `json:"intent"`
}

// Intent — интент с заполненными слотами.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots"`
}

// Slot — значение одного слота интента.
type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// UserID возвращает идентификатор пользователя из сессии
// или DefaultUserID, если конверт его не содержит.
func (e *Envelope) UserID() string {
	if id := strings.TrimSpace(e.Session.User.UserID); id != "" {
		return id
	}
	return DefaultUserID
}

// SlotValue возвращает значение слота или пустую строку, если слот не заполнен.
func (e *Envelope) SlotValue(name string) string {
	slot, ok := e.Request.Intent.Slots[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(slot.Value)
}

// Response — исходящий конверт ответа навыка.
type Response struct {
	Version  string `json:"version"`
	Response Body   `json:"response"`
}

// Body — тело ответа.
type Body struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Directives       []Directive   `json:"directives,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

// OutputSpeech — озвучиваемый текст.
type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Card — простая карточка в приложении Alexa.
type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Directive — директива ответа. Поля заполняются в зависимости от Type:
// Alexa.Presentation.APL.RenderDocument использует Document/DataSources,
// AudioPlayer.Play — PlayBehavior/AudioItem.
type Directive struct {
	Type         string         `json:"type"`
	Document     map[string]any `json:"document,omitempty"`
	DataSources  map[string]any `json:"datasources,omitempty"`
	PlayBehavior string         `json:"playBehavior,omitempty"`
	AudioItem    *AudioItem     `json:"audioItem,omitempty"`
}

// AudioItem — аудиопоток директивы AudioPlayer.Play.
type AudioItem struct {
	Stream Stream `json:"stream"`
}

// Stream — параметры потока.
type Stream struct {
	Token                string `json:"token"`
	URL                  string `json:"url"`
	OffsetInMilliseconds int    `json:"offsetInMilliseconds"`
}

// PlainText строит ответ с одной лишь речью.
func PlainText(speech string, endSession bool) Response {
	return Response{
		Version: "1.0",
		Response: Body{
			OutputSpeech:     &OutputSpeech{Type: "PlainText", Text: speech},
			ShouldEndSession: endSession,
		},
	}
}

// WithAPL строит ответ с речью, простой карточкой и APL-документом
// для устройств с экраном; безэкранные устройства озвучат только speech.
func WithAPL(speech, title, subtitle string, endSession bool) Response {
	return Response{
		Version: "1.0",
		Response: Body{
			OutputSpeech: &OutputSpeech{Type: "PlainText", Text: speech},
			Card:         &Card{Type: "Simple", Title: title, Content: subtitle},
			Directives: []Directive{
				{
					Type:        "Alexa.Presentation.APL.RenderDocument",
					Document:    aplDocument(title, subtitle),
					DataSources: map[string]any{},
				},
			},
			ShouldEndSession: endSession,
		},
	}
}

// WithAudio строит ответ с директивой AudioPlayer.Play; сессия всегда завершается.
func WithAudio(speech, token, url string) Response {
	return Response{
		Version: "1.0",
		Response: Body{
			OutputSpeech: &OutputSpeech{Type: "PlainText", Text: speech},
			Directives: []Directive{
				{
					Type:         "AudioPlayer.Play",
					PlayBehavior: "REPLACE_ALL",
					AudioItem: &AudioItem{
						Stream: Stream{
							Token:                token,
							URL:                  url,
							OffsetInMilliseconds: 0,
						},
					},
				},
			},
			ShouldEndSession: true,
		},
	}
}

// aplDocument — минимальный APL-документ с двумя текстовыми блоками.
func aplDocument(title, subtitle string) map[string]any {
	return map[string]any{
		"type":    "APL",
		"version": "1.7",
		"import": []map[string]any{
			{"name": "alexa-layouts", "version": "1.3.0"},
		},
		"mainTemplate": map[string]any{
			"parameters": []string{"payload"},
			"item": map[string]any{
				"type": "Container",
				"items": []map[string]any{
					{"type": "Text", "text": title, "style": "textStylePrimary1"},
					{"type": "Text", "text": subtitle, "style": "textStylePrimary2"},
				},
			},
		},
	}
}
