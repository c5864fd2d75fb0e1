// metrics объявляет prometheus-счётчики flra-notifier.
// Экспонируются через /metrics (promhttp) в обоих бинарниках.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SkillRequests — входящие запросы навыка по типу (LaunchRequest, IntentRequest, ...).
	SkillRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flra_skill_requests_total",
		Help: "Incoming Alexa skill requests by request type.",
	}, []string{"type"})

	// SkillIntents — обработанные интенты по имени.
	SkillIntents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flra_skill_intents_total",
		Help: "Handled Alexa skill intents by intent name.",
	}, []string{"intent"})

	// IngestedItems — новые элементы, записанные в хранилище.
	IngestedItems = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flra_ingest_items_total",
		Help: "New feed items persisted by the ingest loop.",
	})

	// FeedErrors — ленты, завершившиеся ошибкой за проход.
	FeedErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flra_ingest_feed_errors_total",
		Help: "Feed fetch/parse failures per ingest pass.",
	})

	// NotificationsSent — успешно доставленные проактивные уведомления.
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flra_notifications_sent_total",
		Help: "Proactive notifications delivered successfully.",
	})

	// NotificationsFailed — неудачные попытки доставки.
	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flra_notifications_failed_total",
		Help: "Proactive notification delivery failures.",
	})
)
