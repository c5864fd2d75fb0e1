package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pribylovaa/flra-notifier/internal/alexa"
	"github.com/pribylovaa/flra-notifier/internal/metrics"
	"github.com/pribylovaa/flra-notifier/internal/service"
	logctx "github.com/pribylovaa/flra-notifier/pkg/log"
)

// Демонстрационный аудиопоток для PlayAudioIntent.
const (
	audioStreamToken = "some-audio-token"
	audioStreamURL   = "https://your-audio-file-host/audio-sample.mp3"
)

// Alexa — единая точка входа вебхука навыка: POST /alexa.
//
// Все распознанные запросы отвечают 200 с конвертом Alexa (включая
// неизвестные интенты — им положена речь-заглушка); 400 — только нечитаемое
// тело, 500 — отказ хранилища.
func (h *Handlers) Alexa(w http.ResponseWriter, r *http.Request) {
	var env alexa.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if env.Request.Type == "" {
		// Конверт без request: явный лейбл вместо пустой серии type="".
		metrics.SkillRequests.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusOK, alexa.PlainText("Invalid request.", false))
		return
	}

	metrics.SkillRequests.WithLabelValues(env.Request.Type).Inc()

	switch env.Request.Type {
	case alexa.RequestTypeLaunch:
		writeJSON(w, http.StatusOK, alexa.WithAPL(
			"Welcome to the FLRA Bot. You can ask for the latest updates or set your preferences.",
			"Welcome to FLRA Bot",
			"Ask for the latest FLRA decisions or press releases.",
			false,
		))
	case alexa.RequestTypeIntent:
		h.handleIntent(w, r, &env)
	default:
		writeJSON(w, http.StatusOK, alexa.PlainText("Sorry, I didn't understand that.", false))
	}
}

func (h *Handlers) handleIntent(w http.ResponseWriter, r *http.Request, env *alexa.Envelope) {
	name := env.Request.Intent.Name
	metrics.SkillIntents.WithLabelValues(name).Inc()

	switch name {
	case alexa.IntentGetLatestUpdates:
		h.getLatestUpdates(w, r, env)
	case alexa.IntentSetPreference:
		h.setPreference(w, r, env)
	case alexa.IntentGetPreference:
		h.getPreference(w, r, env)
	case alexa.IntentPlayAudio:
		writeJSON(w, http.StatusOK, alexa.WithAudio(
			"Playing the requested audio...",
			audioStreamToken,
			audioStreamURL,
		))
	default:
		writeJSON(w, http.StatusOK, alexa.PlainText("I don't know that intent.", false))
	}
}

func (h *Handlers) getLatestUpdates(w http.ResponseWriter, r *http.Request, env *alexa.Envelope) {
	const op = "http/handlers/getLatestUpdates"

	items, topic, err := h.svc.LatestUpdates(r.Context(), env.UserID())
	if err != nil {
		logctx.From(r.Context()).Error("latest_updates_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}

	if len(items) == 0 {
		writeJSON(w, http.StatusOK, alexa.PlainText(
			fmt.Sprintf("No new %s updates at this time.", topic), false))
		return
	}

	var speech strings.Builder
	fmt.Fprintf(&speech, "Here are the latest %s updates:\n", topic)
	for i, item := range items {
		fmt.Fprintf(&speech, "Update %d: %s. ", i+1, item.Title)
		fmt.Fprintf(&speech, "Summary: %s\n", item.Summary)
	}

	writeJSON(w, http.StatusOK, alexa.WithAPL(
		speech.String(),
		"Latest FLRA Updates",
		speech.String(),
		false,
	))
}

func (h *Handlers) setPreference(w http.ResponseWriter, r *http.Request, env *alexa.Envelope) {
	const op = "http/handlers/setPreference"

	pref, err := h.svc.SetPreference(r.Context(),
		env.UserID(),
		env.SlotValue("frequency"),
		env.SlotValue("topic"),
		time.Now().UTC(),
	)
	if err != nil {
		logctx.From(r.Context()).Error("set_preference_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}

	writeJSON(w, http.StatusOK, alexa.PlainText(
		fmt.Sprintf("Got it. Preference set to %s updates for %s.", pref.Frequency, pref.Topic),
		false,
	))
}

func (h *Handlers) getPreference(w http.ResponseWriter, r *http.Request, env *alexa.Envelope) {
	const op = "http/handlers/getPreference"

	pref, err := h.svc.GetPreference(r.Context(), env.UserID())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSON(w, http.StatusOK, alexa.PlainText(
				"I don't have any preferences for you yet.", false))
			return
		}

		logctx.From(r.Context()).Error("get_preference_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}

	writeJSON(w, http.StatusOK, alexa.PlainText(
		fmt.Sprintf("Your preference is %s updates about %s.", pref.Frequency, pref.Topic),
		false,
	))
}
