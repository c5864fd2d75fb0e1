package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/flra-notifier/internal/alexa"
	"github.com/pribylovaa/flra-notifier/internal/config"
	"github.com/pribylovaa/flra-notifier/internal/metrics"
	"github.com/pribylovaa/flra-notifier/internal/models"
	"github.com/pribylovaa/flra-notifier/internal/service"
	"github.com/pribylovaa/flra-notifier/internal/storage"
	"github.com/pribylovaa/flra-notifier/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// newHandlers — обработчики поверх реального сервиса с mock-хранилищем.
func newHandlers(t *testing.T, st *mocks.MockStorage) *Handlers {
	t.Helper()
	cfg := config.Config{Limits: config.LimitsConfig{Latest: 3}}
	return New(service.New(st, nil, nil, nil, cfg))
}

// doAlexa — POST /alexa с телом body; возвращает рекордер.
func doAlexa(t *testing.T, h *Handlers, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/alexa", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	h.Alexa(rr, req)
	return rr
}

// decodeResponse — разбор конверта ответа навыка.
func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) alexa.Response {
	t.Helper()

	var resp alexa.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func intentEnvelope(userID, intent string, slots map[string]string) alexa.Envelope {
	env := alexa.Envelope{Version: "1.0"}
	env.Session.User.UserID = userID
	env.Request.Type = alexa.RequestTypeIntent
	env.Request.Intent.Name = intent
	if len(slots) > 0 {
		env.Request.Intent.Slots = make(map[string]alexa.Slot, len(slots))
		for name, value := range slots {
			env.Request.Intent.Slots[name] = alexa.Slot{Name: name, Value: value}
		}
	}
	return env
}

// TestAlexa_BadBody_400 — нечитаемое тело — единственный случай 400.
func TestAlexa_BadBody_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h := newHandlers(t, mocks.NewMockStorage(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/alexa", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	h.Alexa(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

// TestAlexa_Launch_WelcomeWithCard — LaunchRequest отвечает приветствием
// с карточкой и APL-директивой.
func TestAlexa_Launch_WelcomeWithCard(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h := newHandlers(t, mocks.NewMockStorage(ctrl))

	env := alexa.Envelope{Version: "1.0"}
	env.Request.Type = alexa.RequestTypeLaunch

	rr := doAlexa(t, h, env)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeResponse(t, rr)
	require.Contains(t, resp.Response.OutputSpeech.Text, "Welcome to the FLRA Bot")
	require.NotNil(t, resp.Response.Card)
	require.Equal(t, "Welcome to FLRA Bot", resp.Response.Card.Title)
	require.Len(t, resp.Response.Directives, 1)
	require.False(t, resp.Response.ShouldEndSession)
}

// TestAlexa_MissingRequest_InvalidSpeech — конверт без request — речь
// "Invalid request.", 200; в метрике запросов серия type="invalid",
// а не пустой лейбл.
func TestAlexa_MissingRequest_InvalidSpeech(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h := newHandlers(t, mocks.NewMockStorage(ctrl))

	before := testutil.ToFloat64(metrics.SkillRequests.WithLabelValues("invalid"))

	rr := doAlexa(t, h, alexa.Envelope{Version: "1.0"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Invalid request.", decodeResponse(t, rr).Response.OutputSpeech.Text)

	require.Equal(t, before+1, testutil.ToFloat64(metrics.SkillRequests.WithLabelValues("invalid")))
}

// TestAlexa_UnknownRequestType_Fallback — неизвестный тип запроса — речь-заглушка, 200.
func TestAlexa_UnknownRequestType_Fallback(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h := newHandlers(t, mocks.NewMockStorage(ctrl))

	env := alexa.Envelope{Version: "1.0"}
	env.Request.Type = "SessionEndedRequest"

	rr := doAlexa(t, h, env)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Sorry, I didn't understand that.", decodeResponse(t, rr).Response.OutputSpeech.Text)
}

// TestAlexa_UnknownIntent_Fallback — неизвестный интент — речь-заглушка, 200.
func TestAlexa_UnknownIntent_Fallback(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h := newHandlers(t, mocks.NewMockStorage(ctrl))

	rr := doAlexa(t, h, intentEnvelope("u1", "TellMeAJokeIntent", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "I don't know that intent.", decodeResponse(t, rr).Response.OutputSpeech.Text)
}

// TestAlexa_GetLatestUpdates_SpeechAndAPL — топ свежих элементов по теме
// пользователя озвучивается и дублируется в APL.
func TestAlexa_GetLatestUpdates_SpeechAndAPL(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)
	h := newHandlers(t, st)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	pref := &models.Preference{UserID: "u1", Frequency: models.FrequencyDaily, Topic: "press"}
	items := []models.Item{
		{ID: "p1", Title: "Press One", Summary: "• first", Source: "https://flra.gov/rss/press", CreatedAt: base.Add(time.Hour)},
		{ID: "d1", Title: "Decision", Summary: "x", Source: "https://flra.gov/rss/decisions", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "p2", Title: "Press Two", Summary: "• second", Source: "https://flra.gov/rss/press", CreatedAt: base.Add(3 * time.Hour)},
	}

	st.EXPECT().PreferenceByUser(gomock.Any(), "u1").Return(pref, nil)
	st.EXPECT().ListItems(gomock.Any()).Return(items, nil)

	rr := doAlexa(t, h, intentEnvelope("u1", alexa.IntentGetLatestUpdates, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeResponse(t, rr)
	speech := resp.Response.OutputSpeech.Text
	require.Contains(t, speech, "Here are the latest press updates:")
	require.Contains(t, speech, "Update 1: Press Two. Summary: • second")
	require.Contains(t, speech, "Update 2: Press One. Summary: • first")
	require.NotContains(t, speech, "Decision")

	require.NotNil(t, resp.Response.Card)
	require.Equal(t, "Latest FLRA Updates", resp.Response.Card.Title)
	require.Len(t, resp.Response.Directives, 1)
}

// TestAlexa_GetLatestUpdates_Empty — нет релевантных элементов — вежливый отказ.
func TestAlexa_GetLatestUpdates_Empty(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)
	h := newHandlers(t, st)

	st.EXPECT().PreferenceByUser(gomock.Any(), "u1").Return(nil, storage.ErrNotFound)
	st.EXPECT().ListItems(gomock.Any()).Return(nil, nil)

	rr := doAlexa(t, h, intentEnvelope("u1", alexa.IntentGetLatestUpdates, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "No new decisions updates at this time.",
		decodeResponse(t, rr).Response.OutputSpeech.Text)
}

// TestAlexa_GetLatestUpdates_StorageError_500 — отказ хранилища — 500/internal.
func TestAlexa_GetLatestUpdates_StorageError_500(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)
	h := newHandlers(t, st)

	st.EXPECT().PreferenceByUser(gomock.Any(), "u1").Return(nil, errors.New("db down"))

	rr := doAlexa(t, h, intentEnvelope("u1", alexa.IntentGetLatestUpdates, nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "internal", body["error"])
}

// TestAlexa_SetPreference_SlotsAndDefaults — слоты сохраняются; пустые
// заполняются умолчаниями.
func TestAlexa_SetPreference_SlotsAndDefaults(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)
	h := newHandlers(t, st)

	var saved models.Preference
	st.EXPECT().
		SavePreference(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pref models.Preference) error {
			saved = pref
			return nil
		})

	rr := doAlexa(t, h, intentEnvelope("u1", alexa.IntentSetPreference,
		map[string]string{"frequency": "weekly", "topic": "hearings"}))
	require.Equal(t, http.StatusOK, rr.Code)

	require.Equal(t, "u1", saved.UserID)
	require.Equal(t, models.FrequencyWeekly, saved.Frequency)
	require.Equal(t, "hearings", saved.Topic)

	require.Equal(t, "Got it. Preference set to weekly updates for hearings.",
		decodeResponse(t, rr).Response.OutputSpeech.Text)

	// Без слотов — умолчания.
	st.EXPECT().
		SavePreference(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pref models.Preference) error {
			require.Equal(t, models.DefaultFrequency, pref.Frequency)
			require.Equal(t, models.DefaultTopic, pref.Topic)
			return nil
		})

	rr = doAlexa(t, h, intentEnvelope("u1", alexa.IntentSetPreference, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Got it. Preference set to daily updates for decisions.",
		decodeResponse(t, rr).Response.OutputSpeech.Text)
}

// TestAlexa_GetPreference — сохранённые предпочтения озвучиваются;
// их отсутствие — отдельная реплика.
func TestAlexa_GetPreference(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)
	h := newHandlers(t, st)

	pref := &models.Preference{UserID: "u1", Frequency: models.FrequencyWeekly, Topic: "hearings"}
	st.EXPECT().PreferenceByUser(gomock.Any(), "u1").Return(pref, nil)

	rr := doAlexa(t, h, intentEnvelope("u1", alexa.IntentGetPreference, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Your preference is weekly updates about hearings.",
		decodeResponse(t, rr).Response.OutputSpeech.Text)

	st.EXPECT().PreferenceByUser(gomock.Any(), "ghost").Return(nil, storage.ErrNotFound)

	rr = doAlexa(t, h, intentEnvelope("ghost", alexa.IntentGetPreference, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "I don't have any preferences for you yet.",
		decodeResponse(t, rr).Response.OutputSpeech.Text)
}

// TestAlexa_PlayAudio — AudioPlayer.Play с завершением сессии.
func TestAlexa_PlayAudio(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h := newHandlers(t, mocks.NewMockStorage(ctrl))

	rr := doAlexa(t, h, intentEnvelope("u1", alexa.IntentPlayAudio, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeResponse(t, rr)
	require.Equal(t, "Playing the requested audio...", resp.Response.OutputSpeech.Text)
	require.Len(t, resp.Response.Directives, 1)
	require.Equal(t, "AudioPlayer.Play", resp.Response.Directives[0].Type)
	require.True(t, resp.Response.ShouldEndSession)
}
