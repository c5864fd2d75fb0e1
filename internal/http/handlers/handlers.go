// handlers реализует HTTP-обработчики вебхука навыка Alexa.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/flra-notifier/internal/service"
)

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// writeError — унифицированный ответ об ошибке; детали наружу не отдаются.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
