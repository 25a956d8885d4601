package handlers

import (
	"encoding/json"
	"net/http"
)

const (
	msgInternalError   = "внутренняя ошибка сервера"
	msgUnauthenticated = "запрос не аутентифицирован"
)

// ErrorResponse унифицированное тело ответа с ошибками
type ErrorResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// RespondJSON пишет ответ со статусом status и JSON-телом payload.
// При nil payload тело не пишется.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	// Ошибку кодирования уже не вернуть клиенту - заголовки отправлены
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ответ с ошибками в унифицированном формате
func RespondError(w http.ResponseWriter, status int, messages ...string) {
	RespondJSON(w, status, ErrorResponse{
		Success: false,
		Errors:  messages,
	})
}

// RespondBadRequest пишет 400 с сообщением об ошибке
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondForbidden пишет 403 с сообщением об ошибке
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound пишет 404 с сообщением об ошибке
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondUnauthorized пишет 401 со стандартным сообщением
func RespondUnauthorized(w http.ResponseWriter) {
	RespondError(w, http.StatusUnauthorized, msgUnauthenticated)
}

// RespondConflict пишет 409 с сообщением об ошибке
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError пишет 500 со стандартным сообщением
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
