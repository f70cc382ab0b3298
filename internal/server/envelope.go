package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/joseph-ayodele/ecoscan/internal/common"
)

// SuccessEnvelope is the 200 body of POST /ocr/.
type SuccessEnvelope struct {
	OCRText        string `json:"ocr_text"`
	StructuredData string `json:"structured_data"`
}

// ErrorEnvelope is every non-2xx body. It never carries OCR text.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

// statusByKind is the only place an error Kind becomes an HTTP status.
// Pipeline failures all surface as 500; the message tells them apart.
var statusByKind = map[common.Kind]int{
	common.KindImageDecode:    http.StatusInternalServerError,
	common.KindOCREngine:      http.StatusInternalServerError,
	common.KindAuthentication: http.StatusInternalServerError,
	common.KindService:        http.StatusInternalServerError,
	common.KindInvalidRequest: http.StatusUnprocessableEntity,
	common.KindConfig:         http.StatusInternalServerError,
	common.KindUnknown:        http.StatusInternalServerError,
}

func statusFor(err error) int {
	if code, ok := statusByKind[common.KindOf(err)]; ok {
		return code
	}
	return http.StatusInternalServerError
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("http.encode_response", "error", err)
	}
}

func respondError(w http.ResponseWriter, err error) int {
	status := statusFor(err)
	respondJSON(w, status, ErrorEnvelope{Error: err.Error()})
	return status
}
