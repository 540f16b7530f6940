package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/rs/zerolog/log"
)

// WriteJSON encodes data before writing the header. A value that cannot be
// encoded is answered with a 500 and a JSON error body.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to encode response"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// WriteError writes a JSON response with the given status code and error message
func WriteError(w http.ResponseWriter, statusCode int, errorMessage string) {
	WriteJSON(w, statusCode, models.ErrorResponse{Error: errorMessage})
}

// WriteNoContent writes an empty 204 response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WritePNG writes raw PNG bytes
func WritePNG(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("Failed to write PNG response")
	}
}
