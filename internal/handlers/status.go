package handlers

import (
	"encoding/json"
	"net/http"

	"atvcert/internal/certstore"
	"atvcert/internal/logger"
	"atvcert/internal/version"
	"atvcert/middleware"
)

type statusResponse struct {
	Version     string          `json:"version"`
	Certificate *certstore.Info `json:"certificate,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// Status returns a handler describing the stored certificate pair.
func Status(store certstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := statusResponse{Version: version.Version}

		info, err := store.Describe()
		if err != nil {
			logger.Get().Warn().
				Err(err).
				Str("request_id", middleware.GetRequestID(r.Context())).
				Msg("could not describe stored certificate")
			response.Error = err.Error()
		} else {
			response.Certificate = info
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
