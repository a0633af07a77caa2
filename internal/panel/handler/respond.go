package handler

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope matches the panel's error contract: {ok:false, error:...}.
type errorEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, errorEnvelope{OK: false, Error: msg})
}
