package models

import (
	"encoding/json"
	"net/http"
)

// Envelope shapes of the JSON API: {data} for single rows,
// {data, pagination} for listings, {error[, message]} for failures.

type dataEnvelope struct {
	Data any `json:"data"`
}

type listEnvelope struct {
	Data       any `json:"data"`
	Pagination any `json:"pagination"`
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData wraps a single row or created entity.
func WriteData(w http.ResponseWriter, status int, v any) {
	WriteJSON(w, status, dataEnvelope{Data: v})
}

// WriteList wraps page rows plus pagination metadata.
func WriteList(w http.ResponseWriter, data, pagination any) {
	WriteJSON(w, http.StatusOK, listEnvelope{Data: data, Pagination: pagination})
}

// WriteError emits the failure envelope; the status carries the error
// taxonomy, the body never carries internal detail.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorEnvelope{Error: msg})
}

func WriteErrorMessage(w http.ResponseWriter, status int, errMsg, message string) {
	WriteJSON(w, status, errorEnvelope{Error: errMsg, Message: message})
}
