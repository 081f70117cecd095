package middleware

import (
	"encoding/json"
	"net/http"
)

type messageResponse struct {
	Msg string `json:"msg"`
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(messageResponse{Msg: msg})
}
