package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Varun5711/devconnect/internal/logger"
	"github.com/Varun5711/devconnect/internal/service"
	"github.com/Varun5711/devconnect/internal/validation"
)

const msgInvalidBody = "Invalid request body"

type errorsResponse struct {
	Errors []validation.FieldError `json:"errors"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation, service.KindConflict:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"errors":[...]} or, for flat errors, a single
// {"msg":...}. Anything that is not a service.Error is a 500.
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		log.Error("Unhandled error: %v", err)
		respondJSON(w, http.StatusInternalServerError, messageResponse{Msg: service.MsgServerError})
		return
	}

	status := statusFor(se.Kind)
	if se.Kind == service.KindInternal {
		respondJSON(w, status, messageResponse{Msg: service.MsgServerError})
		return
	}
	if se.Flat && len(se.Messages) > 0 {
		respondJSON(w, status, messageResponse{Msg: se.Messages[0].Msg})
		return
	}
	respondJSON(w, status, errorsResponse{Errors: se.Messages})
}

func respondBadBody(w http.ResponseWriter) {
	respondJSON(w, http.StatusBadRequest, errorsResponse{
		Errors: []validation.FieldError{{Msg: msgInvalidBody}},
	})
}

// decodeJSON reads the request body into dst. An empty body leaves dst at
// its zero value so field validation reports what is missing.
func decodeJSON(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
