package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Rakhulsr/asili-market/app/schema"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error  string             `json:"error"`
	Fields schema.FieldErrors `json:"fields,omitempty"`
}

func RespondError(rdr *render.Render, w http.ResponseWriter, status int, message string) {
	rdr.JSON(w, status, ErrorResponse{Error: message})
}

// RespondInternal logs err with the request's logger and sends the client
// an opaque 500.
func RespondInternal(rdr *render.Render, w http.ResponseWriter, r *http.Request, err error, context string) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(context)
	RespondError(rdr, w, http.StatusInternalServerError, "Internal server error")
}

func RespondValidation(rdr *render.Render, w http.ResponseWriter, message string, fields schema.FieldErrors) {
	rdr.JSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Fields: fields})
}

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return nil
}

// DecodeAndValidate decodes the body into dst and runs the validator. On
// failure it writes the 400 response and returns false; callers must not
// touch dst afterwards.
func DecodeAndValidate(rdr *render.Render, v *schema.Validator, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := DecodeJSONBody(w, r, dst); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("DecodeAndValidate: rejecting body")
		RespondError(rdr, w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := v.Validate(dst); err != nil {
		var fields schema.FieldErrors
		if errors.As(err, &fields) {
			RespondValidation(rdr, w, "Validation failed", fields)
			return false
		}
		RespondInternal(rdr, w, r, err, "DecodeAndValidate: validator misuse")
		return false
	}
	return true
}
