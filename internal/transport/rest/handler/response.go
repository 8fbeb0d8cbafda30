package handler

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"aiacademy/internal/model"
	"aiacademy/internal/validate"
)

var errBadBody = errors.New("invalid request body")

var validator = validate.New()

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is the {error} body of the quiz API
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeFail is the {success:false, message} body of the portal API
func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.Response{Success: false, Message: message})
}

func writeOK(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, model.Response{Success: true, Message: message})
}

// writeInvalid answers a decode failure in the portal envelope, with the
// per-field messages when validation failed
func writeInvalid(w http.ResponseWriter, err error) {
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, model.Response{
			Success: false,
			Message: verr.Message(),
			Fields:  verr.FieldMap(),
		})
		return
	}
	writeFail(w, http.StatusBadRequest, err.Error())
}

// invalidMessage is the single line reported for a decode failure
func invalidMessage(err error) string {
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		return verr.Message()
	}
	return err.Error()
}

// decode reads the JSON body into v and validates it
func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadBody
	}
	return validator.Struct(v)
}
