package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/thedevsaddam/govalidator"
)

// Field rules per JSON route, checked before the body is decoded into its type.
var (
	imageRules = govalidator.MapData{
		"prompt": []string{"required"},
	}
	chatRules = govalidator.MapData{
		"messages": []string{"required"},
	}
)

// decodeJSON enforces the content type and body limit, validates the body
// against rules and decodes it into dst. On failure the response is written
// and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, rules govalidator.MapData, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		// Over-limit bodies also land here; report them as a bad request without size details.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if !json.Valid(body) {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}

	data := make(map[string]interface{})
	vr := r.Clone(r.Context())
	vr.Body = io.NopCloser(bytes.NewReader(body))
	v := govalidator.New(govalidator.Options{
		Request: vr,
		Data:    &data,
		Rules:   rules,
	})
	if errs := v.ValidateJSON(); len(errs) > 0 {
		writeValidationError(w, map[string][]string(errs))
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			writeValidationError(w, map[string][]string{ute.Field: {"must be of type " + ute.Type.String()}})
			return false
		}
		writeValidationError(w, map[string][]string{"_body": {err.Error()}})
		return false
	}
	return true
}
