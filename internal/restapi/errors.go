package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vnsites/sitemap/internal/logging"
	"github.com/vnsites/sitemap/internal/models"
)

// BuildFailedText is the response text when map layers could not be built.
const BuildFailedText = "failed to build map layers"

// errorBody is the envelope for failures. Unlike models.ResponseModel it has
// no data member.
type errorBody struct {
	Code        int                 `json:"code"`
	CurrentTime int64               `json:"currentTime"`
	Text        string              `json:"text"`
	Error       string              `json:"error,omitempty"`
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`
	Version     int                 `json:"version"`
}

func newErrorBody(code int, text string) errorBody {
	return errorBody{
		Code:        code,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        text,
		Version:     2,
	}
}

// logger returns the app logger, or the request-scoped one when the app has none.
func (api *RestAPI) logger(r *http.Request) *slog.Logger {
	if api.Logger != nil {
		return api.Logger
	}
	return logging.FromContext(r.Context())
}

func (api *RestAPI) writeError(w http.ResponseWriter, r *http.Request, body errorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.LogError(api.logger(r), "failed to encode error response", err,
			slog.Int("status", body.Code),
			slog.String("component", "rest_api"))
	}
}

func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.writeError(w, r, newErrorBody(http.StatusUnauthorized, "permission denied"))
}

// serverErrorResponse logs err and answers 500 without exposing the cause.
func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.logger(r), "request failed", err,
		slog.String("component", "rest_api"),
		slog.String("path", r.URL.Path))

	api.writeError(w, r, newErrorBody(http.StatusInternalServerError, "internal server error"))
}

// buildErrorResponse reports a failed render pass. Unlike serverErrorResponse
// it carries the cause, so the client can show what went wrong.
func (api *RestAPI) buildErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.logger(r), BuildFailedText, err,
		slog.String("component", "rest_api"),
		slog.String("path", r.URL.Path))

	body := newErrorBody(http.StatusInternalServerError, BuildFailedText)
	body.Error = err.Error()
	api.writeError(w, r, body)
}

func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	body := newErrorBody(http.StatusBadRequest, "invalid request parameters")
	body.FieldErrors = fieldErrors
	api.writeError(w, r, body)
}
