// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/chalix/coursehub/internal/app/system/authz"
	"github.com/chalix/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with user-facing error pages so
// handlers report failures with one call.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs an internal failure and shows the user a generic
// error page with userMsg and a back link.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg, requestFields(r, err)...)
	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Something went wrong", backURL),
		Message: userMsg,
	}
	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_server", data)
}

// LogBadRequest logs a client error and shows the user an explanation.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, requestFields(r, err)...)
	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Invalid request", backURL),
		Message: userMsg,
	}
	w.WriteHeader(http.StatusBadRequest)
	templates.Render(w, r, "error_badrequest", data)
}

func requestFields(r *http.Request, err error) []zap.Field {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	}
	if username, _, _, ok := authz.UserCtx(r); ok {
		fields = append(fields, zap.String("username", username))
	}
	return fields
}
