package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"

	moktashef "github.com/Mohamed-Hany1211/Moktashef-back"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
)

type ErrorHandler struct {
	bundle *i18n.Bundle
	enloc  *i18n.Localizer
	arloc  *i18n.Localizer
}

func NewErrorHandler() *ErrorHandler {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.LoadMessageFileFS(moktashef.Locales, "locales/en.toml")
	bundle.LoadMessageFileFS(moktashef.Locales, "locales/ar.toml")

	return &ErrorHandler{
		bundle: bundle,
		enloc:  i18n.NewLocalizer(bundle, "en"),
		arloc:  i18n.NewLocalizer(bundle, "ar"),
	}
}

func (h *ErrorHandler) Localizer(lang string) *i18n.Localizer {
	if strings.HasPrefix(lang, "ar") {
		return h.arloc
	}
	return h.enloc
}

func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, span trace.Span, err error, desc string) {
	otelx.RecordSpanError(span, err, desc)
	slog.ErrorContext(r.Context(), "HTTP error response", "error", err.Error(), "desc", desc)

	localizer := h.Localizer(r.Header.Get("Accept-Language"))

	var appErr *errorx.I18nError
	if errors.As(err, &appErr) {
		writeError(w, r,
			appErr.Code,
			appErr.Localize(localizer),
			appErr.HTTPStatusCode(),
		)
		return
	}

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		fields := make([]string, 0, len(valErrs))
		for field := range valErrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		var msg strings.Builder
		for _, field := range fields {
			msg.WriteString(fmt.Sprintf("%s: %s; ", field, valErrs[field].Error()))
		}
		writeError(w, r,
			errorx.CodeValidationFailed,
			msg.String(),
			http.StatusBadRequest,
		)
		return
	}

	var valErr validation.Error
	if errors.As(err, &valErr) {
		writeError(w, r,
			errorx.CodeValidationFailed,
			valErr.Error(),
			http.StatusBadRequest,
		)
		return
	}

	slog.ErrorContext(r.Context(), "Unhandled error", "error", err)
	internalErr := errorx.NewInternalError().WithCause(err)
	writeError(w, r,
		internalErr.Code,
		internalErr.Localize(localizer),
		internalErr.HTTPStatusCode(),
	)
}

func (h *ErrorHandler) BadRequest(w http.ResponseWriter, r *http.Request, span trace.Span, err error, desc string) {
	h.HandleError(w, r, span, errorx.NewMalformedJSON().WithCause(err), desc)
}

func writeError(w http.ResponseWriter, r *http.Request,
	code errorx.Code,
	message string,
	status int,
) {
	response := Envelope{
		"code":    code,
		"message": message,
		"success": false,
	}

	err := WriteJSON(w, status, response, nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to write error response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
