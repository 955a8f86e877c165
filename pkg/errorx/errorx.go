package errorx

import (
	"errors"
	"fmt"
	"maps"
	"net/http"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// I18nError is an error with a localizable message key, a stable machine
// code, and an HTTP status hint. The raw cause never reaches the client;
// it is kept only for logs and traces.
type I18nError struct {
	cause       error
	MessageKey  string
	MessageArgs map[string]any
	HTTPCode    int
	Code        Code
}

func (e *I18nError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.MessageKey)
	}

	return fmt.Sprintf("[%s] %s: %s", e.Code, e.MessageKey, e.cause)
}

func (e *I18nError) Unwrap() error {
	return e.cause
}

func (e *I18nError) Localize(localizer *i18n.Localizer) string {
	return localizer.MustLocalize(&i18n.LocalizeConfig{
		MessageID:    e.MessageKey,
		TemplateData: e.MessageArgs,
	})
}

func (e *I18nError) HTTPStatusCode() int {
	if e.HTTPCode != 0 {
		return e.HTTPCode
	}

	return HTTPStatusCode(e.Code)
}

func (e *I18nError) WithKey(key string) *I18nError {
	e.MessageKey = key
	return e
}

func (e *I18nError) WithArgs(args map[string]any) *I18nError {
	if e.MessageArgs == nil {
		e.MessageArgs = make(map[string]any)
	}

	maps.Copy(e.MessageArgs, args)

	return e
}

func (e *I18nError) WithCause(cause error) *I18nError {
	e.cause = cause
	return e
}

// Wrap annotates err with the operation it failed in, preserving the
// wrapped error chain for errors.Is / errors.As.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func HTTPStatusCode(code Code) int {
	switch code {
	case CodeInvalid, CodeValidationFailed, CodeMalformedJSON:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials, CodeTokenInvalid, CodeTokenExpired:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeConflict, CodeDuplicateEntry:
		return http.StatusConflict
	case CodeUpstreamError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func IsCode(err error, code Code) bool {
	if err == nil {
		return false
	}

	var i18nErr *I18nError
	if errors.As(err, &i18nErr) {
		return i18nErr.Code == code
	}

	return false
}

func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}

func IsConflict(err error) bool {
	return IsCode(err, CodeConflict)
}

func IsDuplicateEntry(err error) bool {
	return IsCode(err, CodeDuplicateEntry)
}

// Client errors (4xx)
func NewInvalidRequest() *I18nError {
	return &I18nError{
		MessageKey: "invalid",
		Code:       CodeInvalid,
		HTTPCode:   http.StatusBadRequest,
	}
}

func NewValidationFailed() *I18nError {
	return &I18nError{
		MessageKey: "validation_failed",
		Code:       CodeValidationFailed,
		HTTPCode:   http.StatusBadRequest,
	}
}

func NewMalformedJSON() *I18nError {
	return &I18nError{
		MessageKey: "malformed_json",
		Code:       CodeMalformedJSON,
		HTTPCode:   http.StatusBadRequest,
	}
}

func NewUnauthorized() *I18nError {
	return &I18nError{
		MessageKey: "unauthorized",
		Code:       CodeUnauthorized,
		HTTPCode:   http.StatusUnauthorized,
	}
}

func NewInvalidCredentials() *I18nError {
	return &I18nError{
		MessageKey: "invalid_credentials",
		Code:       CodeInvalidCredentials,
		HTTPCode:   http.StatusUnauthorized,
	}
}

func NewTokenInvalid() *I18nError {
	return &I18nError{
		MessageKey: "token_invalid",
		Code:       CodeTokenInvalid,
		HTTPCode:   http.StatusUnauthorized,
	}
}

func NewTokenExpired() *I18nError {
	return &I18nError{
		MessageKey: "token_expired",
		Code:       CodeTokenExpired,
		HTTPCode:   http.StatusUnauthorized,
	}
}

func NewNotFound() *I18nError {
	return &I18nError{
		MessageKey: "not_found",
		Code:       CodeNotFound,
		HTTPCode:   http.StatusNotFound,
	}
}

func NewMethodNotAllowed() *I18nError {
	return &I18nError{
		MessageKey: "method_not_allowed",
		Code:       CodeMethodNotAllowed,
		HTTPCode:   http.StatusMethodNotAllowed,
	}
}

func NewConflict() *I18nError {
	return &I18nError{
		MessageKey: "conflict",
		Code:       CodeConflict,
		HTTPCode:   http.StatusConflict,
	}
}

func NewDuplicateEntry() *I18nError {
	return &I18nError{
		MessageKey: "duplicate_entry",
		Code:       CodeDuplicateEntry,
		HTTPCode:   http.StatusConflict,
	}
}

// Server errors (5xx)
func NewInternalError() *I18nError {
	return &I18nError{
		MessageKey: "internal_error",
		Code:       CodeInternal,
		HTTPCode:   http.StatusInternalServerError,
	}
}

// NewUpstreamServiceError covers failed calls to the mail sender and the
// media store. The original request is aborted, never retried.
func NewUpstreamServiceError() *I18nError {
	return &I18nError{
		MessageKey: "upstream_service_error",
		Code:       CodeUpstreamError,
		HTTPCode:   http.StatusBadGateway,
	}
}
