package errorx_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
)

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		code     errorx.Code
		expected int
	}{
		{errorx.CodeInvalid, http.StatusBadRequest},
		{errorx.CodeValidationFailed, http.StatusBadRequest},
		{errorx.CodeUnauthorized, http.StatusUnauthorized},
		{errorx.CodeInvalidCredentials, http.StatusUnauthorized},
		{errorx.CodeTokenInvalid, http.StatusUnauthorized},
		{errorx.CodeNotFound, http.StatusNotFound},
		{errorx.CodeConflict, http.StatusConflict},
		{errorx.CodeDuplicateEntry, http.StatusConflict},
		{errorx.CodeUpstreamError, http.StatusBadGateway},
		{errorx.CodeInternal, http.StatusInternalServerError},
		{errorx.Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, errorx.HTTPStatusCode(tt.code))
		})
	}
}

func TestWrap_PreservesChain(t *testing.T) {
	base := errorx.NewNotFound()
	wrapped := errorx.Wrap(base, "repo.GetByEmail")

	assert.True(t, errorx.IsNotFound(wrapped))

	var i18nErr *errorx.I18nError
	assert.True(t, errors.As(wrapped, &i18nErr))
	assert.Equal(t, http.StatusNotFound, i18nErr.HTTPStatusCode())
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, errorx.Wrap(nil, "op"))
}

func TestWithCause_KeepsIdentity(t *testing.T) {
	sentinel := errorx.NewUnauthorized().WithKey("otp_incorrect")
	err := fmt.Errorf("handler: %w", sentinel.WithCause(errors.New("hash mismatch")))

	assert.ErrorIs(t, err, sentinel)
	assert.True(t, errorx.IsCode(err, errorx.CodeUnauthorized))
}

func TestIsCode_NonI18nError(t *testing.T) {
	assert.False(t, errorx.IsCode(errors.New("plain"), errorx.CodeNotFound))
	assert.False(t, errorx.IsCode(nil, errorx.CodeNotFound))
}
