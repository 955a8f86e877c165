package accountcmd_test

import (
	"errors"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountcmd "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account/cmd"
	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/integration/builders"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/integration/fixtures"
)

var verifyLinkTokenRe = regexp.MustCompile(`token=([^"]+)`)

// extractVerificationToken pulls the token out of the link embedded in the
// verification mail body.
func extractVerificationToken(t *testing.T, html string) string {
	t.Helper()

	m := verifyLinkTokenRe.FindStringSubmatch(html)
	require.Len(t, m, 2, "verification mail should contain a token link")

	token, err := url.QueryUnescape(m[1])
	require.NoError(t, err)
	return token
}

func TestSignupHandle_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewSuite(t)
	resp, err := s.App.Command.Signup.Handle(t.Context(), &accountcmd.Signup{
		Username: fixtures.TestAccount.Username,
		Email:    fixtures.TestAccount.Email,
		Password: fixtures.TestAccount.Password,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, fixtures.TestAccount.Username, resp.Username)
	assert.Equal(t, fixtures.TestAccount.Email, resp.Email)
	assert.NotEmpty(t, resp.ID)

	a, err := s.Repo.GetAccountByEmail(t.Context(), fixtures.TestAccount.Email)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, a.ID().String())
	assert.Equal(t, fixtures.TestAccount.Username, a.Username())
	assert.False(t, a.IsEmailVerified(), "new account should start unverified")
	require.NoError(t, a.ComparePassword(fixtures.TestAccount.Password))

	mail := s.Mail.AssertMailSent(t, fixtures.TestAccount.Email, "Verify your email address")
	token := extractVerificationToken(t, mail.HTML)
	s.assertVerificationToken(t, token, fixtures.TestAccount.Email)
}

func TestSignupHandle_FailPath(t *testing.T) {
	t.Parallel()

	t.Run("email already taken", func(t *testing.T) {
		s := NewSuite(t)
		existing := builders.NewAccountBuilder().WithEmail(fixtures.ValidEmail).Build()
		s.Repo.SeedAccount(t, existing)

		_, err := s.App.Command.Signup.Handle(t.Context(), &accountcmd.Signup{
			Username: fixtures.TestAccount.Username,
			Email:    fixtures.ValidEmail,
			Password: fixtures.ValidPassword,
		})
		require.ErrorIs(t, err, account.ErrAccountAlreadyExists)
		s.Mail.AssertNoMailSent(t, fixtures.ValidEmail)
	})

	t.Run("username already taken", func(t *testing.T) {
		s := NewSuite(t)
		existing := builders.NewAccountBuilder().WithUsername("taken_name").Build()
		s.Repo.SeedAccount(t, existing)

		_, err := s.App.Command.Signup.Handle(t.Context(), &accountcmd.Signup{
			Username: "taken_name",
			Email:    fixtures.ValidEmail2,
			Password: fixtures.ValidPassword,
		})
		require.ErrorIs(t, err, account.ErrAccountAlreadyExists)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		s := NewSuite(t)

		_, err := s.App.Command.Signup.Handle(t.Context(), &accountcmd.Signup{
			Username: fixtures.TestAccount.Username,
			Email:    fixtures.ValidEmail,
			Password: fixtures.WeakPassword,
		})
		require.Error(t, err)
		s.Repo.AssertAccountByEmailNotExists(t, fixtures.ValidEmail)
	})

	t.Run("mail failure removes the created account", func(t *testing.T) {
		s := NewSuite(t)
		s.Mail.FailWith(errors.New("smtp: connection refused"))

		_, err := s.App.Command.Signup.Handle(t.Context(), &accountcmd.Signup{
			Username: fixtures.TestAccount.Username,
			Email:    fixtures.ValidEmail,
			Password: fixtures.ValidPassword,
		})
		require.Error(t, err)
		assert.True(t, errorx.IsCode(err, errorx.CodeUpstreamError))

		// The row must be gone so the user can retry with the same email.
		s.Repo.AssertAccountByEmailNotExists(t, fixtures.ValidEmail)
	})
}

func TestVerifyEmailHandle_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewSuite(t)
	a := builders.NewAccountBuilder().Unverified().WithEmail(fixtures.ValidEmail).Build()
	s.Repo.SeedAccount(t, a)

	token, err := s.Tokens.SignVerificationToken(fixtures.ValidEmail)
	require.NoError(t, err)

	err = s.App.Command.VerifyEmail.Handle(t.Context(), &accountcmd.VerifyEmail{Token: token})
	require.NoError(t, err)

	assert.True(t, s.Repo.Account(t, a.ID()).IsEmailVerified())
}

func TestVerifyEmailHandle_FailPath(t *testing.T) {
	t.Parallel()

	t.Run("second consume yields not found", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Unverified().WithEmail(fixtures.ValidEmail).Build()
		s.Repo.SeedAccount(t, a)

		token, err := s.Tokens.SignVerificationToken(fixtures.ValidEmail)
		require.NoError(t, err)

		require.NoError(t, s.App.Command.VerifyEmail.Handle(t.Context(), &accountcmd.VerifyEmail{Token: token}))

		err = s.App.Command.VerifyEmail.Handle(t.Context(), &accountcmd.VerifyEmail{Token: token})
		require.Error(t, err)
		assert.True(t, errorx.IsNotFound(err), "consumed link must surface not found, not an invalid token")
	})

	t.Run("token for unknown account", func(t *testing.T) {
		s := NewSuite(t)

		token, err := s.Tokens.SignVerificationToken(fixtures.ValidEmail)
		require.NoError(t, err)

		err = s.App.Command.VerifyEmail.Handle(t.Context(), &accountcmd.VerifyEmail{Token: token})
		require.Error(t, err)
		assert.True(t, errorx.IsNotFound(err))
	})

	t.Run("expired token", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Unverified().WithEmail(fixtures.ValidEmail).Build()
		s.Repo.SeedAccount(t, a)

		expired := -time.Minute
		expiredTokens := accountcmd.NewTokens(accountcmd.TokensArgs{
			VerificationSecretKey: fixtures.TestVerifyKey,
			SessionSecretKey:      fixtures.TestSessionKey,
			VerificationExp:       &expired,
		})
		token, err := expiredTokens.SignVerificationToken(fixtures.ValidEmail)
		require.NoError(t, err)

		err = s.App.Command.VerifyEmail.Handle(t.Context(), &accountcmd.VerifyEmail{Token: token})
		require.Error(t, err)
		assert.True(t, errorx.IsCode(err, errorx.CodeTokenExpired))
		assert.False(t, s.Repo.Account(t, a.ID()).IsEmailVerified())
	})

	t.Run("garbage token", func(t *testing.T) {
		s := NewSuite(t)

		err := s.App.Command.VerifyEmail.Handle(t.Context(), &accountcmd.VerifyEmail{Token: "not-a-jwt"})
		require.Error(t, err)
		assert.True(t, errorx.IsCode(err, errorx.CodeTokenInvalid))
	})

	t.Run("token signed with wrong key", func(t *testing.T) {
		s := NewSuite(t)
		otherTokens := accountcmd.NewTokens(accountcmd.TokensArgs{
			VerificationSecretKey: "some-other-secret",
			SessionSecretKey:      fixtures.TestSessionKey,
		})
		token, err := otherTokens.SignVerificationToken(fixtures.ValidEmail)
		require.NoError(t, err)

		err = s.App.Command.VerifyEmail.Handle(t.Context(), &accountcmd.VerifyEmail{Token: token})
		require.Error(t, err)
		assert.True(t, errorx.IsCode(err, errorx.CodeTokenInvalid))
	})
}
