package accountcmd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountcmd "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account/cmd"
	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/integration/builders"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/integration/fixtures"
)

func TestSigninHandle_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewSuite(t)
	a := builders.NewAccountBuilder().
		WithEmail(fixtures.ValidEmail).
		WithPassword(fixtures.ValidPassword).
		Build()
	s.Repo.SeedAccount(t, a)

	res, err := s.App.Command.Signin.Handle(t.Context(), &accountcmd.Signin{
		Email:    fixtures.ValidEmail,
		Password: fixtures.ValidPassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	s.assertSessionToken(t, res.Token, a.ID().String(), a.Email())

	assert.True(t, s.Repo.Account(t, a.ID()).IsLoggedIn())
}

func TestSigninHandle_FailPath(t *testing.T) {
	t.Parallel()

	t.Run("wrong password", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().
			WithEmail(fixtures.ValidEmail).
			WithPassword(fixtures.ValidPassword).
			Build()
		s.Repo.SeedAccount(t, a)

		_, err := s.App.Command.Signin.Handle(t.Context(), &accountcmd.Signin{
			Email:    fixtures.ValidEmail,
			Password: fixtures.ValidPassword2,
		})
		require.ErrorIs(t, err, account.ErrIncorrectPassword)
		assert.False(t, s.Repo.Account(t, a.ID()).IsLoggedIn())
	})

	t.Run("unknown email", func(t *testing.T) {
		s := NewSuite(t)

		_, err := s.App.Command.Signin.Handle(t.Context(), &accountcmd.Signin{
			Email:    fixtures.ValidEmail,
			Password: fixtures.ValidPassword,
		})
		require.ErrorIs(t, err, account.ErrInvalidLoginOrUnverified)
	})

	t.Run("unverified email reports the same error as unknown", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().
			Unverified().
			WithEmail(fixtures.ValidEmail).
			WithPassword(fixtures.ValidPassword).
			Build()
		s.Repo.SeedAccount(t, a)

		_, err := s.App.Command.Signin.Handle(t.Context(), &accountcmd.Signin{
			Email:    fixtures.ValidEmail,
			Password: fixtures.ValidPassword,
		})
		require.ErrorIs(t, err, account.ErrInvalidLoginOrUnverified)
	})

	t.Run("deleted account", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().
			Deleted().
			WithEmail(fixtures.ValidEmail).
			WithPassword(fixtures.ValidPassword).
			Build()
		s.Repo.SeedAccount(t, a)

		_, err := s.App.Command.Signin.Handle(t.Context(), &accountcmd.Signin{
			Email:    fixtures.ValidEmail,
			Password: fixtures.ValidPassword,
		})
		require.ErrorIs(t, err, account.ErrInvalidLoginOrUnverified)
	})
}
