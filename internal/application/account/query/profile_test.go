package accountquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountquery "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account/query"
	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/env"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/integration/builders"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/integration/fixtures"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/mocks"
)

func TestMain(m *testing.M) {
	env.SetMode(env.Test)
	m.Run()
}

func newHandler() (*accountquery.GetProfileHandler, *mocks.AccountRepo) {
	repo := mocks.NewAccountRepo()
	return accountquery.NewGetProfileHandler(accountquery.GetProfileHandlerArgs{
		Getter: repo,
	}), repo
}

func TestGetProfileHandle(t *testing.T) {
	t.Parallel()

	t.Run("happy path", func(t *testing.T) {
		h, repo := newHandler()
		a := builders.NewAccountBuilder().
			WithEmail(fixtures.ValidEmail).
			WithMediaFolderID(fixtures.TestMediaFolder).
			WithProfileImage(account.ProfileImage{URL: fixtures.TestImageURL, ID: fixtures.TestImageID}).
			Build()
		repo.SeedAccount(t, a)

		p, err := h.Handle(t.Context(), a.ID())
		require.NoError(t, err)
		assert.Equal(t, a.ID().String(), p.ID)
		assert.Equal(t, a.Username(), p.Username)
		assert.Equal(t, fixtures.ValidEmail, p.Email)
		assert.True(t, p.IsEmailVerified)
		assert.Equal(t, fixtures.TestImageURL, p.ProfileImageURL)
		assert.WithinDuration(t, a.CreatedAt(), p.CreatedAt, 0)
	})

	t.Run("no image yet", func(t *testing.T) {
		h, repo := newHandler()
		a := builders.NewAccountBuilder().Build()
		repo.SeedAccount(t, a)

		p, err := h.Handle(t.Context(), a.ID())
		require.NoError(t, err)
		assert.Empty(t, p.ProfileImageURL)
	})

	t.Run("deleted account", func(t *testing.T) {
		h, repo := newHandler()
		a := builders.NewAccountBuilder().Deleted().Build()
		repo.SeedAccount(t, a)

		_, err := h.Handle(t.Context(), a.ID())
		require.Error(t, err)
		assert.True(t, errorx.IsNotFound(err))
	})

	t.Run("unknown account", func(t *testing.T) {
		h, _ := newHandler()

		_, err := h.Handle(t.Context(), account.NewID())
		require.Error(t, err)
		assert.True(t, errorx.IsNotFound(err))
	})
}
