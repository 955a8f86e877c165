package accountcmd_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountcmd "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account/cmd"
	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/integration/builders"
)

func TestDeleteAccountHandle_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewSuite(t)
	a := builders.NewAccountBuilder().Build()
	s.Repo.SeedAccount(t, a)

	res, err := s.App.Command.UploadImage.Handle(t.Context(), uploadCmd(a.ID()))
	require.NoError(t, err)
	s.Storage.AssertObjectExists(t, res.Image.ID)

	folderID := s.Repo.Account(t, a.ID()).MediaFolderID()
	require.NotEmpty(t, folderID)

	err = s.App.Command.DeleteAccount.Handle(t.Context(), &accountcmd.DeleteAccount{AccountID: a.ID()})
	require.NoError(t, err)

	// Row stays for audit, but it no longer resolves as an active account.
	deleted := s.Repo.Account(t, a.ID())
	assert.True(t, deleted.IsAccountDeleted())
	assert.Empty(t, deleted.MediaFolderID())
	assert.True(t, deleted.ProfileImage().IsZero())
	_, err = s.Repo.GetActiveAccountByID(t.Context(), a.ID())
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))

	s.Storage.AssertFolderEmpty(t, folderID)
}

func TestDeleteAccountHandle_FailPath(t *testing.T) {
	t.Parallel()

	t.Run("already deleted", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Deleted().Build()
		s.Repo.SeedAccount(t, a)

		err := s.App.Command.DeleteAccount.Handle(t.Context(), &accountcmd.DeleteAccount{AccountID: a.ID()})
		require.ErrorIs(t, err, account.ErrAccountNotFound)
	})

	t.Run("unknown account", func(t *testing.T) {
		s := NewSuite(t)

		err := s.App.Command.DeleteAccount.Handle(t.Context(), &accountcmd.DeleteAccount{AccountID: account.NewID()})
		require.Error(t, err)
		assert.True(t, errorx.IsNotFound(err))
	})

	t.Run("media cleanup failure does not fail the delete", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)

		_, err := s.App.Command.UploadImage.Handle(t.Context(), uploadCmd(a.ID()))
		require.NoError(t, err)

		s.Storage.FailDeleteWith(errors.New("s3: service unavailable"))
		err = s.App.Command.DeleteAccount.Handle(t.Context(), &accountcmd.DeleteAccount{AccountID: a.ID()})
		require.NoError(t, err)
		assert.True(t, s.Repo.Account(t, a.ID()).IsAccountDeleted())
	})

	t.Run("account without media folder", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)

		err := s.App.Command.DeleteAccount.Handle(t.Context(), &accountcmd.DeleteAccount{AccountID: a.ID()})
		require.NoError(t, err)
		assert.True(t, s.Repo.Account(t, a.ID()).IsAccountDeleted())
	})
}
