package accountcmd_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountcmd "github.com/Mohamed-Hany1211/Moktashef-back/internal/application/account/cmd"
	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/integration/builders"
	"github.com/Mohamed-Hany1211/Moktashef-back/tests/integration/fixtures"
)

func uploadCmd(id account.ID) *accountcmd.UploadImage {
	return &accountcmd.UploadImage{
		AccountID:   id,
		File:        bytes.NewReader(fixtures.SamplePNG),
		Size:        account.MinImageSize,
		ContentType: fixtures.TestPNGMediaType,
		Filename:    fixtures.TestPNGFilename,
	}
}

func updateCmd(id account.ID) *accountcmd.UpdateImage {
	return &accountcmd.UpdateImage{
		AccountID: id,
		File:      bytes.NewReader(fixtures.SamplePNG),
		Size:      account.MinImageSize,
		// Different filename than uploadCmd so the object keys never collide
		// even within the same timestamp.
		ContentType: fixtures.TestPNGMediaType,
		Filename:    "new_" + fixtures.TestPNGFilename,
	}
}

func TestUploadImageHandle_HappyPath(t *testing.T) {
	t.Parallel()

	t.Run("first upload creates the media folder", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)

		res, err := s.App.Command.UploadImage.Handle(t.Context(), uploadCmd(a.ID()))
		require.NoError(t, err)
		require.NotEmpty(t, res.Image.URL)
		require.NotEmpty(t, res.Image.ID)
		s.Storage.AssertObjectExists(t, res.Image.ID)

		updated := s.Repo.Account(t, a.ID())
		assert.Len(t, updated.MediaFolderID(), accountcmd.MediaFolderIDLength)
		assert.Equal(t, res.Image, updated.ProfileImage())
	})

	t.Run("later uploads reuse the folder", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().WithMediaFolderID(fixtures.TestMediaFolder).Build()
		s.Repo.SeedAccount(t, a)

		res, err := s.App.Command.UploadImage.Handle(t.Context(), uploadCmd(a.ID()))
		require.NoError(t, err)
		assert.True(t, strings.Contains(res.Image.ID, "/users/"+fixtures.TestMediaFolder+"/"),
			"object key should live in the existing folder, got %s", res.Image.ID)
		assert.Equal(t, fixtures.TestMediaFolder, s.Repo.Account(t, a.ID()).MediaFolderID())
	})
}

func TestUploadImageHandle_FailPath(t *testing.T) {
	t.Parallel()

	t.Run("unsupported content type", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)

		cmd := uploadCmd(a.ID())
		cmd.ContentType = "application/pdf"
		_, err := s.App.Command.UploadImage.Handle(t.Context(), cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file type must be one of")
		assert.Zero(t, s.Storage.ObjectCount())
	})

	t.Run("file too large", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)

		cmd := uploadCmd(a.ID())
		cmd.Size = account.MaxImageSize + 1
		_, err := s.App.Command.UploadImage.Handle(t.Context(), cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not exceed")
	})

	t.Run("file too small", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)

		cmd := uploadCmd(a.ID())
		cmd.Size = account.MinImageSize - 1
		_, err := s.App.Command.UploadImage.Handle(t.Context(), cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be at least")
	})

	t.Run("deleted account", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Deleted().Build()
		s.Repo.SeedAccount(t, a)

		_, err := s.App.Command.UploadImage.Handle(t.Context(), uploadCmd(a.ID()))
		require.Error(t, err)
		assert.True(t, errorx.IsNotFound(err))
	})

	t.Run("storage failure", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)
		s.Storage.FailUploadWith(errors.New("s3: access denied"))

		_, err := s.App.Command.UploadImage.Handle(t.Context(), uploadCmd(a.ID()))
		require.Error(t, err)
		assert.True(t, errorx.IsCode(err, errorx.CodeUpstreamError))
	})

	t.Run("failed account update removes the uploaded object", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)
		s.Repo.FailUpdateWith(errors.New("pg: connection reset"))

		_, err := s.App.Command.UploadImage.Handle(t.Context(), uploadCmd(a.ID()))
		require.Error(t, err)
		assert.Zero(t, s.Storage.ObjectCount(), "uploaded object should be rolled back")
	})
}

func TestUpdateImageHandle_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewSuite(t)
	a := builders.NewAccountBuilder().Build()
	s.Repo.SeedAccount(t, a)

	first, err := s.App.Command.UploadImage.Handle(t.Context(), uploadCmd(a.ID()))
	require.NoError(t, err)

	res, err := s.App.Command.UpdateImage.Handle(t.Context(), updateCmd(a.ID()))
	require.NoError(t, err)
	require.NotEqual(t, first.Image.ID, res.Image.ID)

	s.Storage.AssertObjectExists(t, res.Image.ID)
	s.Storage.AssertObjectNotExists(t, first.Image.ID)
	assert.Equal(t, res.Image, s.Repo.Account(t, a.ID()).ProfileImage())
}

func TestUpdateImageHandle_FailPath(t *testing.T) {
	t.Parallel()

	t.Run("no image uploaded yet", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)

		_, err := s.App.Command.UpdateImage.Handle(t.Context(), updateCmd(a.ID()))
		require.Error(t, err)
		assert.True(t, errorx.IsCode(err, errorx.CodeInvalid))
	})

	t.Run("folder exists but image was deleted", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().WithMediaFolderID(fixtures.TestMediaFolder).Build()
		s.Repo.SeedAccount(t, a)

		_, err := s.App.Command.UpdateImage.Handle(t.Context(), updateCmd(a.ID()))
		require.ErrorIs(t, err, account.ErrNoProfileImage)
	})

	t.Run("failed account update keeps the old image", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)

		first, err := s.App.Command.UploadImage.Handle(t.Context(), uploadCmd(a.ID()))
		require.NoError(t, err)

		s.Repo.FailUpdateWith(errors.New("pg: connection reset"))
		_, err = s.App.Command.UpdateImage.Handle(t.Context(), updateCmd(a.ID()))
		require.Error(t, err)

		// Only the original object remains and the row still points at it.
		assert.Equal(t, 1, s.Storage.ObjectCount())
		s.Storage.AssertObjectExists(t, first.Image.ID)
		assert.Equal(t, first.Image, s.Repo.Account(t, a.ID()).ProfileImage())
	})
}

func TestDeleteImageHandle(t *testing.T) {
	t.Parallel()

	t.Run("happy path", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)

		res, err := s.App.Command.UploadImage.Handle(t.Context(), uploadCmd(a.ID()))
		require.NoError(t, err)

		folderID := s.Repo.Account(t, a.ID()).MediaFolderID()
		err = s.App.Command.DeleteImage.Handle(t.Context(), &accountcmd.DeleteImage{AccountID: a.ID()})
		require.NoError(t, err)

		updated := s.Repo.Account(t, a.ID())
		assert.True(t, updated.ProfileImage().IsZero())
		assert.Empty(t, updated.MediaFolderID(), "image and folder are cleared together")
		s.Storage.AssertObjectNotExists(t, res.Image.ID)
		s.Storage.AssertFolderEmpty(t, folderID)
	})

	t.Run("no image to delete", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)

		err := s.App.Command.DeleteImage.Handle(t.Context(), &accountcmd.DeleteImage{AccountID: a.ID()})
		require.ErrorIs(t, err, account.ErrNoProfileImage)
	})

	t.Run("leftover object is not an error", func(t *testing.T) {
		s := NewSuite(t)
		a := builders.NewAccountBuilder().Build()
		s.Repo.SeedAccount(t, a)

		_, err := s.App.Command.UploadImage.Handle(t.Context(), uploadCmd(a.ID()))
		require.NoError(t, err)

		s.Storage.FailDeleteWith(errors.New("s3: service unavailable"))
		err = s.App.Command.DeleteImage.Handle(t.Context(), &accountcmd.DeleteImage{AccountID: a.ID()})
		require.NoError(t, err, "detaching the image matters, the folder cleanup is best effort")
		assert.True(t, s.Repo.Account(t, a.ID()).ProfileImage().IsZero())
	})
}
