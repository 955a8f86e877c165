package postgres

import (
	"time"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
)

type AccountDTO struct {
	ID               string
	Username         string
	Email            string
	Passhash         []byte
	IsEmailVerified  bool
	IsAccountDeleted bool
	IsLoggedIn       bool
	ResetOTPHash     []byte
	MediaFolderID    string
	ProfileImageURL  string
	ProfileImageID   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func DomainToAccountDTO(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:               a.ID().String(),
		Username:         a.Username(),
		Email:            a.Email(),
		Passhash:         a.PassHash(),
		IsEmailVerified:  a.IsEmailVerified(),
		IsAccountDeleted: a.IsAccountDeleted(),
		IsLoggedIn:       a.IsLoggedIn(),
		ResetOTPHash:     a.ResetOTPHash(),
		MediaFolderID:    a.MediaFolderID(),
		ProfileImageURL:  a.ProfileImage().URL,
		ProfileImageID:   a.ProfileImage().ID,
		CreatedAt:        a.CreatedAt(),
		UpdatedAt:        a.UpdatedAt(),
	}
}

func AccountToDomain(dto AccountDTO) *account.Account {
	return account.Rehydrate(account.RehydrateArgs{
		ID:               account.ID(dto.ID),
		Username:         dto.Username,
		Email:            dto.Email,
		PassHash:         dto.Passhash,
		IsEmailVerified:  dto.IsEmailVerified,
		IsAccountDeleted: dto.IsAccountDeleted,
		IsLoggedIn:       dto.IsLoggedIn,
		ResetOTPHash:     dto.ResetOTPHash,
		MediaFolderID:    dto.MediaFolderID,
		ProfileImage: account.ProfileImage{
			URL: dto.ProfileImageURL,
			ID:  dto.ProfileImageID,
		},
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}
