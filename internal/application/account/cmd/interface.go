package accountcmd

import (
	"context"
	"io"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/valueobject/mails"
)

var (
	tracer = otel.Tracer("moktashef/internal/application/account/cmd")
	logger = otelslog.NewLogger("moktashef/internal/application/account/cmd")
)

type AccountRepo interface {
	SaveAccount(ctx context.Context, a *account.Account) error
	DeleteAccount(ctx context.Context, id account.ID) error
	GetActiveAccountByID(ctx context.Context, id account.ID) (*account.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*account.Account, error)
	GetSignInAccount(ctx context.Context, email string) (*account.Account, error)
	IsAccountTaken(ctx context.Context, email, username string) (bool, error)
	VerifyAccountEmail(ctx context.Context, email string) error
	UpdateAccount(ctx context.Context, id account.ID, updateFn func(context.Context, *account.Account) error) error
}

type MailSender interface {
	SendMail(ctx context.Context, payload mails.Payload) error
}

type MediaStorage interface {
	UploadProfileImage(ctx context.Context, folderID, filename string, file io.Reader, contentType string) (account.ProfileImage, error)
	DeleteObject(ctx context.Context, key string) error
	DeleteFolder(ctx context.Context, folderID string) error
}
