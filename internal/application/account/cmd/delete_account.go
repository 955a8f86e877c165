package accountcmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
)

type DeleteAccount struct {
	AccountID account.ID
}

type DeleteAccountHandler struct {
	tracer  trace.Tracer
	storage MediaStorage
	repo    AccountRepo
}

type DeleteAccountHandlerArgs struct {
	Tracer  trace.Tracer
	Storage MediaStorage
	Repo    AccountRepo
}

func NewDeleteAccountHandler(args DeleteAccountHandlerArgs) *DeleteAccountHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}

	return &DeleteAccountHandler{
		tracer:  args.Tracer,
		storage: args.Storage,
		repo:    args.Repo,
	}
}

// Handle soft-deletes the account and then clears out its media folder.
// The row stays for audit; a failed media cleanup is logged, not escalated.
func (h *DeleteAccountHandler) Handle(ctx context.Context, cmd *DeleteAccount) error {
	const op = "accountcmd.DeleteAccountHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "DeleteAccountHandler.Handle", trace.WithAttributes(
		attribute.String("account.id", cmd.AccountID.String()),
	))
	defer span.End()

	var folderID string
	err := h.repo.UpdateAccount(ctx, cmd.AccountID, func(ctx context.Context, a *account.Account) error {
		folderID = a.MediaFolderID()
		return a.MarkDeleted()
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to mark account deleted")
		return errorx.Wrap(err, op)
	}

	if folderID != "" {
		if derr := h.storage.DeleteFolder(ctx, folderID); derr != nil {
			logger.WarnContext(ctx, "failed to delete account media folder",
				slog.String("media_folder_id", folderID),
				slog.String("error", derr.Error()),
			)
		}
	}

	return nil
}
