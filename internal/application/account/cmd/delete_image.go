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

type DeleteImage struct {
	AccountID account.ID
}

type DeleteImageHandler struct {
	tracer  trace.Tracer
	storage MediaStorage
	repo    AccountRepo
}

type DeleteImageHandlerArgs struct {
	Tracer  trace.Tracer
	Storage MediaStorage
	Repo    AccountRepo
}

func NewDeleteImageHandler(args DeleteImageHandlerArgs) *DeleteImageHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}

	return &DeleteImageHandler{
		tracer:  args.Tracer,
		storage: args.Storage,
		repo:    args.Repo,
	}
}

// Handle detaches the profile image from the account and then empties the
// account's media folder. The detach is what matters; leftover objects are
// only logged since nothing references them anymore.
func (h *DeleteImageHandler) Handle(ctx context.Context, cmd *DeleteImage) error {
	const op = "accountcmd.DeleteImageHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "DeleteImageHandler.Handle", trace.WithAttributes(
		attribute.String("account.id", cmd.AccountID.String()),
	))
	defer span.End()

	var folderID string
	err := h.repo.UpdateAccount(ctx, cmd.AccountID, func(ctx context.Context, a *account.Account) error {
		folderID = a.MediaFolderID()
		return a.ClearProfileImage()
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to clear profile image")
		return errorx.Wrap(err, op)
	}

	if folderID != "" {
		if derr := h.storage.DeleteFolder(ctx, folderID); derr != nil {
			logger.WarnContext(ctx, "failed to delete profile image folder",
				slog.String("media_folder_id", folderID),
				slog.String("error", derr.Error()),
			)
		}
	}

	return nil
}
