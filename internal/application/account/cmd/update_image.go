package accountcmd

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/rollback"
)

type UpdateImage struct {
	AccountID   account.ID
	File        io.Reader
	Size        int64
	ContentType string
	Filename    string
}

type UpdateImageResponse struct {
	Image account.ProfileImage
}

type UpdateImageHandler struct {
	tracer       trace.Tracer
	imageService *account.ImageService
	storage      MediaStorage
	repo         AccountRepo
}

type UpdateImageHandlerArgs struct {
	Tracer       trace.Tracer
	ImageService *account.ImageService
	Storage      MediaStorage
	Repo         AccountRepo
}

func NewUpdateImageHandler(args UpdateImageHandlerArgs) *UpdateImageHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.ImageService == nil {
		args.ImageService = &account.ImageService{}
	}

	return &UpdateImageHandler{
		tracer:       args.Tracer,
		imageService: args.ImageService,
		storage:      args.Storage,
		repo:         args.Repo,
	}
}

// Handle replaces an existing profile image. The new object is uploaded
// first, the account row is switched to it, and only then is the old object
// removed. A failed removal of the old object is logged, not escalated: the
// account already points at the new image.
func (h *UpdateImageHandler) Handle(ctx context.Context, cmd *UpdateImage) (resp UpdateImageResponse, err error) {
	const op = "accountcmd.UpdateImageHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "UpdateImageHandler.Handle", trace.WithAttributes(
		attribute.String("account.id", cmd.AccountID.String()),
		attribute.String("file.content_type", cmd.ContentType),
		attribute.Int64("file.size", cmd.Size),
		attribute.String("file.filename", cmd.Filename),
	))
	defer span.End()

	rb := rollback.NewStack()
	defer func() {
		if err != nil {
			rb.Run(ctx)
		}
	}()

	if err = h.imageService.ValidateImageFile(cmd.ContentType, cmd.Size); err != nil {
		otelx.RecordSpanError(span, err, "invalid image file")
		return UpdateImageResponse{}, errorx.Wrap(err, op)
	}

	a, err := h.repo.GetActiveAccountByID(ctx, cmd.AccountID)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get account")
		return UpdateImageResponse{}, errorx.Wrap(err, op)
	}
	if a.MediaFolderID() == "" {
		return UpdateImageResponse{}, errorx.Wrap(errorx.NewInvalidRequest().WithKey("no_profile_image"), op)
	}
	oldImage := a.ProfileImage()
	if oldImage.IsZero() {
		return UpdateImageResponse{}, errorx.Wrap(account.ErrNoProfileImage, op)
	}

	filename := h.imageService.UniqueFilename(cmd.Filename)
	image, err := h.storage.UploadProfileImage(ctx, a.MediaFolderID(), filename, cmd.File, cmd.ContentType)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to upload image to storage")
		return UpdateImageResponse{}, errorx.Wrap(errorx.NewUpstreamServiceError().WithKey("media_store_failed").WithCause(err), op)
	}
	rb.Add("delete uploaded object", func(ctx context.Context) error {
		return h.storage.DeleteObject(ctx, image.ID)
	})

	err = h.repo.UpdateAccount(ctx, cmd.AccountID, func(ctx context.Context, a *account.Account) error {
		return a.SetProfileImage(image)
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to save profile image")
		return UpdateImageResponse{}, errorx.Wrap(err, op)
	}
	rb.Clear()

	if derr := h.storage.DeleteObject(ctx, oldImage.ID); derr != nil {
		logger.WarnContext(ctx, "failed to delete replaced profile image",
			slog.String("object_id", oldImage.ID),
			slog.String("error", derr.Error()),
		)
	}

	return UpdateImageResponse{Image: image}, nil
}
