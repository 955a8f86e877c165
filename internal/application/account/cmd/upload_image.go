package accountcmd

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/randcode"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/rollback"
)

const MediaFolderIDLength = 10

type UploadImage struct {
	AccountID   account.ID
	File        io.Reader
	Size        int64
	ContentType string
	Filename    string
}

type UploadImageResponse struct {
	Image account.ProfileImage
}

type UploadImageHandler struct {
	tracer       trace.Tracer
	imageService *account.ImageService
	storage      MediaStorage
	repo         AccountRepo
}

type UploadImageHandlerArgs struct {
	Tracer       trace.Tracer
	ImageService *account.ImageService
	Storage      MediaStorage
	Repo         AccountRepo
}

func NewUploadImageHandler(args UploadImageHandlerArgs) *UploadImageHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.ImageService == nil {
		args.ImageService = &account.ImageService{}
	}

	return &UploadImageHandler{
		tracer:       args.Tracer,
		imageService: args.ImageService,
		storage:      args.Storage,
		repo:         args.Repo,
	}
}

// Handle uploads a profile image. The account's media folder is created on
// first upload and reused afterwards. If the database update fails, the
// freshly uploaded object is removed again.
func (h *UploadImageHandler) Handle(ctx context.Context, cmd *UploadImage) (resp UploadImageResponse, err error) {
	const op = "accountcmd.UploadImageHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "UploadImageHandler.Handle", trace.WithAttributes(
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
		return UploadImageResponse{}, errorx.Wrap(err, op)
	}

	a, err := h.repo.GetActiveAccountByID(ctx, cmd.AccountID)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get account")
		return UploadImageResponse{}, errorx.Wrap(err, op)
	}

	folderID := a.MediaFolderID()
	if folderID == "" {
		folderID, err = randcode.GenerateUniqueString(MediaFolderIDLength)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to generate media folder id")
			return UploadImageResponse{}, errorx.Wrap(err, op)
		}
	}

	filename := h.imageService.UniqueFilename(cmd.Filename)
	image, err := h.storage.UploadProfileImage(ctx, folderID, filename, cmd.File, cmd.ContentType)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to upload image to storage")
		return UploadImageResponse{}, errorx.Wrap(errorx.NewUpstreamServiceError().WithKey("media_store_failed").WithCause(err), op)
	}
	rb.Add("delete uploaded object", func(ctx context.Context) error {
		return h.storage.DeleteObject(ctx, image.ID)
	})

	err = h.repo.UpdateAccount(ctx, cmd.AccountID, func(ctx context.Context, a *account.Account) error {
		a.EnsureMediaFolder(folderID)
		return a.SetProfileImage(image)
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to save profile image")
		return UploadImageResponse{}, errorx.Wrap(err, op)
	}

	rb.Clear()
	return UploadImageResponse{Image: image}, nil
}
