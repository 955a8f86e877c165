package account

import (
	"fmt"
	"path"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
)

const (
	MinImageSize = 100             // 100 bytes
	MaxImageSize = 5 * 1024 * 1024 // 5 MB
)

var (
	ErrInvalidFileType = validation.NewError(
		"validation_invalid_file_type",
		"file type must be one of: image/jpeg, image/png, image/gif, image/webp",
	)
	ErrImageTooLarge = validation.NewError(
		"validation_file_too_large",
		fmt.Sprintf("file must not exceed %d MB", MaxImageSize/(1024*1024)),
	)
	ErrImageTooSmall = validation.NewError(
		"validation_file_too_small",
		fmt.Sprintf("file must be at least %d bytes", MinImageSize),
	)
)

// ImageService validates uploaded profile images and names the stored objects.
type ImageService struct{}

func (s *ImageService) ValidateImageFile(contentType string, size int64) error {
	const op = "account.ImageService.ValidateImageFile"
	allowedContentTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}

	if !allowedContentTypes[contentType] {
		return errorx.Wrap(ErrInvalidFileType, op)
	}

	if size > MaxImageSize {
		return errorx.Wrap(ErrImageTooLarge, op)
	}
	if size < MinImageSize {
		return errorx.Wrap(ErrImageTooSmall, op)
	}

	return nil
}

// UniqueFilename prefixes the uploaded name with a timestamp so re-uploading
// the same file never overwrites the previous object.
func (s *ImageService) UniqueFilename(filename string) string {
	return fmt.Sprintf("%d_%s", timestampMillis(), path.Base(filename))
}

func timestampMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
