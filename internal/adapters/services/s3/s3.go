package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
)

type Client struct {
	s3Client   *s3.Client
	bucket     string
	publicURL  string
	baseFolder string
}

type Config struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	Region     string
	PublicURL  string
	BaseFolder string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	const op = "s3.NewClient"
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion(cfg.Region),
		config.WithBaseEndpoint(cfg.Endpoint),
	)
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}

	return &Client{
		s3Client: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.UsePathStyle = true // Required for MinIO
		}),
		bucket:     cfg.Bucket,
		publicURL:  strings.TrimSuffix(cfg.PublicURL, "/"),
		baseFolder: strings.Trim(cfg.BaseFolder, "/"),
	}, nil
}

// profileKey builds the object key for a profile image. All of an account's
// media lives under its media folder so the whole folder can be removed when
// the account is deleted.
func (c *Client) profileKey(folderID, filename string) string {
	return fmt.Sprintf("%s/users/%s/profile/%s", c.baseFolder, folderID, filename)
}

func (c *Client) folderPrefix(folderID string) string {
	return fmt.Sprintf("%s/users/%s/", c.baseFolder, folderID)
}

func (c *Client) UploadProfileImage(
	ctx context.Context,
	folderID, filename string,
	file io.Reader,
	contentType string,
) (account.ProfileImage, error) {
	const op = "s3.Client.UploadProfileImage"

	key := c.profileKey(folderID, filename)
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(c.bucket),
		Key:          aws.String(key),
		Body:         file,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=604800"), // 1 week
	})
	if err != nil {
		return account.ProfileImage{}, errorx.Wrap(err, op)
	}

	return account.ProfileImage{
		URL: fmt.Sprintf("%s/%s", c.publicURL, key),
		ID:  key,
	}, nil
}

// DeleteObject removes a single stored object by its key.
func (c *Client) DeleteObject(ctx context.Context, key string) error {
	const op = "s3.Client.DeleteObject"
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return errorx.Wrap(err, op)
}

// DeleteFolder removes every object under the account's media folder.
// S3 has no real folders, so this is a paginated prefix delete.
func (c *Client) DeleteFolder(ctx context.Context, folderID string) error {
	const op = "s3.Client.DeleteFolder"

	prefix := c.folderPrefix(folderID)
	paginator := s3.NewListObjectsV2Paginator(c.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return errorx.Wrap(err, op)
		}
		if len(page.Contents) == 0 {
			continue
		}

		objects := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}

		_, err = c.s3Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(c.bucket),
			Delete: &types.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return errorx.Wrap(err, op)
		}
	}

	return nil
}

func (c *Client) CreateBucket(ctx context.Context) error {
	const op = "s3.CreateBucket"
	_, err := c.s3Client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		return errorx.Wrap(err, op)
	}
	return nil
}

func (c *Client) Bucket() string {
	return c.bucket
}
