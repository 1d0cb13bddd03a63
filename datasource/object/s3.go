package object

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store reads the snapshot from an S3 object. Downloads go through the
// transfer manager, so large snapshots fetch in concurrent parts.
type S3Store struct {
	downloader *manager.Downloader
	bucket     string
	key        string
}

// NewS3Store creates a store over s3://bucket/key using an existing client.
func NewS3Store(client *s3.Client, bucket, key string) *S3Store {
	return &S3Store{
		downloader: manager.NewDownloader(client),
		bucket:     bucket,
		key:        key,
	}
}

// NewS3StoreFromDefaultConfig creates a store using the ambient AWS
// configuration (environment, shared config files, instance role).
func NewS3StoreFromDefaultConfig(ctx context.Context, bucket, key string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewS3Store(s3.NewFromConfig(cfg), bucket, key), nil
}

func (s *S3Store) Fetch(ctx context.Context) ([]byte, error) {
	buf := manager.NewWriteAtBuffer(nil)
	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
