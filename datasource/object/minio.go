package object

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
)

// MinioStore reads the snapshot from any S3-compatible endpoint via the
// MinIO client, for deployments outside AWS.
type MinioStore struct {
	client *minio.Client
	bucket string
	key    string
}

// NewMinioStore creates a store over bucket/key on the client's endpoint.
func NewMinioStore(client *minio.Client, bucket, key string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket, key: key}
}

func (s *MinioStore) Fetch(ctx context.Context) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}
