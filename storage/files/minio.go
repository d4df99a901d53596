package files

import (
	"context"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/resource"
)

// MinioStore keeps uploaded files in an S3 compatible bucket.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

var _ resource.FileStore = (*MinioStore)(nil) // interface compliance check

// NewMinioStore connects to conf.Storage and creates the bucket if it does not exist.
func NewMinioStore(ctx context.Context, conf *core.Config) (*MinioStore, error) {
	client, err := minio.New(conf.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.Storage.AccessKey, conf.Storage.SecretKey, ""),
		Secure: conf.Storage.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating storage client")
	}

	exists, err := client.BucketExists(ctx, conf.Storage.Bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "checking bucket %s", conf.Storage.Bucket)
	}
	if !exists {
		if err = client.MakeBucket(ctx, conf.Storage.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrapf(err, "creating bucket %s", conf.Storage.Bucket)
		}
	}

	publicURL := conf.Storage.PublicURL
	if publicURL == "" {
		scheme := "http://"
		if conf.Storage.UseSSL {
			scheme = "https://"
		}
		publicURL = scheme + conf.Storage.Endpoint
	}
	return &MinioStore{
		client:    client,
		bucket:    conf.Storage.Bucket,
		publicURL: strings.TrimRight(publicURL, "/") + "/" + conf.Storage.Bucket,
	}, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = ContentType(key)
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrapf(err, "putting %s", key)
	}
	return s.publicURL + "/" + key, nil
}

// ContentType guesses the content type of key from its extension.
func ContentType(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
