package MinIO

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint   string `env:"MINIO_ENDPOINT" env-default:"minio:9000"`
	BucketName string `env:"MINIO_BUCKET_NAME" env-default:"documents"`
	Region     string `env:"MINIO_REGION" env-default:"us-east-1"`
	AccessKey  string `env:"MINIO_ACCESS_KEY"`
	SecretKey  string `env:"MINIO_SECRET_KEY"`
	UseSSL     bool   `env:"MINIO_USE_SSL" env-default:"false"`

	// Base for the public URLs persisted with file records, e.g.
	// "https://bucket.s3.region.amazonaws.com". Defaults to the endpoint.
	PublicURLBase string `env:"MINIO_PUBLIC_URL_BASE"`
}

type MinIOClient struct {
	Client  *minio.Client
	Bucket  string
	urlBase string
}

// Listing is one delimiter-grouped level of the bucket: the sub-prefixes
// (virtual subfolders) and the object keys directly at this level.
type Listing struct {
	Prefixes []string
	Keys     []string
}

func New(cfg Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx := context.Background()
	err = client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region})
	if err != nil {
		exists, errBucketExists := client.BucketExists(ctx, cfg.BucketName)
		if !(errBucketExists == nil && exists) {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.BucketName, err)
		}
	}

	urlBase := cfg.PublicURLBase
	if urlBase == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		urlBase = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.BucketName)
	}

	return &MinIOClient{
		Client:  client,
		Bucket:  cfg.BucketName,
		urlBase: urlBase,
	}, nil
}

func (m *MinIOClient) UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := m.Client.PutObject(ctx, m.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// CreateFolder writes the zero-byte placeholder object that makes an empty
// virtual folder visible in prefix listings. key must end with "/".
func (m *MinIOClient) CreateFolder(ctx context.Context, key string) error {
	if !strings.HasSuffix(key, "/") {
		key += "/"
	}
	_, err := m.Client.PutObject(ctx, m.Bucket, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{})
	return err
}

func (m *MinIOClient) DeleteFile(ctx context.Context, key string) error {
	return m.Client.RemoveObject(ctx, m.Bucket, key, minio.RemoveObjectOptions{})
}

// Exists reports whether an object is present under key.
func (m *MinIOClient) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Client.StatObject(ctx, m.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListLevel lists one level under prefix, "/" delimited, partitioned into
// subfolder prefixes and direct object keys.
func (m *MinIOClient) ListLevel(ctx context.Context, prefix string) (*Listing, error) {
	listing := &Listing{}
	for obj := range m.Client.ListObjects(ctx, m.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if obj.Key == prefix {
			continue
		}
		if strings.HasSuffix(obj.Key, "/") {
			listing.Prefixes = append(listing.Prefixes, obj.Key)
		} else {
			listing.Keys = append(listing.Keys, obj.Key)
		}
	}
	return listing, nil
}

// ListAll returns every object key under prefix, placeholders included.
func (m *MinIOClient) ListAll(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for obj := range m.Client.ListObjects(ctx, m.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// PublicURL builds the externally reachable URL persisted with a file record.
func (m *MinIOClient) PublicURL(key string) string {
	return m.urlBase + "/" + key
}
