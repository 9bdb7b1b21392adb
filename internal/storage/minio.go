package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"dataconsult/internal/config"
)

// Client wraps the MinIO client and publishes uploads under a public base URL.
type Client struct {
	client     *minio.Client
	bucketName string
	publicBase string
}

// NewClient initialises the MinIO client and makes sure the bucket exists
// with an anonymous read policy, since upload URLs are stored as plain links.
func NewClient(cfg config.MinIOConfig) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	if _, err := url.Parse(cfg.PublicURL); err != nil {
		return nil, fmt.Errorf("parse minio public url: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
		if err := client.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
			return nil, fmt.Errorf("set bucket policy %q: %w", cfg.Bucket, err)
		}
	}

	return &Client{
		client:     client,
		bucketName: cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Upload stores an object and returns its public URL.
func (c *Client) Upload(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := c.client.PutObject(ctx, c.bucketName, objectKey, reader, size, opts); err != nil {
		return "", fmt.Errorf("put object %q: %w", objectKey, err)
	}
	return c.PublicURL(objectKey), nil
}

// PublicURL builds the link an object is served from.
func (c *Client) PublicURL(objectKey string) string {
	return c.publicBase + "/" + c.bucketName + "/" + strings.TrimLeft(objectKey, "/")
}

// ObjectKey returns the key behind a URL built by PublicURL. It reports
// false for any link outside this bucket's public base.
func (c *Client) ObjectKey(publicURL string) (string, bool) {
	prefix := c.publicBase + "/" + c.bucketName + "/"
	key, ok := strings.CutPrefix(strings.TrimSpace(publicURL), prefix)
	if !ok || key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}

// Delete removes an object. Missing objects count as deleted.
func (c *Client) Delete(ctx context.Context, objectKey string) error {
	objectKey = strings.TrimSpace(objectKey)
	if objectKey == "" {
		return nil
	}
	if err := c.client.RemoveObject(ctx, c.bucketName, objectKey, minio.RemoveObjectOptions{}); err != nil {
		if IsNoSuchKey(err) {
			return nil
		}
		return fmt.Errorf("remove object %q: %w", objectKey, err)
	}
	return nil
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}
