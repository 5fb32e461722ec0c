// Package minio implements ObjectStorage on any S3-compatible endpoint
// (MinIO, Ceph RGW, R2, ...) using minio-go.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"fileupload/internal/config"
	"fileupload/internal/domain"
	"fileupload/internal/port"
)

type minioClient struct {
	client *minio.Client
}

// NewMinioClient creates an ObjectStorage backed by an S3-compatible
// endpoint. The endpoint may carry an http:// or https:// scheme, which
// overrides cfg.UseSSL. Every request is attempted exactly once.
func NewMinioClient(cfg *config.S3Config) (port.ObjectStorage, error) {
	host, secure, err := splitEndpoint(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(host, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
		MaxRetries:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &minioClient{client: client}, nil
}

func splitEndpoint(endpoint string, useSSL bool) (host string, secure bool, err error) {
	if !strings.Contains(endpoint, "://") {
		return endpoint, useSSL, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("parse storage endpoint %q: %w", endpoint, err)
	}
	switch u.Scheme {
	case "http":
		return u.Host, false, nil
	case "https":
		return u.Host, true, nil
	default:
		return "", false, fmt.Errorf("unsupported storage endpoint scheme %q", u.Scheme)
	}
}

func (c *minioClient) PutObject(ctx context.Context, input port.PutObjectInput) (*port.PutObjectOutput, error) {
	acl := input.ACL
	if acl == "" {
		acl = port.ACLPrivate
	}

	info, err := c.client.PutObject(ctx, input.Bucket, input.Key,
		bytes.NewReader(input.Body), int64(len(input.Body)),
		minio.PutObjectOptions{
			ContentType:  input.ContentType,
			UserMetadata: map[string]string{"x-amz-acl": acl},
		})
	if err != nil {
		return nil, fmt.Errorf("put object %q: %w", input.Key, err)
	}
	return &port.PutObjectOutput{
		ETag:      info.ETag,
		VersionID: info.VersionID,
	}, nil
}

func (c *minioClient) Ping(ctx context.Context, bucket string) error {
	exists, err := c.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist: %w", bucket, domain.ErrStorageUnavailable)
	}
	return nil
}
