package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"fileupload/internal/config"
	"fileupload/internal/port"
)

type s3Client struct {
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3Client creates a new S3-backed ObjectStorage implementation.
// Objects up to maxObjectSize bytes are sent with a single PutObject call
// and requests are never retried.
func NewS3Client(cfg *config.S3Config, maxObjectSize int64) (port.ObjectStorage, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithRetryMaxAttempts(1),
	)

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)

	partSize := maxObjectSize
	if partSize < manager.MinUploadPartSize {
		partSize = manager.MinUploadPartSize
	}
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = partSize
		u.Concurrency = 1
		u.LeavePartsOnError = false
	})

	return &s3Client{
		client:   client,
		uploader: uploader,
	}, nil
}

func (c *s3Client) PutObject(ctx context.Context, input port.PutObjectInput) (*port.PutObjectOutput, error) {
	acl := types.ObjectCannedACLPrivate
	if input.ACL != "" {
		acl = types.ObjectCannedACL(input.ACL)
	}

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(input.Bucket),
		Key:           aws.String(input.Key),
		Body:          bytes.NewReader(input.Body),
		ContentLength: aws.Int64(int64(len(input.Body))),
		ACL:           acl,
	}
	if input.ContentType != "" {
		putInput.ContentType = aws.String(input.ContentType)
	}

	result, err := c.uploader.Upload(ctx, putInput)
	if err != nil {
		return nil, fmt.Errorf("s3 put object: %w", err)
	}

	return &port.PutObjectOutput{
		ETag:      aws.ToString(result.ETag),
		VersionID: aws.ToString(result.VersionID),
	}, nil
}

func (c *s3Client) Ping(ctx context.Context, bucket string) error {
	_, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("s3 head bucket: %w", err)
	}
	return nil
}
