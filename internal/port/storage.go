package port

import (
	"context"
)

// ACLPrivate is the canned ACL applied to every uploaded object.
const ACLPrivate = "private"

// PutObjectInput encapsulates the parameters needed to store an object.
type PutObjectInput struct {
	Bucket      string
	Key         string
	Body        []byte
	ContentType string
	ACL         string
}

// PutObjectOutput contains the metadata returned by a successful put.
type PutObjectOutput struct {
	ETag      string
	VersionID string
}

// ObjectStorage abstracts cloud object storage operations.
type ObjectStorage interface {
	PutObject(ctx context.Context, input PutObjectInput) (*PutObjectOutput, error)
	Ping(ctx context.Context, bucket string) error
}
