package service

import (
	"context"
	"fmt"
	"log"

	"fileupload/internal/domain"
	"fileupload/internal/port"
)

// UploadService defines the storage side of the upload pipeline.
type UploadService interface {
	Store(ctx context.Context, file *domain.CandidateFile) (string, error)
	Ready(ctx context.Context) error
}

type uploadService struct {
	storage port.ObjectStorage
	bucket  string
}

// NewUploadService creates a new UploadService writing into bucket.
func NewUploadService(storage port.ObjectStorage, bucket string) UploadService {
	return &uploadService{storage: storage, bucket: bucket}
}

// ObjectURL returns the virtual-hosted-style URL of key in bucket. The key
// is not escaped; clients expect the file name verbatim.
func ObjectURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}

// Store puts the file under its original name, overwriting any object with
// the same key, and returns its URL. Storage errors are logged and reported
// as domain.ErrUploadFailed.
func (s *uploadService) Store(ctx context.Context, file *domain.CandidateFile) (string, error) {
	log.Printf("uploadService.Store: uploading %s (%s, %d bytes) to bucket %s",
		file.Name, file.ContentType, file.Size(), s.bucket)

	_, err := s.storage.PutObject(ctx, port.PutObjectInput{
		Bucket:      s.bucket,
		Key:         file.Name,
		Body:        file.Data,
		ContentType: file.ContentType,
		ACL:         port.ACLPrivate,
	})
	if err != nil {
		log.Printf("uploadService.Store: put %s to bucket %s failed: %v", file.Name, s.bucket, err)
		return "", domain.ErrUploadFailed
	}

	return ObjectURL(s.bucket, file.Name), nil
}

// Ready reports whether the configured bucket is reachable.
func (s *uploadService) Ready(ctx context.Context) error {
	if err := s.storage.Ping(ctx, s.bucket); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}
