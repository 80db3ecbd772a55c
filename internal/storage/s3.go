package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectAPI is the subset of *s3.Client used by S3Blob.
type ObjectAPI interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Blob stores the document as a single object in Amazon S3 (or compatible APIs).
type S3Blob struct {
	client   ObjectAPI
	uploader *manager.Uploader
	bucket   string
	key      string
}

func NewS3Blob(client ObjectAPI, bucket, key string) (*S3Blob, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	key = strings.Trim(key, "/")
	if key == "" {
		return nil, fmt.Errorf("storage key is required")
	}
	return &S3Blob{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		key:      key,
	}, nil
}

func (b *S3Blob) Load(ctx context.Context) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", b.Location(), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", b.Location(), err)
	}
	return data, nil
}

func (b *S3Blob) Save(ctx context.Context, data []byte) error {
	_, err := b.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", b.Location(), err)
	}
	return nil
}

func (b *S3Blob) Location() string {
	return fmt.Sprintf("s3://%s/%s", b.bucket, b.key)
}

var _ Blob = (*S3Blob)(nil)
