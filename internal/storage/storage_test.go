package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"
)

func TestFileBlobCreatesDirectoryOnSave(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "data", "users.json")
	blob := NewFileBlob(path)

	_, err := blob.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, blob.Save(ctx, []byte(`[]`)))
	got, err := blob.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, `[]`, string(got))

	require.NoError(t, blob.Save(ctx, []byte(`[{"id":"1"}]`)))
	got, err = blob.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, `[{"id":"1"}]`, string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	require.Equal(t, path, blob.Location())
}

func TestMemoryBlob(t *testing.T) {
	ctx := context.Background()
	blob := NewMemoryBlob()

	_, err := blob.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	data := []byte("abc")
	require.NoError(t, blob.Save(ctx, data))
	data[0] = 'x'

	got, err := blob.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
	require.Equal(t, 1, blob.Saves())
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	getErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) UploadPart(context.Context, *s3.UploadPartInput, ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errors.New("multipart not supported")
}

func (f *fakeS3) CreateMultipartUpload(context.Context, *s3.CreateMultipartUploadInput, ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported")
}

func (f *fakeS3) CompleteMultipartUpload(context.Context, *s3.CompleteMultipartUploadInput, ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported")
}

func (f *fakeS3) AbortMultipartUpload(context.Context, *s3.AbortMultipartUploadInput, ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported")
}

func TestS3BlobRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeS3()
	blob, err := NewS3Blob(client, "users-bucket", "/registry/users.json")
	require.NoError(t, err)
	require.Equal(t, "s3://users-bucket/registry/users.json", blob.Location())

	_, err = blob.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, blob.Save(ctx, []byte(`[{"id":"1"}]`)))
	got, err := blob.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, `[{"id":"1"}]`, string(got))
}

func TestS3BlobLoadError(t *testing.T) {
	client := newFakeS3()
	client.getErr = errors.New("access denied")
	blob, err := NewS3Blob(client, "b", "k")
	require.NoError(t, err)

	_, err = blob.Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "access denied")
}

func TestNewS3BlobRequiresBucketAndKey(t *testing.T) {
	_, err := NewS3Blob(newFakeS3(), "", "k")
	require.Error(t, err)
	_, err = NewS3Blob(newFakeS3(), "b", "/")
	require.Error(t, err)
}
